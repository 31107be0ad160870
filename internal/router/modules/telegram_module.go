package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventapp/server/internal/container"
	handlers "github.com/eventapp/server/internal/interface/http"
	"github.com/eventapp/server/internal/interface/middleware"
)

// TelegramModule wires POST /api/telegram/link. Public, the handler verifies
// the Mini App init data signature and the account password itself.

type TelegramModule struct {
	Handler *handlers.TelegramHandler
}

func NewTelegramModule(h *handlers.TelegramHandler) *TelegramModule {
	return &TelegramModule{Handler: h}
}

func (m *TelegramModule) Register(rg *gin.RouterGroup) {
	linkLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/telegram/link", linkLimiter, m.Handler.Link)
}
