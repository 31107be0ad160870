package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventapp/server/internal/container"
	handlers "github.com/eventapp/server/internal/interface/http"
	"github.com/eventapp/server/internal/interface/middleware"
	"github.com/eventapp/server/pkg/helpers"
)

// UploadModule wires POST /api/upload behind auth.

type UploadModule struct {
	Handler *handlers.UploadHandler
	JWT     *helpers.JWTManager
}

func NewUploadModule(h *handlers.UploadHandler, jwt *helpers.JWTManager) *UploadModule {
	return &UploadModule{Handler: h, JWT: jwt}
}

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/upload", m.Handler.Upload)
	}
}
