package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/eventapp/server/internal/application"
	"github.com/eventapp/server/pkg/response"
	"github.com/eventapp/server/pkg/validation"
)

type TelegramHandler struct {
	Svc    *userapp.UserService
	Logger *logrus.Logger
}

func NewTelegramHandler(svc *userapp.UserService, logger *logrus.Logger) *TelegramHandler {
	return &TelegramHandler{Svc: svc, Logger: logger}
}

type telegramLinkRequest struct {
	TelegramID int64  `json:"telegramId" binding:"required"`
	InitData   string `json:"initData"` // required once a bot token is configured
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
}

// Link POST /api/telegram/link ties a Telegram Mini App identity to an
// existing account and returns a session token for the Mini App to store.
func (h *TelegramHandler) Link(c *gin.Context) {
	var req telegramLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, token, err := h.Svc.LinkTelegram(c.Request.Context(), req.TelegramID, req.InitData, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userapp.ErrTelegramAuth):
			response.Fail(c, http.StatusForbidden, "Telegram authorization failed", nil)
		case errors.Is(err, userapp.ErrInvalidCredentials):
			response.Fail(c, http.StatusBadRequest, "Invalid credentials", nil)
		default:
			h.Logger.WithError(err).Error("telegram link failed")
			response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  userPayload(u),
		"token": token,
	}, "Telegram account linked")
}
