package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/eventapp/server/internal/application"
	"github.com/eventapp/server/internal/interface/middleware"
	"github.com/eventapp/server/pkg/response"
	"github.com/eventapp/server/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"omitempty,e164"`
}

// GetProfile GET /api/user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get profile failed")
		response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, userPayload(u), "profile")
}

// UpdateProfile PUT /api/user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, userapp.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, userapp.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "User not found", nil)
		case errors.Is(err, userapp.ErrEmailTaken):
			response.Fail(c, http.StatusConflict, "Email already in use", nil)
		default:
			h.Logger.WithError(err).Error("profile update failed")
			response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, userPayload(u), "Profile updated successfully")
}
