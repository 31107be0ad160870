package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/eventapp/server/internal/application"
	"github.com/eventapp/server/internal/domain/entity"
	"github.com/eventapp/server/pkg/response"
	"github.com/eventapp/server/pkg/validation"
)

type AuthHandler struct {
	Svc    *userapp.UserService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *userapp.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,pwd"`
}

type verifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

func userPayload(u *entity.User) gin.H {
	return gin.H{
		"id":             u.ID,
		"name":           u.Name,
		"email":          u.Email,
		"phone":          u.Phone,
		"email_verified": u.EmailVerified,
		"telegram_id":    u.TelegramID,
		"created_at":     u.CreatedAt,
		"updated_at":     u.UpdatedAt,
	}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, token, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userapp.ErrEmailTaken) {
			response.Fail(c, http.StatusBadRequest, "User already exists", nil)
			return
		}
		h.Logger.WithError(err).Error("registration failed")
		response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":  userPayload(u),
		"token": token,
	}, "User created successfully")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userapp.ErrInvalidCredentials) {
			// Deliberately the same answer for unknown email and bad password.
			response.Fail(c, http.StatusBadRequest, "Invalid credentials", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  userPayload(u),
		"token": token,
	}, "Login successful")
}

// ForgotPassword POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found", nil)
			return
		}
		h.Logger.WithError(err).Error("forgot password failed")
		response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	response.Success[any](c, http.StatusOK, nil, "Password reset email sent")
}

// ResetPassword POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	if err := h.Svc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, userapp.ErrResetToken) {
			response.Fail(c, http.StatusBadRequest, "Invalid or expired reset token", nil)
			return
		}
		h.Logger.WithError(err).Error("reset password failed")
		response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	response.Success[any](c, http.StatusOK, nil, "Password reset successfully")
}

// VerifyEmail POST /api/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	if err := h.Svc.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		if errors.Is(err, userapp.ErrVerifyToken) {
			response.Fail(c, http.StatusBadRequest, "Invalid verification token", nil)
			return
		}
		h.Logger.WithError(err).Error("email verification failed")
		response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	response.Success[any](c, http.StatusOK, nil, "Email verified successfully")
}
