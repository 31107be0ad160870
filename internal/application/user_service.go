package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventapp/server/config"
	"github.com/eventapp/server/internal/domain/entity"
	"github.com/eventapp/server/internal/domain/repository"
	"github.com/eventapp/server/pkg/helpers"
	"github.com/eventapp/server/pkg/mailer"
	tpl "github.com/eventapp/server/pkg/mailer/templates"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrResetToken         = errors.New("invalid or expired reset token")
	ErrVerifyToken        = errors.New("invalid verification token")
	ErrTelegramAuth       = errors.New("telegram authorization failed")
)

const resetTokenTTL = time.Hour

// UserService implements registration, login, password reset, email
// verification, profile management, and Telegram account linking.
type UserService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, cfg *config.Config) *UserService {
	return &UserService{Repo: repo, JWT: jwt, Pub: pub, Logger: logger, Cfg: cfg}
}

// Register creates the user and returns it with a fresh session token.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	verifyTok, err := helpers.GenerateToken(32)
	if err != nil {
		return nil, "", err
	}
	u := &entity.User{
		Name:              name,
		Email:             email,
		Password:          hash,
		VerificationToken: verifyTok,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, _, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}

	s.publishEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: tpl.Welcome,
		Data: map[string]any{
			"Name":        u.Name,
			"FrontendURL": s.Cfg.FrontendURL,
		},
	})
	s.publishEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: tpl.VerifyEmail,
		Data: map[string]any{
			"Name":      u.Name,
			"VerifyURL": s.Cfg.VerifyEmailURL + "?token=" + verifyTok,
		},
	})

	return u, token, nil
}

// Authenticate validates email/password without issuing a token. Failures
// collapse into ErrInvalidCredentials so callers cannot probe for emails.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token, _, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name  string
	Email string
	Phone string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ForgotPassword stores a hashed single-use reset secret and emails the
// plaintext link. The plaintext never touches the database.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return ErrUserNotFound
	}

	token, err := helpers.GenerateToken(32)
	if err != nil {
		return err
	}
	tokenHash, err := helpers.HashPassword(token)
	if err != nil {
		return err
	}
	if err := s.Repo.SetResetToken(ctx, u.ID, tokenHash, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	s.publishEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: tpl.ResetPassword,
		Data: map[string]any{
			"Name":      u.Name,
			"ResetURL":  s.Cfg.ResetPasswordURL + "?token=" + token,
			"ExpiresIn": "1 hour",
		},
	})
	return nil
}

// ResetPassword consumes a reset token: the new password commits and the
// token clears in a single statement, so a second use always fails.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	candidates, err := s.Repo.ActiveResetCandidates(ctx)
	if err != nil {
		return err
	}

	var match *entity.User
	for _, u := range candidates {
		if helpers.CompareHashAndPassword(u.ResetToken, token) {
			match = u
			break
		}
	}
	if match == nil {
		return ErrResetToken
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.ResetPassword(ctx, match.ID, hash)
}

func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	u, err := s.Repo.GetByVerificationToken(ctx, token)
	if err != nil {
		return ErrVerifyToken
	}
	return s.Repo.MarkEmailVerified(ctx, u.ID)
}

// LinkTelegram ties a Telegram account to an existing user after the user's
// credentials check out. When a bot token is configured the Mini App init
// data must carry a valid signature; without one the credentials alone decide
// and clients may omit initData entirely.
func (s *UserService) LinkTelegram(ctx context.Context, telegramID int64, initData, email, password string) (*entity.User, string, error) {
	if s.Cfg.TelegramBotToken != "" {
		if _, err := helpers.VerifyTelegramInitData(initData, s.Cfg.TelegramBotToken, s.Cfg.TelegramInitMaxAge); err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).Warn("telegram init data rejected")
			}
			return nil, "", ErrTelegramAuth
		}
	}

	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	if err := s.Repo.SetTelegramID(ctx, u.ID, telegramID); err != nil {
		return nil, "", err
	}
	u.TelegramID = telegramID

	token, _, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *UserService) publishEmail(ctx context.Context, job mailer.EmailJob) {
	if s.Pub == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("failed to publish email job")
	}
}
