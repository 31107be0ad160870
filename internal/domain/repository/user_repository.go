package repository

import (
	"context"
	"time"

	"github.com/eventapp/server/internal/domain/entity"
)

// UserRepository defines the interface for user-related storage operations.
// Implementations: postgres for production, memory for tests.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error

	// SetResetToken stores a bcrypt hash of the reset secret with its expiry.
	SetResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error
	// ActiveResetCandidates returns users whose reset token has not expired.
	ActiveResetCandidates(ctx context.Context) ([]*entity.User, error)
	// ResetPassword sets a new password hash and clears the reset token in
	// one statement.
	ResetPassword(ctx context.Context, id, passwordHash string) error

	GetByVerificationToken(ctx context.Context, token string) (*entity.User, error)
	// MarkEmailVerified flips the verified flag and clears the token.
	MarkEmailVerified(ctx context.Context, id string) error

	SetTelegramID(ctx context.Context, id string, telegramID int64) error
}
