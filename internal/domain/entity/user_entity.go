package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash; ResetToken holds a bcrypt hash of the
// single-use reset secret and is cleared when consumed.
type User struct {
	ID                string
	Name              string
	Email             string
	Password          string
	Phone             string
	ResetToken        string
	ResetTokenExpires time.Time
	VerificationToken string
	EmailVerified     bool
	TelegramID        int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
