// Package memory provides map-backed repository implementations used by
// tests and local development without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eventapp/server/internal/domain/entity"
	"github.com/eventapp/server/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entity.User)}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, other := range r.users {
		if id != u.ID && other.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cur.Name = u.Name
	cur.Email = u.Email
	cur.Phone = u.Phone
	cur.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) SetResetToken(_ context.Context, id, tokenHash string, expires time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetToken = tokenHash
	u.ResetTokenExpires = expires
	u.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) ActiveResetCandidates(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.User
	now := time.Now()
	for _, u := range r.users {
		if u.ResetToken != "" && u.ResetTokenExpires.After(now) {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *UserRepository) ResetPassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = passwordHash
	u.ResetToken = ""
	u.ResetTokenExpires = time.Time{}
	u.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) GetByVerificationToken(_ context.Context, token string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if !u.EmailVerified && u.VerificationToken != "" && u.VerificationToken == token {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) MarkEmailVerified(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.EmailVerified = true
	u.VerificationToken = ""
	u.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) SetTelegramID(_ context.Context, id string, telegramID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.TelegramID = telegramID
	u.UpdatedAt = time.Now()
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
