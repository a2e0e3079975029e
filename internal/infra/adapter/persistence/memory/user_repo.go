// Package memory provides the in-process user store used when no database is configured.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/samber/lo"

	"news-portal/internal/domain/entity"
	"news-portal/internal/infra/password"
	"news-portal/internal/repository"
)

// Demo account seeded into every new store.
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "demo123"
	DemoName     = "Demo User"
)

// UserRepo keeps users in a slice guarded by a mutex.
// IDs are sequential decimal strings starting at "1".
type UserRepo struct {
	mu    sync.RWMutex
	users []*entity.User
	now   func() time.Time
}

// NewUserRepo returns a store seeded with the demo user.
func NewUserRepo() (*UserRepo, error) {
	hash, err := password.Hash(DemoPassword)
	if err != nil {
		return nil, err
	}
	r := &UserRepo{now: time.Now}
	r.users = append(r.users, &entity.User{
		ID:           "1",
		Name:         DemoName,
		Email:        DemoEmail,
		PasswordHash: hash,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	return r, nil
}

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	key := entity.NormalizeEmail(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := lo.Find(r.users, func(u *entity.User) bool {
		return entity.NormalizeEmail(u.Email) == key
	})
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := lo.Find(r.users, func(u *entity.User) bool { return u.ID == id })
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// Create stores user, assigning ID and CreatedAt. The email must be unused.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	key := entity.NormalizeEmail(user.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if lo.ContainsBy(r.users, func(u *entity.User) bool {
		return entity.NormalizeEmail(u.Email) == key
	}) {
		return entity.ErrDuplicate
	}
	user.ID = strconv.Itoa(len(r.users) + 1)
	user.CreatedAt = r.now().UTC()
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *UserRepo) VerifyPassword(user *entity.User, plain string) bool {
	if user == nil {
		return false
	}
	return password.Verify(user.PasswordHash, plain)
}

// Len reports the number of stored users.
func (r *UserRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
