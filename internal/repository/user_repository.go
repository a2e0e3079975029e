package repository

import (
	"context"

	"news-portal/internal/domain/entity"
)

// UserRepository はサインイン用のユーザーストア。
// FindByEmail / FindByID は該当なしの場合 (nil, nil) を返す。
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	VerifyPassword(user *entity.User, password string) bool
}
