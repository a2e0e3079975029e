package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"news-portal/internal/domain/entity"
	"news-portal/internal/infra/password"
	"news-portal/internal/observability/metrics"
	"news-portal/internal/repository"
)

// uniqueViolation は PostgreSQL の一意制約違反コード
const uniqueViolation = "23505"

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

const userColumns = `id::text, name, email, password_hash, image, created_at`

func (repo *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	defer recordQuery("find_by_email", time.Now())
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE lower(email) = $1
LIMIT 1`
	user, err := scanUser(repo.db.QueryRowContext(ctx, query, entity.NormalizeEmail(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByEmail: %w", err)
	}
	return user, nil
}

func (repo *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	defer recordQuery("find_by_id", time.Now())
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id::text = $1
LIMIT 1`
	user, err := scanUser(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	return user, nil
}

// Create inserts user and fills in ID and CreatedAt.
// A taken email yields entity.ErrDuplicate.
func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	defer recordQuery("create", time.Now())
	const query = `
INSERT INTO users (name, email, password_hash, image)
VALUES ($1, $2, $3, $4)
RETURNING id::text, created_at`
	var image sql.NullString
	if user.Image != "" {
		image = sql.NullString{String: user.Image, Valid: true}
	}
	err := repo.db.QueryRowContext(ctx, query,
		user.Name, entity.NormalizeEmail(user.Email), user.PasswordHash, image,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("Create: %w", entity.ErrDuplicate)
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) VerifyPassword(user *entity.User, plain string) bool {
	if user == nil {
		return false
	}
	return password.Verify(user.PasswordHash, plain)
}

func scanUser(row *sql.Row) (*entity.User, error) {
	var (
		u     entity.User
		image sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &image, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Image = image.String
	return &u, nil
}

func recordQuery(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}
