// Package auth implements demo account sign-up, sign-in and session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/lo"

	"news-portal/internal/domain/entity"
	"news-portal/internal/infra/password"
	"news-portal/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
)

// Config controls token signing and the sign-up password policy.
type Config struct {
	Secret            []byte
	Issuer            string
	Expiry            time.Duration
	MinPasswordLength int
	WeakPasswords     []string
	Now               func() time.Time
}

// Claims are carried in issued session tokens. Subject is the user ID.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Token is a signed session token and its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

type Service struct {
	users repository.UserRepository
	cfg   Config
}

func NewService(users repository.UserRepository, cfg Config) *Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Expiry <= 0 {
		cfg.Expiry = 30 * 24 * time.Hour
	}
	return &Service{users: users, cfg: cfg}
}

// Authenticate returns the user for email when password matches.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, plain string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	if email == "" || plain == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !s.users.VerifyPassword(user, plain) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken signs an HS256 session token for user.
func (s *Service) IssueToken(user *entity.User) (Token, error) {
	now := s.cfg.Now()
	exp := now.Add(s.cfg.Expiry)
	claims := Claims{
		Name:  user.Name,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: exp}, nil
}

// ParseToken verifies signature, algorithm, issuer and expiry.
func (s *Service) ParseToken(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.cfg.Now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	}, opts...)
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return &claims, nil
}

// Signup validates the input, hashes the password and stores a new user.
func (s *Service) Signup(ctx context.Context, name, email, plain string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	email = entity.NormalizeEmail(email)
	if err := s.validateSignup(name, email, plain); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}
	user := &entity.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		// 同時登録で一意制約に当たった場合
		if errors.Is(err, entity.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Profile loads the user named by a token subject.
func (s *Service) Profile(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) validateSignup(name, email, plain string) error {
	if name == "" {
		return &entity.ValidationError{Field: "name", Message: "is required"}
	}
	if err := entity.ValidateEmail(email); err != nil {
		return err
	}
	if len(plain) < s.cfg.MinPasswordLength {
		return &entity.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", s.cfg.MinPasswordLength),
		}
	}
	// bcrypt は 72 バイトを超える入力を拒否する
	if len(plain) > password.MaxLength {
		return &entity.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("must be at most %d bytes", password.MaxLength),
		}
	}
	lower := strings.ToLower(plain)
	if lo.ContainsBy(s.cfg.WeakPasswords, func(w string) bool { return strings.ToLower(w) == lower }) {
		return &entity.ValidationError{Field: "password", Message: "is too common"}
	}
	return nil
}
