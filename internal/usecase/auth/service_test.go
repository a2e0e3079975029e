package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-portal/internal/domain/entity"
	"news-portal/internal/infra/adapter/persistence/memory"
	"news-portal/internal/usecase/auth"
)

const testSecret = "test-secret-key-at-least-32-characters-long"

var fixedNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*auth.Service, *memory.UserRepo) {
	t.Helper()
	repo, err := memory.NewUserRepo()
	require.NoError(t, err)
	svc := auth.NewService(repo, auth.Config{
		Secret:            []byte(testSecret),
		Issuer:            "news-portal",
		Expiry:            720 * time.Hour,
		MinPasswordLength: 6,
		WeakPasswords:     []string{"password", "123456"},
		Now:               func() time.Time { return fixedNow },
	})
	return svc, repo
}

/* ───────────── Authenticate ───────────── */

func TestAuthenticate(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "demo user", email: memory.DemoEmail, password: memory.DemoPassword},
		{name: "email case and spaces ignored", email: " DEMO@example.com ", password: memory.DemoPassword},
		{name: "wrong password", email: memory.DemoEmail, password: "nope", wantErr: auth.ErrInvalidCredentials},
		{name: "unknown email", email: "ghost@example.com", password: memory.DemoPassword, wantErr: auth.ErrInvalidCredentials},
		{name: "empty email", email: "", password: "x", wantErr: auth.ErrInvalidCredentials},
		{name: "empty password", email: memory.DemoEmail, password: "", wantErr: auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := svc.Authenticate(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "1", u.ID)
		})
	}
}

/* ───────────── Tokens ───────────── */

func TestIssueAndParseToken(t *testing.T) {
	svc, _ := newService(t)
	user := &entity.User{ID: "1", Name: "Demo User", Email: memory.DemoEmail}

	tok, err := svc.IssueToken(user)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(720*time.Hour), tok.ExpiresAt)

	claims, err := svc.ParseToken(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, "Demo User", claims.Name)
	assert.Equal(t, memory.DemoEmail, claims.Email)
	assert.Equal(t, "news-portal", claims.Issuer)
}

func TestParseToken_Rejects(t *testing.T) {
	svc, _ := newService(t)

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := jwt.RegisteredClaims{
		Subject:   "1",
		Issuer:    "news-portal",
		ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
	}

	tests := []struct {
		name string
		raw  string
	}{
		{name: "garbage", raw: "not.a.token"},
		{name: "wrong secret", raw: sign(jwt.SigningMethodHS256, []byte("another-secret-another-secret-12"), valid)},
		{name: "none alg", raw: sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid)},
		{name: "expired", raw: sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
			Subject: "1", Issuer: "news-portal", ExpiresAt: jwt.NewNumericDate(fixedNow.Add(-time.Minute)),
		})},
		{name: "no expiry", raw: sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
			Subject: "1", Issuer: "news-portal",
		})},
		{name: "wrong issuer", raw: sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
			Subject: "1", Issuer: "someone-else", ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
		})},
		{name: "missing subject", raw: sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
			Issuer: "news-portal", ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ParseToken(tt.raw)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

/* ───────────── Signup ───────────── */

func TestSignup(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, "  Asha ", "Asha@Example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, "2", u.ID)
	assert.Equal(t, "Asha", u.Name)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.NotEqual(t, "s3cret!", u.PasswordHash)
	assert.Equal(t, 2, repo.Len())

	got, err := svc.Authenticate(ctx, "asha@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestSignup_Validation(t *testing.T) {
	svc, repo := newService(t)

	tests := []struct {
		name      string
		userName  string
		email     string
		password  string
		wantField string
	}{
		{name: "missing name", userName: " ", email: "a@example.com", password: "abcdef", wantField: "name"},
		{name: "missing email", userName: "A", email: "", password: "abcdef", wantField: "email"},
		{name: "email without at", userName: "A", email: "example.com", password: "abcdef", wantField: "email"},
		{name: "short password", userName: "A", email: "a@example.com", password: "abc", wantField: "password"},
		{name: "weak password", userName: "A", email: "a@example.com", password: "Password", wantField: "password"},
		{name: "password over 72 bytes", userName: "A", email: "a@example.com", password: strings.Repeat("a", 73), wantField: "password"},
		{name: "multibyte password over 72 bytes", userName: "A", email: "a@example.com", password: strings.Repeat("パ", 25), wantField: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.userName, tt.email, tt.password)
			var vErr *entity.ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.ErrorIs(t, err, entity.ErrValidationFailed)
		})
	}
	assert.Equal(t, 1, repo.Len())
}

func TestSignup_MaxLengthPasswordAccepted(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	plain := strings.Repeat("a", 72)

	_, err := svc.Signup(ctx, "Long", "long@example.com", plain)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "long@example.com", plain)
	assert.NoError(t, err)
}

func TestSignup_EmailTaken(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Signup(context.Background(), "Dup", "Demo@Example.com", "abcdefg")
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

/* ───────────── Profile ───────────── */

func TestProfile(t *testing.T) {
	svc, _ := newService(t)

	u, err := svc.Profile(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, memory.DemoEmail, u.Email)

	_, err = svc.Profile(context.Background(), "404")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}
