// Package auth exposes sign-up, token issuance and the bearer token middleware.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/respond"
	"news-portal/internal/observability/logging"
	authuc "news-portal/internal/usecase/auth"
)

// Service is the subset of the auth usecase the handlers depend on.
type Service interface {
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
	IssueToken(user *entity.User) (authuc.Token, error)
	ParseToken(raw string) (*authuc.Claims, error)
	Signup(ctx context.Context, name, email, password string) (*entity.User, error)
	Profile(ctx context.Context, id string) (*entity.User, error)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenHandler verifies email and password and issues a session token.
func TokenHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "token"
		start := time.Now()
		logger := logging.FromContext(r.Context())
		defer func() { RecordAuthDuration(op, time.Since(start).Seconds()) }()

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RecordAuthRequest(op, resultFailure)
			respond.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			RecordAuthRequest(op, resultFailure)
			if errors.Is(err, authuc.ErrInvalidCredentials) {
				// メールアドレスはログに残さない
				logger.Warn("authentication failed", slog.String("reason", "invalid_credentials"))
				respond.Error(w, http.StatusUnauthorized, authuc.ErrInvalidCredentials.Error())
				return
			}
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		tok, err := svc.IssueToken(user)
		if err != nil {
			RecordAuthRequest(op, resultFailure)
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		RecordAuthRequest(op, resultSuccess)
		logger.Info("token issued", slog.String("user_id", user.ID))
		respond.JSON(w, http.StatusOK, tokenResponse{Token: tok.Value, ExpiresAt: tok.ExpiresAt.UTC()})
	}
}
