package auth

import (
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

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the public view of an account. The password hash never leaves the server.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *entity.User) userResponse {
	resp := userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC(),
	}
	if u.Image != "" {
		img := u.Image
		resp.Image = &img
	}
	return resp
}

// SignupHandler creates an account and answers 201 with the new user.
func SignupHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "signup"
		start := time.Now()
		logger := logging.FromContext(r.Context())
		defer func() { RecordAuthDuration(op, time.Since(start).Seconds()) }()

		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RecordAuthRequest(op, resultFailure)
			respond.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := svc.Signup(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			RecordAuthRequest(op, resultFailure)
			var vErr *entity.ValidationError
			switch {
			case errors.As(err, &vErr):
				respond.JSON(w, http.StatusBadRequest, map[string]string{
					"error": vErr.Field + " " + vErr.Message,
					"field": vErr.Field,
				})
			case errors.Is(err, authuc.ErrEmailTaken):
				respond.Error(w, http.StatusConflict, authuc.ErrEmailTaken.Error())
			default:
				respond.SafeError(w, http.StatusInternalServerError, err)
			}
			return
		}

		RecordAuthRequest(op, resultSuccess)
		logger.Info("user signed up", slog.String("user_id", user.ID))
		respond.JSON(w, http.StatusCreated, toUserResponse(user))
	}
}

// MeHandler returns the profile of the user carried by the bearer token.
// It must run behind Authz.
func MeHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "me"
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			RecordAuthRequest(op, resultFailure)
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		user, err := svc.Profile(r.Context(), claims.Subject)
		if err != nil {
			RecordAuthRequest(op, resultFailure)
			if errors.Is(err, authuc.ErrUserNotFound) {
				// 署名は正しいがアカウントが消えている
				respond.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}
		RecordAuthRequest(op, resultSuccess)
		respond.JSON(w, http.StatusOK, toUserResponse(user))
	}
}
