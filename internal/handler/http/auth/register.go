package auth

import "net/http"

// Routes holds optional per-route wrappers, typically per-IP rate limiters.
type Routes struct {
	TokenLimit  func(http.Handler) http.Handler
	SignupLimit func(http.Handler) http.Handler
}

// Register mounts /auth/signup, /auth/token and /auth/me.
func Register(mux *http.ServeMux, svc Service, rt Routes) {
	mux.Handle("POST /auth/token", wrap(TokenHandler(svc), rt.TokenLimit))
	mux.Handle("POST /auth/signup", wrap(SignupHandler(svc), rt.SignupLimit))
	mux.Handle("GET /auth/me", Authz(svc)(MeHandler(svc)))
}

func wrap(h http.Handler, mw func(http.Handler) http.Handler) http.Handler {
	if mw == nil {
		return h
	}
	return mw(h)
}
