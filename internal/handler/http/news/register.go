package news

import "net/http"

// Register mounts the read-only news routes.
func Register(mux *http.ServeMux, svc Resolver) {
	mux.Handle("GET /api/news", ListHandler{svc})
	mux.Handle("GET /api/articles/{id}", GetHandler{svc})
	mux.Handle("GET /api/articles/{id}/related", RelatedHandler{svc})
	mux.Handle("GET /api/categories/{slug}", CategoryHandler{svc})
	mux.Handle("GET /api/search", SearchHandler{svc})
	mux.Handle("GET /api/home", HomeHandler{svc})
}
