package http

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"news-portal/internal/handler/http/requestid"
	"news-portal/internal/handler/http/respond"
	"news-portal/internal/handler/http/responsewriter"
	"news-portal/internal/observability/logging"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mws so that the first one is outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Logging writes one access log line per request and puts a request-scoped
// logger into the context for handlers.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logging.WithRequestID(r.Context(), logger)
			rw := responsewriter.Wrap(w)

			next.ServeHTTP(rw, r.WithContext(logging.WithLogger(r.Context(), reqLogger)))

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rw.StatusCode()),
				slog.Int("bytes", rw.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("remote_addr", r.RemoteAddr),
			}
			if id := traceID(r, rw); id != "" {
				attrs = append(attrs, slog.String("trace_id", id))
			}
			level := slog.LevelInfo
			if rw.StatusCode() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			reqLogger.Log(r.Context(), level, "request completed", attrs...)
		})
	}
}

// traceID prefers an inbound span and otherwise uses the id the tracing
// middleware set on the response.
func traceID(r *http.Request, w http.ResponseWriter) string {
	if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return w.Header().Get("X-Trace-Id")
}

// Recover turns a handler panic into a 500 response.
func Recover(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := responsewriter.Wrap(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())))
				if !rw.Written() {
					respond.SafeError(rw, http.StatusInternalServerError, errors.New("panic"))
				}
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

const (
	maxAuthHeader = 8 << 10
	maxURILength  = 2 << 10
)

// LimitRequestBody caps request bodies at maxBytes and rejects oversized
// Authorization headers and request URIs.
func LimitRequestBody(maxBytes int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthHeader {
				respond.Error(w, http.StatusRequestHeaderFieldsTooLarge, "authorization header too large")
				return
			}
			if len(r.URL.RequestURI()) > maxURILength {
				respond.Error(w, http.StatusRequestURITooLong, "URI too long")
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter allows limit requests per window for each client IP, using a
// token bucket per IP.
type RateLimiter struct {
	mu         sync.Mutex
	visitors   map[string]*visitor
	every      rate.Limit
	burst      int
	window     time.Duration
	trustProxy bool
	lastClean  time.Time
	now        func() time.Time
}

// NewRateLimiter allows limit requests per window per IP. When trustProxy is
// set the client IP is taken from X-Forwarded-For / X-Real-IP.
func NewRateLimiter(limit int, window time.Duration, trustProxy bool) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &RateLimiter{
		visitors:   make(map[string]*visitor),
		every:      rate.Every(window / time.Duration(limit)),
		burst:      limit,
		window:     window,
		trustProxy: trustProxy,
		lastClean:  time.Now(),
		now:        time.Now,
	}
}

// Limit rejects requests over the limit with 429 and a Retry-After header.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lim := rl.limiter(clientIP(r, rl.trustProxy))
		if !lim.AllowN(rl.now(), 1) {
			retry := time.Duration(float64(time.Second) / float64(rl.every))
			w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
			respond.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// 10分ごとに window の2倍以上アクセスのない IP を破棄
	if now.Sub(rl.lastClean) >= 10*time.Minute {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) > 2*rl.window {
				delete(rl.visitors, k)
			}
		}
		rl.lastClean = now
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.every, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Len reports the number of tracked IPs.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
				return ip.String()
			}
		}
		if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
			return ip.String()
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
