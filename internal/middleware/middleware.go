package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"devchatClient/internal/config"
	"devchatClient/internal/guard"
	"devchatClient/internal/logger"
	"devchatClient/internal/session"
)

type Middleware func(http.Handler) http.Handler

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware writes one line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
		if ce := logger.Log.Check(zap.DebugLevel, "request headers"); ce != nil {
			ce.Write(zap.String("headers", logger.SafeHeaders(r.Header)))
		}
	})
}

// SessionMiddleware gives every browser a random id cookie, uses it as the
// storage namespace and puts the hydrated session into the request context.
func SessionMiddleware(store *session.Store, cfg *config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			namespace := browserID(r, cfg.CookieName)
			if namespace == "" {
				namespace = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    namespace,
					Path:     "/",
					MaxAge:   365 * 24 * 60 * 60,
					HttpOnly: true,
					Secure:   cfg.CookieSecure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			state, err := store.Hydrate(r.Context(), namespace)
			if err != nil {
				logger.Log.Warn("session hydration failed",
					zap.String("namespace", namespace),
					zap.Error(err),
				)
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), state)))
		})
	}
}

func browserID(r *http.Request, cookieName string) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}

// GuardMiddleware renders the view only for sessions meeting req. While the
// session is still unknown the loading handler answers instead.
func GuardMiddleware(req guard.Requirement, loading http.Handler) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := session.FromContext(r.Context())
			decision := guard.Evaluate(state.Hydrated, state.Session, req)

			switch {
			case decision.Render():
				next.ServeHTTP(w, r)
			case decision.State == guard.Loading:
				loading.ServeHTTP(w, r)
			case WantsJSON(r):
				status := http.StatusUnauthorized
				if decision.State == guard.Unprivileged {
					status = http.StatusForbidden
				}
				writeJSON(w, status, map[string]string{"error": http.StatusText(status), "redirect": decision.Redirect})
			default:
				http.Redirect(w, r, decision.Redirect, http.StatusSeeOther)
			}
		})
	}
}

// WantsJSON reports whether the caller is a script rather than a page load.
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type limiterPool struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func (p *limiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, ok := p.limiters[key]
	if !ok {
		l = rate.NewLimiter(p.limit, p.burst)
		p.limiters[key] = l
	}
	return l
}

// RateLimitMiddleware throttles form submissions per client address. Reads
// pass through.
func RateLimitMiddleware(cfg config.RateLimit) Middleware {
	pool := &limiterPool{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(cfg.RPS),
		burst:    cfg.Burst,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			key := clientIP(r)

			if !pool.get(key).Allow() {
				logger.Log.Warn("auth form throttled", zap.String("client", key), zap.String("path", r.URL.Path))
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Too many attempts. Please wait a moment and try again.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
