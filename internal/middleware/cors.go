package middleware

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// CORSMiddleware admits the configured storefront origins. Outside production
// any loopback origin is admitted too, whatever its port.
//
// Sessions travel as bearer tokens, so credentialed requests are not enabled.
func CORSMiddleware(allowedOrigins []string, isDevelopment bool) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		MaxAge:         300, // seconds
	}

	if isDevelopment {
		options.AllowOriginFunc = func(_ *http.Request, origin string) bool {
			return isLoopbackOrigin(origin) || containsOrigin(allowedOrigins, origin)
		}
	}

	return cors.Handler(options)
}

func isLoopbackOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

func containsOrigin(origins []string, origin string) bool {
	for _, o := range origins {
		if o == origin || o == "*" {
			return true
		}
	}
	return false
}

// DefaultMiddlewareStack returns the middleware every route runs behind.
// RealIP rewrites RemoteAddr from X-Forwarded-For and X-Real-IP, which any
// client can set, so it is only installed when a trusted proxy fronts the API.
func DefaultMiddlewareStack(trustProxy bool) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{middleware.RequestID}
	if trustProxy {
		stack = append(stack, middleware.RealIP)
	}
	return append(stack, middleware.Recoverer, middleware.Compress(5))
}
