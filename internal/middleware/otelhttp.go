package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// untracedPaths are polled by probes and scrapers; tracing them is noise.
var untracedPaths = map[string]bool{
	"/api/health": true,
	"/metrics":    true,
}

func OTelHTTP(serviceName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewMiddleware(serviceName,
			otelhttp.WithSpanNameFormatter(spanName),
			otelhttp.WithFilter(func(r *http.Request) bool {
				return !untracedPaths[r.URL.Path]
			}),
		)(next)
	}
}

func spanName(_ string, r *http.Request) string {
	routePattern := ""
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		routePattern = rctx.RoutePattern()
	}
	if routePattern == "" {
		routePattern = r.URL.Path
	}
	return fmt.Sprintf("%s %s", r.Method, routePattern)
}
