package healthcheck

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) error

// HealthCheck is the health check handler. With no checks registered it
// always answers ok.
type HealthCheck struct {
	Checks  map[string]Checker
	Timeout time.Duration
}

// Handler is used to control the flow of GET /health endpoint
func (hc HealthCheck) Handler(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if IsHealthCheckRequest(r) {
			hc.ServeHTTP(w, r)

			return
		}

		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// ServeHTTP serve http request for health check
func (hc HealthCheck) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if hc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, hc.Timeout)
		defer cancel()
	}

	for name, check := range hc.Checks {
		if err := check(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, "%s: %v\n", name, err)

			return
		}
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// IsHealthCheckRequest is used to check if the request is a health check request
func IsHealthCheckRequest(r *http.Request) bool {
	return r.Method == "GET" && r.URL.Path == "/health"
}
