package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/inspectra/inspection-management/pkg/logger"
)

// RequestID propagates the caller's X-Trace-ID, minting one when absent, and
// tags the request-scoped logger with it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.WithTrace(r.Context(), traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
