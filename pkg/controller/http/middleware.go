package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/kwikkconnect/kwikkconnect/pkg/utils/logging"
)

// accessLogger logs one line per request with the request ID carried in
// the context logger.
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.From(r.Context()).With(
			"request_id", middleware.GetReqID(r.Context()),
		)
		ctx := logging.With(r.Context(), logger)

		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.Info("access",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"remote", r.RemoteAddr,
		)
	})
}
