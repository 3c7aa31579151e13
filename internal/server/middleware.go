package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mecrobet/marga/internal/logger"
)

// requestLogger logs one line per request at a level chosen by status.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			fields := []interface{}{
				"method", strings.ToUpper(r.Method),
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if id := chiMiddleware.GetReqID(r.Context()); id != "" {
				fields = append(fields, "request_id", id)
			}
			if sid := chi.URLParam(r, "id"); sid != "" {
				fields = append(fields, "session_id", sid)
			}

			switch {
			case status >= 500:
				log.Error("HTTP request", fields...)
			case status >= 400:
				log.Warn("HTTP request", fields...)
			default:
				log.Info("HTTP request", fields...)
			}
		})
	}
}
