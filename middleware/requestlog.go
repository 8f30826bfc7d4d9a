package middleware

import (
	"net/http"
	"strconv"
	"time"

	"gitea.com/go-chi/session"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/JayL96/user-management/metrics"
)

// RequestLogger emits one structured log line per request and feeds the
// request counter. It must be mounted after the session middleware so the
// operator name can be attributed.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Dur("duration", time.Since(start)).
				Str("operator", operatorName(r)).
				Msg("request")
		})
	}
}

// operatorName reads the signed-in operator from the session, if any
func operatorName(r *http.Request) string {
	sess := session.GetSession(r)
	if sess == nil {
		return "anonymous"
	}
	if name, _ := sess.Get("operator_name").(string); name != "" {
		return name
	}
	return "anonymous"
}
