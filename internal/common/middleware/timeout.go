package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uiuclibrary/tyko/internal/common/httpx"
)

// SetTimeout bounds the request context by timeout. Handlers see the deadline through
// the context, and database calls made with it are cancelled when it passes. A
// request that is still running at the deadline gets a 408 if nothing was written.
func SetTimeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if timeout <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			rw := httpx.NewResponseWriter(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			if ctx.Err() == context.DeadlineExceeded && !rw.Written() {
				log.Ctx(ctx).Error().Str("timeout", timeout.String()).Msg("request timed out")
				httpx.ErrRequestTimeout().Send(rw)
			}
		})
	}
}

// LimitBody caps the size of request bodies. Reads past the limit fail with
// *http.MaxBytesError, which httpx.GetRequestData reports as a 413.
func LimitBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
