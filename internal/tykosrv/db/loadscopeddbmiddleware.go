package db

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/uiuclibrary/tyko/internal/common/httpx"
)

// LoadScopedDBMiddleware reserves a database connection for the request and releases
// it once the request is served.
func LoadScopedDBMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, err := ConnCtx(r.Context())
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("unable to get db connection")
			httpx.ErrUnableToServeRequest().Send(w)
			return
		}
		defer func() {
			if dbConn := DB(ctx); dbConn != nil {
				dbConn.Close(context.Background())
			}
		}()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
