// Package server assembles the Tyko HTTP server: middleware, the API routes under the
// configured prefix, and the health and metrics endpoints.
package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/uiuclibrary/tyko/internal/common/httpx"
	"github.com/uiuclibrary/tyko/internal/common/logtrace"
	commonmiddleware "github.com/uiuclibrary/tyko/internal/common/middleware"
	"github.com/uiuclibrary/tyko/internal/tykosrv/apis"
	"github.com/uiuclibrary/tyko/internal/tykosrv/config"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db"
	"github.com/uiuclibrary/tyko/internal/tykosrv/tykocommon"
)

type TykoServer struct {
	Router *chi.Mux
}

func CreateNewServer() (*TykoServer, error) {
	if config.Config() == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	s := &TykoServer{}
	s.Router = chi.NewRouter()
	return s, nil
}

func (s *TykoServer) MountHandlers() {
	cfg := config.Config()
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	s.Router.Use(commonmiddleware.Metrics)
	if timeout := cfg.GetRequestTimeout(); timeout > 0 {
		s.Router.Use(commonmiddleware.SetTimeout(timeout))
	}
	if cfg.MaxRequestBodySize > 0 {
		s.Router.Use(commonmiddleware.LimitBody(cfg.MaxRequestBodySize))
	}
	if cfg.HandleCORS {
		s.Router.Use(s.HandleCORS(cfg.CORSAllowedOrigins))
	}

	// health and metrics do not hold a database connection
	s.Router.Get("/version", s.getVersion)
	s.Router.Get("/ready", s.getReadiness)
	s.Router.Handle("/metrics", promhttp.Handler())

	s.Router.Group(func(r chi.Router) {
		r.Use(db.LoadScopedDBMiddleware)
		r.Route(cfg.APIPrefix, func(r chi.Router) {
			apis.Router(r)
		})
	})

	if logtrace.IsTraceEnabled() {
		walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			log.Trace().Str("method", method).Str("route", route).Msg("route")
			return nil
		}
		if err := chi.Walk(s.Router, walkFunc); err != nil {
			log.Error().Err(err).Msg("unable to list routes")
		}
	}
}

type GetVersionRsp struct {
	ServerVersion string `json:"serverVersion"`
	ApiVersion    string `json:"apiVersion"`
	SchemaVersion string `json:"schemaVersion"`
}

func (s *TykoServer) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	rsp := &GetVersionRsp{
		ServerVersion: "Tyko Server: " + tykocommon.GetVersion(),
		ApiVersion:    tykocommon.ApiVersion,
		SchemaVersion: tykocommon.SchemaVersion,
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}

func (s *TykoServer) getReadiness(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("Readiness check")

	ctx, err := db.ConnCtx(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Database connection failed during readiness check")
		httpx.SendJsonRsp(r.Context(), w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  "database connection failed",
		})
		return
	}
	defer db.DB(ctx).Close(ctx)

	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// HandleCORS allows the configured origins, or any origin when none is configured.
func (s *TykoServer) HandleCORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "If-None-Match"},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         300,
	})
}
