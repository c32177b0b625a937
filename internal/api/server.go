package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rrosajp/service.yt-dlp/internal/log"
	"github.com/rrosajp/service.yt-dlp/internal/policy"
	"github.com/rrosajp/service.yt-dlp/playback"
)

// Server exposes the playback core over HTTP/JSON.
type Server struct {
	resolver *playback.Resolver
	policies *policy.Holder
	log      zerolog.Logger
}

func New(resolver *playback.Resolver, policies *policy.Holder) *Server {
	return &Server{
		resolver: resolver,
		policies: policies,
		log:      log.WithComponent("api"),
	}
}

// Routes assembles the request router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestID)
	r.Use(accessLog(s.log))

	r.Post("/play", s.handlePlay)
	r.Post("/extract", s.handleExtract)
	r.Post("/settings/reload", s.handleReload)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.policies.Reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
