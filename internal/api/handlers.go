package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rrosajp/service.yt-dlp/internal/manifest"
	"github.com/rrosajp/service.yt-dlp/internal/policy"
	"github.com/rrosajp/service.yt-dlp/internal/ytdlp"
	"github.com/rrosajp/service.yt-dlp/playback"
)

type playRequest struct {
	URL      string    `json:"url"`
	Captions *bool     `json:"captions"`
	Exclude  *[]string `json:"exclude"`
	FPSLimit *int      `json:"fps_limit"`
	FPSHint  *string   `json:"fps_hint"`
}

type extractRequest struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	opts := playback.Options{
		Captions:     req.Captions,
		Exclude:      req.Exclude,
		FrameRateCap: req.FPSLimit,
	}
	if req.FPSHint != nil {
		hint := policy.FrameRateHint(*req.FPSHint)
		opts.FrameRateHint = &hint
	}
	if err := opts.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	video, err := s.resolver.Video(r.Context(), req.URL, opts)
	resolveDuration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		resolveTotal.WithLabelValues(outcomeError).Inc()
		s.log.Error().Err(err).Str("url", req.URL).Msg("resolve failed")
		writeError(w, upstreamStatus(err), err.Error())
	case video == nil:
		resolveTotal.WithLabelValues(outcomeEmpty).Inc()
		writeError(w, http.StatusNotFound, "nothing playable found")
	default:
		resolveTotal.WithLabelValues(outcomeResolved).Inc()
		writeJSON(w, http.StatusOK, video)
	}
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	payload, err := s.resolver.Extract(r.Context(), req.URL)
	if err != nil {
		s.log.Error().Err(err).Str("url", req.URL).Msg("extract failed")
		writeError(w, upstreamStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// upstreamStatus maps collaborator failures to gateway errors; anything else
// is an internal error.
func upstreamStatus(err error) int {
	if errors.Is(err, ytdlp.ErrExtraction) || errors.Is(err, manifest.ErrBuild) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
