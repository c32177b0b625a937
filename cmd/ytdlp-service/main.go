package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rrosajp/service.yt-dlp/internal/api"
	"github.com/rrosajp/service.yt-dlp/internal/log"
	"github.com/rrosajp/service.yt-dlp/internal/manifest"
	"github.com/rrosajp/service.yt-dlp/internal/policy"
	"github.com/rrosajp/service.yt-dlp/internal/ytdlp"
	"github.com/rrosajp/service.yt-dlp/playback"
)

func main() {
	var (
		listen          = flag.String("listen", ":8080", "HTTP listen address")
		settingsPath    = flag.String("settings", "", "Path to the settings YAML file (watched for changes)")
		ytdlpPath       = flag.String("ytdlp", "yt-dlp", "Path to the yt-dlp binary")
		builderEndpoint = flag.String("manifest-endpoint", "", "URL of the manifest builder service")
		logLevel        = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	log.Configure(log.Config{Level: *logLevel})
	logger := log.WithComponent("main")

	if *builderEndpoint == "" {
		logger.Fatal().Msg("-manifest-endpoint is required")
	}

	initial, err := policy.LoadFile(*settingsPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("loading settings")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policies := policy.NewHolder(initial, *settingsPath)
	if err := policies.StartWatcher(ctx); err != nil {
		logger.Fatal().Err(err).Msg("starting settings watcher")
	}
	defer policies.Stop()

	extractor := ytdlp.NewCLI(*ytdlpPath)
	builder := manifest.NewClient(*builderEndpoint, nil)
	resolver := playback.NewResolver(extractor, builder, policies)

	server := &http.Server{
		Addr:              *listen,
		Handler:           api.New(resolver, policies).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("listen", *listen).Msg("starting")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server failed")
	}
	logger.Info().Msg("stopped")
}
