package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/peterbourgon/ff/v3"

	"github.com/ewilliams-labs/vibematch/internal/adapters/openai"
	"github.com/ewilliams-labs/vibematch/internal/adapters/rest"
	"github.com/ewilliams-labs/vibematch/internal/adapters/spotify"
	"github.com/ewilliams-labs/vibematch/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	fs := flag.NewFlagSet("vibematch", flag.ExitOnError)
	var (
		port                = fs.Int("port", 8787, "listen port")
		openaiAPIKey        = fs.String("openai-api-key", "", "OpenAI API key for vision inference")
		spotifyClientID     = fs.String("spotify-client-id", "", "Spotify client id")
		spotifyClientSecret = fs.String("spotify-client-secret", "", "Spotify client secret")
		logLevel            = fs.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarNoPrefix()); err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if lvl, err := log.ParseLevel(*logLevel); err == nil {
		logger.SetLevel(lvl)
	}

	// Requests without the inference key fail with a configuration error
	// before any network call; warn at startup so the operator sees it first.
	if *openaiAPIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set, analysis requests will fail")
	}
	if *spotifyClientID == "" || *spotifyClientSecret == "" {
		logger.Warn("Spotify credentials are not set, song matching will degrade to the sentinel")
	}

	tokens := spotify.NewTokenCache(*spotifyClientID, *spotifyClientSecret, "", nil)
	catalog := spotify.NewClient(tokens, "", nil)
	inference := openai.NewClient(openai.Config{APIKey: *openaiAPIKey})

	svc := services.NewOrchestrator(inference, catalog, logger.With("component", "pipeline"))
	handler := rest.NewHandler(svc, tokens, logger.With("component", "http"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	logger.Info("vibematch API listening", "addr", srv.Addr)

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
