package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/sableashish494/ashish-primaspot-main/internal/handler"
	"github.com/sableashish494/ashish-primaspot-main/internal/router"
	"github.com/sableashish494/ashish-primaspot-main/internal/service"
	"github.com/sableashish494/ashish-primaspot-main/internal/storage"
	"github.com/sableashish494/ashish-primaspot-main/pkg/auth"
	"github.com/sableashish494/ashish-primaspot-main/pkg/config"
	"github.com/sableashish494/ashish-primaspot-main/pkg/instagram"
	"github.com/sableashish494/ashish-primaspot-main/pkg/logger"
)

const version = "1.0.0"

var (
	configFile   = flag.String("config", "", "Path to configuration file")
	sessionID    = flag.String("session-id", "", "Instagram session ID")
	port         = flag.Int("port", 0, "HTTP listen port (overrides config)")
	storeSession = flag.Bool("store-session", false, "Prompt for a session ID, save it to the credential store, and exit")
	clearSession = flag.Bool("clear-session", false, "Remove the saved session ID from the credential store and exit")
)

func main() {
	flag.Parse()

	if *storeSession {
		if err := promptAndStoreSession(); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to store session:", err)
			os.Exit(1)
		}
		fmt.Println("Session ID saved.")
		return
	}

	if *clearSession {
		mgr, err := auth.NewManager()
		if err == nil {
			err = mgr.Delete()
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to clear session:", err)
			os.Exit(1)
		}
		fmt.Println("Session ID removed.")
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	if *sessionID != "" {
		cfg.Instagram.SessionID = *sessionID
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.WithField("version", version).Info("primaspot starting")

	// Fall back to the credential store chain when no session ID was
	// supplied via flag, env, or config file.
	if cfg.Instagram.SessionID == "" {
		if mgr, err := auth.NewManager(); err == nil {
			if session, err := mgr.Retrieve(); err == nil {
				cfg.Instagram.SessionID = session.SessionID
				log.Debug("Session ID loaded from credential store")
			} else if !errors.Is(err, auth.ErrSessionNotFound) {
				log.WithError(err).Warn("Credential store lookup failed")
			}
		}
	}
	if cfg.Instagram.SessionID == "" {
		log.Warn("No Instagram session ID configured, fetches may be rejected upstream")
	}

	store, err := buildStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize storage")
	}
	defer store.Close(context.Background())

	client := instagram.NewClient(&cfg.Instagram, log)
	svc := service.New(client, store, cfg.Limits, log)

	mux := router.New(router.Config{
		Profile: handler.NewProfileHandler(svc, log),
		Image:   handler.NewImageHandler(client, log),
		Status:  handler.NewStatusHandler(version),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.WithError(err).Fatal("HTTP server failed")
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	log.Info("Server stopped")
}

// buildStore selects the storage backend from configuration.
func buildStore(cfg *config.Config, log logger.Logger) (storage.Store, error) {
	switch cfg.Database.Backend {
	case "memory":
		log.Info("Using in-memory storage backend")
		return storage.NewMemoryStore(), nil
	case "mongo":
		return storage.NewMongoStore(cfg.Database.MongoURI, cfg.Database.Name, log)
	default:
		return nil, fmt.Errorf("unknown database backend: %s", cfg.Database.Backend)
	}
}

// promptAndStoreSession reads a session ID without echoing it and saves
// it through the credential store chain.
func promptAndStoreSession() error {
	fmt.Print("Instagram session ID: ")
	var value string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return err
		}
		value = string(raw)
	} else {
		if _, err := fmt.Scanln(&value); err != nil {
			return err
		}
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("session ID is empty")
	}

	mgr, err := auth.NewManager()
	if err != nil {
		return err
	}
	return mgr.Store(&auth.Session{
		SessionID:    value,
		LastModified: time.Now(),
	})
}
