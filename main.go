package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"profile_form_go/auth"
	"profile_form_go/config"
	"profile_form_go/controllers"
	"profile_form_go/data"
	"profile_form_go/form"
	"profile_form_go/remote"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	config.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Хранилище профиля
	kv, closeKV, err := openKeyValueStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer closeKV.Close()

	// Удаленные источники данных
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	profiles := remote.NewProfileClient(httpClient, cfg.ProfileAPIURL, cfg.ProfileAPIToken)
	location, closeLocation, err := newLocationFetcher(cfg, httpClient)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize location lookup")
	}
	defer closeLocation.Close()

	profileForm := form.NewController(
		data.NewProfileStore(kv),
		profiles,
		location,
		form.LogNotifier{},
		form.Options{KeepFetchedLocation: cfg.KeepFetchedLocation},
	)
	if err := profileForm.Mount(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to mount profile form")
	}
	log.Info().Str("form_id", profileForm.ID()).Msg("Profile form mounted")

	tokens := auth.NewService(cfg.JWTSecret, 24*time.Hour)
	if cfg.UsesDefaultJWTSecret() {
		log.Warn().Msg("JWT_SECRET is not set, using the development secret")
	}
	accessToken, expiresAt, err := tokens.GenerateToken("local")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to issue local access token")
	}
	log.Info().Time("expires_at", expiresAt).Str("token", accessToken).Msg("Local access token for the form API")

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           controllers.NewRouter(controllers.NewFormHandler(profileForm, form.SavedMessage), tokens),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	profileForm.Unmount()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	profileForm.Wait()
	log.Info().Msg("Server exiting")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openKeyValueStore(ctx context.Context, cfg config.Config) (data.KeyValueStore, io.Closer, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		client, err := data.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		return data.NewRedisKV(client), client, nil
	case config.BackendMemory:
		log.Warn().Msg("Using in-memory storage, saved profile will not survive a restart")
		return data.NewMemoryKV(), nopCloser{}, nil
	default:
		db, err := data.OpenDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return data.NewSQLiteKV(db), db, nil
	}
}

func newLocationFetcher(cfg config.Config, httpClient *http.Client) (remote.LocationFetcher, io.Closer, error) {
	if cfg.GeoIPDBPath == "" {
		return remote.NewLocationClient(httpClient, cfg.GeoAPIURL, cfg.GeoAPIKey), nopCloser{}, nil
	}
	locator, err := remote.NewGeoIPLocator(cfg.GeoIPDBPath, cfg.GeoIPAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("geoip: %w", err)
	}
	log.Info().Str("db", cfg.GeoIPDBPath).Msg("Using local GeoIP database for location")
	return locator, locator, nil
}
