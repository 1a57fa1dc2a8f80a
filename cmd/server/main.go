package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"markethub_front_end/internal/authapi"
	"markethub_front_end/internal/catalog"
	"markethub_front_end/internal/config"
	"markethub_front_end/internal/logger"
	"markethub_front_end/internal/middleware"
	"markethub_front_end/internal/notify"
	"markethub_front_end/internal/remote"
	"markethub_front_end/internal/routes"
	"markethub_front_end/internal/storage"
	"markethub_front_end/internal/visitor"
)

func main() {
	config.Load()

	cfg, err := config.Read()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ configuration invalide:", err)
		os.Exit(1)
	}
	log := logger.Get(cfg.Debug)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	provider, attempts, err := openStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("❌ ouverture du stockage impossible")
	}
	defer provider.Close()
	log.Info().Str("driver", cfg.StorageDriver).Msg("✅ stockage visiteurs prêt")

	api := remote.New(cfg.APIBaseURL, nil)
	hub := notify.NewHub()
	registry := visitor.NewRegistry(provider, authapi.New(api), hub, notify.NewLogNotifier(log))

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Debug {
		r.Use(gin.Logger())
	}
	routes.RegisterRoutes(r, routes.Deps{
		Registry:    registry,
		Catalog:     catalog.New(api),
		Sessions:    middleware.NewCookieStore(cfg.SessionSecret, cfg.SecureCookies),
		Attempts:    attempts,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	group, gCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("api", cfg.APIBaseURL).Msg("🚀 front-end MarketHub lancé")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("❌ arrêt du serveur sur erreur")
		return
	}
	log.Info().Msg("serveur arrêté")
}

func openStorage(cfg *config.Config) (storage.Provider, storage.AttemptCounter, error) {
	switch cfg.StorageDriver {
	case config.DriverFile:
		fp, err := storage.NewFileProvider(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return fp, storage.NewMemAttemptCounter(), nil
	case config.DriverRedis:
		client, err := storage.ConnectRedis(cfg.RedisHost, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedisProvider(client, storage.VisitorTTL), storage.NewRedisAttemptCounter(client), nil
	default:
		return storage.NewMemProvider(), storage.NewMemAttemptCounter(), nil
	}
}
