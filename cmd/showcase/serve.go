// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"showcase/internal/cache"
	"showcase/internal/config"
	"showcase/internal/handlers"
	"showcase/internal/mapper"
	"showcase/internal/middleware"
	"showcase/internal/retry"
	"showcase/internal/revalidate"
	"showcase/internal/router"
	"showcase/internal/storage"
	"showcase/internal/store"
	"showcase/internal/validation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr(), "backend", cfg.Backend)

	client, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	pageCache, closeCache, err := openPageCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	objects, err := storage.New(storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3BucketPublic,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		return err
	}

	cacheLog := store.NewCacheLogStore(client)
	bus := revalidate.NewBus(
		revalidate.NewInvalidator(pageCache),
		revalidate.NewAuditListener(cacheLog),
	)
	if objects != nil {
		bus.Subscribe(revalidate.NewMediaListener(objects, store.NewImageRefStore(client)))
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", objects.Bucket())
	} else {
		slog.Warn("s3 storage not configured, image cleanup disabled")
	}

	stores := handlers.NewStores(client, mapper.New(objects), bus,
		retry.Fixed(cfg.SlugRetryAttempts, cfg.SlugRetryDelay))

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
	defer limiter.Stop()

	r := router.New(router.Handlers{
		Health:     handlers.NewHealth(client),
		Public:     handlers.NewPublic(stores, pageCache),
		Admin:      handlers.NewAdmin(stores, validation.New()),
		Revalidate: handlers.NewRevalidate(pageCache, cfg.RevalidationSecret, cacheLog),
	}, router.AdminAccess{
		User:         cfg.AdminUser,
		PasswordHash: cfg.AdminPasswordHash,
		Limiter:      limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}

// openPageCache connects to Valkey when it is configured and falls back
// to a cache that stores nothing.
func openPageCache(ctx context.Context, c *config.Config) (cache.Store, func(), error) {
	if !c.CacheEnabled() {
		slog.Warn("valkey not configured, page cache disabled")
		return cache.Noop{}, func() {}, nil
	}
	client, err := cache.ConnectValkey(ctx, c.ValkeyHost, c.ValkeyPort, c.ValkeyPassword)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewPageCache(client, c.PageCacheTTL), func() { client.Close() }, nil
}
