package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/astoria-image-kit/internal/api"
	"github.com/shouni/astoria-image-kit/internal/config"
	"github.com/shouni/astoria-image-kit/internal/observability"
	"github.com/shouni/astoria-image-kit/pkg/export"
	"github.com/shouni/astoria-image-kit/pkg/generator"
	"github.com/shouni/astoria-image-kit/pkg/metrics"
	"github.com/shouni/astoria-image-kit/pkg/prompt"
	"github.com/shouni/astoria-image-kit/pkg/retry"
	"github.com/shouni/astoria-image-kit/pkg/store"
	"github.com/shouni/astoria-image-kit/pkg/studio"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	observability.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting astoria server", "port", cfg.Server.Port, "model", cfg.Gemini.Model)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(reg)

	model, err := generator.NewGenaiModel(ctx, cfg.Gemini.APIKey)
	if err != nil {
		return err
	}

	composer := prompt.NewComposer(prompt.DefaultCatalog())
	gen, err := generator.NewGeminiGenerator(model, composer, generator.Config{
		Model:             cfg.Gemini.Model,
		MaxDimension:      cfg.Image.MaxDimension,
		Quality:           cfg.Image.Quality,
		SceneMaxDimension: cfg.Image.SceneMaxDimension,
		SceneQuality:      cfg.Image.SceneQuality,
		Retry: retry.Policy{
			MaxRetries: uint64(*cfg.Retry.MaxRetries),
			BaseDelay:  cfg.Retry.BaseDelay,
		},
	}, generator.WithMetrics(recorder))
	if err != nil {
		return err
	}

	// gs:// の読み込みは認証情報がある環境でのみ有効にする
	var reader generator.ObjectReader
	if gcsClient, err := storage.NewClient(ctx); err != nil {
		slog.Warn("cloud storage reader unavailable, gs:// sources are disabled", "error", err)
	} else {
		defer gcsClient.Close()
		reader = remoteio.NewUniversalInputReader(gcsClient, nil)
	}
	imageCache := cache.New(cfg.Fetch.CacheTTL, 2*cfg.Fetch.CacheTTL)
	loader := generator.NewSourceLoader(httpkit.New(cfg.Fetch.Timeout), reader, imageCache, cfg.Fetch.CacheTTL)

	kv, closeStorage, err := openStorage(cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStorage()
	favorites := store.LoadFavorites(ctx, kv,
		store.WithCapacity(cfg.Favorites.Capacity),
		store.WithMetrics(recorder),
	)

	var sharer export.Sharer
	if cfg.MinIO.Endpoint != "" {
		minioSharer, err := export.NewMinIOSharer(export.MinIOConfig{
			Endpoint:   cfg.MinIO.Endpoint,
			AccessKey:  cfg.MinIO.AccessKey,
			SecretKey:  cfg.MinIO.SecretKey,
			Bucket:     cfg.MinIO.Bucket,
			UseSSL:     cfg.MinIO.UseSSL,
			PresignTTL: cfg.MinIO.PresignTTL,
		})
		if err != nil {
			return err
		}
		if err := minioSharer.EnsureBucket(ctx); err != nil {
			slog.Warn("ensure minio bucket", "error", err)
		}
		sharer = minioSharer
	}

	router := api.NewRouter(api.RouterConfig{
		Loader:      loader,
		Hairstyles:  studio.NewHairstyleStudio(gen, favorites, studio.WithHistoryCapacity(cfg.History.Capacity)),
		Characters:  studio.NewCharacterStudio(gen),
		Catalog:     composer.Catalog(),
		Exporter:    export.NewExporter(sharer, export.NewDownloader(cfg.Export.Dir)),
		Metrics:     recorder,
		Gatherer:    reg,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return err
	}

	slog.Info("shutting down API server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

func openStorage(cfg config.StorageConfig) (store.Storage, func(), error) {
	noop := func() {}
	switch cfg.Driver {
	case "memory":
		return store.NewMemoryStorage(cfg.QuotaBytes), noop, nil
	case "sqlite":
		s, err := store.OpenSQLite(cfg.Path, cfg.QuotaBytes)
		if err != nil {
			return nil, noop, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				slog.Warn("close sqlite", "error", err)
			}
		}, nil
	default:
		s, err := store.NewFileStorage(cfg.Path, cfg.QuotaBytes)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	}
}
