// Package bootstrap provides dependency initialization for clipthumb.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maauso/clipthumb/internal/config"
	"github.com/maauso/clipthumb/internal/media"
	"github.com/maauso/clipthumb/internal/storage"
	"github.com/maauso/clipthumb/internal/thumbnail"
)

// Dependencies holds all initialized dependencies for the HTTP server.
type Dependencies struct {
	Service *thumbnail.Service
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, err := initStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	// One processor serves as both prober and frame extractor.
	processor := media.NewFFmpegProcessor(
		media.NewExecRunner(cfg.ProcessTimeout()),
		media.WithFFmpegPath(cfg.FFmpegPath),
		media.WithFFprobePath(cfg.FFprobePath),
	)

	svc := thumbnail.NewService(
		processor,
		processor,
		store,
		logger,
		thumbnail.WithWorkers(cfg.ThumbnailWorkers),
	)

	if n, err := svc.SweepArtifacts(context.Background()); err != nil {
		logger.Warn("failed to sweep stale artifacts", slog.String("error", err.Error()))
	} else if n > 0 {
		logger.Info("removed stale artifacts", slog.Int("count", n))
	}

	return &Dependencies{
		Service: svc,
	}, nil
}

// initStorage creates the appropriate storage backend based on configuration.
func initStorage(cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3Storage(cfg.TempDir, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 storage: %w", err)
		}
		logger.Info("S3 storage configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStorage(cfg.TempDir)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	logger.Info("local storage configured",
		slog.String("temp_dir", localStore.TempDir()),
	)
	return localStore, nil
}
