package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"donormatch/internal/server"
	"donormatch/internal/storage"
	"donormatch/internal/store"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(config)
	if err != nil {
		return err
	}

	records, err := openStore(ctx, config, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := records.Close(); err != nil {
			logger.WithError(err).Error("failed to close store")
		}
	}()

	m, err := newMatcher(config)
	if err != nil {
		return err
	}

	var resetHook store.ResetHook
	if config.ArchiveBucket != "" {
		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return err
		}

		archive := storage.NewResetArchive(s3.NewFromConfig(awsConfig), config.ArchiveBucket, config.ArchivePrefix, logger)
		resetHook = archive.Archive

		logger.WithField("bucket", config.ArchiveBucket).Info("reset archive enabled")
	}

	srv, err := server.New(config, logger, records, m, resetHook)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
