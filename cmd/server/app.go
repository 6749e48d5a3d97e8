package main

import (
	"context"
	"fmt"
	"time"

	"github.com/retouchlab/internal/config"
	"github.com/retouchlab/internal/content"
	"github.com/retouchlab/internal/db"
	"github.com/retouchlab/internal/logging"
	"github.com/retouchlab/internal/media"
	"github.com/retouchlab/internal/service"
	"github.com/retouchlab/internal/store"
	"github.com/sirupsen/logrus"
)

const connectTimeout = 10 * time.Second

// app holds everything a command needs after configuration is loaded.
type app struct {
	cfg     config.AppConfig
	log     *logrus.Logger
	store   store.Store
	content *service.ContentService
	users   *service.UserService
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	contentStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	defaults, err := content.LoadDefaults()
	if err != nil {
		return nil, fmt.Errorf("load default content: %w", err)
	}

	return &app{
		cfg:     cfg,
		log:     logger,
		store:   contentStore,
		content: service.NewContentService(contentStore, defaults, logger),
		users:   service.NewUserService(db.DB),
	}, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.store.Close(ctx); err != nil {
		a.log.WithError(err).Warn("close content store")
	}
	if a.cfg.StoreBackend != config.StoreSQLite {
		if sqlDB, err := db.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func openStore(ctx context.Context, cfg config.AppConfig) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreMongo:
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return store.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return store.NewSQLStore(db.DB), nil
	}
}

func openMediaHost(ctx context.Context, cfg config.AppConfig) (media.Host, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.MediaBackend {
	case config.MediaMinIO:
		return media.NewMinIOHost(ctx, media.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
			PublicURL: cfg.MinIO.PublicURL,
		})
	case config.MediaS3:
		return media.NewS3Host(ctx, media.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			PublicURL: cfg.S3.PublicURL,
		})
	default:
		return media.NewLocalHost(cfg.UploadDir, cfg.UploadURLPath)
	}
}
