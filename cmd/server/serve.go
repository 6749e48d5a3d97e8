package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retouchlab/internal/config"
	"github.com/retouchlab/internal/db"
	"github.com/retouchlab/internal/handler"
	"github.com/retouchlab/internal/router"
	"github.com/retouchlab/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the public site, admin area and content API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())
	gin.SetMode(a.cfg.GinMode)

	if created, err := a.users.Ensure(a.cfg.AdminUserName, a.cfg.AdminPassword); err != nil {
		return err
	} else if created {
		a.log.WithField("username", a.cfg.AdminUserName).Info("created admin user")
	}
	if !a.cfg.AuthEnabled() {
		a.log.Warn("ADMIN_USER_NAME/ADMIN_PASSWORD not set, content writes are not protected")
	}

	host, err := openMediaHost(ctx, a.cfg)
	if err != nil {
		return err
	}

	api := handler.NewAPI(handler.Options{
		Content:     a.content,
		Media:       service.NewMediaService(db.DB, host, a.cfg.MaxUploadBytes, a.log),
		Users:       a.users,
		SiteName:    a.cfg.SiteName,
		AuthEnabled: a.cfg.AuthEnabled(),
		Logger:      a.log,
	})

	routerCfg := router.Config{SessionSecret: a.cfg.SessionSecret, Logger: a.log}
	if a.cfg.MediaBackend == config.MediaLocal {
		routerCfg.UploadDir = a.cfg.UploadDir
		routerCfg.UploadURLPath = a.cfg.UploadURLPath
	}

	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           router.SetupRouter(api, routerCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.WithFields(logrus.Fields{
			"addr":  a.cfg.ListenAddr,
			"store": a.cfg.StoreBackend,
			"media": host.Name(),
		}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
