package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tasneemkhan/portfolio/internal/content"
	"github.com/tasneemkhan/portfolio/internal/logging"
	"github.com/tasneemkhan/portfolio/internal/server"
	"github.com/tasneemkhan/portfolio/internal/view"
	"github.com/tasneemkhan/portfolio/internal/visitors"
)

const pruneInterval = 24 * time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		tables, err := content.Load()
		if err != nil {
			return err
		}

		renderer, err := view.New(tables, view.Options{Interactive: true, EventPath: server.EventPath})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var hits server.HitTracker
		var store *visitors.Store
		if cfg.Visitors.Enabled {
			store, err = visitors.Open(cfg.Visitors.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			hasher, err := visitors.NewHasher(cfg.Visitors.Salt)
			if err != nil {
				return err
			}
			tracker := visitors.NewTracker(store, hasher, logger.Named("visitors"), cfg.Visitors.QueueSize)
			defer tracker.Close()
			hits = tracker

			logger.Info("visitor tracking enabled",
				zap.String("db", cfg.Visitors.DBPath),
				zap.Int("retention_months", cfg.Visitors.RetentionMonths),
				zap.Bool("random_salt", cfg.Visitors.Salt == ""),
			)
		}

		gin.SetMode(cfg.Server.Mode)
		srv, err := server.New(server.Options{
			Port:              cfg.Server.Port,
			ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
			ShutdownTimeout:   cfg.Server.ShutdownTimeout,
			TrustedProxies:    cfg.Server.TrustedProxies,
		}, renderer, hits, logger)
		if err != nil {
			return err
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.Run(gctx)
		})
		if store != nil && cfg.Visitors.RetentionMonths > 0 {
			g.Go(func() error {
				return visitors.PruneLoop(gctx, store, cfg.Visitors.Retention(), pruneInterval, logger.Named("visitors"))
			})
		}

		err = g.Wait()
		if err != nil {
			logger.Error("server stopped", zap.Error(err))
			return errors.Wrap(err, "serve")
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
