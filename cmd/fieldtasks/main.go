package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"fieldtasks/internal/config"
	"fieldtasks/internal/loader"
	"fieldtasks/internal/repository"
	"fieldtasks/internal/service"
)

var (
	verbose bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "fieldtasks",
	Short:         "Offline store for survey tasks, choices and options",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}

		zcfg := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("config: LOG_LEVEL: %w", err)
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(loadCmd, seedCmd, orphansCmd, serveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app holds the wired collaborators shared by the subcommands.
type app struct {
	db        *gorm.DB
	registry  *prometheus.Registry
	loader    *loader.Loader
	tasks     *service.TaskService
	integrity *service.IntegrityService
}

func openApp() (*app, error) {
	db, err := repository.NewDB(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	l := loader.New(repository.NewStore(db),
		loader.WithTimeout(cfg.LoadTimeout),
		loader.WithWorkers(cfg.LoadWorkers),
		loader.WithLogger(logger.Named("loader")),
		loader.WithMetrics(loader.NewMetrics(registry)),
	)

	return &app{
		db:        db,
		registry:  registry,
		loader:    l,
		tasks:     service.NewTaskService(repository.NewTaskRepository(db), l),
		integrity: service.NewIntegrityService(repository.NewIntegrityRepository(db), logger.Named("integrity")),
	}, nil
}

func (a *app) Close() {
	sqlDB, err := a.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}
