package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"Chirpio/internal/bootstrap"
	"Chirpio/internal/conf"
	"Chirpio/internal/data"
	"Chirpio/internal/logging"
)

var (
	cfg    *conf.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chirpio",
	Short: "Chirpio social media backend",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		cfg = conf.LoadConfig()

		// 2. 初始化日志
		l, err := logging.New(cfg.Log.Level, cfg.Log.Dev)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	// 不带子命令时等同于 serve
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := data.OpenPostgres(cfg.Data.DatabaseSource)
		if err != nil {
			return err
		}
		if err := data.Migrate(db); err != nil {
			return err
		}
		logger.Info("✅ 数据库迁移完成")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return bootstrap.Run(ctx, cfg, logger)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
