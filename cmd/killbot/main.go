package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	serverrun "github.com/mabry1985/albion-killbot/internal/cmd/server"
	cfgpkg "github.com/mabry1985/albion-killbot/internal/config"
	"github.com/mabry1985/albion-killbot/internal/runtime"
	logpkg "github.com/mabry1985/albion-killbot/pkg/log"
)

func main() {
	// .env is optional; real env always wins
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "killbot",
		Short: "Albion battle notification service",
		Long:  "killbot syncs the Albion battles feed into a local store and notifies configured Discord guilds of battles involving their tracked players, guilds, and alliances.",
	}
	rootCmd.PersistentFlags().String("config", os.Getenv("KILLBOT_CONFIG"), "Path to config file (JSON or YAML)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text|json")

	startCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start the killbot service",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return serverrun.Run(ctx, serverrun.Options{Config: cfg, Logger: logger})
		},
	}
	rootCmd.AddCommand(startCmd)

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Run a single catch-up cycle and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			rt, err := runtime.Open(runtime.Options{Config: cfg, Logger: logger})
			if err != nil {
				return err
			}
			defer rt.Close()
			rep, err := rt.Ingest(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("pages=%d fetched=%d inserted=%d pruned=%d\n",
				rep.Pages, rep.Fetched, rep.Inserted, rep.Pruned)
			return nil
		},
	}
	rootCmd.AddCommand(syncCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (cfgpkg.Config, logpkg.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := cfgpkg.Load(path)
	if err != nil {
		return cfgpkg.Config{}, nil, err
	}
	cfgpkg.FromEnv(&cfg)
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Log.Format = v
	}
	logger, err := logpkg.ApplyConfig(&logpkg.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return cfgpkg.Config{}, nil, fmt.Errorf("invalid log config: %w", err)
	}
	return cfg, logger, nil
}
