package main

import (
	"fmt"
	"os"

	"github.com/navbryce/yatube/config"
	"github.com/navbryce/yatube/db/sqlstore"
	"github.com/navbryce/yatube/logging"
	"github.com/spf13/cobra"
)

var log = logging.NewPackageLogger("main")

func main() {
	rootCmd := &cobra.Command{
		Use:           "web",
		Short:         "Yatube blog server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		ServeCmd(),
		MigrateCmd(),
		GroupCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and configures logging from it
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logging.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

func openDatabase(cfg *config.Config) (*sqlstore.SQLDB, error) {
	database, err := sqlstore.Open(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("received err when attempting to connect to DB: %w", err)
	}
	return database, nil
}
