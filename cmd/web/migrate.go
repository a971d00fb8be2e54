package main

import (
	"github.com/navbryce/yatube/db/migrate"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			database, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer database.Close()
			return migrate.Run(cmd.Context(), database.Driver(), database.GetSQLDB())
		},
	}
}
