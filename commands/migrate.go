package commands

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the blogs and posts tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cfg)
		if err != nil {
			return printError("Could not connect to the database", err.Error(), nil)
		}
		defer func() {
			if sqlDB, err := db.DB().DB(); err == nil {
				sqlDB.Close()
			}
		}()

		if err := db.Migrate(); err != nil {
			return printError("Migration failed", err.Error(), nil)
		}

		printSuccess("Schema is up to date\n")
		return nil
	},
}
