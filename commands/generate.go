package commands

import (
	"github.com/rpupo63/blog-api/models"
	"github.com/spf13/cobra"
)

var generateOut string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate typed query helpers for the models",
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

		models.GenerateQueries(db.DB(), generateOut)
		printSuccess("Query helpers written to %s\n", generateOut)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "./generated", "output directory")
}
