package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rpupo63/blog-api/models"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "List database columns not mapped by the models",
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

		if clean := writeReport(color.Output, models.ColumnMismatchReport(db.DB())); !clean {
			return errors.New("column mismatches found")
		}
		return nil
	},
}

// writeReport prints one section per table and reports whether every table is clean.
func writeReport(w io.Writer, reports []models.TableReport) bool {
	clean := true
	for _, report := range reports {
		cyan.Fprintf(w, "%s\n", report.Table)

		switch {
		case report.QueryErr != nil:
			clean = false
			red.Fprintf(w, "  error: %v\n", report.QueryErr)
		case !report.Exists:
			clean = false
			yellow.Fprintf(w, "  table does not exist, run migrate\n")
		case len(report.Unmapped) == 0:
			green.Fprintf(w, "  ✓ all columns mapped\n")
		default:
			clean = false
			yellow.Fprintf(w, "  %d unmapped column(s):\n", len(report.Unmapped))
			for _, column := range report.Unmapped {
				fmt.Fprintf(w, "    - %s\n", column)
			}
		}
	}
	return clean
}
