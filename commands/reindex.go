package commands

import (
	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the embedded search index from the posts table",
	Long: `Rebuilds the badger search index. The postgres backend searches a GIN
index that the database keeps current, so there is nothing to rebuild.

The server must be stopped first: the index directory is locked while in use.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if searchBackend(cfg) != backendBadger {
			printWarning("SEARCH_BACKEND is %s, nothing to rebuild\n", searchBackend(cfg))
			return nil
		}

		db, err := openDatabase(cfg)
		if err != nil {
			return printError("Could not connect to the database", err.Error(), nil)
		}

		app, err := newApplication(cfg, db)
		if err != nil {
			return printError("Could not open the search index", err.Error(), []string{
				"Stop any running server using SEARCH_INDEX_PATH",
			})
		}
		defer app.Close()

		count, err := app.posts.Reindex(cmd.Context())
		if err != nil {
			return printError("Reindex failed", err.Error(), nil)
		}

		printSuccess("Indexed %d posts\n", count)
		return nil
	},
}
