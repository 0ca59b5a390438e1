package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpupo63/blog-api/api"
	"github.com/rpupo63/blog-api/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Connects to Postgres, migrates the schema, prepares the search backend
and serves the API until SIGINT or SIGTERM is received.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cfg)
		if err != nil {
			return printError("Could not connect to the database", err.Error(), []string{
				"Set DATABASE_URL",
				"Or set DB_HOST, DB_PORT, DB_USER, DB_PASSWORD and DB_NAME",
			})
		}

		if !skipMigrate {
			if err := db.Migrate(); err != nil {
				return printError("Could not migrate the schema", err.Error(), nil)
			}
		}

		app, err := newApplication(cfg, db)
		if err != nil {
			return printError("Could not prepare the search backend", err.Error(), nil)
		}
		defer func() {
			if err := app.Close(); err != nil {
				log.Error().Err(err).Msg("error releasing resources")
			}
		}()

		if app.backend == backendBadger {
			count, err := app.posts.Reindex(cmd.Context())
			if err != nil {
				return printError("Could not build the search index", err.Error(), nil)
			}
			log.Info().Int("posts", count).Msg("search index built")
		}

		server, err := api.NewServer(cfg, api.Dependencies{
			Blogs:  app.blogs,
			Posts:  app.posts,
			Health: app.db,
		})
		if err != nil {
			return printError("Could not initialize the server", err.Error(), nil)
		}

		// Room for both the signal and the server's own return after shutdown
		errChannel := make(chan error, 2)

		go server.Start(errChannel)

		// Listen for interrupt signals to gracefully shutdown the server
		go listenToInterrupt(errChannel)

		fatalErr := <-errChannel
		log.Info().Msgf("Closing server: %v", fatalErr)

		server.ShutdownGracefully(time.Duration(config.GetInt(cfg, "SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second)
		return nil
	},
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not migrate the schema on startup")
}
