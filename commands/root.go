package commands

import (
	"fmt"

	"github.com/rpupo63/blog-api/config"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string

	configFile string
	// cfg is loaded once before any subcommand runs.
	cfg map[string]string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "blogd",
	Short: "blogd - Blog and post REST service",
	Long: `blogd serves a REST API for blogs and their posts, with hypermedia links
on every representation and full-text search over post titles and bodies.

Configuration is read from a .env file, an optional YAML file and the
environment, in that order of increasing precedence.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, warnings, err := config.Load(configFile)
		if err != nil {
			return printError("Could not load configuration", err.Error(), []string{
				"Check the path given with --config",
				"Or unset CONFIG_FILE to rely on the environment only",
			})
		}
		cfg = loaded

		setupLogger(cfg)
		for _, warning := range warnings {
			printWarning("%s\n", warning)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is specified, show help
		return cmd.Help()
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Errors are printed in color by the commands themselves
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.GetString(config.New(), "CONFIG_FILE", ""),
		"path to a YAML configuration file (env CONFIG_FILE)")

	rootCmd.AddCommand(serveCmd, migrateCmd, reportCmd, generateCmd, reindexCmd)
}
