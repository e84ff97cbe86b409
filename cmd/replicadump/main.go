// Command replicadump decodes scripted replica frames against a component
// type table and prints what each frame carried.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeusync/replicanet/internal/config"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

type rootOptions struct {
	configPath string
	logLevel   string
	types      string
	driver     string
}

// loadConfig layers the command-line overrides on top of config.Load.
func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.driver != "" {
		cfg.TypeDatabase.Driver = o.driver
	}
	if o.types != "" {
		cfg.TypeDatabase.Path = o.types
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "replicadump",
		Short: "Inspect replica construction and serialization frames",
		Long: `replicadump decodes replica frames the same way a connected peer would.

Component lists are resolved from a type table: either a YAML file
(templates: {id: [kinds]}) or the ComponentsRegistry table of a SQLite
database.

Examples:
  replicadump kinds
  replicadump decode --types templates.yaml frames.yaml
  replicadump decode --driver sqlite --types cdclient.sqlite -`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error, silent)")
	flags.StringVarP(&opts.types, "types", "t", "", "Type table path")
	flags.StringVar(&opts.driver, "driver", "", "Type table driver (yaml, sqlite)")

	cmd.AddCommand(
		decodeCmd(opts),
		kindsCmd(),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "replicadump %s (%s)\n", version, commit)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
