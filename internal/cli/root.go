// Package cli implements the surql command line.
package cli

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zoobzio/surql"
	"github.com/zoobzio/surql/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"
	Engine  string
	DSN     string

	// Config is loaded from the environment before any command runs. Flags
	// set on the command line take precedence.
	Config config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the surql CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "surql",
		Short: "surql - typed query compiler",
		Long:  "Compile typed queries to SurrealQL, PostgreSQL, SQLite and MySQL.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("engine") {
				cfg.Engine = opts.Engine
			}
			if cmd.Flags().Changed("dsn") {
				cfg.DSN = opts.DSN
			}
			if opts.Verbose {
				cfg.LogLevel = logrus.DebugLevel.String()
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.ApplyLogLevel(); err != nil {
				return err
			}
			opts.Config = cfg
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVarP(&opts.Engine, "engine", "e", "", "target engine (overrides SURQL_ENGINE)")
	cmd.PersistentFlags().StringVar(&opts.DSN, "dsn", "", "data source name (overrides SURQL_DSN)")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewFieldsCommand(opts))
	cmd.AddCommand(NewEnginesCommand(opts))

	return cmd
}

// engine returns the configured engine. PersistentPreRunE has validated it.
func (o *RootOptions) engine() surql.Engine {
	return o.Config.EngineValue()
}
