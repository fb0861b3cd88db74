package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json" | "yaml"
	ConfigPath string
	Database   string // overrides sqlite.path and selects the sqlite driver
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the bi CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bi",
		Short: "bi - typed catalog search",
		Long: `Query the demo catalog through typed full-text, autocomplete and
primary-key lookups.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ./bi.yaml if present)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database")

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewAutoCompleteCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))

	return cmd
}
