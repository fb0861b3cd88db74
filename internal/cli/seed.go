package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/bi/internal/store"
)

// SeedResult is the seed command payload.
type SeedResult struct {
	Source   string           `json:"source" yaml:"source"`
	Inserted store.SeedResult `json:"inserted" yaml:"inserted"`
}

func (r SeedResult) String() string {
	return fmt.Sprintf("Seeded from %s: %d widgets, %d cities, %d domains, %d addresses",
		r.Source, r.Inserted.Widgets, r.Inserted.Cities, r.Inserted.Domains, r.Inserted.Addresses)
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [fixtures.yaml]",
		Short: "Load fixtures into the SQLite database",
		Long: `Load catalog fixtures into the SQLite database, creating it if needed.

Without an argument the bundled demo catalog is loaded. Rows whose key
already exists are skipped, so seeding twice is harmless.

Example:
  bi seed --db ./bi.db
  bi seed --db ./bi.db ./fixtures.yaml`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runSeed(rootOpts, path, cmd)
		},
	}
}

func runSeed(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	s, err := openSession(cmd.Context(), opts, f)
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := requireStore(s)
	if err != nil {
		return err
	}

	result := SeedResult{Source: "demo"}
	if path == "" {
		result.Inserted, err = st.SeedDemo(cmd.Context())
	} else {
		result.Source = path
		var file *os.File
		file, err = os.Open(path)
		if err != nil {
			return f.Fail("failed to open fixtures", err)
		}
		defer file.Close()
		result.Inserted, err = st.Seed(cmd.Context(), file)
	}
	if err != nil {
		return f.Fail("failed to seed", err)
	}

	s.logger.Info("seeded", "source", result.Source,
		"widgets", result.Inserted.Widgets, "cities", result.Inserted.Cities,
		"domains", result.Inserted.Domains, "addresses", result.Inserted.Addresses)
	return f.Success(result)
}
