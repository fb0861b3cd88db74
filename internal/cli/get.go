package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/bi/internal/catalog"
	"github.com/roach88/bi/internal/key"
)

// GetResult is the get command payload.
type GetResult struct {
	Identifier key.Identifier `json:"identifier" yaml:"identifier"`
	SubType    string         `json:"sub_type,omitempty" yaml:"sub_type,omitempty"`
	Value      key.Display    `json:"value" yaml:"value"`
}

func (r GetResult) String() string {
	if r.SubType != "" {
		return fmt.Sprintf("%s (%s)", r.Identifier, r.SubType)
	}
	return r.Identifier.String()
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <type> <key...>",
		Short: "Fetch one entity by primary key",
		Long: fmt.Sprintf(`Fetch one catalog entity by primary key.

Types: %s. Addresses take number, street, zip and an optional unit.
A missing key exits with status 1.

Example:
  bi get --db ./bi.db widget 42
  bi get --db ./bi.db address 12 "Main St" 60601 4B`, strings.Join(catalog.Types(), ", ")),
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, args[0], args[1:], cmd)
		},
	}
}

func runGet(opts *RootOptions, dataType string, keyArgs []string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	// Bad keys are rejected before connecting.
	pk, err := catalog.ParseKey(dataType, keyArgs)
	if err != nil {
		return f.Fail("invalid key", err)
	}

	s, err := openSession(cmd.Context(), opts, f)
	if err != nil {
		return err
	}
	defer s.Close()

	v, err := catalog.GetKey(cmd.Context(), s.client, dataType, pk)
	if err != nil {
		return f.Fail(fmt.Sprintf("get %s failed", dataType), err)
	}

	result := GetResult{Identifier: key.IdentifierOf(v), Value: v}
	if sub, ok := key.SubTypeOf(v); ok {
		result.SubType = sub
	}
	return f.Success(result)
}
