package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/bi/internal/catalog"
	"github.com/roach88/bi/internal/key"
)

// AutoCompleteOptions holds flags for the autocomplete command.
type AutoCompleteOptions struct {
	*RootOptions
	Type string
}

// AutoCompleteResult is the autocomplete command payload.
type AutoCompleteResult struct {
	Phrase string           `json:"phrase" yaml:"phrase"`
	Type   string           `json:"type" yaml:"type"`
	Hits   []key.Identifier `json:"hits" yaml:"hits"`
}

func (r AutoCompleteResult) String() string {
	if len(r.Hits) == 0 {
		return fmt.Sprintf("No suggestions for %q", r.Phrase)
	}
	lines := make([]string, len(r.Hits))
	for i, id := range r.Hits {
		lines[i] = id.String()
	}
	return strings.Join(lines, "\n")
}

// NewAutoCompleteCommand creates the autocomplete command.
func NewAutoCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AutoCompleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "autocomplete <phrase>",
		Short: "Suggest entities by name prefix",
		Long: `Suggest catalog entities whose names start with the phrase.

With --type all, suggestions from every type are merged: widgets, then
cities, then domains.

Example:
  bi autocomplete --db ./bi.db chi
  bi autocomplete --db ./bi.db --type city chi`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAutoComplete(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", catalog.AllTypes, "data type (widget|city|domain|all)")

	return cmd
}

func runAutoComplete(opts *AutoCompleteOptions, phrase string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	s, err := openSession(cmd.Context(), opts.RootOptions, f)
	if err != nil {
		return err
	}
	defer s.Close()

	hits, err := catalog.AutoComplete(cmd.Context(), s.client, opts.Type, phrase)
	if err != nil {
		return f.Fail("autocomplete failed", err)
	}
	f.VerboseLog("Found %d suggestion(s) for %q (type %s)", len(hits), phrase, opts.Type)

	return f.Success(AutoCompleteResult{Phrase: phrase, Type: opts.Type, Hits: hits})
}
