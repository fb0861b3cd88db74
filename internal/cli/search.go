package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/bi/internal/catalog"
	"github.com/roach88/bi/internal/query"
)

// SearchResult is the search command payload.
type SearchResult struct {
	Phrase  string           `json:"phrase" yaml:"phrase"`
	Widgets []catalog.Widget `json:"widgets" yaml:"widgets"`
}

func (r SearchResult) String() string {
	if len(r.Widgets) == 0 {
		return fmt.Sprintf("No widgets match %q", r.Phrase)
	}
	var b strings.Builder
	for i, w := range r.Widgets {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d\t%s\t%s", w.ID, w.Name, w.Description)
	}
	return b.String()
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <phrase>",
		Short: "Full-text search over widgets",
		Long: `Full-text search over widget names and descriptions.

Each word of the phrase is matched as a prefix.

Example:
  bi search --db ./bi.db "blue widg"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(rootOpts, args[0], cmd)
		},
	}
}

func runSearch(opts *RootOptions, phrase string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	s, err := openSession(cmd.Context(), opts, f)
	if err != nil {
		return err
	}
	defer s.Close()

	widgets, err := query.SearchFullText[catalog.Widget](cmd.Context(), s.client, phrase)
	if err != nil {
		return f.Fail("search failed", err)
	}
	f.VerboseLog("Found %d widget(s) matching %q", len(widgets), phrase)

	return f.Success(SearchResult{Phrase: phrase, Widgets: widgets})
}
