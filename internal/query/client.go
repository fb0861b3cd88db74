package query

import "context"

// Row is a single result row. Each entity's row mapper knows its own column
// layout and scans it positionally.
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set. *sql.Rows satisfies it directly.
type Rows interface {
	Row
	Next() bool
	Err() error
	Close() error
}

// Client executes a query with positional parameters.
type Client interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
}

// TextSearcher converts a search phrase into the database's native
// text-search parameter. What an empty phrase means is its decision.
type TextSearcher interface {
	TextSearchExpression(phrase string) any
}

// SearchClient is a Client that also builds text-search expressions.
type SearchClient interface {
	Client
	TextSearcher
}
