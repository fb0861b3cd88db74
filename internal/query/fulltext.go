package query

import "context"

// FullText is implemented by types that can be found by a full-text search
// against their backing table or view.
type FullText[T any] interface {
	// FullTextQuery returns the search query. Its single parameter is the
	// text-search expression; ranking and limits belong in the query text.
	FullTextQuery() string

	// ScanFullText maps one result row to an instance.
	ScanFullText(row Row) (T, error)
}

// SearchFullText runs T's full-text query for phrase and returns the hits in
// the order the database ranked them.
func SearchFullText[T FullText[T]](ctx context.Context, c SearchClient, phrase string) ([]T, error) {
	var zero T
	expr := c.TextSearchExpression(phrase)
	return collect(ctx, c, typeName[T](), zero.FullTextQuery(), []any{expr}, zero.ScanFullText)
}
