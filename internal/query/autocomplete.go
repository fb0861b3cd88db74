package query

import (
	"context"

	"github.com/roach88/bi/internal/key"
)

// WhoWhatWhere references one item of a given type by name and key.
// It is the row shape autocomplete queries produce; K fixes the key shape so
// callers generic over the key can keep it concrete.
type WhoWhatWhere[K key.PrimaryKey] struct {
	DataType string `json:"data_type" yaml:"data_type"`
	PK       K      `json:"pk" yaml:"pk"`
	Name     string `json:"name" yaml:"name"`
}

// Identifier widens the hit to a key.Identifier.
func (w WhoWhatWhere[K]) Identifier() key.Identifier {
	return key.Identifier{DataType: w.DataType, Name: w.Name, Key: w.PK}
}

// AutoComplete is implemented by types that offer lightweight name + key
// suggestions. The query may select fewer columns than a full entity needs.
type AutoComplete[K key.PrimaryKey] interface {
	// AutoCompleteQuery returns the suggestion query. Its single parameter
	// is the text-search expression.
	AutoCompleteQuery() string

	// ScanAutoComplete maps one result row to a WhoWhatWhere.
	ScanAutoComplete(row Row) (WhoWhatWhere[K], error)
}

// SearchAutoComplete runs T's autocomplete query for phrase and returns the
// suggestions in the order the database returned them.
func SearchAutoComplete[K key.PrimaryKey, T AutoComplete[K]](ctx context.Context, c SearchClient, phrase string) ([]WhoWhatWhere[K], error) {
	var zero T
	expr := c.TextSearchExpression(phrase)
	return collect(ctx, c, typeName[T](), zero.AutoCompleteQuery(), []any{expr}, zero.ScanAutoComplete)
}

// Identifiers widens hits to key.Identifier so suggestions from types with
// different key shapes can share one list.
func Identifiers[K key.PrimaryKey](hits []WhoWhatWhere[K]) []key.Identifier {
	ids := make([]key.Identifier, len(hits))
	for i, h := range hits {
		ids[i] = h.Identifier()
	}
	return ids
}
