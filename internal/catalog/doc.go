// Package catalog holds the demo entity types and the SQL they run against
// the store schema.
//
// Each type implements only the query capabilities it needs:
//
//	Widget   FullText, AutoComplete[key.Int32], GetByKey, key.Display
//	City     AutoComplete[key.Int32], GetByKey, key.Display, key.SubTyped
//	Domain   AutoComplete[key.Text], GetByKey, key.Display
//	Address  GetByKey, key.Display
//
// Queries use ? placeholders and FTS4 MATCH; ordering and limits live in the
// query text.
package catalog
