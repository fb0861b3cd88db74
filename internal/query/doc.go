// Package query runs the three typed access patterns shared by entity types:
// full-text search, autocomplete lookup and fetch-by-primary-key.
//
// An entity type opts into a pattern by implementing its capability
// interface (FullText, AutoComplete or GetByKey). Capability methods are
// called on the zero value of the type, so they must not depend on receiver
// state; they play the role of per-type static functions.
//
// # Execution
//
// Every operation issues exactly one Client.Query call and folds the
// returned rows through the type's row mapper:
//   - Row order is the order the client returned; nothing is re-sorted or limited
//   - Results are never nil; zero rows is an empty slice
//   - Any failure returns no results and an *ExecutionError
//   - GetByKey with zero rows returns a *NotFoundError instead
//
// The package holds no state and never logs. Cancellation and timeouts come
// from the context handed to the client.
package query
