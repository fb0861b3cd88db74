package query

import (
	"context"
	"fmt"
)

// typeName labels errors with the entity type.
func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

// collect runs one query and maps every returned row in order.
// Returns an empty slice (not nil) if no rows match.
func collect[T any](ctx context.Context, c Client, dataType, query string, args []any, scan func(Row) (T, error)) ([]T, error) {
	rows, err := c.Query(ctx, query, args...)
	if err != nil {
		return nil, newExecutionError(OpQuery, dataType, err)
	}
	defer rows.Close()

	hits := []T{}
	for rows.Next() {
		hit, err := scan(rows)
		if err != nil {
			return nil, newExecutionError(OpScan, dataType, err)
		}
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, newExecutionError(OpRows, dataType, err)
	}

	return hits, nil
}
