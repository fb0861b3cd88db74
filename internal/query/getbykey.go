package query

import "context"

// notFoundMessage is the diagnostic carried by lookup misses.
const notFoundMessage = "could not get by primary key"

// GetByKey is implemented by types that can be fetched by primary key.
type GetByKey[T any] interface {
	// GetByKeyQuery returns the lookup query. Its parameters are the key's
	// constituent fields in the order the query expects.
	GetByKeyQuery() string

	// ScanGetByKey maps the result row to an instance.
	ScanGetByKey(row Row) (T, error)
}

// Get runs T's lookup query with params and maps the first row.
//
// Zero rows returns a *NotFoundError. Rows after the first are discarded
// unread; use GetExactlyOne when the key is not enforced unique.
func Get[T GetByKey[T]](ctx context.Context, c Client, params ...any) (T, error) {
	return get[T](ctx, c, false, params)
}

// GetExactlyOne is Get that returns an *AmbiguousError when the lookup
// yields a second row.
func GetExactlyOne[T GetByKey[T]](ctx context.Context, c Client, params ...any) (T, error) {
	return get[T](ctx, c, true, params)
}

func get[T GetByKey[T]](ctx context.Context, c Client, strict bool, params []any) (T, error) {
	var zero T
	dataType := typeName[T]()

	rows, err := c.Query(ctx, zero.GetByKeyQuery(), params...)
	if err != nil {
		return zero, newExecutionError(OpQuery, dataType, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, newExecutionError(OpRows, dataType, err)
		}
		return zero, &NotFoundError{DataType: dataType, Message: notFoundMessage, Params: params}
	}

	v, err := zero.ScanGetByKey(rows)
	if err != nil {
		return zero, newExecutionError(OpScan, dataType, err)
	}

	if strict {
		if rows.Next() {
			return zero, &AmbiguousError{DataType: dataType, Params: params}
		}
		if err := rows.Err(); err != nil {
			return zero, newExecutionError(OpRows, dataType, err)
		}
	}

	return v, nil
}
