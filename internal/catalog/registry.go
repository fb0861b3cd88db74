package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/roach88/bi/internal/key"
	"github.com/roach88/bi/internal/query"
)

// AllTypes selects every type that supports autocomplete.
const AllTypes = "all"

var (
	// ErrUnknownType is returned for a data type with no registry entry.
	ErrUnknownType = errors.New("unknown data type")

	// ErrUnsupported is returned when a type does not offer a pattern.
	ErrUnsupported = errors.New("pattern not supported")

	// ErrBadKey is returned when key arguments cannot be parsed.
	ErrBadKey = errors.New("bad key")
)

// AutoCompleteFunc runs a type's autocomplete query and erases the key shape.
type AutoCompleteFunc func(ctx context.Context, c query.SearchClient, phrase string) ([]key.Identifier, error)

// GetFunc fetches one value by primary key.
type GetFunc func(ctx context.Context, c query.Client, pk key.PrimaryKey) (key.Display, error)

// ParseKeyFunc builds a primary key from command line arguments.
type ParseKeyFunc func(args []string) (key.PrimaryKey, error)

// Entry describes what one data type supports. AutoComplete is nil for
// types that are fetch-only.
type Entry struct {
	DataType     string
	AutoComplete AutoCompleteFunc
	Get          GetFunc
	ParseKey     ParseKeyFunc
}

// registry is in autocomplete merge order.
var registry = []Entry{
	{
		DataType:     WidgetType,
		AutoComplete: autoComplete[key.Int32, Widget](),
		Get:          getter[Widget](),
		ParseKey:     parseInt32,
	},
	{
		DataType:     CityType,
		AutoComplete: autoComplete[key.Int32, City](),
		Get:          getter[City](),
		ParseKey:     parseInt32,
	},
	{
		DataType:     DomainType,
		AutoComplete: autoComplete[key.Text, Domain](),
		Get:          getter[Domain](),
		ParseKey:     parseText,
	},
	{
		DataType: AddressType,
		Get:      getter[Address](),
		ParseKey: parseAddress,
	},
}

// Types returns the registered data types in registry order.
func Types() []string {
	types := make([]string, 0, len(registry))
	for _, e := range registry {
		types = append(types, e.DataType)
	}
	return types
}

// Lookup returns the entry for dataType.
func Lookup(dataType string) (Entry, error) {
	for _, e := range registry {
		if e.DataType == dataType {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrUnknownType, dataType)
}

// AutoComplete runs autocomplete for dataType, or for every supporting type
// when dataType is AllTypes. Merged results keep registry order, then the
// order each query returned.
func AutoComplete(ctx context.Context, c query.SearchClient, dataType, phrase string) ([]key.Identifier, error) {
	if dataType != AllTypes {
		e, err := Lookup(dataType)
		if err != nil {
			return nil, err
		}
		if e.AutoComplete == nil {
			return nil, fmt.Errorf("%w: %s has no autocomplete", ErrUnsupported, dataType)
		}
		return e.AutoComplete(ctx, c, phrase)
	}

	merged := []key.Identifier{}
	for _, e := range registry {
		if e.AutoComplete == nil {
			continue
		}
		ids, err := e.AutoComplete(ctx, c, phrase)
		if err != nil {
			return nil, err
		}
		merged = append(merged, ids...)
	}
	return merged, nil
}

// GetKey fetches dataType's value for an already parsed key.
func GetKey(ctx context.Context, c query.Client, dataType string, pk key.PrimaryKey) (key.Display, error) {
	e, err := Lookup(dataType)
	if err != nil {
		return nil, err
	}
	if pk == nil {
		return nil, fmt.Errorf("%w: nil key", ErrBadKey)
	}
	return e.Get(ctx, c, pk)
}

// ParseKey parses args into dataType's primary key.
func ParseKey(dataType string, args []string) (key.PrimaryKey, error) {
	e, err := Lookup(dataType)
	if err != nil {
		return nil, err
	}
	return e.ParseKey(args)
}

func autoComplete[K key.PrimaryKey, T query.AutoComplete[K]]() AutoCompleteFunc {
	return func(ctx context.Context, c query.SearchClient, phrase string) ([]key.Identifier, error) {
		hits, err := query.SearchAutoComplete[K, T](ctx, c, phrase)
		if err != nil {
			return nil, err
		}
		return query.Identifiers(hits), nil
	}
}

type displayable[T any] interface {
	query.GetByKey[T]
	key.Display
}

func getter[T displayable[T]]() GetFunc {
	return func(ctx context.Context, c query.Client, pk key.PrimaryKey) (key.Display, error) {
		v, err := query.Get[T](ctx, c, pk.Values()...)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func parseInt32(args []string) (key.PrimaryKey, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: want 1 argument, got %d", ErrBadKey, len(args))
	}
	n, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not an int32", ErrBadKey, args[0])
	}
	return key.Int32(n), nil
}

func parseText(args []string) (key.PrimaryKey, error) {
	if len(args) != 1 || args[0] == "" {
		return nil, fmt.Errorf("%w: want 1 non-empty argument", ErrBadKey)
	}
	return key.Text(args[0]), nil
}

// parseAddress accepts number street zip [unit].
func parseAddress(args []string) (key.PrimaryKey, error) {
	if len(args) != 3 && len(args) != 4 {
		return nil, fmt.Errorf("%w: want number street zip [unit], got %d arguments", ErrBadKey, len(args))
	}
	number, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: number %q is not an int32", ErrBadKey, args[0])
	}
	zip, err := strconv.ParseInt(args[2], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: zip %q is not an int32", ErrBadKey, args[2])
	}
	var unit string
	if len(args) == 4 {
		unit = args[3]
	}
	return key.NewAddressKey(int32(number), args[1], int32(zip), unit), nil
}
