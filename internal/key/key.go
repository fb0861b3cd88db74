package key

import (
	"fmt"
	"strconv"
	"strings"
)

// Variant tags as they appear on the wire.
const (
	TagText       = "Text"
	TagInt16      = "Int16"
	TagInt32      = "Int32"
	TagInt64      = "Int64"
	TagPair       = "Pair"
	TagTriple     = "Triple"
	TagAddressKey = "AddressKey"
)

// PrimaryKey is a sealed interface over the supported key shapes.
// Only Text, Int16, Int32, Int64, Pair, Triple and AddressKey implement it.
type PrimaryKey interface {
	// Variant returns the wire tag of the active variant.
	Variant() string

	// Values returns the constituent fields in declaration order.
	// Useful when assembling positional query parameters from a key.
	Values() []any

	String() string

	primaryKey() // Sealed
}

// Text is a natural string key.
type Text string

func (Text) primaryKey() {}

func (Text) Variant() string { return TagText }

func (k Text) Values() []any { return []any{string(k)} }

func (k Text) String() string { return string(k) }

// Int16 is a small integer key.
type Int16 int16

func (Int16) primaryKey() {}

func (Int16) Variant() string { return TagInt16 }

func (k Int16) Values() []any { return []any{int16(k)} }

func (k Int16) String() string { return strconv.FormatInt(int64(k), 10) }

// Int32 is the key used by most tables.
type Int32 int32

func (Int32) primaryKey() {}

func (Int32) Variant() string { return TagInt32 }

func (k Int32) Values() []any { return []any{int32(k)} }

func (k Int32) String() string { return strconv.FormatInt(int64(k), 10) }

// Int64 is a wide integer key.
type Int64 int64

func (Int64) primaryKey() {}

func (Int64) Variant() string { return TagInt64 }

func (k Int64) Values() []any { return []any{int64(k)} }

func (k Int64) String() string { return strconv.FormatInt(int64(k), 10) }

// Pair is a two-part composite key, e.g. a subdomain within a domain.
type Pair struct {
	First  int32
	Second int32
}

func (Pair) primaryKey() {}

func (Pair) Variant() string { return TagPair }

func (k Pair) Values() []any { return []any{k.First, k.Second} }

func (k Pair) String() string {
	return joinKey(k.Values())
}

// Triple is a three-part composite key, e.g. a url within a subdomain.
type Triple struct {
	First  int32
	Second int32
	Third  int32
}

func (Triple) primaryKey() {}

func (Triple) Variant() string { return TagTriple }

func (k Triple) Values() []any { return []any{k.First, k.Second, k.Third} }

func (k Triple) String() string {
	return joinKey(k.Values())
}

// AddressKey is the mixed tuple used for street addresses.
// Unit is nil when the address has no unit designator.
type AddressKey struct {
	Number int32
	Street string
	Zip    int32
	Unit   *string
}

func (AddressKey) primaryKey() {}

func (AddressKey) Variant() string { return TagAddressKey }

// Values returns Number, Street, Zip and Unit. A missing unit is a nil
// interface so drivers bind it as NULL.
func (k AddressKey) Values() []any {
	var unit any
	if k.Unit != nil {
		unit = *k.Unit
	}
	return []any{k.Number, k.Street, k.Zip, unit}
}

func (k AddressKey) String() string {
	return joinKey(k.Values())
}

// NewAddressKey builds an AddressKey; an empty unit means no unit.
func NewAddressKey(number int32, street string, zip int32, unit string) AddressKey {
	k := AddressKey{Number: number, Street: street, Zip: zip}
	if unit != "" {
		k.Unit = &unit
	}
	return k
}

// Equal reports whether a and b hold the same variant with the same values.
// Unlike ==, it compares AddressKey units by value.
func Equal(a, b PrimaryKey) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Variant() != b.Variant() {
		return false
	}
	av, bv := a.Values(), b.Values()
	if len(av) != len(bv) {
		return false
	}
	for i := range av {
		if av[i] != bv[i] {
			return false
		}
	}
	return true
}

func joinKey(vals []any) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		if v == nil {
			continue
		}
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, "/")
}
