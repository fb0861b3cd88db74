package key

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownVariant is returned when a serialized key carries a tag
	// outside the closed variant set.
	ErrUnknownVariant = errors.New("unknown primary key variant")

	// ErrVariantMismatch is returned when decoding into a concrete variant
	// type and the payload carries a different tag.
	ErrVariantMismatch = errors.New("primary key variant mismatch")

	// ErrInvalidKey is returned when the tag is known but the payload has
	// the wrong shape.
	ErrInvalidKey = errors.New("invalid primary key payload")
)

// payload returns the untagged wire value of a key.
func payload(k PrimaryKey) any {
	switch v := k.(type) {
	case Text:
		return string(v)
	case Int16:
		return int16(v)
	case Int32:
		return int32(v)
	case Int64:
		return int64(v)
	case Pair:
		return []int32{v.First, v.Second}
	case Triple:
		return []int32{v.First, v.Second, v.Third}
	case AddressKey:
		return []any{v.Number, v.Street, v.Zip, v.Unit}
	default:
		return nil
	}
}

// tagged wraps a key's payload in its single-member tag object.
func tagged(k PrimaryKey) map[string]any {
	return map[string]any{k.Variant(): payload(k)}
}

// Marshal encodes a key as {"<Variant>": payload}.
func Marshal(k PrimaryKey) ([]byte, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: nil key", ErrInvalidKey)
	}
	return json.Marshal(tagged(k))
}

// Unmarshal decodes a tagged JSON key into its concrete variant.
func Unmarshal(data []byte) (PrimaryKey, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("decode primary key: %w", err)
	}
	if len(obj) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one variant, got %d", ErrInvalidKey, len(obj))
	}
	var tag string
	var raw json.RawMessage
	for t, r := range obj {
		tag, raw = t, r
	}
	if string(bytes.TrimSpace(raw)) == "null" {
		return nil, fmt.Errorf("%w: %s payload is null", ErrInvalidKey, tag)
	}
	return decodeVariant(tag, func(v any) error { return json.Unmarshal(raw, v) })
}

// UnmarshalYAMLNode decodes a tagged YAML mapping (Int32: 42) into its
// concrete variant.
func UnmarshalYAMLNode(node *yaml.Node) (PrimaryKey, error) {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return nil, fmt.Errorf("%w: expected a mapping with exactly one variant", ErrInvalidKey)
	}
	tag, val := node.Content[0].Value, node.Content[1]
	if val.ShortTag() == "!!null" {
		return nil, fmt.Errorf("%w: %s payload is null", ErrInvalidKey, tag)
	}
	return decodeVariant(tag, val.Decode)
}

// decodeVariant builds the variant named by tag, reading its payload through
// decode. decode is json.Unmarshal or yaml.Node.Decode bound to the payload.
func decodeVariant(tag string, decode func(v any) error) (PrimaryKey, error) {
	switch tag {
	case TagText:
		var s string
		if err := decode(&s); err != nil {
			return nil, shapeError(tag, err)
		}
		return Text(s), nil
	case TagInt16:
		var n int16
		if err := decode(&n); err != nil {
			return nil, shapeError(tag, err)
		}
		return Int16(n), nil
	case TagInt32:
		var n int32
		if err := decode(&n); err != nil {
			return nil, shapeError(tag, err)
		}
		return Int32(n), nil
	case TagInt64:
		var n int64
		if err := decode(&n); err != nil {
			return nil, shapeError(tag, err)
		}
		return Int64(n), nil
	case TagPair:
		vals, err := decodeInts(tag, decode, 2)
		if err != nil {
			return nil, err
		}
		return Pair{First: vals[0], Second: vals[1]}, nil
	case TagTriple:
		vals, err := decodeInts(tag, decode, 3)
		if err != nil {
			return nil, err
		}
		return Triple{First: vals[0], Second: vals[1], Third: vals[2]}, nil
	case TagAddressKey:
		var t addressTuple
		if err := decode(&t); err != nil {
			return nil, shapeError(tag, err)
		}
		return AddressKey(t), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, tag)
	}
}

func decodeInts(tag string, decode func(v any) error, n int) ([]int32, error) {
	var vals []int32
	if err := decode(&vals); err != nil {
		return nil, shapeError(tag, err)
	}
	if len(vals) != n {
		return nil, fmt.Errorf("%w: %s expects %d values, got %d", ErrInvalidKey, tag, n, len(vals))
	}
	return vals, nil
}

func shapeError(tag string, err error) error {
	if errors.Is(err, ErrInvalidKey) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrInvalidKey, tag, err)
}

// addressTuple decodes the positional [number, street, zip, unit] payload.
type addressTuple AddressKey

func (t *addressTuple) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 4 {
		return fmt.Errorf("%w: %s expects 4 values, got %d", ErrInvalidKey, TagAddressKey, len(raw))
	}
	if err := json.Unmarshal(raw[0], &t.Number); err != nil {
		return fmt.Errorf("number: %w", err)
	}
	if err := json.Unmarshal(raw[1], &t.Street); err != nil {
		return fmt.Errorf("street: %w", err)
	}
	if err := json.Unmarshal(raw[2], &t.Zip); err != nil {
		return fmt.Errorf("zip: %w", err)
	}
	if err := json.Unmarshal(raw[3], &t.Unit); err != nil {
		return fmt.Errorf("unit: %w", err)
	}
	return nil
}

func (t *addressTuple) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 4 {
		return fmt.Errorf("%w: %s expects a sequence of 4 values", ErrInvalidKey, TagAddressKey)
	}
	if err := node.Content[0].Decode(&t.Number); err != nil {
		return fmt.Errorf("number: %w", err)
	}
	if err := node.Content[1].Decode(&t.Street); err != nil {
		return fmt.Errorf("street: %w", err)
	}
	if err := node.Content[2].Decode(&t.Zip); err != nil {
		return fmt.Errorf("zip: %w", err)
	}
	t.Unit = nil
	if unit := node.Content[3]; unit.ShortTag() != "!!null" {
		var s string
		if err := unit.Decode(&s); err != nil {
			return fmt.Errorf("unit: %w", err)
		}
		t.Unit = &s
	}
	return nil
}

// assign stores pk into dst when pk holds dst's variant.
func assign[K PrimaryKey](pk PrimaryKey, dst *K) error {
	v, ok := pk.(K)
	if !ok {
		var zero K
		return fmt.Errorf("%w: expected %s, got %s", ErrVariantMismatch, zero.Variant(), pk.Variant())
	}
	*dst = v
	return nil
}

func unmarshalJSONInto[K PrimaryKey](data []byte, dst *K) error {
	pk, err := Unmarshal(data)
	if err != nil {
		return err
	}
	return assign(pk, dst)
}

func unmarshalYAMLInto[K PrimaryKey](node *yaml.Node, dst *K) error {
	pk, err := UnmarshalYAMLNode(node)
	if err != nil {
		return err
	}
	return assign(pk, dst)
}

func (k Text) MarshalJSON() ([]byte, error)       { return Marshal(k) }
func (k Int16) MarshalJSON() ([]byte, error)      { return Marshal(k) }
func (k Int32) MarshalJSON() ([]byte, error)      { return Marshal(k) }
func (k Int64) MarshalJSON() ([]byte, error)      { return Marshal(k) }
func (k Pair) MarshalJSON() ([]byte, error)       { return Marshal(k) }
func (k Triple) MarshalJSON() ([]byte, error)     { return Marshal(k) }
func (k AddressKey) MarshalJSON() ([]byte, error) { return Marshal(k) }

func (k *Text) UnmarshalJSON(data []byte) error       { return unmarshalJSONInto(data, k) }
func (k *Int16) UnmarshalJSON(data []byte) error      { return unmarshalJSONInto(data, k) }
func (k *Int32) UnmarshalJSON(data []byte) error      { return unmarshalJSONInto(data, k) }
func (k *Int64) UnmarshalJSON(data []byte) error      { return unmarshalJSONInto(data, k) }
func (k *Pair) UnmarshalJSON(data []byte) error       { return unmarshalJSONInto(data, k) }
func (k *Triple) UnmarshalJSON(data []byte) error     { return unmarshalJSONInto(data, k) }
func (k *AddressKey) UnmarshalJSON(data []byte) error { return unmarshalJSONInto(data, k) }

func (k Text) MarshalYAML() (any, error)       { return tagged(k), nil }
func (k Int16) MarshalYAML() (any, error)      { return tagged(k), nil }
func (k Int32) MarshalYAML() (any, error)      { return tagged(k), nil }
func (k Int64) MarshalYAML() (any, error)      { return tagged(k), nil }
func (k Pair) MarshalYAML() (any, error)       { return tagged(k), nil }
func (k Triple) MarshalYAML() (any, error)     { return tagged(k), nil }
func (k AddressKey) MarshalYAML() (any, error) { return tagged(k), nil }

func (k *Text) UnmarshalYAML(node *yaml.Node) error       { return unmarshalYAMLInto(node, k) }
func (k *Int16) UnmarshalYAML(node *yaml.Node) error      { return unmarshalYAMLInto(node, k) }
func (k *Int32) UnmarshalYAML(node *yaml.Node) error      { return unmarshalYAMLInto(node, k) }
func (k *Int64) UnmarshalYAML(node *yaml.Node) error      { return unmarshalYAMLInto(node, k) }
func (k *Pair) UnmarshalYAML(node *yaml.Node) error       { return unmarshalYAMLInto(node, k) }
func (k *Triple) UnmarshalYAML(node *yaml.Node) error     { return unmarshalYAMLInto(node, k) }
func (k *AddressKey) UnmarshalYAML(node *yaml.Node) error { return unmarshalYAMLInto(node, k) }
