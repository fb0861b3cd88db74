package key

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Display identifies the "who, what, where" of an object so it can be shown
// in a user interface.
type Display interface {
	// DisplayName returns the name to show, i.e. "Chicago" or "Cool Blue Inc."
	DisplayName() string

	// PrimaryKey returns the key of the object.
	PrimaryKey() PrimaryKey

	// DataType returns a static tag for the type, i.e. "city".
	DataType() string
}

// SubTyped is implemented by Display types that carry a static sub type.
type SubTyped interface {
	SubType() string
}

// SubTypeOf returns the sub type of v, or false when v has none.
func SubTypeOf(v any) (string, bool) {
	if st, ok := v.(SubTyped); ok {
		return st.SubType(), true
	}
	return "", false
}

// Int32Keyed is implemented by the many types keyed by a single int32.
type Int32Keyed interface {
	Int32Key() int32
}

// FromInt32Keyed returns the Int32 key of v.
func FromInt32Keyed(v Int32Keyed) Int32 {
	return Int32(v.Int32Key())
}

// Identifier is the minimal reference to an entity: enough to display and
// select it, never the entity itself.
type Identifier struct {
	DataType string     `json:"data_type" yaml:"data_type"`
	Name     string     `json:"name" yaml:"name"`
	Key      PrimaryKey `json:"pk" yaml:"pk"`
}

// IdentifierOf projects a Display value onto an Identifier.
func IdentifierOf(d Display) Identifier {
	return Identifier{
		DataType: d.DataType(),
		Name:     d.DisplayName(),
		Key:      d.PrimaryKey(),
	}
}

// String renders "data_type:key name".
func (id Identifier) String() string {
	if id.Key == nil {
		return fmt.Sprintf("%s: %s", id.DataType, id.Name)
	}
	return fmt.Sprintf("%s:%s %s", id.DataType, id.Key, id.Name)
}

// UnmarshalJSON decodes the pk member through Unmarshal so the variant is restored.
func (id *Identifier) UnmarshalJSON(data []byte) error {
	var raw struct {
		DataType string          `json:"data_type"`
		Name     string          `json:"name"`
		Key      json.RawMessage `json:"pk"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id.DataType = raw.DataType
	id.Name = raw.Name
	id.Key = nil
	if len(raw.Key) == 0 || string(raw.Key) == "null" {
		return nil
	}

	pk, err := Unmarshal(raw.Key)
	if err != nil {
		return fmt.Errorf("identifier pk: %w", err)
	}
	id.Key = pk
	return nil
}

// UnmarshalYAML decodes the pk member through UnmarshalYAMLNode.
func (id *Identifier) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		DataType string    `yaml:"data_type"`
		Name     string    `yaml:"name"`
		Key      yaml.Node `yaml:"pk"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	id.DataType = raw.DataType
	id.Name = raw.Name
	id.Key = nil
	if raw.Key.Kind == 0 || raw.Key.ShortTag() == "!!null" {
		return nil
	}

	pk, err := UnmarshalYAMLNode(&raw.Key)
	if err != nil {
		return fmt.Errorf("identifier pk: %w", err)
	}
	id.Key = pk
	return nil
}
