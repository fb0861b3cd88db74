package key

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func allVariants() []PrimaryKey {
	return []PrimaryKey{
		Text("acme.com"),
		Int16(7),
		Int32(42),
		Int64(9007199254740993),
		Pair{First: 1, Second: 2},
		Triple{First: 1, Second: 2, Third: 3},
		NewAddressKey(12, "Main St", 60601, ""),
		NewAddressKey(12, "Main St", 60601, "4B"),
	}
}

func TestMarshal_Golden(t *testing.T) {
	var buf bytes.Buffer
	for _, k := range allVariants() {
		data, err := Marshal(k)
		require.NoError(t, err)
		buf.Write(data)
		buf.WriteByte('\n')
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "primary_keys", buf.Bytes())
}

func TestJSONRoundTrip_PreservesVariant(t *testing.T) {
	for _, k := range allVariants() {
		t.Run(k.Variant()+"/"+k.String(), func(t *testing.T) {
			data, err := json.Marshal(k)
			require.NoError(t, err)

			got, err := Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, k, got)
			assert.Equal(t, k.Variant(), got.Variant())
			assert.True(t, Equal(k, got))
		})
	}
}

func TestYAMLRoundTrip_PreservesVariant(t *testing.T) {
	for _, k := range allVariants() {
		t.Run(k.Variant()+"/"+k.String(), func(t *testing.T) {
			data, err := yaml.Marshal(k)
			require.NoError(t, err)

			var node yaml.Node
			require.NoError(t, yaml.Unmarshal(data, &node))

			got, err := UnmarshalYAMLNode(&node)
			require.NoError(t, err)
			assert.Equal(t, k, got)
		})
	}
}

func TestMarshalYAML_Shape(t *testing.T) {
	data, err := yaml.Marshal(Int32(42))
	require.NoError(t, err)
	assert.Equal(t, "Int32: 42\n", string(data))
}

func TestConcreteUnmarshalJSON(t *testing.T) {
	var k Int32
	require.NoError(t, json.Unmarshal([]byte(`{"Int32":42}`), &k))
	assert.Equal(t, Int32(42), k)

	var p Pair
	require.NoError(t, json.Unmarshal([]byte(`{"Pair":[5,6]}`), &p))
	assert.Equal(t, Pair{First: 5, Second: 6}, p)

	var a AddressKey
	require.NoError(t, json.Unmarshal([]byte(`{"AddressKey":[1,"Elm",2,"B"]}`), &a))
	require.NotNil(t, a.Unit)
	assert.Equal(t, "B", *a.Unit)
}

func TestConcreteUnmarshalJSON_VariantMismatch(t *testing.T) {
	var k Int32
	err := json.Unmarshal([]byte(`{"Int64":42}`), &k)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVariantMismatch)
}

func TestConcreteUnmarshalYAML(t *testing.T) {
	var k Triple
	require.NoError(t, yaml.Unmarshal([]byte("Triple: [1, 2, 3]\n"), &k))
	assert.Equal(t, Triple{First: 1, Second: 2, Third: 3}, k)

	var a AddressKey
	require.NoError(t, yaml.Unmarshal([]byte("AddressKey: [12, Main St, 60601, null]\n"), &a))
	assert.Equal(t, NewAddressKey(12, "Main St", 60601, ""), a)
}

func TestUnmarshal_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unknown tag", `{"Uuid":"x"}`, ErrUnknownVariant},
		{"two members", `{"Int32":1,"Int64":2}`, ErrInvalidKey},
		{"empty object", `{}`, ErrInvalidKey},
		{"null", `null`, ErrInvalidKey},
		{"pair too short", `{"Pair":[1]}`, ErrInvalidKey},
		{"triple too long", `{"Triple":[1,2,3,4]}`, ErrInvalidKey},
		{"int16 overflow", `{"Int16":70000}`, ErrInvalidKey},
		{"text not string", `{"Text":5}`, ErrInvalidKey},
		{"address wrong arity", `{"AddressKey":[1,"x",2]}`, ErrInvalidKey},
		{"null int32 payload", `{"Int32":null}`, ErrInvalidKey},
		{"null text payload", `{"Text": null }`, ErrInvalidKey},
		{"null address payload", `{"AddressKey":null}`, ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUnmarshalYAMLNode_NullPayload(t *testing.T) {
	for _, doc := range []string{"Int32: null\n", "Text: ~\n", "Pair:\n"} {
		t.Run(doc, func(t *testing.T) {
			var node yaml.Node
			require.NoError(t, yaml.Unmarshal([]byte(doc), &node))

			_, err := UnmarshalYAMLNode(&node)
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}

	var k Int32
	assert.ErrorIs(t, yaml.Unmarshal([]byte("Int32: null\n"), &k), ErrInvalidKey)
}

func TestUnmarshal_Malformed(t *testing.T) {
	_, err := Unmarshal([]byte(`{"Int32":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode primary key")
}

func TestMarshal_NilKey(t *testing.T) {
	_, err := Marshal(nil)
	assert.ErrorIs(t, err, ErrInvalidKey)
}
