package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	tests := []struct {
		typeName string
		field    string
		kind     FieldKind
		wire     string
	}{
		{TypeRESTResolver, "request", FieldMessage, "request"},
		{TypeRESTResolver, "spanName", FieldScalar, "spanName"},
		{TypeRESTResolver, "upstreamRef", FieldMessage, "upstreamRef"},
		{TypeRequestTemplate, "headers", FieldMap, "headersMap"},
		{TypeRequestTemplate, "body", FieldValue, "body"},
		{TypeResponseTemplate, "setters", FieldMap, "settersMap"},
		{TypeGrpcRequestTemplate, "requestMetadata", FieldMap, "requestMetadataMap"},
		{TypeGrpcRequestTemplate, "outgoingMessageJson", FieldValue, "outgoingMessageJson"},
		{TypeMockResolver, "syncResponse", FieldValue, "syncResponse"},
		{TypeMockResolver, "asyncResponse", FieldMessage, "asyncResponse"},
		{TypeMockAsyncResponse, "delay", FieldMessage, "delay"},
	}

	for _, tt := range tests {
		t.Run(tt.typeName+"."+tt.field, func(t *testing.T) {
			typ, ok := r.Type(tt.typeName)
			require.True(t, ok)

			f, ok := typ.Field(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, tt.wire, f.WireName())
		})
	}

	assert.Same(t, r, Default())
}

func TestFieldOrderAndValidKeys(t *testing.T) {
	r := Default()

	assert.Equal(t, []string{"upstreamRef", "request", "response", "spanName"}, r.MustType(TypeRESTResolver).FieldNames())
	assert.Equal(t, []string{"request", "response", "spanName"}, r.ValidKeys(TypeRESTResolver))
	assert.Nil(t, r.ValidKeys("no.such.Type"))
}

func TestLoad(t *testing.T) {
	data := []byte(`
types:
  test.Inner:
    fields:
      level: {type: my.custom.Enum}
  test.Outer:
    fields:
      inner: {type: test.Inner}
      labels: {type: string, keyType: string}
      extra: {type: google.protobuf.Value}
`)

	r, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"test.Inner", "test.Outer"}, r.Names())

	inner, _ := r.MustType("test.Outer").Field("inner")
	assert.Equal(t, FieldMessage, inner.Kind)

	level, _ := r.MustType("test.Inner").Field("level")
	assert.Equal(t, FieldScalar, level.Kind)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "types: ["},
		{"fields not a mapping", "types:\n  a.B:\n    fields: [x]\n"},
		{"missing type", "types:\n  a.B:\n    fields:\n      x: {keyType: string}\n"},
		{"duplicate field", "types:\n  a.B:\n    fields:\n      x: {type: string}\n      x: {type: bool}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestFieldKindString(t *testing.T) {
	assert.Equal(t, "scalar", FieldScalar.String())
	assert.Equal(t, "value", FieldValue.String())
	assert.Equal(t, "FieldKind(0)", FieldKind(0).String())
}

func TestPath(t *testing.T) {
	p := ParsePath("request.headers")
	assert.Equal(t, "request.headers", p.String())
	assert.Equal(t, "headers", p.Last())
	assert.True(t, ParsePath("").IsRoot())
	assert.Equal(t, "request.headers.x-foo", p.Child("x-foo").String())
	assert.Equal(t, "request.headers", p.String())

	obj := map[string]any{"request": map[string]any{"headers": map[string]any{"x-foo": "1"}}}

	v, ok := p.Child("x-foo").Lookup(obj)
	require.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = ParsePath("request.body").Lookup(obj)
	assert.False(t, ok)
}
