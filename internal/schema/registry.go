package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"resolver-wizard/internal/common"
)

//go:generate go tool stringer -type=FieldKind -linecomment -output=fieldkind_string.go

// FieldKind tells the walker how a field's value is carried on the wire.
type FieldKind int

const (
	_ FieldKind = iota // zero value is invalid

	FieldScalar  // scalar
	FieldMessage // message
	FieldMap     // map
	FieldValue   // value
)

// ValueTypeName is the declared type of dynamic value fields.
const ValueTypeName = "google.protobuf.Value"

// Type names in the default descriptor.
const (
	TypeResourceRef         = "core.solo.io.ResourceRef"
	TypeRESTResolver        = "graphql.gloo.solo.io.RESTResolver"
	TypeRequestTemplate     = "graphql.gloo.solo.io.RequestTemplate"
	TypeResponseTemplate    = "graphql.gloo.solo.io.ResponseTemplate"
	TypeGrpcResolver        = "graphql.gloo.solo.io.GrpcResolver"
	TypeGrpcRequestTemplate = "graphql.gloo.solo.io.GrpcRequestTemplate"
	TypeMockResolver        = "graphql.gloo.solo.io.MockResolver"
	TypeMockAsyncResponse   = "graphql.gloo.solo.io.MockResolver.AsyncResponse"
)

//go:embed descriptor.yaml
var defaultDescriptor []byte

// Field is one declared field of a Type.
type Field struct {
	Name string
	Kind FieldKind
	// Type is the declared type name: a scalar name, ValueTypeName, or the
	// name of a nested Type. For maps it is the value type.
	Type string
	// KeyType is set for map fields only.
	KeyType string
}

// WireName returns the key the field is stored under in the wire form.
func (f *Field) WireName() string {
	if f.Kind == FieldMap {
		return f.Name + mapSuffix
	}

	return f.Name
}

// Type is a message type: an ordered set of fields.
type Type struct {
	Name   string
	Fields []*Field

	index map[string]*Field
}

// Field returns the declared field with the given name.
func (t *Type) Field(name string) (*Field, bool) {
	f, ok := t.index[name]
	return f, ok
}

// FieldNames returns the names of the declared fields in declaration order.
func (t *Type) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}

	return names
}

// Registry is a set of types loaded from a descriptor.
type Registry struct {
	types map[string]*Type
}

// Default returns the registry built from the embedded descriptor.
var Default = sync.OnceValue(func() *Registry {
	r, err := Load(defaultDescriptor)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded descriptor: %v", err))
	}

	return r
})

// Type returns the type with the given full name.
func (r *Registry) Type(name string) (*Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// MustType is like Type but panics when the name is unknown.
func (r *Registry) MustType(name string) *Type {
	t, ok := r.types[name]
	if !ok {
		panic(fmt.Sprintf("schema: unknown type %q", name))
	}

	return t
}

// Names returns all type names in sorted order.
func (r *Registry) Names() []string {
	return common.SortedKeys(r.types)
}

// descriptorFile is the YAML layout of a descriptor.
type descriptorFile struct {
	Types map[string]descriptorType `yaml:"types"`
}

type descriptorType struct {
	Fields orderedFields `yaml:"fields"`
}

type descriptorField struct {
	Name    string
	Type    string `yaml:"type"`
	KeyType string `yaml:"keyType"`
}

// orderedFields keeps the field order of the YAML mapping.
type orderedFields []descriptorField

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *orderedFields) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fields must be a mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		var f descriptorField

		if err := node.Content[i+1].Decode(&f); err != nil {
			return fmt.Errorf("field %q: %w", node.Content[i].Value, err)
		}

		f.Name = node.Content[i].Value
		*o = append(*o, f)
	}

	return nil
}

// Load parses a descriptor and resolves field kinds.
func Load(data []byte) (*Registry, error) {
	var df descriptorFile

	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor YAML: %w", err)
	}

	r := &Registry{types: make(map[string]*Type, len(df.Types))}

	for _, name := range common.SortedKeys(df.Types) {
		r.types[name] = &Type{Name: name, index: map[string]*Field{}}
	}

	for _, name := range common.SortedKeys(df.Types) {
		t := r.types[name]

		for _, fd := range df.Types[name].Fields {
			if fd.Type == "" {
				return nil, fmt.Errorf("type %s: field %q has no type", name, fd.Name)
			}

			if _, dup := t.index[fd.Name]; dup {
				return nil, fmt.Errorf("type %s: duplicate field %q", name, fd.Name)
			}

			f := &Field{Name: fd.Name, Type: fd.Type, KeyType: fd.KeyType, Kind: r.kindOf(fd)}
			t.Fields = append(t.Fields, f)
			t.index[f.Name] = f
		}
	}

	return r, nil
}

func (r *Registry) kindOf(f descriptorField) FieldKind {
	_, nested := r.types[f.Type]

	switch {
	case f.KeyType != "":
		return FieldMap
	case f.Type == ValueTypeName:
		return FieldValue
	case nested:
		return FieldMessage
	default:
		return FieldScalar
	}
}
