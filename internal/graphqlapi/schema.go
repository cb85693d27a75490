package graphqlapi

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
)

const (
	resolveDirective = "resolve"
	resolveNameArg   = "name"
)

// DefaultResolverName is the name given to a new resolver of a field.
func DefaultResolverName(objectType, field string) string {
	return objectType + "|" + field
}

// FieldInfo describes an object field and the resolver attached to it.
type FieldInfo struct {
	ObjectType string
	Name       string
	// ReturnType is the field type as written, e.g. "[Pet!]!".
	ReturnType string
	// ResolverName is the @resolve directive's name, or "" if unresolved.
	ResolverName string
}

// Schema is a parsed schema definition.
type Schema struct {
	doc *ast.SchemaDocument
}

// ParseSchema parses SDL text.
func ParseSchema(sdl string) (*Schema, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: "schema.graphql", Input: sdl})
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema definition: %w", err)
	}

	return &Schema{doc: doc}, nil
}

// Fields lists the fields of every object type, including type extensions,
// in document order.
func (s *Schema) Fields() []FieldInfo {
	var out []FieldInfo

	for _, def := range s.objects() {
		for _, f := range def.Fields {
			out = append(out, fieldInfo(def.Name, f))
		}
	}

	return out
}

// Field returns the named field of objectType.
func (s *Schema) Field(objectType, name string) (FieldInfo, error) {
	f := s.lookup(objectType, name)
	if f == nil {
		return FieldInfo{}, fmt.Errorf("%w: %s.%s", ErrFieldNotFound, objectType, name)
	}

	return fieldInfo(objectType, f), nil
}

// SetResolver points the field's @resolve directive at name, adding the
// directive when missing. It reports whether the document changed.
func (s *Schema) SetResolver(objectType, field, name string) (bool, error) {
	f := s.lookup(objectType, field)
	if f == nil {
		return false, fmt.Errorf("%w: %s.%s", ErrFieldNotFound, objectType, field)
	}

	if resolverName(f) == name {
		return false, nil
	}

	f.Directives = slices.DeleteFunc(f.Directives, isResolve)
	f.Directives = append(f.Directives, &ast.Directive{
		Name: resolveDirective,
		Arguments: ast.ArgumentList{{
			Name:  resolveNameArg,
			Value: &ast.Value{Kind: ast.StringValue, Raw: name},
		}},
	})

	return true, nil
}

// RemoveResolver strips the field's @resolve directive. It reports whether
// the document changed.
func (s *Schema) RemoveResolver(objectType, field string) (bool, error) {
	f := s.lookup(objectType, field)
	if f == nil {
		return false, fmt.Errorf("%w: %s.%s", ErrFieldNotFound, objectType, field)
	}

	n := len(f.Directives)
	f.Directives = slices.DeleteFunc(f.Directives, isResolve)

	return len(f.Directives) != n, nil
}

// String formats the document as SDL.
func (s *Schema) String() string {
	var buf bytes.Buffer

	formatter.NewFormatter(&buf).FormatSchemaDocument(s.doc)

	return buf.String()
}

func (s *Schema) objects() []*ast.Definition {
	var out []*ast.Definition

	for _, list := range []ast.DefinitionList{s.doc.Definitions, s.doc.Extensions} {
		for _, def := range list {
			if def.Kind == ast.Object {
				out = append(out, def)
			}
		}
	}

	return out
}

func (s *Schema) lookup(objectType, name string) *ast.FieldDefinition {
	for _, def := range s.objects() {
		if def.Name != objectType {
			continue
		}

		if f := def.Fields.ForName(name); f != nil {
			return f
		}
	}

	return nil
}

func fieldInfo(objectType string, f *ast.FieldDefinition) FieldInfo {
	info := FieldInfo{
		ObjectType:   objectType,
		Name:         f.Name,
		ResolverName: resolverName(f),
	}

	if f.Type != nil {
		info.ReturnType = f.Type.String()
	}

	return info
}

func resolverName(f *ast.FieldDefinition) string {
	d := f.Directives.ForName(resolveDirective)
	if d == nil {
		return ""
	}

	arg := d.Arguments.ForName(resolveNameArg)
	if arg == nil || arg.Value == nil {
		return ""
	}

	return arg.Value.Raw
}

func isResolve(d *ast.Directive) bool {
	return d.Name == resolveDirective
}
