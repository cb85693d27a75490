package schema

import (
	"fmt"
	"math"
	"strings"

	"resolver-wizard/internal/common"
	"resolver-wizard/internal/diagnostic"
	"resolver-wizard/internal/dynvalue"
	"resolver-wizard/internal/match"
	"resolver-wizard/internal/pairs"
)

const (
	mapSuffix = "Map"

	// upstreamRefField is edited outside the configuration text and never
	// offered as a valid property.
	upstreamRefField = "upstreamRef"

	maxSuggestions = 3
)

// PreMarshal converts obj from the editor form to the wire form of the named
// type. The returned map is nil when obj is not an object.
func (r *Registry) PreMarshal(obj any, typeName string) (map[string]any, *diagnostic.Diagnostics) {
	w := &walker{reg: r, diags: &diagnostic.Diagnostics{}}

	t, ok := r.Type(typeName)
	if !ok {
		w.diags.AddError(diagnostic.CodeUnknownType, fmt.Sprintf("unknown type %q", typeName), "")
		return nil, w.diags
	}

	return w.pre(obj, t, nil), w.diags
}

// PostUnmarshal converts obj from the wire form of the named type to the
// editor form. Map fields are read from their "<name>Map" pair lists and
// dynamic values from their tagged form.
func (r *Registry) PostUnmarshal(obj any, typeName string) (map[string]any, *diagnostic.Diagnostics) {
	w := &walker{reg: r, diags: &diagnostic.Diagnostics{}}

	t, ok := r.Type(typeName)
	if !ok {
		w.diags.AddError(diagnostic.CodeUnknownType, fmt.Sprintf("unknown type %q", typeName), "")
		return nil, w.diags
	}

	return w.post(obj, t, nil), w.diags
}

type walker struct {
	reg   *Registry
	diags *diagnostic.Diagnostics
}

func (w *walker) pre(obj any, t *Type, path Path) map[string]any {
	m, ok := obj.(map[string]any)
	if !ok {
		w.notAnObject(obj, t, path)
		return nil
	}

	out := make(map[string]any, len(m))

	for _, k := range common.SortedKeys(m) {
		f, ok := t.Field(k)
		if !ok {
			w.unknownProperty(k, t, path)
			continue
		}

		v := m[k]
		if v == nil && f.Kind != FieldValue {
			continue
		}

		child := path.Child(k)

		switch f.Kind {
		case FieldValue:
			enc, err := dynvalue.Encode(v)
			if err != nil {
				w.diags.AddError(diagnostic.CodeInvalidValue,
					fmt.Sprintf("Parsing Error: %q cannot be used as a value: %v", child.String(), err), child.String())

				continue
			}

			out[k] = dynvalue.ToWire(enc)
		case FieldMessage:
			if nested := w.pre(v, w.reg.MustType(f.Type), child); nested != nil {
				out[k] = nested
			}
		case FieldMap:
			if list, ok := w.preMap(v, f, child); ok {
				out[f.WireName()] = list
			}
		default:
			if w.checkScalar(v, f.Type, child) {
				out[k] = v
			}
		}
	}

	return out
}

func (w *walker) preMap(v any, f *Field, path Path) (pairs.List[any], bool) {
	m, ok := v.(map[string]any)
	if !ok {
		w.diags.AddError(diagnostic.CodeInvalidMap,
			fmt.Sprintf("Parsing Error: %q is an object, so it cannot be \"%v\".", path.String(), v), path.String())

		return nil, false
	}

	var mismatched []string

	for _, k := range common.SortedKeys(m) {
		if scalarMismatch(m[k], f.Type) != "" {
			mismatched = append(mismatched, k)
		}
	}

	if len(mismatched) > 0 {
		noun := article(scalarNoun(f.Type))
		if len(mismatched) > 1 {
			noun = scalarNoun(f.Type) + "s"
		}

		w.diags.AddError(diagnostic.CodeTypeMismatch,
			fmt.Sprintf("Parsing Error: \"%s\" at %q should be %s.", strings.Join(mismatched, `", "`), path.String(), noun),
			path.String())

		return nil, false
	}

	return pairs.FromObject(m), true
}

func (w *walker) post(obj any, t *Type, path Path) map[string]any {
	m, ok := obj.(map[string]any)
	if !ok {
		w.notAnObject(obj, t, path)
		return nil
	}

	out := make(map[string]any, len(m))

	for _, k := range common.SortedKeys(m) {
		f, ok := t.Field(k)
		if !ok && strings.HasSuffix(k, mapSuffix) {
			f, ok = t.Field(strings.TrimSuffix(k, mapSuffix))
			ok = ok && f.Kind == FieldMap
		}

		if !ok {
			w.unknownProperty(k, t, path)
			continue
		}

		v := m[k]
		if v == nil {
			continue
		}

		child := path.Child(f.Name)

		switch f.Kind {
		case FieldValue:
			if val, ok := w.postValue(v, child); ok {
				out[f.Name] = val
			}
		case FieldMessage:
			if nested := w.post(v, w.reg.MustType(f.Type), child); nested != nil {
				out[f.Name] = nested
			}
		case FieldMap:
			if obj, ok := w.postMap(v, f, child); ok {
				out[f.Name] = obj
			}
		default:
			if w.checkScalar(v, f.Type, child) {
				out[f.Name] = v
			}
		}
	}

	return out
}

func (w *walker) postValue(v any, path Path) (any, bool) {
	wm, ok := v.(map[string]any)
	if !ok {
		w.diags.AddError(diagnostic.CodeInvalidValue,
			fmt.Sprintf("Parsing Error: %q should be a tagged value, got \"%v\".", path.String(), v), path.String())

		return nil, false
	}

	val, lossy, err := dynvalue.FromWire(wm)
	if err != nil {
		w.diags.AddError(diagnostic.CodeInvalidValue,
			fmt.Sprintf("Parsing Error: %q is not a valid value: %v", path.String(), err), path.String())

		return nil, false
	}

	if lossy {
		w.diags.AddWarning(diagnostic.CodeLegacyValue,
			"value uses the legacy encoding; false, 0 and null may have been read as 0", path.String())
	}

	return dynvalue.Decode(val), true
}

func (w *walker) postMap(v any, f *Field, path Path) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}

	list, err := pairs.Parse(v)
	if err != nil {
		w.diags.AddError(diagnostic.CodeInvalidMap,
			fmt.Sprintf("Parsing Error: %q is not a valid %s map: %v", path.String(), f.KeyType, err), path.String())

		return nil, false
	}

	return pairs.ToObject(list), true
}

func (w *walker) checkScalar(v any, typeName string, path Path) bool {
	switch v.(type) {
	case map[string]any, []any:
		w.diags.AddError(diagnostic.CodeNotAScalar,
			fmt.Sprintf("Parsing Error: %q should be %s.", path.String(), article(scalarNoun(typeName))), path.String())

		return false
	}

	if want := scalarMismatch(v, typeName); want != "" {
		w.diags.AddError(diagnostic.CodeTypeMismatch,
			fmt.Sprintf("Parsing Error: \"%v\" at %s should be %s.", v, path.String(), article(want)), path.String())

		return false
	}

	return true
}

func (w *walker) notAnObject(v any, t *Type, path Path) {
	valid := validKeys(t)

	if path.IsRoot() {
		w.diags.AddError(diagnostic.CodeNotAnObject,
			fmt.Sprintf("Parsing Error: \"%v\" is not an object. This configuration object must include the properties: %s", v, quoteJoin(valid)),
			"")

		return
	}

	w.diags.AddError(diagnostic.CodeNotAnObject,
		fmt.Sprintf("Parsing Error: %q is an object, so it cannot be \"%v\". Its properties include: %s", path.String(), v, quoteJoin(valid)),
		path.String())
}

func (w *walker) unknownProperty(k string, t *Type, path Path) {
	valid := validKeys(t)

	var msg string
	if path.IsRoot() {
		msg = fmt.Sprintf("%q is not a valid property. Valid properties include: %s", k, quoteJoin(valid))
	} else {
		msg = fmt.Sprintf("%q is not a property of %q. Valid properties include: %s", k, path.String(), quoteJoin(valid))
	}

	w.diags.AddWarning(diagnostic.CodeUnknownProperty, msg, path.String(), match.Suggest(k, valid, maxSuggestions)...)
}

// ValidKeys returns the properties of the named type that may appear in a
// configuration document.
func (r *Registry) ValidKeys(typeName string) []string {
	t, ok := r.Type(typeName)
	if !ok {
		return nil
	}

	return validKeys(t)
}

func validKeys(t *Type) []string {
	return common.Without(t.FieldNames(), upstreamRefField)
}

func quoteJoin(keys []string) string {
	return `"` + strings.Join(keys, `", "`) + `"`
}

var numericTypes = map[string]bool{
	"double": true, "float": true,
	"int32": true, "int64": true, "uint32": true, "uint64": true,
	"sint32": true, "sint64": true, "fixed32": true, "fixed64": true,
	"sfixed32": true, "sfixed64": true,
}

// scalarMismatch returns the expected kind when v does not fit the declared
// scalar type, or "" when it does. Unknown type names accept any scalar.
func scalarMismatch(v any, typeName string) string {
	switch {
	case typeName == "string" || typeName == "bytes":
		if _, ok := v.(string); !ok {
			return "string"
		}
	case typeName == "bool":
		if _, ok := v.(bool); !ok {
			return "boolean"
		}
	case numericTypes[typeName]:
		f, ok := dynvalue.AsNumber(v)
		if !ok {
			return "number"
		}

		if typeName != "double" && typeName != "float" && f != math.Trunc(f) {
			return "integer"
		}
	default:
		switch v.(type) {
		case map[string]any, []any:
			return "scalar"
		}
	}

	return ""
}

func scalarNoun(typeName string) string {
	switch {
	case typeName == "string" || typeName == "bytes":
		return "string"
	case typeName == "bool":
		return "boolean"
	case numericTypes[typeName]:
		return "number"
	default:
		return "scalar"
	}
}

func article(noun string) string {
	if strings.IndexAny(noun[:1], "aeiou") == 0 {
		return "an " + noun
	}

	return "a " + noun
}
