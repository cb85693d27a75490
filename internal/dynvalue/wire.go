package dynvalue

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"resolver-wizard/internal/pairs"
)

// Wire field names of the value union.
const (
	TagNull   = "nullValue"
	TagNumber = "numberValue"
	TagString = "stringValue"
	TagBool   = "boolValue"
	TagList   = "listValue"
	TagStruct = "structValue"

	listValuesKey   = "valuesList"
	structFieldsKey = "fieldsMap"
)

var tags = []string{TagNull, TagNumber, TagString, TagBool, TagList, TagStruct}

// ToWire renders v in the console wire form with exactly one tag set.
// Struct fields are emitted as sorted [key, value] pairs.
func ToWire(v *structpb.Value) map[string]any {
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return map[string]any{TagNumber: k.NumberValue}
	case *structpb.Value_StringValue:
		return map[string]any{TagString: k.StringValue}
	case *structpb.Value_BoolValue:
		return map[string]any{TagBool: k.BoolValue}
	case *structpb.Value_ListValue:
		values := k.ListValue.GetValues()
		out := make([]any, len(values))

		for i, e := range values {
			out[i] = ToWire(e)
		}

		return map[string]any{TagList: map[string]any{listValuesKey: out}}
	case *structpb.Value_StructValue:
		fields := pairs.FromObject(k.StructValue.GetFields())
		out := make([]any, len(fields))

		for i, f := range fields {
			out[i] = []any{f.Key, ToWire(f.Value)}
		}

		return map[string]any{TagStruct: map[string]any{structFieldsKey: out}}
	default:
		return map[string]any{TagNull: 0}
	}
}

// FromWire reads a value in the console wire form. A value with a single tag
// is read exactly. A value carrying several tags, or none, is resolved by the
// legacy heuristic and reported as lossy.
func FromWire(m map[string]any) (*structpb.Value, bool, error) {
	present := presentTags(m)
	if len(present) != 1 {
		return legacyDecode(m)
	}

	raw := m[present[0]]

	switch present[0] {
	case TagNull:
		return structpb.NewNullValue(), false, nil
	case TagNumber:
		f, ok := AsNumber(raw)
		if !ok {
			return nil, false, fmt.Errorf("%s must be a number, got %T", TagNumber, raw)
		}

		return structpb.NewNumberValue(f), false, nil
	case TagString:
		s, ok := raw.(string)
		if !ok {
			return nil, false, fmt.Errorf("%s must be a string, got %T", TagString, raw)
		}

		return structpb.NewStringValue(s), false, nil
	case TagBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, false, fmt.Errorf("%s must be a bool, got %T", TagBool, raw)
		}

		return structpb.NewBoolValue(b), false, nil
	case TagList:
		return listFromWire(raw)
	default:
		return structFromWire(raw)
	}
}

func presentTags(m map[string]any) []string {
	var present []string

	for _, t := range tags {
		if v, ok := m[t]; ok && v != nil {
			present = append(present, t)
		}
	}

	return present
}

func listFromWire(raw any) (*structpb.Value, bool, error) {
	lm, ok := raw.(map[string]any)
	if !ok {
		return nil, false, fmt.Errorf("%s must be an object, got %T", TagList, raw)
	}

	var elems []any

	if v := lm[listValuesKey]; v != nil {
		elems, ok = v.([]any)
		if !ok {
			return nil, false, fmt.Errorf("%s.%s must be a list, got %T", TagList, listValuesKey, v)
		}
	}

	values := make([]*structpb.Value, len(elems))
	lossy := false

	for i, e := range elems {
		em, ok := e.(map[string]any)
		if !ok {
			return nil, false, fmt.Errorf("%s[%d] must be an object, got %T", TagList, i, e)
		}

		ev, l, err := FromWire(em)
		if err != nil {
			return nil, false, fmt.Errorf("%s[%d]: %w", TagList, i, err)
		}

		values[i] = ev
		lossy = lossy || l
	}

	return structpb.NewListValue(&structpb.ListValue{Values: values}), lossy, nil
}

func structFromWire(raw any) (*structpb.Value, bool, error) {
	sm, ok := raw.(map[string]any)
	if !ok {
		return nil, false, fmt.Errorf("%s must be an object, got %T", TagStruct, raw)
	}

	entries, err := pairs.Parse(sm[structFieldsKey])
	if err != nil {
		return nil, false, fmt.Errorf("%s.%s: %w", TagStruct, structFieldsKey, err)
	}

	fields := make(map[string]*structpb.Value, len(entries))
	lossy := false

	for _, e := range entries {
		em, ok := e.Value.(map[string]any)
		if !ok {
			return nil, false, fmt.Errorf("%s field %q must be an object, got %T", TagStruct, e.Key, e.Value)
		}

		ev, l, err := FromWire(em)
		if err != nil {
			return nil, false, fmt.Errorf("%s field %q: %w", TagStruct, e.Key, err)
		}

		fields[e.Key] = ev
		lossy = lossy || l
	}

	return structpb.NewStructValue(&structpb.Struct{Fields: fields}), lossy, nil
}

// Wire carries a value through encoding/json in the console wire form.
type Wire struct {
	Value *structpb.Value
	// Lossy is set when decoding had to fall back to the legacy heuristic.
	Lossy bool
	// Raw is the legacy form a lossy Value was read from. MarshalJSON writes
	// it back in place of Value, so clear it when replacing Value.
	Raw map[string]any
}

// NewWire wraps v.
func NewWire(v *structpb.Value) *Wire {
	return &Wire{Value: v}
}

// MarshalJSON implements json.Marshaler.
func (w Wire) MarshalJSON() ([]byte, error) {
	if w.Raw != nil {
		return json.Marshal(w.Raw)
	}

	return json.Marshal(ToWire(w.Value))
}

// UnmarshalJSON implements json.Unmarshaler.
func (w *Wire) UnmarshalJSON(data []byte) error {
	var m map[string]any

	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("value must be an object: %w", err)
	}

	if m == nil {
		return errors.New("value must be an object, got null")
	}

	v, lossy, err := FromWire(m)
	if err != nil {
		return err
	}

	w.Value = v
	w.Lossy = lossy
	w.Raw = nil

	if lossy {
		w.Raw = m
	}

	return nil
}

// Native returns the plain form of the wrapped value.
func (w *Wire) Native() any {
	if w == nil {
		return nil
	}

	return Decode(w.Value)
}
