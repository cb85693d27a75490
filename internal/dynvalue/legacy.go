package dynvalue

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// legacyScalarOrder is the order in which scalar tags are tried.
var legacyScalarOrder = []string{TagString, TagNumber, TagBool, TagNull}

// legacyDecode resolves a value whose tag cannot be read directly: a list
// wins, then a struct, then the first scalar tag holding a truthy value.
// When nothing is truthy the result is the number 0. The result is always
// reported as lossy since an explicit false, 0, "" or null is indistinguishable
// from an unset tag in this form.
func legacyDecode(m map[string]any) (*structpb.Value, bool, error) {
	if lm, ok := m[TagList].(map[string]any); ok && lm[listValuesKey] != nil {
		v, _, err := listFromWire(lm)

		return v, true, err
	}

	if sm, ok := m[TagStruct].(map[string]any); ok && sm[structFieldsKey] != nil {
		v, _, err := structFromWire(sm)

		return v, true, err
	}

	for _, tag := range legacyScalarOrder {
		raw, ok := m[tag]
		if !ok || !truthy(raw) {
			continue
		}

		switch tag {
		case TagString:
			if s, ok := raw.(string); ok {
				return structpb.NewStringValue(s), true, nil
			}
		case TagNumber:
			if f, ok := AsNumber(raw); ok {
				return structpb.NewNumberValue(f), true, nil
			}
		case TagBool:
			if b, ok := raw.(bool); ok {
				return structpb.NewBoolValue(b), true, nil
			}
		default:
			return structpb.NewNullValue(), true, nil
		}
	}

	return structpb.NewNumberValue(0), true, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	}

	if f, ok := AsNumber(v); ok {
		return f != 0
	}

	return true
}
