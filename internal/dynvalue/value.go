package dynvalue

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"resolver-wizard/internal/common"
)

// Decode converts a value tree to plain Go values: nil, float64, string,
// bool, []any and map[string]any. A nil value decodes to nil.
func Decode(v *structpb.Value) any {
	switch k := v.GetKind().(type) {
	case *structpb.Value_ListValue:
		values := k.ListValue.GetValues()
		out := make([]any, len(values))

		for i, e := range values {
			out[i] = Decode(e)
		}

		return out
	case *structpb.Value_StructValue:
		fields := k.StructValue.GetFields()
		out := make(map[string]any, len(fields))

		for name, e := range fields {
			out[name] = Decode(e)
		}

		return out
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_NumberValue:
		return k.NumberValue
	case *structpb.Value_BoolValue:
		return k.BoolValue
	default:
		return nil
	}
}

// Encode converts a plain value, as produced by a YAML or JSON decoder, to a
// value tree. Maps with non-string keys use the keys' default formatting.
func Encode(native any) (*structpb.Value, error) {
	switch v := native.(type) {
	case nil:
		return structpb.NewNullValue(), nil
	case *structpb.Value:
		return v, nil
	case string:
		return structpb.NewStringValue(v), nil
	case bool:
		return structpb.NewBoolValue(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", v.String(), err)
		}

		return structpb.NewNumberValue(f), nil
	case time.Time:
		return structpb.NewStringValue(v.Format(time.RFC3339Nano)), nil
	case []any:
		values := make([]*structpb.Value, len(v))

		for i, e := range v {
			ev, err := Encode(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}

			values[i] = ev
		}

		return structpb.NewListValue(&structpb.ListValue{Values: values}), nil
	case map[string]any:
		return encodeStruct(v)
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[fmt.Sprint(k)] = e
		}

		return encodeStruct(m)
	}

	if f, ok := AsNumber(native); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("number %v cannot be represented", f)
		}

		return structpb.NewNumberValue(f), nil
	}

	return nil, fmt.Errorf("unsupported value type %T", native)
}

func encodeStruct(m map[string]any) (*structpb.Value, error) {
	fields := make(map[string]*structpb.Value, len(m))

	for _, k := range common.SortedKeys(m) {
		ev, err := Encode(m[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}

		fields[k] = ev
	}

	return structpb.NewStructValue(&structpb.Struct{Fields: fields}), nil
}

// AsNumber reports whether v is of a Go numeric kind and returns it as a float64.
func AsNumber(v any) (float64, bool) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
