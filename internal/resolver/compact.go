package resolver

import (
	"fmt"
)

// NormalizeKeys converts YAML maps with non-string keys into string-keyed
// maps, recursively.
func NormalizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = NormalizeKeys(e)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = NormalizeKeys(e)
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = NormalizeKeys(e)
		}

		return out
	default:
		return v
	}
}

// Compact removes nulls and empty strings, then any object or list left
// empty, at every level. false and 0 are kept. The top level value is
// compacted but never removed.
func Compact(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))

		for k, e := range t {
			if c := Compact(e); !isBlank(c) {
				out[k] = c
			}
		}

		return out
	case []any:
		out := make([]any, 0, len(t))

		for _, e := range t {
			if c := Compact(e); !isBlank(c) {
				out = append(out, c)
			}
		}

		return out
	default:
		return v
	}
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}
