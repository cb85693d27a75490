package pairs

import (
	"encoding/json"
	"fmt"

	"resolver-wizard/internal/common"
)

// Pair is one entry of a map field on the wire.
type Pair[V any] struct {
	Key   string
	Value V
}

// List is the wire form of a protobuf map field.
type List[V any] []Pair[V]

// ToObject folds the list into a map; later duplicates overwrite earlier ones.
func ToObject[V any](l List[V]) map[string]V {
	out := make(map[string]V, len(l))

	for _, p := range l {
		out[p.Key] = p.Value
	}

	return out
}

// FromObject emits one pair per key of m, sorted by key.
func FromObject[V any](m map[string]V) List[V] {
	out := make(List[V], 0, len(m))

	for _, k := range common.SortedKeys(m) {
		out = append(out, Pair[V]{Key: k, Value: m[k]})
	}

	return out
}

// Get returns the value of the last pair with the given key.
func (l List[V]) Get(key string) (V, bool) {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].Key == key {
			return l[i].Value, true
		}
	}

	var zero V

	return zero, false
}

// Keys returns the keys in list order, duplicates included.
func (l List[V]) Keys() []string {
	keys := make([]string, len(l))
	for i, p := range l {
		keys[i] = p.Key
	}

	return keys
}

// MarshalJSON writes a nil list as [] rather than null.
func (l List[V]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}

	return json.Marshal([]Pair[V](l))
}

// MarshalJSON writes the pair as a two element array.
func (p Pair[V]) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Key, p.Value})
}

// UnmarshalJSON reads a two element [key, value] array.
func (p *Pair[V]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("map entry must be a [key, value] array: %w", err)
	}

	if len(raw) != 2 {
		return fmt.Errorf("map entry must have 2 elements, got %d", len(raw))
	}

	if err := json.Unmarshal(raw[0], &p.Key); err != nil {
		return fmt.Errorf("map entry key must be a string: %w", err)
	}

	if err := json.Unmarshal(raw[1], &p.Value); err != nil {
		return fmt.Errorf("map entry %q: %w", p.Key, err)
	}

	return nil
}

// Parse reads a list from a generic decoded JSON value: nil or a []any of
// two element []any entries with string keys. A List[any] is returned as is.
func Parse(raw any) (List[any], error) {
	var entries []any

	switch v := raw.(type) {
	case nil:
		return List[any]{}, nil
	case List[any]:
		return v, nil
	case []any:
		entries = v
	default:
		return nil, fmt.Errorf("expected a list of [key, value] pairs, got %T", raw)
	}

	out := make(List[any], 0, len(entries))

	for i, e := range entries {
		entry, ok := e.([]any)
		if !ok || len(entry) != 2 {
			return nil, fmt.Errorf("entry %d is not a [key, value] pair", i)
		}

		key, ok := entry[0].(string)
		if !ok {
			return nil, fmt.Errorf("entry %d has a non-string key %v", i, entry[0])
		}

		out = append(out, Pair[any]{Key: key, Value: entry[1]})
	}

	return out, nil
}

// Map applies fn to every value, keeping keys and order.
func Map[V, W any](l List[V], fn func(V) W) List[W] {
	out := make(List[W], len(l))
	for i, p := range l {
		out[i] = Pair[W]{Key: p.Key, Value: fn(p.Value)}
	}

	return out
}
