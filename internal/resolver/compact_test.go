package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompact(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		expected any
	}{
		{
			name: "nested empties",
			in: map[string]any{
				"request": map[string]any{
					"headers":     nil,
					"queryParams": map[string]any{},
					"body":        "",
				},
				"response": map[string]any{"resultRoot": "data", "setters": nil},
			},
			expected: map[string]any{"response": map[string]any{"resultRoot": "data"}},
		},
		{
			name:     "falsy scalars kept",
			in:       map[string]any{"a": false, "b": 0, "c": 0.0},
			expected: map[string]any{"a": false, "b": 0, "c": 0.0},
		},
		{
			name:     "list elements",
			in:       []any{1, nil, "", []any{}, map[string]any{"x": nil}, "ok"},
			expected: []any{1, "ok"},
		},
		{
			name:     "top level kept",
			in:       map[string]any{"a": nil},
			expected: map[string]any{},
		},
		{
			name:     "scalar",
			in:       "x",
			expected: "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compact(tt.in))
		})
	}
}

func TestNormalizeKeys(t *testing.T) {
	in := map[string]any{
		"setters": map[any]any{1: "one", true: "yes"},
		"list":    []any{map[any]any{"k": "v"}},
	}

	expected := map[string]any{
		"setters": map[string]any{"1": "one", "true": "yes"},
		"list":    []any{map[string]any{"k": "v"}},
	}

	assert.Equal(t, expected, NormalizeKeys(in))
}
