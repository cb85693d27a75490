package pairs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToObject(t *testing.T) {
	tests := []struct {
		name     string
		in       List[string]
		expected map[string]string
	}{
		{
			name:     "empty",
			in:       nil,
			expected: map[string]string{},
		},
		{
			name:     "headers",
			in:       List[string]{{":method", "GET"}, {"x-foo", "1"}},
			expected: map[string]string{":method": "GET", "x-foo": "1"},
		},
		{
			name:     "last duplicate wins",
			in:       List[string]{{"x-foo", "1"}, {"x-bar", "2"}, {"x-foo", "3"}},
			expected: map[string]string{"x-foo": "3", "x-bar": "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToObject(tt.in)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	objects := []map[string]any{
		{},
		{"a": "1"},
		{"z": 1.5, "a": true, "m": nil, "nested": map[string]any{"k": "v"}},
	}

	for _, o := range objects {
		assert.Equal(t, o, ToObject(FromObject(o)))
	}

	unique := List[string]{{"a", "1"}, {"b", "2"}}
	assert.Equal(t, unique, FromObject(ToObject(unique)))
}

func TestFromObjectIsSorted(t *testing.T) {
	l := FromObject(map[string]int{"setters": 1, "body": 2, "headers": 3})
	assert.Equal(t, []string{"body", "headers", "setters"}, l.Keys())
}

func TestGet(t *testing.T) {
	l := List[string]{{"x", "1"}, {"x", "2"}}

	v, ok := l.Get("x")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = l.Get("y")
	assert.False(t, ok)
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal(List[string]{{"x-foo", "1"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[["x-foo","1"]]`, string(data))

	data, err = json.Marshal(List[string](nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	var l List[string]
	require.NoError(t, json.Unmarshal([]byte(`[["a","1"],["b","2"]]`), &l))
	assert.Equal(t, List[string]{{"a", "1"}, {"b", "2"}}, l)

	require.Error(t, json.Unmarshal([]byte(`[["a"]]`), &l))
	require.Error(t, json.Unmarshal([]byte(`[[1,"a"]]`), &l))
	require.Error(t, json.Unmarshal([]byte(`[{"a":"b"}]`), &l))
}

func TestParse(t *testing.T) {
	l, err := Parse([]any{[]any{"x-foo", "1"}, []any{"x-bar", 2.0}})
	require.NoError(t, err)
	assert.Equal(t, List[any]{{"x-foo", "1"}, {"x-bar", 2.0}}, l)

	l, err = Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, l)

	_, err = Parse(map[string]any{"x": 1})
	require.Error(t, err)

	_, err = Parse([]any{[]any{"only-key"}})
	require.Error(t, err)

	_, err = Parse([]any{[]any{1, "v"}})
	require.Error(t, err)
}

func TestMap(t *testing.T) {
	l := Map(List[int]{{"a", 1}, {"b", 2}}, func(v int) string { return string(rune('0' + v)) })
	assert.Equal(t, List[string]{{"a", "1"}, {"b", "2"}}, l)
}
