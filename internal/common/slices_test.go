package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnpack2(t *testing.T) {
	tests := []struct {
		name   string
		in     []string
		first  string
		second string
	}{
		{"empty", nil, "", ""},
		{"single", []string{"petstore"}, "petstore", ""},
		{"pair", []string{"petstore", "gloo-system"}, "petstore", "gloo-system"},
		{"extra ignored", []string{"a", "b", "c"}, "a", "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second := Unpack2(tt.in)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.second, second)
		})
	}
}

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[string]int{"setters": 1, "body": 2, "headers": 3})
	assert.Equal(t, []string{"body", "headers", "setters"}, keys)

	assert.Empty(t, SortedKeys(map[string]int{}))
}

func TestWithout(t *testing.T) {
	in := []string{"upstreamRef", "request", "response", "upstreamRef"}
	assert.Equal(t, []string{"request", "response"}, Without(in, "upstreamRef"))
	assert.Len(t, in, 4)
}

func TestFirst(t *testing.T) {
	v, ok := First([]int{})
	assert.False(t, ok)
	assert.Zero(t, v)

	v, ok = First([]int{7, 8})
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	assert.True(t, IsEmpty([]int(nil)))
}
