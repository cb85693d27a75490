package schema

import (
	"strings"
)

// Path is a dotted location inside a configuration object, such as
// "request.headers". The zero value is the root.
type Path []string

// ParsePath splits a dotted path. An empty string is the root.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}

	return strings.Split(s, ".")
}

// Child returns the path of the named key below p.
func (p Path) Child(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)

	return append(out, name)
}

// IsRoot reports whether p is the root path.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Last returns the final segment, or "" for the root.
func (p Path) Last() string {
	if p.IsRoot() {
		return ""
	}

	return p[len(p)-1]
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Lookup follows p through nested string-keyed maps.
func (p Path) Lookup(obj any) (any, bool) {
	cur := obj

	for _, seg := range p {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}

		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}

	return cur, true
}
