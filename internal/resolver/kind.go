package resolver

import (
	"fmt"
	"strings"

	"resolver-wizard/internal/schema"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the resolver variant.
type Kind int

const (
	_ Kind = iota // zero value means no kind selected

	KindREST // REST
	KindGRPC // gRPC
	KindMock // Mock
)

// Kinds lists every valid kind in display order.
var Kinds = []Kind{KindREST, KindGRPC, KindMock}

// ParseKind reads a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(k.String(), s) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q (want one of REST, gRPC, Mock)", ErrUnknownKind, s)
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= KindREST && k <= KindMock
}

// Key returns the property that wraps this kind inside a Resolution.
func (k Kind) Key() string {
	switch k {
	case KindREST:
		return "restResolver"
	case KindGRPC:
		return "grpcResolver"
	case KindMock:
		return "mockResolver"
	default:
		return ""
	}
}

// TypeName returns the schema type describing this kind's resolver.
func (k Kind) TypeName() string {
	switch k {
	case KindREST:
		return schema.TypeRESTResolver
	case KindGRPC:
		return schema.TypeGrpcResolver
	case KindMock:
		return schema.TypeMockResolver
	default:
		return ""
	}
}

// NeedsUpstream reports whether resolvers of this kind call an upstream.
func (k Kind) NeedsUpstream() bool {
	return k == KindREST || k == KindGRPC
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}
