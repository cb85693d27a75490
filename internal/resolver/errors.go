package resolver

import "errors"

var (
	// ErrInvalidYAML is returned when the configuration text does not parse.
	ErrInvalidYAML = errors.New("config is not valid YAML")
	// ErrInvalidConfig is returned when nothing usable is left after parsing.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnknownKind is returned for a kind outside REST, gRPC and Mock.
	ErrUnknownKind = errors.New("unknown resolver type")
)
