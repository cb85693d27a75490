package resolver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"resolver-wizard/internal/diagnostic"
	"resolver-wizard/internal/schema"
)

const upstreamRefKey = "upstreamRef"

// mockResponseKeys are the properties that select how a mock responds.
var mockResponseKeys = []string{"syncResponse", "asyncResponse", "errorResponse"}

// Extras carries the target field details that travel with an item.
type Extras struct {
	ObjectType   string
	ReturnType   string
	ResolverName string
	IsNew        bool
}

// Input is everything the wizard has collected for one submit.
type Input struct {
	Config   string
	Kind     Kind
	Field    string
	Upstream string
	Extras   Extras
}

// Assembler converts between resolver YAML and resolver objects.
type Assembler struct {
	registry *schema.Registry
	logger   *slog.Logger
}

// NewAssembler returns an Assembler configured by opts.
func NewAssembler(opts ...Option) *Assembler {
	options := NewOptions(opts...)

	return &Assembler{
		registry: options.Registry,
		logger:   options.Logger,
	}
}

// Assemble builds an Item from the wizard input. It performs no I/O.
//
// Unknown keys are dropped and reported as warnings. Values of the wrong
// shape, and an upstreamRef typed into the text, are errors: the returned
// error joins their messages and the item is nil.
func (a *Assembler) Assemble(in Input) (*Item, *diagnostic.Diagnostics, error) {
	diags := &diagnostic.Diagnostics{}

	if !in.Kind.Valid() {
		return nil, diags, fmt.Errorf("%w: %d", ErrUnknownKind, int(in.Kind))
	}

	doc, err := ParseConfig(in.Config)
	if err != nil {
		return nil, diags, err
	}

	doc = unwrap(doc, in.Kind)

	if m, ok := doc.(map[string]any); ok {
		if _, ok := m[upstreamRefKey]; ok {
			diags.AddError(diagnostic.CodeUpstreamInConfig,
				"upstreamRef is set by the upstream step and cannot be part of the configuration; remove it to continue.",
				upstreamRefKey)

			return nil, diags, diags.Error()
		}
	}

	var parsed map[string]any

	if !isBlank(doc) {
		var walk *diagnostic.Diagnostics

		parsed, walk = a.registry.PreMarshal(doc, in.Kind.TypeName())
		diags.Merge(walk)

		if diags.HasErrors() {
			return nil, diags, diags.Error()
		}
	}

	if len(parsed) == 0 {
		return nil, diags, fmt.Errorf("%w: start with these root properties: %s",
			ErrInvalidConfig, quoted(a.registry.ValidKeys(in.Kind.TypeName())))
	}

	item := &Item{
		Kind:         in.Kind,
		Field:        in.Field,
		ObjectType:   in.Extras.ObjectType,
		ReturnType:   in.Extras.ReturnType,
		ResolverName: in.Extras.ResolverName,
		IsNew:        in.Extras.IsNew,
		UpstreamRef:  ParseUpstreamID(in.Upstream),
	}

	if err := fill(item, parsed); err != nil {
		return nil, diags, err
	}

	a.logger.Debug("assembled resolver",
		"kind", in.Kind.String(),
		"field", in.Field,
		"upstream", item.UpstreamRef.String(),
		"warnings", len(diags.Warnings))

	return item, diags, nil
}

// ParseConfig parses configuration text into string-keyed plain values with
// nulls and empties removed. Blank text yields nil.
func ParseConfig(text string) (any, error) {
	var doc any

	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	doc = Compact(NormalizeKeys(doc))
	if isBlank(doc) {
		return nil, nil
	}

	return doc, nil
}

// unwrap strips a restResolver/grpcResolver/mockResolver wrapper and gives a
// bare mock value its syncResponse key.
func unwrap(doc any, k Kind) any {
	if m, ok := doc.(map[string]any); ok {
		if inner, ok := m[k.Key()]; ok {
			doc = inner
		}
	}

	if k != KindMock || doc == nil {
		return doc
	}

	if m, ok := doc.(map[string]any); ok {
		for _, key := range mockResponseKeys {
			if _, ok := m[key]; ok {
				return doc
			}
		}
	}

	return map[string]any{mockResponseKeys[0]: doc}
}

// fill decodes the wire form into the item's kind-specific fields.
func fill(item *Item, parsed map[string]any) error {
	data, err := json.Marshal(parsed)
	if err != nil {
		return fmt.Errorf("failed to encode %s resolver: %w", item.Kind, err)
	}

	switch item.Kind {
	case KindREST:
		var r RESTResolver
		if err := json.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("failed to decode REST resolver: %w", err)
		}

		item.Request = r.Request
		item.Response = r.Response
		item.SpanName = r.SpanName
	case KindGRPC:
		var r GrpcResolver
		if err := json.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("failed to decode gRPC resolver: %w", err)
		}

		item.GrpcRequest = r.RequestTransform
		item.SpanName = r.SpanName
	case KindMock:
		var r MockResolver
		if err := json.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("failed to decode Mock resolver: %w", err)
		}

		item.MockResolver = &r
	}

	return nil
}

func quoted(keys []string) string {
	return `"` + strings.Join(keys, `", "`) + `"`
}
