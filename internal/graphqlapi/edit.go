package graphqlapi

import (
	"fmt"

	"resolver-wizard/internal/resolver"
)

// ResolverName returns the name the item's resolution is stored under: the
// item's own name, else the field's current @resolve name, else the default.
func ResolverName(schema *Schema, item *resolver.Item) string {
	if item.ResolverName != "" {
		return item.ResolverName
	}

	if schema != nil {
		if f, err := schema.Field(item.ObjectType, item.Field); err == nil && f.ResolverName != "" {
			return f.ResolverName
		}
	}

	return DefaultResolverName(item.ObjectType, item.Field)
}

// WithResolver returns a copy of api with the item's resolution attached to
// its field. A non-empty protoDescriptor (base64 FileDescriptorSet) replaces
// the API's descriptor.
func WithResolver(api *GraphqlApi, item *resolver.Item, protoDescriptor string) (*GraphqlApi, error) {
	out, exec, schema, err := prepare(api)
	if err != nil {
		return nil, err
	}

	name := ResolverName(schema, item)

	changed, err := schema.SetResolver(item.ObjectType, item.Field, name)
	if err != nil {
		return nil, err
	}

	if changed {
		exec.SchemaDefinition = schema.String()
	}

	exec.setResolution(name, item.Resolution())

	if protoDescriptor != "" {
		if exec.GrpcDescriptorRegistry == nil {
			exec.GrpcDescriptorRegistry = &GrpcDescriptorRegistry{}
		}

		exec.GrpcDescriptorRegistry.ProtoDescriptor = ""
		exec.GrpcDescriptorRegistry.ProtoDescriptorBin = protoDescriptor
	}

	return out, nil
}

// WithoutResolver returns a copy of api with the item's field unresolved.
func WithoutResolver(api *GraphqlApi, item *resolver.Item) (*GraphqlApi, error) {
	out, exec, schema, err := prepare(api)
	if err != nil {
		return nil, err
	}

	name := ResolverName(schema, item)

	changed, err := schema.RemoveResolver(item.ObjectType, item.Field)
	if err != nil {
		return nil, err
	}

	if changed {
		exec.SchemaDefinition = schema.String()
	}

	exec.removeResolution(name)

	return out, nil
}

func prepare(api *GraphqlApi) (*GraphqlApi, *ExecutableSchema, *Schema, error) {
	if _, err := api.Executable(); err != nil {
		return nil, nil, nil, err
	}

	out, err := api.Clone()
	if err != nil {
		return nil, nil, nil, err
	}

	exec := out.Spec.ExecutableSchema

	schema, err := ParseSchema(exec.SchemaDefinition)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("graphql api %s: %w", api.Ref(), err)
	}

	return out, exec, schema, nil
}
