package graphqlapi

import (
	"encoding/json"
	"errors"
	"fmt"

	"resolver-wizard/internal/pairs"
	"resolver-wizard/internal/resolver"
)

var (
	// ErrNotExecutable is returned for APIs that stitch other APIs together
	// instead of defining resolvers.
	ErrNotExecutable = errors.New("graphql api does not have an executable schema")
	// ErrFieldNotFound is returned when a type or field is not in the schema.
	ErrFieldNotFound = errors.New("field not found in schema")
)

// ClusterObjectRef identifies an API, optionally on a remote cluster.
type ClusterObjectRef struct {
	Name        string `json:"name"`
	Namespace   string `json:"namespace"`
	ClusterName string `json:"clusterName,omitempty"`
}

func (r ClusterObjectRef) String() string {
	s := r.Namespace + "/" + r.Name
	if r.ClusterName != "" {
		s = r.ClusterName + ":" + s
	}

	return s
}

// ObjectMeta is the metadata of a control plane resource.
type ObjectMeta struct {
	Name        string `json:"name"`
	Namespace   string `json:"namespace"`
	ClusterName string `json:"clusterName,omitempty"`
}

// GraphqlApi is a GraphQL API resource.
type GraphqlApi struct {
	Metadata ObjectMeta     `json:"metadata"`
	Spec     GraphQLApiSpec `json:"spec"`
}

// GraphQLApiSpec holds exactly one of an executable or a stitched schema.
type GraphQLApiSpec struct {
	ExecutableSchema *ExecutableSchema `json:"executableSchema,omitempty"`
	StitchedSchema   *StitchedSchema   `json:"stitchedSchema,omitempty"`
}

// ExecutableSchema is a schema whose fields are resolved directly.
type ExecutableSchema struct {
	SchemaDefinition       string                  `json:"schemaDefinition"`
	Executor               *Executor               `json:"executor,omitempty"`
	GrpcDescriptorRegistry *GrpcDescriptorRegistry `json:"grpcDescriptorRegistry,omitempty"`
}

type Executor struct {
	Local *LocalExecutor `json:"local,omitempty"`
}

type LocalExecutor struct {
	ResolutionsMap      pairs.List[*resolver.Resolution] `json:"resolutionsMap,omitempty"`
	EnableIntrospection bool                             `json:"enableIntrospection,omitempty"`
}

// GrpcDescriptorRegistry carries the proto descriptors gRPC resolvers use.
type GrpcDescriptorRegistry struct {
	// ProtoDescriptor is a path on the gateway.
	ProtoDescriptor string `json:"protoDescriptor,omitempty"`
	// ProtoDescriptorBin is a base64 encoded FileDescriptorSet.
	ProtoDescriptorBin string `json:"protoDescriptorBin,omitempty"`
}

// StitchedSchema merges other APIs. It is carried but never edited here.
type StitchedSchema struct {
	SubschemasList []SubschemaRef `json:"subschemasList,omitempty"`
}

type SubschemaRef struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

// Ref returns the reference used to address the API in remote calls.
func (a *GraphqlApi) Ref() ClusterObjectRef {
	return ClusterObjectRef{
		Name:        a.Metadata.Name,
		Namespace:   a.Metadata.Namespace,
		ClusterName: a.Metadata.ClusterName,
	}
}

// Executable returns the executable schema, or ErrNotExecutable.
func (a *GraphqlApi) Executable() (*ExecutableSchema, error) {
	if a == nil || a.Spec.ExecutableSchema == nil {
		return nil, ErrNotExecutable
	}

	return a.Spec.ExecutableSchema, nil
}

// Resolutions returns the resolution map keyed by resolver name.
func (s *ExecutableSchema) Resolutions() map[string]*resolver.Resolution {
	if s.Executor == nil || s.Executor.Local == nil {
		return map[string]*resolver.Resolution{}
	}

	return pairs.ToObject(s.Executor.Local.ResolutionsMap)
}

// Resolution returns the resolution stored under name.
func (s *ExecutableSchema) Resolution(name string) (*resolver.Resolution, bool) {
	if s.Executor == nil || s.Executor.Local == nil {
		return nil, false
	}

	return s.Executor.Local.ResolutionsMap.Get(name)
}

func (s *ExecutableSchema) setResolution(name string, res *resolver.Resolution) {
	if s.Executor == nil {
		s.Executor = &Executor{}
	}

	if s.Executor.Local == nil {
		s.Executor.Local = &LocalExecutor{}
	}

	m := s.Executor.Local.ResolutionsMap
	for i := range m {
		if m[i].Key == name {
			m[i].Value = res
			return
		}
	}

	s.Executor.Local.ResolutionsMap = append(m, pairs.Pair[*resolver.Resolution]{Key: name, Value: res})
}

func (s *ExecutableSchema) removeResolution(name string) bool {
	if s.Executor == nil || s.Executor.Local == nil {
		return false
	}

	m := s.Executor.Local.ResolutionsMap
	out := m[:0:0]

	for _, p := range m {
		if p.Key != name {
			out = append(out, p)
		}
	}

	s.Executor.Local.ResolutionsMap = out

	return len(out) != len(m)
}

// Clone deep copies the API.
func (a *GraphqlApi) Clone() (*GraphqlApi, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to copy graphql api: %w", err)
	}

	var out GraphqlApi
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to copy graphql api: %w", err)
	}

	return &out, nil
}
