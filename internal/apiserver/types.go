package apiserver

import (
	"resolver-wizard/internal/graphqlapi"
	"resolver-wizard/internal/resolver"
)

// Upstream is a routing target a resolver can call.
type Upstream struct {
	Metadata graphqlapi.ObjectMeta `json:"metadata"`
}

// Ref returns the reference stored in a resolver.
func (u Upstream) Ref() resolver.ResourceRef {
	return resolver.ResourceRef{Name: u.Metadata.Name, Namespace: u.Metadata.Namespace}
}

// ID returns the "name::namespace" id of the upstream.
func (u Upstream) ID() string {
	return resolver.UpstreamID(u.Ref())
}

type getGraphqlApiRequest struct {
	GraphqlApiRef graphqlapi.ClusterObjectRef `json:"graphqlApiRef"`
}

type graphqlApiResponse struct {
	GraphqlApi *graphqlapi.GraphqlApi `json:"graphqlApi"`
}

type updateGraphqlApiRequest struct {
	GraphqlApiRef graphqlapi.ClusterObjectRef `json:"graphqlApiRef"`
	Spec          graphqlapi.GraphQLApiSpec   `json:"spec"`
}

type validateSchemaDefinitionRequest struct {
	Spec graphqlapi.GraphQLApiSpec `json:"spec"`
}

type listUpstreamsRequest struct{}

type listUpstreamsResponse struct {
	Upstreams []Upstream `json:"upstreams"`
}
