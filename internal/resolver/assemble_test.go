package resolver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"

	"resolver-wizard/internal/diagnostic"
	"resolver-wizard/internal/dynvalue"
	"resolver-wizard/internal/pairs"
)

func wire(t *testing.T, native any) *dynvalue.Wire {
	t.Helper()

	v, err := structpb.NewValue(native)
	require.NoError(t, err)

	return dynvalue.NewWire(v)
}

func TestAssembleREST(t *testing.T) {
	in := Input{
		Config:   "request:\n  headers:\n    x-foo: '1'\nresponse:\n  resultRoot: data",
		Kind:     KindREST,
		Field:    "pets",
		Upstream: "petstore::gloo-system",
		Extras:   Extras{ObjectType: "Query", ReturnType: "[Pet]", ResolverName: "Query|pets", IsNew: true},
	}

	item, diags, err := NewAssembler().Assemble(in)
	require.NoError(t, err)
	assert.False(t, diags.HasWarnings())

	assert.Equal(t, KindREST, item.Kind)
	assert.Equal(t, "pets", item.Field)
	assert.Equal(t, "Query", item.ObjectType)
	assert.Equal(t, "[Pet]", item.ReturnType)
	assert.Equal(t, "Query|pets", item.ResolverName)
	assert.True(t, item.IsNew)
	assert.Equal(t, ResourceRef{Name: "petstore", Namespace: "gloo-system"}, item.UpstreamRef)

	require.NotNil(t, item.Request)
	assert.Equal(t, pairs.List[string]{{Key: "x-foo", Value: "1"}}, item.Request.HeadersMap)
	assert.Nil(t, item.Request.QueryParamsMap)
	assert.Nil(t, item.Request.Body)

	require.NotNil(t, item.Response)
	assert.Equal(t, "data", item.Response.ResultRoot)
	assert.Nil(t, item.GrpcRequest)
	assert.Nil(t, item.MockResolver)
}

func TestAssembleRESTWrapperAndBody(t *testing.T) {
	in := Input{
		Config: `
restResolver:
  request:
    headers:
      ":method": POST
    body:
      name: "{$args.name}"
      tags: [a, b]
  spanName: create
`,
		Kind: KindREST,
	}

	item, _, err := NewAssembler().Assemble(in)
	require.NoError(t, err)

	assert.Equal(t, "create", item.SpanName)
	assert.Equal(t, pairs.List[string]{{Key: ":method", Value: "POST"}}, item.Request.HeadersMap)
	assert.Empty(t, cmp.Diff(
		wire(t, map[string]any{"name": "{$args.name}", "tags": []any{"a", "b"}}),
		item.Request.Body,
		protocmp.Transform()))
	assert.Nil(t, item.Response)
}

func TestAssembleGRPC(t *testing.T) {
	in := Input{
		Config: `
requestTransform:
  serviceName: pets.PetService
  methodName: GetPet
  requestMetadata:
    auth: token
  outgoingMessageJson:
    id: "{$parent.id}"
    verbose: false
spanName: getPet
`,
		Kind:     KindGRPC,
		Field:    "pet",
		Upstream: "pets-grpc::default",
	}

	item, _, err := NewAssembler().Assemble(in)
	require.NoError(t, err)

	require.NotNil(t, item.GrpcRequest)
	assert.Equal(t, "pets.PetService", item.GrpcRequest.ServiceName)
	assert.Equal(t, "GetPet", item.GrpcRequest.MethodName)
	assert.Equal(t, pairs.List[string]{{Key: "auth", Value: "token"}}, item.GrpcRequest.RequestMetadataMap)
	assert.Equal(t, map[string]any{"id": "{$parent.id}", "verbose": false}, item.GrpcRequest.OutgoingMessageJSON.Native())
	assert.Equal(t, "getPet", item.SpanName)
	assert.Nil(t, item.Request)
}

func TestAssembleMock(t *testing.T) {
	tests := []struct {
		name     string
		config   string
		expected *MockResolver
	}{
		{
			name:     "bare value becomes syncResponse",
			config:   "name: Rex\nage: 3\ngood: true",
			expected: &MockResolver{SyncResponse: wire(t, map[string]any{"name": "Rex", "age": 3.0, "good": true})},
		},
		{
			name:     "bare scalar",
			config:   "hello",
			expected: &MockResolver{SyncResponse: wire(t, "hello")},
		},
		{
			name:     "explicit false survives",
			config:   "syncResponse: false",
			expected: &MockResolver{SyncResponse: wire(t, false)},
		},
		{
			name:     "list",
			config:   "- 1\n- 0\n- true",
			expected: &MockResolver{SyncResponse: wire(t, []any{1.0, 0.0, true})},
		},
		{
			name:     "error response",
			config:   "errorResponse: not found",
			expected: &MockResolver{ErrorResponse: "not found"},
		},
		{
			name:   "async response",
			config: "mockResolver:\n  asyncResponse:\n    response: [1]\n    delay:\n      seconds: 2",
			expected: &MockResolver{AsyncResponse: &AsyncResponse{
				Response: wire(t, []any{1.0}),
				Delay:    &Duration{Seconds: 2},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, _, err := NewAssembler().Assemble(Input{Config: tt.config, Kind: KindMock})
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, item.MockResolver, protocmp.Transform()))
		})
	}
}

func TestAssembleInvalidYAML(t *testing.T) {
	item, _, err := NewAssembler().Assemble(Input{Config: "request: {", Kind: KindREST})
	require.ErrorIs(t, err, ErrInvalidYAML)
	assert.Nil(t, item)
	assert.Contains(t, err.Error(), "config is not valid YAML")
}

func TestAssembleEmptyConfig(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		config string
		keys   string
	}{
		{"blank", KindREST, "", `"request", "response", "spanName"`},
		{"template", KindREST, DefaultTemplate(KindREST), `"request", "response", "spanName"`},
		{"grpc template", KindGRPC, DefaultTemplate(KindGRPC), `"requestTransform", "spanName"`},
		{"only unknown keys", KindGRPC, "service: x", `"requestTransform", "spanName"`},
		{"mock template", KindMock, DefaultTemplate(KindMock), `"syncResponse", "asyncResponse", "errorResponse"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, _, err := NewAssembler().Assemble(Input{Config: tt.config, Kind: tt.kind})
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, item)
			assert.Contains(t, err.Error(), "start with these root properties: "+tt.keys)
		})
	}
}

func TestAssembleUnknownKeysWarn(t *testing.T) {
	item, diags, err := NewAssembler().Assemble(Input{
		Config: "response:\n  resultRot: data\n  resultRoot: data",
		Kind:   KindREST,
	})
	require.NoError(t, err)
	require.NotNil(t, item)

	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, []string{"resultRoot"}, diags.Warnings[0].Suggestions)
	assert.Equal(t, "response", diags.Warnings[0].Path)
}

func TestAssembleShapeErrors(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		config string
		code   string
	}{
		{"upstream in config", KindREST, "upstreamRef:\n  name: x\nresponse:\n  resultRoot: data", diagnostic.CodeUpstreamInConfig},
		{"header not a string", KindREST, "request:\n  headers:\n    x-foo: 1", diagnostic.CodeTypeMismatch},
		{"request not an object", KindREST, "request: GET", diagnostic.CodeNotAnObject},
		{"scalar document", KindGRPC, "hello", diagnostic.CodeNotAnObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, diags, err := NewAssembler().Assemble(Input{Config: tt.config, Kind: tt.kind})
			require.Error(t, err)
			assert.Nil(t, item)
			require.True(t, diags.HasErrors())
			assert.Equal(t, tt.code, diags.Errors[0].Code)
			assert.Equal(t, diags.Error().Error(), err.Error())
		})
	}
}

func TestAssembleUnknownKind(t *testing.T) {
	_, _, err := NewAssembler().Assemble(Input{Config: "a: b"})
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestAssembleIsPure(t *testing.T) {
	in := Input{Config: "response:\n  resultRoot: data", Kind: KindREST, Upstream: "a::b"}
	a := NewAssembler()

	first, _, err := a.Assemble(in)
	require.NoError(t, err)

	second, _, err := a.Assemble(in)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, first, second)
}
