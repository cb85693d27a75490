package resolver

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/testing/protocmp"
	"gopkg.in/yaml.v3"

	"resolver-wizard/internal/diagnostic"
	"resolver-wizard/internal/pairs"
)

func TestDisassembleDefaults(t *testing.T) {
	a := NewAssembler()

	tests := []struct {
		kind Kind
		keys []string
	}{
		{KindREST, []string{"request", "response"}},
		{KindGRPC, []string{"requestTransform"}},
		{KindMock, []string{"syncResponse"}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			text := a.Disassemble(nil, tt.kind)
			assert.Equal(t, DefaultTemplate(tt.kind), text)

			var doc map[string]any
			require.NoError(t, yaml.Unmarshal([]byte(text), &doc))

			for _, k := range tt.keys {
				assert.Contains(t, doc, k)
			}
		})
	}

	assert.Equal(t, DefaultTemplate(KindREST), a.Disassemble(nil, 0))
}

func TestDisassembleRESTHeaders(t *testing.T) {
	res := &Resolution{RestResolver: &RESTResolver{
		UpstreamRef: &ResourceRef{Name: "petstore", Namespace: "gloo-system"},
		Request: &RequestTemplate{
			HeadersMap: pairs.List[string]{{Key: "x-foo", Value: "1"}},
		},
	}}

	text := NewAssembler().Disassemble(res, KindREST)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(text), &doc))

	assert.Equal(t, map[string]any{
		"request": map[string]any{"headers": map[string]any{"x-foo": "1"}},
	}, doc)
	assert.NotContains(t, text, "upstreamRef")
}

func TestDisassembleYAMLShape(t *testing.T) {
	res := &Resolution{RestResolver: &RESTResolver{
		Request: &RequestTemplate{
			HeadersMap:     pairs.List[string]{{Key: "accept", Value: "application/json"}, {Key: "x-count", Value: "10"}},
			QueryParamsMap: pairs.List[string]{{Key: "limit", Value: "{$args.limit}"}},
			Body:           wire(t, map[string]any{"id": 7.0, "ratio": 0.5, "enabled": true}),
		},
		Response: &ResponseTemplate{ResultRoot: "data.pets[*]"},
		SpanName: "pets",
	}}

	expected := `request:
  body:
    enabled: true
    id: 7
    ratio: 0.5
  headers:
    accept: application/json
    x-count: "10"
  queryParams:
    limit: '{$args.limit}'
response:
  resultRoot: data.pets[*]
spanName: pets
`

	assert.Equal(t, expected, NewAssembler().Disassemble(res, KindREST))
}

func TestDisassembleFallsBackToTemplate(t *testing.T) {
	a := NewAssembler()

	tests := []struct {
		name string
		res  *Resolution
		kind Kind
	}{
		{"empty resolution", &Resolution{}, KindREST},
		{"only upstream", &Resolution{RestResolver: &RESTResolver{UpstreamRef: &ResourceRef{Name: "x"}}}, KindREST},
		{"empty nested", &Resolution{GrpcResolver: &GrpcResolver{RequestTransform: &GrpcRequestTemplate{}}}, KindGRPC},
		{"other variant", &Resolution{MockResolver: &MockResolver{ErrorResponse: "x"}}, KindREST},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, DefaultTemplate(tt.kind), a.Disassemble(tt.res, tt.kind))
		})
	}
}

func TestDisassembleDetectsKind(t *testing.T) {
	res := &Resolution{MockResolver: &MockResolver{ErrorResponse: "not found"}}

	assert.Equal(t, "errorResponse: not found\n", NewAssembler().Disassemble(res, 0))
}

func TestDisassembleMockKeepsFalsyValues(t *testing.T) {
	res := &Resolution{MockResolver: &MockResolver{
		SyncResponse: wire(t, map[string]any{"ok": false, "count": 0.0, "items": []any{"a"}}),
	}}

	text := NewAssembler().Disassemble(res, KindMock)
	assert.Equal(t, "syncResponse:\n  count: 0\n  items:\n    - a\n  ok: false\n", text)
}

func TestRenderKeepsPairsWithEmptyValues(t *testing.T) {
	res := &Resolution{RestResolver: &RESTResolver{
		Request: &RequestTemplate{
			HeadersMap: pairs.List[string]{{Key: "x-empty", Value: ""}, {Key: "x-foo", Value: "1"}},
		},
		Response: &ResponseTemplate{ResultRoot: "data"},
	}}

	text, diags := NewAssembler().Render(res, KindREST)
	require.False(t, diags.HasErrors(), diags.Summary())

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(text), &doc))

	assert.Equal(t, map[string]any{
		"request":  map[string]any{"headers": map[string]any{"x-foo": "1"}},
		"response": map[string]any{"resultRoot": "data"},
	}, doc)
}

func TestRenderMockStructWithEmptyString(t *testing.T) {
	res := &Resolution{MockResolver: &MockResolver{
		SyncResponse: wire(t, map[string]any{"name": "", "id": 3.0}),
	}}

	text, diags := NewAssembler().Render(res, KindMock)
	assert.False(t, diags.HasErrors(), diags.Summary())
	assert.False(t, diags.HasWarnings(), diags.Summary())
	assert.Equal(t, "syncResponse:\n  id: 3\n", text)
}

func TestDisassembleLegacyWire(t *testing.T) {
	data := `{"mockResolver":{"syncResponse":{"nullValue":0,"numberValue":0,"stringValue":"hi","boolValue":false}}}`

	var res Resolution
	require.NoError(t, json.Unmarshal([]byte(data), &res))
	assert.True(t, res.MockResolver.SyncResponse.Lossy)

	text, diags := NewAssembler().Render(&res, KindMock)
	assert.Equal(t, "syncResponse: hi\n", text)
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeLegacyValue, diags.Warnings[0].Code)
	assert.Equal(t, "syncResponse", diags.Warnings[0].Path)
}

func TestEncodeYAMLNulls(t *testing.T) {
	text, err := EncodeYAML(map[string]any{"b": nil, "a": []any{1, "2", 2.5}})
	require.NoError(t, err)
	assert.Equal(t, "a:\n  - 1\n  - \"2\"\n  - 2.5\nb:\n", text)
}

// Disassembling a resolution and assembling the text again gives back the
// same resolver for every kind.
func TestDisassembleAssembleRoundTrip(t *testing.T) {
	ref := ResourceRef{Name: "petstore", Namespace: "gloo-system"}

	tests := []struct {
		name string
		kind Kind
		res  *Resolution
	}{
		{
			name: "REST",
			kind: KindREST,
			res: &Resolution{RestResolver: &RESTResolver{
				UpstreamRef: &ref,
				Request: &RequestTemplate{
					HeadersMap:     pairs.List[string]{{Key: ":method", Value: "GET"}, {Key: ":path", Value: "/api/pets"}},
					QueryParamsMap: pairs.List[string]{{Key: "limit", Value: "10"}},
					Body:           wire(t, map[string]any{"filter": map[string]any{"tags": []any{"dog", 3.0}}}),
				},
				Response: &ResponseTemplate{
					ResultRoot: "data",
					SettersMap: pairs.List[string]{{Key: "name", Value: "{$body.name}"}},
				},
				SpanName: "pets",
			}},
		},
		{
			name: "gRPC",
			kind: KindGRPC,
			res: &Resolution{GrpcResolver: &GrpcResolver{
				UpstreamRef: &ref,
				RequestTransform: &GrpcRequestTemplate{
					OutgoingMessageJSON: wire(t, map[string]any{"id": "{$parent.id}", "limit": 5.0}),
					ServiceName:         "pets.PetService",
					MethodName:          "GetPet",
					RequestMetadataMap:  pairs.List[string]{{Key: "auth", Value: "token"}},
				},
				SpanName: "getPet",
			}},
		},
		{
			name: "Mock",
			kind: KindMock,
			res: &Resolution{MockResolver: &MockResolver{
				AsyncResponse: &AsyncResponse{
					Response: wire(t, []any{map[string]any{"name": "Rex", "good": true}}),
					Delay:    &Duration{Seconds: 1, Nanos: 500},
				},
			}},
		},
	}

	a := NewAssembler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := a.Disassemble(tt.res, tt.kind)

			item, diags, err := a.Assemble(Input{
				Config:   text,
				Kind:     tt.kind,
				Field:    "pets",
				Upstream: UpstreamID(ref),
			})
			require.NoError(t, err, text)
			assert.False(t, diags.HasWarnings())

			assert.Empty(t, cmp.Diff(tt.res, item.Resolution(), protocmp.Transform()))
			assert.Equal(t, ref, item.UpstreamRef)
		})
	}
}
