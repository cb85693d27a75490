package resolver

import (
	"resolver-wizard/internal/dynvalue"
	"resolver-wizard/internal/pairs"
)

// ResourceRef identifies an upstream by name and namespace.
type ResourceRef struct {
	Name      string `json:"name,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

// IsZero reports whether no upstream is referenced.
func (r ResourceRef) IsZero() bool {
	return r.Name == "" && r.Namespace == ""
}

// RequestTemplate shapes the HTTP request a REST resolver sends.
type RequestTemplate struct {
	HeadersMap     pairs.List[string] `json:"headersMap,omitempty"`
	QueryParamsMap pairs.List[string] `json:"queryParamsMap,omitempty"`
	Body           *dynvalue.Wire     `json:"body,omitempty"`
}

// ResponseTemplate picks the result out of a REST response.
type ResponseTemplate struct {
	ResultRoot string             `json:"resultRoot,omitempty"`
	SettersMap pairs.List[string] `json:"settersMap,omitempty"`
}

// RESTResolver resolves a field with an HTTP call to an upstream.
type RESTResolver struct {
	UpstreamRef *ResourceRef      `json:"upstreamRef,omitempty"`
	Request     *RequestTemplate  `json:"request,omitempty"`
	Response    *ResponseTemplate `json:"response,omitempty"`
	SpanName    string            `json:"spanName,omitempty"`
}

// GrpcRequestTemplate shapes the call a gRPC resolver makes.
type GrpcRequestTemplate struct {
	OutgoingMessageJSON *dynvalue.Wire     `json:"outgoingMessageJson,omitempty"`
	ServiceName         string             `json:"serviceName,omitempty"`
	MethodName          string             `json:"methodName,omitempty"`
	RequestMetadataMap  pairs.List[string] `json:"requestMetadataMap,omitempty"`
}

// GrpcResolver resolves a field with a gRPC call to an upstream.
type GrpcResolver struct {
	UpstreamRef      *ResourceRef         `json:"upstreamRef,omitempty"`
	RequestTransform *GrpcRequestTemplate `json:"requestTransform,omitempty"`
	SpanName         string               `json:"spanName,omitempty"`
}

// Duration mirrors google.protobuf.Duration.
type Duration struct {
	Seconds int64 `json:"seconds,omitempty"`
	Nanos   int32 `json:"nanos,omitempty"`
}

// AsyncResponse is a mock response returned after a delay.
type AsyncResponse struct {
	Response *dynvalue.Wire `json:"response,omitempty"`
	Delay    *Duration      `json:"delay,omitempty"`
}

// MockResolver answers with a fixed value, a delayed value or an error.
type MockResolver struct {
	SyncResponse  *dynvalue.Wire `json:"syncResponse,omitempty"`
	AsyncResponse *AsyncResponse `json:"asyncResponse,omitempty"`
	ErrorResponse string         `json:"errorResponse,omitempty"`
}

// Resolution is a resolver as the control plane stores it. At most one of
// the resolver variants is set.
type Resolution struct {
	RestResolver *RESTResolver `json:"restResolver,omitempty"`
	GrpcResolver *GrpcResolver `json:"grpcResolver,omitempty"`
	MockResolver *MockResolver `json:"mockResolver,omitempty"`
	StatPrefix   string        `json:"statPrefix,omitempty"`
}

// Kind reports the populated variant, or zero when none is. gRPC wins over
// Mock, which wins over REST.
func (r *Resolution) Kind() Kind {
	switch {
	case r == nil:
		return 0
	case r.GrpcResolver != nil:
		return KindGRPC
	case r.MockResolver != nil:
		return KindMock
	case r.RestResolver != nil:
		return KindREST
	default:
		return 0
	}
}

// Upstream returns the upstream of the populated variant, if any.
func (r *Resolution) Upstream() ResourceRef {
	var ref *ResourceRef

	switch r.Kind() {
	case KindGRPC:
		ref = r.GrpcResolver.UpstreamRef
	case KindREST:
		ref = r.RestResolver.UpstreamRef
	}

	if ref == nil {
		return ResourceRef{}
	}

	return *ref
}

// variant returns the resolver of the given kind, or nil.
func (r *Resolution) variant(k Kind) any {
	if r == nil {
		return nil
	}

	switch k {
	case KindREST:
		if r.RestResolver != nil {
			return r.RestResolver
		}
	case KindGRPC:
		if r.GrpcResolver != nil {
			return r.GrpcResolver
		}
	case KindMock:
		if r.MockResolver != nil {
			return r.MockResolver
		}
	}

	return nil
}

// Item is an assembled resolver together with the field it is attached to.
type Item struct {
	Kind         Kind        `json:"resolverType"`
	Field        string      `json:"field"`
	ObjectType   string      `json:"objectType,omitempty"`
	ReturnType   string      `json:"returnType,omitempty"`
	ResolverName string      `json:"resolverName,omitempty"`
	IsNew        bool        `json:"isNewResolution,omitempty"`
	UpstreamRef  ResourceRef `json:"upstreamRef"`
	SpanName     string      `json:"spanName,omitempty"`

	// REST
	Request  *RequestTemplate  `json:"request,omitempty"`
	Response *ResponseTemplate `json:"response,omitempty"`
	// gRPC
	GrpcRequest *GrpcRequestTemplate `json:"grpcRequest,omitempty"`
	// Mock
	MockResolver *MockResolver `json:"mockResolver,omitempty"`
}

// Resolution builds the object the control plane stores for the item.
func (it *Item) Resolution() *Resolution {
	var ref *ResourceRef
	if !it.UpstreamRef.IsZero() {
		r := it.UpstreamRef
		ref = &r
	}

	switch it.Kind {
	case KindREST:
		return &Resolution{RestResolver: &RESTResolver{
			UpstreamRef: ref,
			Request:     it.Request,
			Response:    it.Response,
			SpanName:    it.SpanName,
		}}
	case KindGRPC:
		return &Resolution{GrpcResolver: &GrpcResolver{
			UpstreamRef:      ref,
			RequestTransform: it.GrpcRequest,
			SpanName:         it.SpanName,
		}}
	case KindMock:
		return &Resolution{MockResolver: it.MockResolver}
	default:
		return &Resolution{}
	}
}
