package apiserver

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"resolver-wizard/internal/graphqlapi"
	"resolver-wizard/internal/resolver"
)

const (
	GraphqlConfigService = "rpc.edge.gloo.solo.io.GraphqlConfigApi"
	ResourceService      = "rpc.edge.gloo.solo.io.GlooResourceApi"

	methodGetGraphqlApi            = "/" + GraphqlConfigService + "/GetGraphqlApi"
	methodUpdateGraphqlApi         = "/" + GraphqlConfigService + "/UpdateGraphqlApi"
	methodValidateSchemaDefinition = "/" + GraphqlConfigService + "/ValidateSchemaDefinition"
	methodListUpstreams            = "/" + ResourceService + "/ListUpstreams"
)

// Client calls the console API server.
type Client struct {
	cc      grpc.ClientConnInterface
	conn    *grpc.ClientConn
	logger  *slog.Logger
	timeout time.Duration
}

// New returns a client over an existing connection.
func New(cc grpc.ClientConnInterface, opts ...Option) *Client {
	options := NewOptions(opts...)

	return &Client{
		cc:      cc,
		logger:  options.Logger,
		timeout: options.Timeout,
	}
}

// Dial connects to the API server at address. The connection is owned by
// the client and released by Close.
func Dial(address string, opts ...Option) (*Client, error) {
	options := NewOptions(opts...)

	creds := credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	if options.Insecure {
		creds = insecure.NewCredentials()
	}

	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, options.DialOptions...)

	conn, err := grpc.NewClient(address, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to api server %s: %w", address, err)
	}

	c := New(conn, opts...)
	c.conn = conn

	return c, nil
}

// Close releases a connection opened by Dial.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// GetGraphqlApi fetches an API by reference.
func (c *Client) GetGraphqlApi(ctx context.Context, ref graphqlapi.ClusterObjectRef) (*graphqlapi.GraphqlApi, error) {
	var resp graphqlApiResponse

	if err := c.invoke(ctx, methodGetGraphqlApi, getGraphqlApiRequest{GraphqlApiRef: ref}, &resp); err != nil {
		return nil, err
	}

	if resp.GraphqlApi == nil {
		return nil, fmt.Errorf("graphql api %s: %w", ref, ErrNotFound)
	}

	return resp.GraphqlApi, nil
}

// UpdateGraphqlApi replaces the spec of an API and returns the stored result.
func (c *Client) UpdateGraphqlApi(ctx context.Context, ref graphqlapi.ClusterObjectRef, spec graphqlapi.GraphQLApiSpec) (*graphqlapi.GraphqlApi, error) {
	var resp graphqlApiResponse

	req := updateGraphqlApiRequest{GraphqlApiRef: ref, Spec: spec}
	if err := c.invoke(ctx, methodUpdateGraphqlApi, req, &resp); err != nil {
		return nil, err
	}

	return resp.GraphqlApi, nil
}

// ValidateSchemaDefinition asks the server whether spec is acceptable.
func (c *Client) ValidateSchemaDefinition(ctx context.Context, spec graphqlapi.GraphQLApiSpec) error {
	var resp struct{}

	return c.invoke(ctx, methodValidateSchemaDefinition, validateSchemaDefinitionRequest{Spec: spec}, &resp)
}

// ListUpstreams returns every upstream a resolver can target.
func (c *Client) ListUpstreams(ctx context.Context) ([]Upstream, error) {
	var resp listUpstreamsResponse

	if err := c.invoke(ctx, methodListUpstreams, listUpstreamsRequest{}, &resp); err != nil {
		return nil, err
	}

	return resp.Upstreams, nil
}

// ValidateResolverSchema validates the API at ref with item attached.
func (c *Client) ValidateResolverSchema(ctx context.Context, ref graphqlapi.ClusterObjectRef, item *resolver.Item, protoDescriptor string) error {
	api, err := c.GetGraphqlApi(ctx, ref)
	if err != nil {
		return err
	}

	candidate, err := graphqlapi.WithResolver(api, item, protoDescriptor)
	if err != nil {
		return err
	}

	return c.ValidateSchemaDefinition(ctx, candidate.Spec)
}

// UpdateResolver attaches item to the API at ref, or removes it when
// isDelete is set.
func (c *Client) UpdateResolver(
	ctx context.Context,
	ref graphqlapi.ClusterObjectRef,
	item *resolver.Item,
	protoDescriptor string,
	isDelete bool,
) (*graphqlapi.GraphqlApi, error) {
	api, err := c.GetGraphqlApi(ctx, ref)
	if err != nil {
		return nil, err
	}

	var updated *graphqlapi.GraphqlApi
	if isDelete {
		updated, err = graphqlapi.WithoutResolver(api, item)
	} else {
		updated, err = graphqlapi.WithResolver(api, item, protoDescriptor)
	}

	if err != nil {
		return nil, err
	}

	return c.UpdateGraphqlApi(ctx, ref, updated.Spec)
}

func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	in, err := toStruct(req)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	out := &structpb.Struct{}
	start := time.Now()

	if err := c.cc.Invoke(ctx, method, in, out); err != nil {
		c.logger.Warn("api call failed", "method", method, "duration", time.Since(start), "error", err)
		return remoteError(method, err)
	}

	c.logger.Debug("api call", "method", method, "duration", time.Since(start))

	if err := fromStruct(out, resp); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}

	return nil
}

func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	st := &structpb.Struct{}
	if err := protojson.Unmarshal(data, st); err != nil {
		return nil, err
	}

	return st, nil
}

func fromStruct(st *structpb.Struct, v any) error {
	data, err := protojson.Marshal(st)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, v)
}
