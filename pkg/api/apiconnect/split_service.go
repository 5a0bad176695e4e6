// Package apiconnect wires the api messages to Connect handlers and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/Whyudothiss/SplitBettter/pkg/api"
)

const (
	// SplitServiceName is the fully-qualified name of the SplitService.
	SplitServiceName = "splitbetter.v1.SplitService"

	SplitServiceCreateSplitProcedure      = "/splitbetter.v1.SplitService/CreateSplit"
	SplitServiceGetSplitProcedure         = "/splitbetter.v1.SplitService/GetSplit"
	SplitServiceListSplitsProcedure       = "/splitbetter.v1.SplitService/ListSplits"
	SplitServiceUpdateSplitProcedure      = "/splitbetter.v1.SplitService/UpdateSplit"
	SplitServiceDeleteSplitProcedure      = "/splitbetter.v1.SplitService/DeleteSplit"
	SplitServiceGetSplitBalancesProcedure = "/splitbetter.v1.SplitService/GetSplitBalances"
)

// SplitServiceHandler is implemented by the server side of the SplitService.
type SplitServiceHandler interface {
	CreateSplit(context.Context, *connect.Request[api.CreateSplitRequest]) (*connect.Response[api.CreateSplitResponse], error)
	GetSplit(context.Context, *connect.Request[api.GetSplitRequest]) (*connect.Response[api.GetSplitResponse], error)
	ListSplits(context.Context, *connect.Request[api.ListSplitsRequest]) (*connect.Response[api.ListSplitsResponse], error)
	UpdateSplit(context.Context, *connect.Request[api.UpdateSplitRequest]) (*connect.Response[api.UpdateSplitResponse], error)
	DeleteSplit(context.Context, *connect.Request[api.DeleteSplitRequest]) (*connect.Response[api.DeleteSplitResponse], error)
	GetSplitBalances(context.Context, *connect.Request[api.GetSplitBalancesRequest]) (*connect.Response[api.GetSplitBalancesResponse], error)
}

// NewSplitServiceHandler builds an HTTP handler for svc. It returns the path
// prefix to mount the handler on.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	handlers := map[string]http.Handler{
		SplitServiceCreateSplitProcedure:      connect.NewUnaryHandler(SplitServiceCreateSplitProcedure, svc.CreateSplit, opts...),
		SplitServiceGetSplitProcedure:         connect.NewUnaryHandler(SplitServiceGetSplitProcedure, svc.GetSplit, opts...),
		SplitServiceListSplitsProcedure:       connect.NewUnaryHandler(SplitServiceListSplitsProcedure, svc.ListSplits, opts...),
		SplitServiceUpdateSplitProcedure:      connect.NewUnaryHandler(SplitServiceUpdateSplitProcedure, svc.UpdateSplit, opts...),
		SplitServiceDeleteSplitProcedure:      connect.NewUnaryHandler(SplitServiceDeleteSplitProcedure, svc.DeleteSplit, opts...),
		SplitServiceGetSplitBalancesProcedure: connect.NewUnaryHandler(SplitServiceGetSplitBalancesProcedure, svc.GetSplitBalances, opts...),
	}
	return "/" + SplitServiceName + "/", routeProcedures(handlers)
}

// SplitServiceClient is a client for the SplitService.
type SplitServiceClient interface {
	CreateSplit(context.Context, *connect.Request[api.CreateSplitRequest]) (*connect.Response[api.CreateSplitResponse], error)
	GetSplit(context.Context, *connect.Request[api.GetSplitRequest]) (*connect.Response[api.GetSplitResponse], error)
	ListSplits(context.Context, *connect.Request[api.ListSplitsRequest]) (*connect.Response[api.ListSplitsResponse], error)
	UpdateSplit(context.Context, *connect.Request[api.UpdateSplitRequest]) (*connect.Response[api.UpdateSplitResponse], error)
	DeleteSplit(context.Context, *connect.Request[api.DeleteSplitRequest]) (*connect.Response[api.DeleteSplitResponse], error)
	GetSplitBalances(context.Context, *connect.Request[api.GetSplitBalancesRequest]) (*connect.Response[api.GetSplitBalancesResponse], error)
}

type splitServiceClient struct {
	createSplit      *connect.Client[api.CreateSplitRequest, api.CreateSplitResponse]
	getSplit         *connect.Client[api.GetSplitRequest, api.GetSplitResponse]
	listSplits       *connect.Client[api.ListSplitsRequest, api.ListSplitsResponse]
	updateSplit      *connect.Client[api.UpdateSplitRequest, api.UpdateSplitResponse]
	deleteSplit      *connect.Client[api.DeleteSplitRequest, api.DeleteSplitResponse]
	getSplitBalances *connect.Client[api.GetSplitBalancesRequest, api.GetSplitBalancesResponse]
}

// NewSplitServiceClient constructs a client for the SplitService at baseURL
// (e.g. http://localhost:8080).
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &splitServiceClient{
		createSplit:      connect.NewClient[api.CreateSplitRequest, api.CreateSplitResponse](httpClient, baseURL+SplitServiceCreateSplitProcedure, opts...),
		getSplit:         connect.NewClient[api.GetSplitRequest, api.GetSplitResponse](httpClient, baseURL+SplitServiceGetSplitProcedure, opts...),
		listSplits:       connect.NewClient[api.ListSplitsRequest, api.ListSplitsResponse](httpClient, baseURL+SplitServiceListSplitsProcedure, opts...),
		updateSplit:      connect.NewClient[api.UpdateSplitRequest, api.UpdateSplitResponse](httpClient, baseURL+SplitServiceUpdateSplitProcedure, opts...),
		deleteSplit:      connect.NewClient[api.DeleteSplitRequest, api.DeleteSplitResponse](httpClient, baseURL+SplitServiceDeleteSplitProcedure, opts...),
		getSplitBalances: connect.NewClient[api.GetSplitBalancesRequest, api.GetSplitBalancesResponse](httpClient, baseURL+SplitServiceGetSplitBalancesProcedure, opts...),
	}
}

func (c *splitServiceClient) CreateSplit(ctx context.Context, req *connect.Request[api.CreateSplitRequest]) (*connect.Response[api.CreateSplitResponse], error) {
	return c.createSplit.CallUnary(ctx, req)
}

func (c *splitServiceClient) GetSplit(ctx context.Context, req *connect.Request[api.GetSplitRequest]) (*connect.Response[api.GetSplitResponse], error) {
	return c.getSplit.CallUnary(ctx, req)
}

func (c *splitServiceClient) ListSplits(ctx context.Context, req *connect.Request[api.ListSplitsRequest]) (*connect.Response[api.ListSplitsResponse], error) {
	return c.listSplits.CallUnary(ctx, req)
}

func (c *splitServiceClient) UpdateSplit(ctx context.Context, req *connect.Request[api.UpdateSplitRequest]) (*connect.Response[api.UpdateSplitResponse], error) {
	return c.updateSplit.CallUnary(ctx, req)
}

func (c *splitServiceClient) DeleteSplit(ctx context.Context, req *connect.Request[api.DeleteSplitRequest]) (*connect.Response[api.DeleteSplitResponse], error) {
	return c.deleteSplit.CallUnary(ctx, req)
}

func (c *splitServiceClient) GetSplitBalances(ctx context.Context, req *connect.Request[api.GetSplitBalancesRequest]) (*connect.Response[api.GetSplitBalancesResponse], error) {
	return c.getSplitBalances.CallUnary(ctx, req)
}

// UnimplementedSplitServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSplitServiceHandler struct{}

func (UnimplementedSplitServiceHandler) CreateSplit(context.Context, *connect.Request[api.CreateSplitRequest]) (*connect.Response[api.CreateSplitResponse], error) {
	return nil, unimplemented(SplitServiceCreateSplitProcedure)
}

func (UnimplementedSplitServiceHandler) GetSplit(context.Context, *connect.Request[api.GetSplitRequest]) (*connect.Response[api.GetSplitResponse], error) {
	return nil, unimplemented(SplitServiceGetSplitProcedure)
}

func (UnimplementedSplitServiceHandler) ListSplits(context.Context, *connect.Request[api.ListSplitsRequest]) (*connect.Response[api.ListSplitsResponse], error) {
	return nil, unimplemented(SplitServiceListSplitsProcedure)
}

func (UnimplementedSplitServiceHandler) UpdateSplit(context.Context, *connect.Request[api.UpdateSplitRequest]) (*connect.Response[api.UpdateSplitResponse], error) {
	return nil, unimplemented(SplitServiceUpdateSplitProcedure)
}

func (UnimplementedSplitServiceHandler) DeleteSplit(context.Context, *connect.Request[api.DeleteSplitRequest]) (*connect.Response[api.DeleteSplitResponse], error) {
	return nil, unimplemented(SplitServiceDeleteSplitProcedure)
}

func (UnimplementedSplitServiceHandler) GetSplitBalances(context.Context, *connect.Request[api.GetSplitBalancesRequest]) (*connect.Response[api.GetSplitBalancesResponse], error) {
	return nil, unimplemented(SplitServiceGetSplitBalancesProcedure)
}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(strings.TrimPrefix(procedure, "/")+" is not implemented"))
}

func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

func routeProcedures(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
