// Package rpc exposes order status reads and admin decisions over gRPC, for
// store terminals and back-office tools that do not speak the HTTP API.
//
// Messages are the protobuf well-known types, so no generated code is needed:
//
//	service storefront.v1.OrderStatus {
//	  rpc GetOrder(google.protobuf.StringValue) returns (google.protobuf.Struct);
//	  rpc UpdateStatus(google.protobuf.Struct) returns (google.protobuf.Struct);
//	}
//
// UpdateStatus expects the fields id, status and actor_token.
package rpc

import (
	"context"
	"encoding/json"
	"errors"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
	"github.com/MikeMC777/bebidas-delivery/internal/auth"
	"github.com/MikeMC777/bebidas-delivery/internal/order"
)

const ServiceName = "storefront.v1.OrderStatus"

type OrderStatusServer interface {
	GetOrder(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error)
	UpdateStatus(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// Orders is the part of the order service the RPC layer needs.
type Orders interface {
	Get(ctx context.Context, id string) (order.Detail, error)
	UpdateStatus(ctx context.Context, actor order.Actor, id, status string) (order.Detail, error)
}

type Server struct {
	orders Orders
	tokens *auth.Issuer
}

func NewServer(orders Orders, tokens *auth.Issuer) *Server {
	return &Server{orders: orders, tokens: tokens}
}

func (s *Server) GetOrder(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	if in.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	d, err := s.orders.Get(ctx, in.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(d)
}

func (s *Server) UpdateStatus(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()
	id := fields["id"].GetStringValue()
	next := fields["status"].GetStringValue()
	if id == "" || next == "" {
		return nil, status.Error(codes.InvalidArgument, "id and status are required")
	}
	actor, err := s.tokens.Parse(fields["actor_token"].GetStringValue())
	if err != nil {
		return nil, toStatus(err)
	}
	d, err := s.orders.UpdateStatus(ctx, actor, id, next)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(d)
}

func toStruct(d order.Detail) (*structpb.Struct, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "encode error: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode error: %v", err)
	}
	return out, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, apperr.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, apperr.ErrUnauthorized):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Errorf(codes.Internal, "internal error: %v", err)
}

func getOrderHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderStatusServer).GetOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetOrder"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderStatusServer).GetOrder(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func updateStatusHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderStatusServer).UpdateStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/UpdateStatus"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderStatusServer).UpdateStatus(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderStatusServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetOrder", Handler: getOrderHandler},
		{MethodName: "UpdateStatus", Handler: updateStatusHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/order_status.proto",
}

func Register(s grpc.ServiceRegistrar, srv OrderStatusServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// NewGRPCServer builds a traced gRPC server with the order status service,
// health checks and reflection registered.
func NewGRPCServer(srv OrderStatusServer, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	opts = append([]grpc.ServerOption{grpc.StatsHandler(otelgrpc.NewServerHandler())}, opts...)
	gs := grpc.NewServer(opts...)
	Register(gs, srv)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	reflection.Register(gs)
	return gs, hs
}
