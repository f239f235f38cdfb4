// Package pb describes the matrix gRPC service. Requests and responses are
// protobuf well-known types, so the service needs no generated code.
package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "matrix.MatrixService"

	NewGameFullMethodName = "/" + ServiceName + "/NewGame"
	ActFullMethodName     = "/" + ServiceName + "/Act"
	StateFullMethodName   = "/" + ServiceName + "/State"
	EndGameFullMethodName = "/" + ServiceName + "/EndGame"
)

// MatrixServiceServer is the server API for the matrix service.
type MatrixServiceServer interface {
	// NewGame starts a session with its own matrix and returns its state.
	NewGame(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	// Act applies one action to a session. See ActRequest.
	Act(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// State returns the state of the session with the given id.
	State(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// EndGame removes the session with the given id.
	EndGame(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// UnimplementedMatrixServiceServer can be embedded to have forward compatible implementations.
type UnimplementedMatrixServiceServer struct{}

func (UnimplementedMatrixServiceServer) NewGame(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method NewGame not implemented")
}

func (UnimplementedMatrixServiceServer) Act(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Act not implemented")
}

func (UnimplementedMatrixServiceServer) State(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method State not implemented")
}

func (UnimplementedMatrixServiceServer) EndGame(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method EndGame not implemented")
}

func RegisterMatrixServiceServer(s grpc.ServiceRegistrar, srv MatrixServiceServer) {
	s.RegisterService(&MatrixServiceDesc, srv)
}

// MatrixServiceDesc is the grpc.ServiceDesc for the matrix service.
var MatrixServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MatrixServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "NewGame",
			Handler:    unaryHandler(NewGameFullMethodName, MatrixServiceServer.NewGame),
		},
		{
			MethodName: "Act",
			Handler:    unaryHandler(ActFullMethodName, MatrixServiceServer.Act),
		},
		{
			MethodName: "State",
			Handler:    unaryHandler(StateFullMethodName, MatrixServiceServer.State),
		},
		{
			MethodName: "EndGame",
			Handler:    unaryHandler(EndGameFullMethodName, MatrixServiceServer.EndGame),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "matrix.proto",
}

// unaryHandler adapts a MatrixServiceServer method to a grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(MatrixServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MatrixServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MatrixServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// MatrixServiceClient is the client API for the matrix service.
type MatrixServiceClient interface {
	NewGame(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	Act(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	State(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	EndGame(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type matrixServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMatrixServiceClient(cc grpc.ClientConnInterface) MatrixServiceClient {
	return &matrixServiceClient{cc: cc}
}

func (c *matrixServiceClient) NewGame(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, NewGameFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matrixServiceClient) Act(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ActFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matrixServiceClient) State(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, StateFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matrixServiceClient) EndGame(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, EndGameFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
