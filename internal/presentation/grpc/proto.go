package grpc

// proto.go defines the NelaRiskService gRPC surface by hand. Messages travel
// as JSON through the codec registered in codec.go, so no generated protobuf
// types are needed.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "nela.v1.NelaRiskService"

// CalculateRiskMethod is the full method name of CalculateRisk.
const CalculateRiskMethod = "/" + ServiceName + "/CalculateRisk"

// NelaRiskServiceServer is the server API for NelaRiskService.
type NelaRiskServiceServer interface {
	CalculateRisk(context.Context, *CalculateRiskRequest) (*CalculateRiskResponse, error)
	mustEmbedUnimplementedNelaRiskServiceServer()
}

// UnimplementedNelaRiskServiceServer provides forward-compatible default implementations.
type UnimplementedNelaRiskServiceServer struct{}

func (UnimplementedNelaRiskServiceServer) CalculateRisk(context.Context, *CalculateRiskRequest) (*CalculateRiskResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CalculateRisk not implemented")
}
func (UnimplementedNelaRiskServiceServer) mustEmbedUnimplementedNelaRiskServiceServer() {}

// RegisterNelaRiskServiceServer registers the NelaRiskServiceServer with the gRPC server.
func RegisterNelaRiskServiceServer(s grpclib.ServiceRegistrar, srv NelaRiskServiceServer) {
	s.RegisterService(&_NelaRiskService_serviceDesc, srv)
}

var _NelaRiskService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NelaRiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CalculateRisk", Handler: _NelaRiskService_CalculateRisk_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "nela/v1/nela.proto",
}

func _NelaRiskService_CalculateRisk_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(CalculateRiskRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NelaRiskServiceServer).CalculateRisk(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalculateRiskMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NelaRiskServiceServer).CalculateRisk(ctx, req.(*CalculateRiskRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// NelaRiskServiceClient is the client API for NelaRiskService.
type NelaRiskServiceClient interface {
	CalculateRisk(ctx context.Context, in *CalculateRiskRequest, opts ...grpclib.CallOption) (*CalculateRiskResponse, error)
}

type nelaRiskServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewNelaRiskServiceClient returns a client that encodes messages with the
// JSON codec.
func NewNelaRiskServiceClient(cc grpclib.ClientConnInterface) NelaRiskServiceClient {
	return &nelaRiskServiceClient{cc: cc}
}

func (c *nelaRiskServiceClient) CalculateRisk(ctx context.Context, in *CalculateRiskRequest, opts ...grpclib.CallOption) (*CalculateRiskResponse, error) {
	out := new(CalculateRiskResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, CalculateRiskMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
