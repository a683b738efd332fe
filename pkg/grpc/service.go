package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// WeightTracker exchanges google.protobuf.Struct messages, so the service needs no
// generated stubs. Every request and response is a flat JSON-like object.
const ServiceName = "sela.v1.WeightTracker"

const (
	MethodRecordWeight             = "/" + ServiceName + "/RecordWeight"
	MethodGetTreatment             = "/" + ServiceName + "/GetTreatment"
	MethodListPendingInterventions = "/" + ServiceName + "/ListPendingInterventions"
	MethodExecuteIntervention      = "/" + ServiceName + "/ExecuteIntervention"
	MethodSkipIntervention         = "/" + ServiceName + "/SkipIntervention"
)

type WeightTrackerServer interface {
	RecordWeight(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetTreatment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListPendingInterventions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ExecuteIntervention(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SkipIntervention(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv WeightTrackerServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func methodDesc(name string, fullMethod string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(WeightTrackerServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(WeightTrackerServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var WeightTrackerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WeightTrackerServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc("RecordWeight", MethodRecordWeight, WeightTrackerServer.RecordWeight),
		methodDesc("GetTreatment", MethodGetTreatment, WeightTrackerServer.GetTreatment),
		methodDesc("ListPendingInterventions", MethodListPendingInterventions, WeightTrackerServer.ListPendingInterventions),
		methodDesc("ExecuteIntervention", MethodExecuteIntervention, WeightTrackerServer.ExecuteIntervention),
		methodDesc("SkipIntervention", MethodSkipIntervention, WeightTrackerServer.SkipIntervention),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sela/v1/weight_tracker.proto",
}

func RegisterWeightTrackerServer(s grpc.ServiceRegistrar, srv WeightTrackerServer) {
	s.RegisterService(&WeightTrackerServiceDesc, srv)
}

type WeightTrackerClient struct {
	cc grpc.ClientConnInterface
}

func NewWeightTrackerClient(cc grpc.ClientConnInterface) *WeightTrackerClient {
	return &WeightTrackerClient{cc: cc}
}

func (c *WeightTrackerClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *WeightTrackerClient) RecordWeight(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodRecordWeight, in, opts...)
}

func (c *WeightTrackerClient) GetTreatment(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetTreatment, in, opts...)
}

func (c *WeightTrackerClient) ListPendingInterventions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodListPendingInterventions, in, opts...)
}

func (c *WeightTrackerClient) ExecuteIntervention(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodExecuteIntervention, in, opts...)
}

func (c *WeightTrackerClient) SkipIntervention(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodSkipIntervention, in, opts...)
}
