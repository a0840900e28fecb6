// Package grpcverify exposes signature verification as a gRPC service, for
// deployments that centralize key handling in a verification daemon.
package grpcverify

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// VerifierServer is the server API for the Verifier gRPC service.
//
// We intentionally use protobuf well-known wrapper types so this package
// does not require a protoc/codegen toolchain: Verify takes a marshaled
// envelope and returns the boolean outcome; KeyInfo takes DER key material
// and returns its CID.
type VerifierServer interface {
	Verify(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BoolValue, error)
	KeyInfo(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
}

// UnimplementedVerifierServer can be embedded to have forward compatible
// implementations.
type UnimplementedVerifierServer struct{}

func (UnimplementedVerifierServer) Verify(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Verify not implemented")
}
func (UnimplementedVerifierServer) KeyInfo(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method KeyInfo not implemented")
}

// RegisterVerifierServer registers the Verifier service on a gRPC server.
func RegisterVerifierServer(s grpc.ServiceRegistrar, srv VerifierServer) {
	s.RegisterService(&Verifier_ServiceDesc, srv)
}

// VerifierClient is the client API for the Verifier gRPC service.
type VerifierClient interface {
	Verify(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	KeyInfo(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type verifierClient struct{ cc grpc.ClientConnInterface }

func NewVerifierClient(cc grpc.ClientConnInterface) VerifierClient { return &verifierClient{cc: cc} }

func (c *verifierClient) Verify(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	err := c.cc.Invoke(ctx, "/ccnkit.verify.v1.Verifier/Verify", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *verifierClient) KeyInfo(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, "/ccnkit.verify.v1.Verifier/KeyInfo", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _Verifier_Verify_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VerifierServer).Verify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ccnkit.verify.v1.Verifier/Verify"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VerifierServer).Verify(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Verifier_KeyInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VerifierServer).KeyInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ccnkit.verify.v1.Verifier/KeyInfo"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VerifierServer).KeyInfo(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Verifier_ServiceDesc is the grpc.ServiceDesc for the Verifier service.
var Verifier_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ccnkit.verify.v1.Verifier",
	HandlerType: (*VerifierServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Verify", Handler: _Verifier_Verify_Handler},
		{MethodName: "KeyInfo", Handler: _Verifier_KeyInfo_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "verify.proto",
}
