package identity

import (
	"context"

	"google.golang.org/grpc"
)

// loginMethod is the full RPC method name of the identity login call.
const loginMethod = "/speechly.identity.v1.IdentityAPI/Login"

// Service is the stub surface the login client drives. Tests substitute
// their own implementation; production code uses the gRPC-backed one.
type Service interface {
	Login(ctx context.Context, req *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
}

// grpcService invokes the identity service over a gRPC channel.
type grpcService struct {
	cc grpc.ClientConnInterface
}

// NewService creates a Service bound to the given channel.
func NewService(cc grpc.ClientConnInterface) Service {
	return &grpcService{cc: cc}
}

func (s *grpcService) Login(ctx context.Context, req *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	resp := new(LoginResponse)
	if err := s.cc.Invoke(ctx, loginMethod, req, resp, opts...); err != nil {
		return nil, err
	}
	return resp, nil
}
