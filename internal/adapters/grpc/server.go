package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/viralforge/sigpac-weather/internal/ports"
)

const (
	serviceName         = "sigpac.auth.v1.TokenService"
	validateTokenMethod = "/" + serviceName + "/ValidateToken"
)

type TokenService interface {
	ValidateToken(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// Authenticator is the slice of the application service the RPC surface needs.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (ports.TokenClaims, error)
}

type TokenServer struct {
	auth Authenticator
}

func NewTokenServer(auth Authenticator) *TokenServer {
	return &TokenServer{auth: auth}
}

func Register(server grpc.ServiceRegistrar, svc TokenService) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*TokenService)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "ValidateToken",
				Handler:    validateTokenHandler(svc),
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "sigpac/auth/v1/token_service.proto",
	}, svc)
}

// ValidateToken applies the same checks as the HTTP gate, revocation included.
func (s *TokenServer) ValidateToken(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	token := req.GetFields()["token"].GetStringValue()
	if token == "" {
		return nil, status.Error(codes.InvalidArgument, "missing token")
	}

	claims, err := s.auth.Authenticate(ctx, token)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	resp, err := structpb.NewStruct(map[string]any{
		"valid":      true,
		"account_id": claims.AccountID.String(),
		"token_id":   claims.TokenID.String(),
		"expires_at": claims.ExpiresAt.Unix(),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "build response: %v", err)
	}
	return resp, nil
}

func validateTokenHandler(svc TokenService) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		req := &structpb.Struct{}
		if err := dec(req); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return svc.ValidateToken(ctx, req)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: validateTokenMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*structpb.Struct)
			if !ok {
				return nil, status.Error(codes.InvalidArgument, "invalid request type")
			}
			return svc.ValidateToken(ctx, typed)
		}
		return interceptor(ctx, req, info, handler)
	}
}
