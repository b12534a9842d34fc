package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/viralforge/sigpac-weather/internal/domain"
	"github.com/viralforge/sigpac-weather/internal/ports"
)

type stubAuthenticator struct {
	claims ports.TokenClaims
	valid  string
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (ports.TokenClaims, error) {
	if token != s.valid {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}
	return s.claims, nil
}

func newStub() stubAuthenticator {
	return stubAuthenticator{
		valid: "good-token",
		claims: ports.TokenClaims{
			AccountID: uuid.New(),
			TokenID:   uuid.New(),
			IssuedAt:  time.Unix(1_700_000_000, 0).UTC(),
			ExpiresAt: time.Unix(1_702_592_000, 0).UTC(),
		},
	}
}

func TestValidateTokenReturnsClaims(t *testing.T) {
	t.Parallel()

	stub := newStub()
	server := NewTokenServer(stub)
	req, _ := structpb.NewStruct(map[string]any{"token": "good-token"})

	resp, err := server.ValidateToken(context.Background(), req)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	fields := resp.GetFields()
	if !fields["valid"].GetBoolValue() {
		t.Fatalf("expected valid=true")
	}
	if got := fields["account_id"].GetStringValue(); got != stub.claims.AccountID.String() {
		t.Fatalf("unexpected account_id %q", got)
	}
	if got := int64(fields["expires_at"].GetNumberValue()); got != stub.claims.ExpiresAt.Unix() {
		t.Fatalf("unexpected expires_at %d", got)
	}
}

func TestValidateTokenErrors(t *testing.T) {
	t.Parallel()

	server := NewTokenServer(newStub())
	cases := []struct {
		name string
		req  map[string]any
		code codes.Code
	}{
		{name: "missing token", req: map[string]any{}, code: codes.InvalidArgument},
		{name: "wrong type", req: map[string]any{"token": 42}, code: codes.InvalidArgument},
		{name: "rejected token", req: map[string]any{"token": "bad"}, code: codes.Unauthenticated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := structpb.NewStruct(tc.req)
			_, err := server.ValidateToken(context.Background(), req)
			if status.Code(err) != tc.code {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestValidateTokenOverWire(t *testing.T) {
	t.Parallel()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	Register(srv, NewTokenServer(newStub()))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, _ := structpb.NewStruct(map[string]any{"token": "good-token"})
	resp := &structpb.Struct{}
	if err := conn.Invoke(ctx, validateTokenMethod, req, resp); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if !resp.GetFields()["valid"].GetBoolValue() {
		t.Fatalf("expected valid response")
	}

	bad, _ := structpb.NewStruct(map[string]any{"token": "expired"})
	err = conn.Invoke(ctx, validateTokenMethod, bad, &structpb.Struct{})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}
