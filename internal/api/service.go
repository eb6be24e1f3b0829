package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "gophlock.AccountService"

const (
	MethodRegister         = "/" + ServiceName + "/Register"
	MethodLogin            = "/" + ServiceName + "/Login"
	MethodResetPassword    = "/" + ServiceName + "/ResetPassword"
	MethodGetAccountStatus = "/" + ServiceName + "/GetAccountStatus"
	MethodPing             = "/" + ServiceName + "/Ping"
)

// AccountServiceServer is the server API for gophlock.AccountService.
type AccountServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	ResetPassword(context.Context, *ResetPasswordRequest) (*ResetPasswordResponse, error)
	GetAccountStatus(context.Context, *AccountStatusRequest) (*AccountStatusResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedAccountServiceServer answers every method with
// codes.Unimplemented. Embed it to stay forward compatible.
type UnimplementedAccountServiceServer struct{}

func (UnimplementedAccountServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}

func (UnimplementedAccountServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedAccountServiceServer) ResetPassword(context.Context, *ResetPasswordRequest) (*ResetPasswordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ResetPassword not implemented")
}

func (UnimplementedAccountServiceServer) GetAccountStatus(context.Context, *AccountStatusRequest) (*AccountStatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAccountStatus not implemented")
}

func (UnimplementedAccountServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&AccountServiceDesc, srv)
}

// unaryHandler adapts a typed method to grpc.MethodDesc.
func unaryHandler[Req any, Resp any](method string, call func(AccountServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AccountServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AccountServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var AccountServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler:    unaryHandler(MethodRegister, AccountServiceServer.Register),
		},
		{
			MethodName: "Login",
			Handler:    unaryHandler(MethodLogin, AccountServiceServer.Login),
		},
		{
			MethodName: "ResetPassword",
			Handler:    unaryHandler(MethodResetPassword, AccountServiceServer.ResetPassword),
		},
		{
			MethodName: "GetAccountStatus",
			Handler:    unaryHandler(MethodGetAccountStatus, AccountServiceServer.GetAccountStatus),
		},
		{
			MethodName: "Ping",
			Handler:    unaryHandler(MethodPing, AccountServiceServer.Ping),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophlock/account_service",
}
