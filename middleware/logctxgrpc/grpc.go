// Package logctxgrpc opens a field scope per gRPC call.
//
// Server interceptors give every call a fresh logging context carrying the
// full method name and a request ID, and attach the scope's fields to any
// error the handler returns, so they survive into wherever the error is
// finally logged:
//
//	server := grpc.NewServer(
//	    grpc.UnaryInterceptor(logctxgrpc.UnaryServerInterceptor()),
//	    grpc.StreamInterceptor(logctxgrpc.StreamServerInterceptor()),
//	)
package logctxgrpc

import (
	"context"

	"github.com/JupiterMetaLabs/logctx"
	"github.com/google/uuid"
	"google.golang.org/grpc"
)

// UnaryServerInterceptor returns an interceptor that runs each unary call
// inside its own field scope with grpc.method and request_id fields.
func UnaryServerInterceptor(opts ...Option) grpc.UnaryServerInterceptor {
	o := applyOptions(opts)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		lc := logctx.New()
		frame := lc.Enter(callFields(info.FullMethod, o)...)
		defer frame.Exit()

		resp, err := handler(logctx.IntoContext(ctx, lc), req)
		if err != nil {
			err = logctx.AttachContext(lc, err)
		}
		return resp, err
	}
}

// StreamServerInterceptor returns the streaming counterpart of
// UnaryServerInterceptor. The scope spans the whole stream.
func StreamServerInterceptor(opts ...Option) grpc.StreamServerInterceptor {
	o := applyOptions(opts)
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		lc := logctx.New()
		frame := lc.Enter(callFields(info.FullMethod, o)...)
		defer frame.Exit()

		wrapped := &contextStream{
			ServerStream: ss,
			ctx:          logctx.IntoContext(ss.Context(), lc),
		}
		if err := handler(srv, wrapped); err != nil {
			return logctx.AttachContext(lc, err)
		}
		return nil
	}
}

func callFields(fullMethod string, o *options) []logctx.Field {
	fields := make([]logctx.Field, 0, 2+len(o.fields))
	fields = append(fields,
		logctx.String("grpc.method", fullMethod),
		logctx.String("request_id", uuid.NewString()),
	)
	return append(fields, o.fields...)
}

// contextStream overrides Context() to expose the scoped logging context.
type contextStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *contextStream) Context() context.Context {
	return s.ctx
}

// --- Options ---

type options struct {
	fields []logctx.Field
}

// Option configures the interceptors.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) { f(o) }

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt.apply(o)
	}
	return o
}

// WithFields adds fixed fields to every call scope.
func WithFields(fields ...logctx.Field) Option {
	return optionFunc(func(o *options) {
		o.fields = append(o.fields, fields...)
	})
}
