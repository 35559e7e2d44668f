/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package server runs the gRPC and HTTP listeners of a service.
package server

import (
	"context"
	"fmt"
	"net"

	"dirpx.dev/commerce/grpcx"
	"dirpx.dev/commerce/internal/pkg/options"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// GRPCServer is a gRPC server with the error interceptor and the standard
// health service installed.
type GRPCServer struct {
	opts   *options.GRPCOptions
	server *grpc.Server
	health *health.Server
	log    *zap.Logger
}

// NewGRPCServer builds a server whose unary calls all pass through ic.
func NewGRPCServer(opts *options.GRPCOptions, ic *grpcx.Interceptor, log *zap.Logger, extra ...grpc.ServerOption) *GRPCServer {
	if log == nil {
		log = zap.NewNop()
	}
	serverOpts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(opts.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(opts.MaxSendMsgSize),
		grpc.ChainUnaryInterceptor(ic.Unary()),
	}
	s := &GRPCServer{
		opts:   opts,
		server: grpc.NewServer(append(serverOpts, extra...)...),
		health: health.NewServer(),
		log:    log.Named("grpc"),
	}
	healthpb.RegisterHealthServer(s.server, s.health)
	return s
}

// RegisterService registers impl and marks it serving.
func (s *GRPCServer) RegisterService(desc *grpc.ServiceDesc, impl any) {
	s.server.RegisterService(desc, impl)
	s.health.SetServingStatus(desc.ServiceName, healthpb.HealthCheckResponse_SERVING)
}

// Server returns the underlying grpc.Server.
func (s *GRPCServer) Server() *grpc.Server {
	return s.server
}

// Serve accepts connections on lis until Stop is called.
func (s *GRPCServer) Serve(lis net.Listener) error {
	s.log.Info("grpc server listening", zap.String("addr", lis.Addr().String()))
	return s.server.Serve(lis)
}

// ListenAndServe listens on the configured address and serves until Stop.
func (s *GRPCServer) ListenAndServe() error {
	lis, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("grpc listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(lis)
}

// Stop marks every service not serving and drains in-flight calls. When ctx
// ends first the server is stopped forcibly.
func (s *GRPCServer) Stop(ctx context.Context) error {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-ctx.Done():
		s.server.Stop()
		return ctx.Err()
	case <-done:
		s.log.Info("grpc server stopped")
		return nil
	}
}
