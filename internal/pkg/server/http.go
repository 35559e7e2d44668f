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

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"dirpx.dev/commerce/internal/pkg/options"
	"go.uber.org/zap"
)

// HTTPServer serves a handler, typically a gin engine.
type HTTPServer struct {
	server *http.Server
	log    *zap.Logger
}

// NewHTTPServer wraps h with the configured timeouts.
func NewHTTPServer(opts *options.HTTPOptions, h http.Handler, log *zap.Logger) *HTTPServer {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPServer{
		server: &http.Server{
			Addr:         opts.Addr,
			Handler:      h,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
			IdleTimeout:  opts.IdleTimeout,
		},
		log: log.Named("http"),
	}
}

// Serve accepts connections on lis until Stop. A clean shutdown returns nil.
func (s *HTTPServer) Serve(lis net.Listener) error {
	s.log.Info("http server listening", zap.String("addr", lis.Addr().String()))
	if err := s.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on the configured address and serves until Stop.
func (s *HTTPServer) ListenAndServe() error {
	lis, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("http listen on %s: %w", s.server.Addr, err)
	}
	return s.Serve(lis)
}

// Stop shuts the server down gracefully within ctx.
func (s *HTTPServer) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.log.Info("http server stopped")
	return nil
}
