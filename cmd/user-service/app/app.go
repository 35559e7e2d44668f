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

// Package app wires the user service.
package app

import (
	"context"
	"fmt"

	userv1 "dirpx.dev/commerce/api/user/v1"
	"dirpx.dev/commerce/cmd/user-service/app/options"
	"dirpx.dev/commerce/grpcx"
	"dirpx.dev/commerce/internal/pkg/app"
	"dirpx.dev/commerce/internal/pkg/db"
	"dirpx.dev/commerce/internal/pkg/log"
	"dirpx.dev/commerce/internal/pkg/server"
	"dirpx.dev/commerce/internal/pkg/tracing"
	"dirpx.dev/commerce/internal/user/biz"
	"dirpx.dev/commerce/internal/user/handler"
	"dirpx.dev/commerce/internal/user/store"
	"dirpx.dev/commerce/mapper"
	"go.uber.org/zap"
)

const (
	// Name is the name of the application.
	Name = "user-service"

	commandDesc = `User service.

Stores customer profiles and answers the order service's customer
validation calls over gRPC.`
)

// NewApp creates the user-service application with default options.
func NewApp() *app.App {
	opts := options.NewServerOptions()
	return app.NewApp(
		app.WithName(Name),
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithRunFunc(run(opts)),
	)
}

func run(opts *options.ServerOptions) app.RunFunc {
	return func(ctx context.Context) error {
		logger, err := log.New(opts.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
		logger = logger.With(zap.String("service", Name))

		tp, err := tracing.NewProvider(opts.Tracing)
		if err != nil {
			return fmt.Errorf("failed to create tracer provider: %w", err)
		}
		defer func() { _ = tp.Shutdown(context.WithoutCancel(ctx)) }()

		database, err := db.Open(ctx, opts.DB, logger)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close(database) }()
		if opts.DB.AutoMigrate {
			if err := store.AutoMigrate(database); err != nil {
				return fmt.Errorf("failed to migrate users: %w", err)
			}
		}

		m := mapper.Default()
		ic, err := grpcx.NewInterceptor(m,
			grpcx.WithLogger(logger),
			grpcx.WithTracer(tp.Tracer("dirpx.dev/commerce/grpcx")),
		)
		if err != nil {
			return err
		}

		srv := server.NewGRPCServer(opts.GRPC, ic, logger)
		srv.RegisterService(&userv1.UserService_ServiceDesc, handler.New(biz.New(store.New(database), logger), m, logger))

		logger.Info("starting user service", zap.String("grpc", opts.GRPC.Addr), zap.String("db", opts.DB.Driver))
		return server.Run(ctx, opts.ShutdownTimeout, srv)
	}
}
