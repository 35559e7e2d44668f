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

// Package app wires the order service.
package app

import (
	"context"
	"fmt"

	orderv1 "dirpx.dev/commerce/api/order/v1"
	userv1 "dirpx.dev/commerce/api/user/v1"
	"dirpx.dev/commerce/cmd/order-service/app/options"
	"dirpx.dev/commerce/grpcx"
	"dirpx.dev/commerce/internal/order/biz"
	"dirpx.dev/commerce/internal/order/gateway"
	"dirpx.dev/commerce/internal/order/handler"
	"dirpx.dev/commerce/internal/order/store"
	"dirpx.dev/commerce/internal/pkg/app"
	"dirpx.dev/commerce/internal/pkg/db"
	"dirpx.dev/commerce/internal/pkg/log"
	"dirpx.dev/commerce/internal/pkg/server"
	"dirpx.dev/commerce/internal/pkg/tracing"
	"dirpx.dev/commerce/mapper"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// Name is the name of the application.
	Name = "order-service"

	commandDesc = `Order service.

Places, lists and cancels orders over gRPC and a REST gateway. Every
customer is checked against the user service before an order is stored.`
)

// NewApp creates the order-service application with default options.
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
				return fmt.Errorf("failed to migrate orders: %w", err)
			}
		}

		conn, err := grpcx.NewClient(opts.UserService.Target)
		if err != nil {
			return fmt.Errorf("failed to create user service client: %w", err)
		}
		defer func() { _ = conn.Close() }()
		orders := biz.New(store.New(database), userv1.NewUserServiceClient(conn), logger)

		m := mapper.Default()
		ic, err := grpcx.NewInterceptor(m,
			grpcx.WithLogger(logger),
			grpcx.WithTracer(tp.Tracer("dirpx.dev/commerce/grpcx")),
		)
		if err != nil {
			return err
		}
		grpcSrv := server.NewGRPCServer(opts.GRPC, ic, logger)
		grpcSrv.RegisterService(&orderv1.OrderService_ServiceDesc, handler.New(orders, m, logger))

		servers := []server.Runnable{grpcSrv}
		if opts.HTTP.Addr != "" {
			gm, err := gateway.NewMapper()
			if err != nil {
				return err
			}
			if !opts.Log.Development {
				gin.SetMode(gin.ReleaseMode)
			}
			servers = append(servers, server.NewHTTPServer(opts.HTTP, gateway.New(orders, gm, logger).Router(), logger))
		}

		logger.Info("starting order service",
			zap.String("grpc", opts.GRPC.Addr),
			zap.String("http", opts.HTTP.Addr),
			zap.String("user_service", opts.UserService.Target),
		)
		return server.Run(ctx, opts.ShutdownTimeout, servers...)
	}
}
