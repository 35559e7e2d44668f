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

// Package options holds the order-service configuration.
package options

import (
	"time"

	"dirpx.dev/commerce/internal/pkg/db"
	"dirpx.dev/commerce/internal/pkg/log"
	"dirpx.dev/commerce/internal/pkg/options"
	"dirpx.dev/commerce/internal/pkg/tracing"
	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

var _ options.CliOptions = (*ServerOptions)(nil)

// ServerOptions contains the configuration of the order service.
type ServerOptions struct {
	GRPC    *options.GRPCOptions `json:"grpc" mapstructure:"grpc"`
	HTTP    *options.HTTPOptions `json:"http" mapstructure:"http"`
	DB      *db.Options          `json:"db" mapstructure:"db"`
	Log     *log.Options         `json:"log" mapstructure:"log"`
	Tracing *tracing.Options     `json:"tracing" mapstructure:"tracing"`

	// UserService is the downstream used to validate customers.
	UserService *options.ClientOptions `json:"user-service" mapstructure:"user-service"`

	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`
}

// NewServerOptions returns the defaults: gRPC on :9092, the REST gateway on
// :8080 and the user service on localhost:9091.
func NewServerOptions() *ServerOptions {
	dbOpts := db.NewOptions()
	dbOpts.DSN = "orders.db"
	tracingOpts := tracing.NewOptions()
	tracingOpts.ServiceName = "order-service"

	return &ServerOptions{
		GRPC:            options.NewGRPCOptions(":9092"),
		HTTP:            options.NewHTTPOptions(":8080"),
		DB:              dbOpts,
		Log:             log.NewOptions(),
		Tracing:         tracingOpts,
		UserService:     options.NewClientOptions("user-service", "localhost:9091"),
		ShutdownTimeout: 10 * time.Second,
	}
}

func (o *ServerOptions) AddFlags(fs *pflag.FlagSet) {
	o.GRPC.AddFlags(fs)
	o.HTTP.AddFlags(fs)
	o.DB.AddFlags(fs)
	o.Log.AddFlags(fs)
	o.Tracing.AddFlags(fs)
	o.UserService.AddFlags(fs)
	fs.DurationVar(&o.ShutdownTimeout, "shutdown-timeout", o.ShutdownTimeout, "Time allowed for in-flight calls to finish on shutdown")
}

func (o *ServerOptions) Complete() error {
	return utilerrors.NewAggregate([]error{
		o.GRPC.Complete(),
		o.HTTP.Complete(),
		o.DB.Complete(),
		o.Log.Complete(),
		o.Tracing.Complete(),
		o.UserService.Complete(),
	})
}

func (o *ServerOptions) Validate() error {
	var errs []error
	errs = append(errs, o.GRPC.Validate()...)
	errs = append(errs, o.HTTP.Validate()...)
	errs = append(errs, o.DB.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	errs = append(errs, o.Tracing.Validate()...)
	errs = append(errs, o.UserService.Validate()...)
	return utilerrors.NewAggregate(errs)
}
