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

package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// GRPCOptions configures a gRPC server.
type GRPCOptions struct {
	Addr           string `json:"addr" mapstructure:"addr"`
	MaxRecvMsgSize int    `json:"max-recv-msg-size" mapstructure:"max-recv-msg-size"`
	MaxSendMsgSize int    `json:"max-send-msg-size" mapstructure:"max-send-msg-size"`
}

// NewGRPCOptions returns defaults listening on addr.
func NewGRPCOptions(addr string) *GRPCOptions {
	return &GRPCOptions{
		Addr:           addr,
		MaxRecvMsgSize: 4 * 1024 * 1024,
		MaxSendMsgSize: 4 * 1024 * 1024,
	}
}

func (o *GRPCOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Addr, "grpc.addr", o.Addr, "gRPC server listen address")
	fs.IntVar(&o.MaxRecvMsgSize, "grpc.max-recv-msg-size", o.MaxRecvMsgSize, "gRPC max receive message size in bytes")
	fs.IntVar(&o.MaxSendMsgSize, "grpc.max-send-msg-size", o.MaxSendMsgSize, "gRPC max send message size in bytes")
}

func (o *GRPCOptions) Complete() error { return nil }

func (o *GRPCOptions) Validate() []error {
	var errs []error
	if o.Addr == "" {
		errs = append(errs, fmt.Errorf("grpc.addr cannot be empty"))
	}
	if o.MaxRecvMsgSize <= 0 {
		errs = append(errs, fmt.Errorf("grpc.max-recv-msg-size must be positive"))
	}
	if o.MaxSendMsgSize <= 0 {
		errs = append(errs, fmt.Errorf("grpc.max-send-msg-size must be positive"))
	}
	return errs
}

// HTTPOptions configures an HTTP server. An empty Addr disables it.
type HTTPOptions struct {
	Addr         string        `json:"addr" mapstructure:"addr"`
	ReadTimeout  time.Duration `json:"read-timeout" mapstructure:"read-timeout"`
	WriteTimeout time.Duration `json:"write-timeout" mapstructure:"write-timeout"`
	IdleTimeout  time.Duration `json:"idle-timeout" mapstructure:"idle-timeout"`
}

// NewHTTPOptions returns defaults listening on addr.
func NewHTTPOptions(addr string) *HTTPOptions {
	return &HTTPOptions{
		Addr:         addr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func (o *HTTPOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Addr, "http.addr", o.Addr, "HTTP gateway listen address, empty to disable")
	fs.DurationVar(&o.ReadTimeout, "http.read-timeout", o.ReadTimeout, "Timeout for reading the entire request")
	fs.DurationVar(&o.WriteTimeout, "http.write-timeout", o.WriteTimeout, "Timeout before timing out writes of the response")
	fs.DurationVar(&o.IdleTimeout, "http.idle-timeout", o.IdleTimeout, "Maximum time to wait for the next request")
}

func (o *HTTPOptions) Complete() error { return nil }

func (o *HTTPOptions) Validate() []error {
	if o.Addr == "" {
		return nil
	}
	var errs []error
	if o.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("http.read-timeout must be positive"))
	}
	if o.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("http.write-timeout must be positive"))
	}
	return errs
}

// ClientOptions configures the connection to a downstream gRPC service.
type ClientOptions struct {
	// Name prefixes the flags, e.g. "user-service".
	Name   string `json:"-" mapstructure:"-"`
	Target string `json:"target" mapstructure:"target"`
}

// NewClientOptions returns options for the named downstream service.
func NewClientOptions(name, target string) *ClientOptions {
	return &ClientOptions{Name: name, Target: target}
}

func (o *ClientOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Target, o.Name+".target", o.Target, "gRPC target of "+o.Name)
}

func (o *ClientOptions) Complete() error { return nil }

func (o *ClientOptions) Validate() []error {
	if o.Target == "" {
		return []error{fmt.Errorf("%s.target cannot be empty", o.Name)}
	}
	return nil
}
