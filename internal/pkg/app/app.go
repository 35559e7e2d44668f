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

// Package app bootstraps a service binary with cobra, pflag and viper.
//
//	app.NewApp(
//	    app.WithName("order-service"),
//	    app.WithDescription("Order service"),
//	    app.WithOptions(opts),
//	    app.WithRunFunc(run),
//	).Run()
//
// Configuration is read, lowest precedence first, from flag defaults, an
// optional YAML file (<name>.yaml in . or ./configs, or --config), environment
// variables prefixed with the upper-cased name (ORDER_SERVICE_GRPC_ADDR) and
// flags given on the command line.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"dirpx.dev/commerce/internal/pkg/options"
	"github.com/kart-io/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunFunc runs the service until ctx is cancelled.
type RunFunc func(ctx context.Context) error

// App is a service binary.
type App struct {
	name        string
	description string
	options     options.CliOptions
	runFunc     RunFunc
	cmd         *cobra.Command
	viper       *viper.Viper
}

// Option configures an App.
type Option func(*App)

// WithName sets the binary name, also used for the config file and env prefix.
func WithName(name string) Option {
	return func(a *App) { a.name = name }
}

// WithDescription sets the long description.
func WithDescription(desc string) Option {
	return func(a *App) { a.description = desc }
}

// WithOptions sets the option set filled from configuration.
func WithOptions(opts options.CliOptions) Option {
	return func(a *App) { a.options = opts }
}

// WithRunFunc sets the function run once options are valid.
func WithRunFunc(run RunFunc) Option {
	return func(a *App) { a.runFunc = run }
}

// NewApp creates an App.
func NewApp(opts ...Option) *App {
	a := &App{
		name:  filepath.Base(os.Args[0]),
		viper: viper.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.buildCommand()
	return a
}

func (a *App) buildCommand() {
	cmd := &cobra.Command{
		Use:          a.name,
		Long:         a.description,
		RunE:         a.runCommand,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.Flags().SortFlags = true

	cmd.PersistentFlags().StringP("config", "c", "", "Path to config file")
	version.AddFlags(cmd.PersistentFlags())

	if a.options != nil {
		a.options.AddFlags(cmd.Flags())
	}
	a.cmd = cmd
}

func (a *App) runCommand(cmd *cobra.Command, _ []string) error {
	version.PrintAndExitIfRequested()

	if err := a.loadConfig(cmd); err != nil {
		return err
	}
	if a.options != nil {
		if err := a.options.Complete(); err != nil {
			return fmt.Errorf("complete options: %w", err)
		}
		if err := a.options.Validate(); err != nil {
			return fmt.Errorf("invalid options: %w", err)
		}
	}
	if a.runFunc == nil {
		return nil
	}
	return a.runFunc(cmd.Context())
}

// loadConfig merges the config file, environment and flags into the options.
func (a *App) loadConfig(cmd *cobra.Command) error {
	v := a.viper
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(a.name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(strings.ToUpper(strings.ReplaceAll(a.name, "-", "_")))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if a.options == nil {
		return nil
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	if err := v.Unmarshal(a.options); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// Command returns the cobra command.
func (a *App) Command() *cobra.Command {
	return a.cmd
}

// Run executes the command with a context cancelled on SIGINT or SIGTERM and
// exits non-zero on failure.
func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
