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

package db

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Options configures the database connection.
type Options struct {
	Driver                string        `json:"driver" mapstructure:"driver"`
	DSN                   string        `json:"dsn" mapstructure:"dsn"`
	MaxIdleConnections    int           `json:"max-idle-connections" mapstructure:"max-idle-connections"`
	MaxOpenConnections    int           `json:"max-open-connections" mapstructure:"max-open-connections"`
	MaxConnectionLifeTime time.Duration `json:"max-connection-life-time" mapstructure:"max-connection-life-time"`
	SlowThreshold         time.Duration `json:"slow-threshold" mapstructure:"slow-threshold"`
	// LogLevel follows gorm: 1 silent, 2 error, 3 warn, 4 info.
	LogLevel    int  `json:"log-level" mapstructure:"log-level"`
	AutoMigrate bool `json:"auto-migrate" mapstructure:"auto-migrate"`
}

// NewOptions returns Options for a local sqlite file.
func NewOptions() *Options {
	return &Options{
		Driver:                DriverSQLite,
		DSN:                   "commerce.db",
		MaxIdleConnections:    10,
		MaxOpenConnections:    100,
		MaxConnectionLifeTime: 10 * time.Second,
		SlowThreshold:         200 * time.Millisecond,
		LogLevel:              2,
		AutoMigrate:           true,
	}
}

// AddFlags registers the db.* flags.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Driver, "db.driver", o.Driver, "Database driver (sqlite|mysql|postgres)")
	fs.StringVar(&o.DSN, "db.dsn", o.DSN, "Database data source name")
	fs.IntVar(&o.MaxIdleConnections, "db.max-idle-connections", o.MaxIdleConnections, "Maximum idle connections")
	fs.IntVar(&o.MaxOpenConnections, "db.max-open-connections", o.MaxOpenConnections, "Maximum open connections")
	fs.DurationVar(&o.MaxConnectionLifeTime, "db.max-connection-life-time", o.MaxConnectionLifeTime, "Maximum connection life time")
	fs.DurationVar(&o.SlowThreshold, "db.slow-threshold", o.SlowThreshold, "Queries slower than this are logged as warnings")
	fs.IntVar(&o.LogLevel, "db.log-level", o.LogLevel, "Query log level (1 silent, 2 error, 3 warn, 4 info)")
	fs.BoolVar(&o.AutoMigrate, "db.auto-migrate", o.AutoMigrate, "Create or update tables on startup")
}

// Complete fills defaults that depend on other fields.
func (o *Options) Complete() error {
	// An in-memory sqlite database lives in a single connection.
	if o.Driver == DriverSQLite && isMemory(o.DSN) {
		o.MaxOpenConnections = 1
	}
	return nil
}

// Validate checks the options.
func (o *Options) Validate() []error {
	var errs []error
	switch o.Driver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("db.driver must be one of sqlite, mysql, postgres, got %q", o.Driver))
	}
	if o.DSN == "" {
		errs = append(errs, fmt.Errorf("db.dsn cannot be empty"))
	}
	if o.LogLevel < 1 || o.LogLevel > 4 {
		errs = append(errs, fmt.Errorf("db.log-level must be between 1 and 4"))
	}
	return errs
}

func isMemory(dsn string) bool {
	return dsn == ":memory:" || dsn == "file::memory:"
}
