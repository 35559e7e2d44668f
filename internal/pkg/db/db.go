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

// Package db opens the gorm connection shared by a service's stores.
package db

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the database described by opts, configures the pool and
// pings it. Driver errors are translated, so unique violations surface as
// gorm.ErrDuplicatedKey.
func Open(ctx context.Context, opts *Options, logger *zap.Logger) (*gorm.DB, error) {
	if opts == nil {
		return nil, fmt.Errorf("db options cannot be nil")
	}
	if err := opts.Complete(); err != nil {
		return nil, err
	}
	if errs := opts.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid db options: %w", errs[0])
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(logger.Named("gorm"), gormlogger.LogLevel(opts.LogLevel), opts.SlowThreshold),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if opts.MaxIdleConnections > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConnections)
	}
	if opts.MaxOpenConnections > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConnections)
	}
	if opts.MaxConnectionLifeTime > 0 && !isMemory(opts.DSN) {
		sqlDB.SetConnMaxLifetime(opts.MaxConnectionLifeTime)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping %s: %w", opts.Driver, err)
	}
	return db, nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(opts *Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case DriverSQLite:
		return sqlite.Open(opts.DSN), nil
	case DriverMySQL:
		return mysql.Open(opts.DSN), nil
	case DriverPostgres:
		return postgres.Open(opts.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", opts.Driver)
	}
}
