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

package handler

import (
	"context"
	"net"
	"testing"

	v1 "dirpx.dev/commerce/api/user/v1"
	"dirpx.dev/commerce/grpcx"
	"dirpx.dev/commerce/internal/user/biz"
	"dirpx.dev/commerce/internal/user/store"
	"dirpx.dev/commerce/mapper"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newClient(t *testing.T) v1.UserServiceClient {
	t.Helper()
	c, _ := newObservedClient(t)
	return c
}

func newObservedClient(t *testing.T) (v1.UserServiceClient, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, store.AutoMigrate(db))

	m := mapper.Default()
	ic, err := grpcx.NewInterceptor(m)
	require.NoError(t, err)
	srv := grpc.NewServer(grpc.UnaryInterceptor(ic.Unary()))
	v1.RegisterUserServiceServer(srv, New(biz.New(store.New(db), log), m, log))

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpcx.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
		_ = sqlDB.Close()
	})
	return v1.NewUserServiceClient(conn), logs
}

func TestCreateAndGetUser(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	created, err := c.CreateUser(ctx, &v1.CreateUserRequest{
		Name:    "Alice",
		Email:   "alice@example.com",
		Address: &v1.Address{City: "Springfield"},
	})
	require.NoError(t, err)
	require.True(t, created.Response.Success)
	assert.Equal(t, "User created successfully", created.Response.Message)
	require.NotNil(t, created.User)

	got, err := c.GetUser(ctx, &v1.GetUserRequest{UserID: created.User.ID})
	require.NoError(t, err)
	assert.Equal(t, "User found", got.Response.Message)
	assert.Equal(t, "alice@example.com", got.User.Email)
	assert.Equal(t, "Springfield", got.User.Address.City)
}

func TestDuplicateEmailIsInline(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	req := &v1.CreateUserRequest{Name: "Alice", Email: "alice@example.com"}

	_, err := c.CreateUser(ctx, req)
	require.NoError(t, err)

	var trailer metadata.MD
	resp, err := c.CreateUser(ctx, req, grpc.Trailer(&trailer))
	require.NoError(t, err)
	assert.False(t, resp.Response.Success)
	assert.Equal(t, "USER_ALREADY_EXISTS", resp.Response.ErrorCode)
	assert.Equal(t, "User with email already exists", resp.Response.Message)
	assert.Nil(t, resp.User)
	assert.Equal(t, []string{"USER_ALREADY_EXISTS"}, trailer.Get(grpcx.TrailerErrorCode))
	assert.Equal(t, []string{"6"}, trailer.Get(grpcx.TrailerStatusCode))
}

func TestMissingUser(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	got, err := c.GetUser(ctx, &v1.GetUserRequest{UserID: 41})
	require.NoError(t, err)
	assert.Equal(t, "USER_NOT_FOUND", got.Response.ErrorCode)
	assert.Equal(t, "User not found", got.Response.Message)

	upd, err := c.UpdateUser(ctx, &v1.UpdateUserRequest{UserID: 41, Name: "x", Email: "x@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "User to update not found", upd.Response.Message)

	del, err := c.DeleteUser(ctx, &v1.DeleteUserRequest{UserID: 41})
	require.NoError(t, err)
	assert.Equal(t, "User to delete not found", del.Response.Message)
}

func TestUpdateAndDelete(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	created, err := c.CreateUser(ctx, &v1.CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	id := created.User.ID

	upd, err := c.UpdateUser(ctx, &v1.UpdateUserRequest{UserID: id, Name: "Alice L", Email: "al@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "User updated successfully", upd.Response.Message)
	assert.Equal(t, "Alice L", upd.User.Name)

	del, err := c.DeleteUser(ctx, &v1.DeleteUserRequest{UserID: id})
	require.NoError(t, err)
	assert.True(t, del.Response.Success)
	assert.Equal(t, "User deleted successfully", del.Response.Message)
}

func TestValidateUser(t *testing.T) {
	c, logs := newObservedClient(t)
	ctx := context.Background()
	created, err := c.CreateUser(ctx, &v1.CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	ok, err := c.ValidateUser(ctx, &v1.ValidateUserRequest{UserID: created.User.ID})
	require.NoError(t, err)
	assert.True(t, ok.IsValid)
	assert.Equal(t, "Alice", ok.User.Name)

	missing, err := c.ValidateUser(ctx, &v1.ValidateUserRequest{UserID: 999})
	require.NoError(t, err)
	assert.False(t, missing.IsValid)
	assert.Nil(t, missing.User)
	assert.Equal(t, "User not found", missing.ErrorMessage)

	entries := logs.FilterMessage("validation of unknown user").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(999), entries[0].ContextMap()["user_id"])
}

func TestMalformedRequestFailsTheCall(t *testing.T) {
	c := newClient(t)

	_, err := c.CreateUser(context.Background(), &v1.CreateUserRequest{Name: "Alice", Email: "not-an-email"})
	require.Error(t, err)
	st, _ := gstatus.FromError(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())

	vs := grpcx.ExtractFieldViolations(err)
	require.Len(t, vs, 1)
	assert.Equal(t, "email", vs[0].Field)
	assert.Equal(t, "email", vs[0].Reason)
}
