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

	orderv1 "dirpx.dev/commerce/api/order/v1"
	userv1 "dirpx.dev/commerce/api/user/v1"
	"dirpx.dev/commerce/grpcx"
	"dirpx.dev/commerce/internal/order/biz"
	orderstore "dirpx.dev/commerce/internal/order/store"
	userbiz "dirpx.dev/commerce/internal/user/biz"
	userhandler "dirpx.dev/commerce/internal/user/handler"
	userstore "dirpx.dev/commerce/internal/user/store"
	"dirpx.dev/commerce/mapper"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// cluster runs the user and order services over in-memory listeners.
type cluster struct {
	users   userv1.UserServiceClient
	orders  orderv1.OrderServiceClient
	userDB  *gorm.DB
	orderDB *gorm.DB
	userSrv *grpc.Server
}

func openDB(t *testing.T, migrate func(*gorm.DB) error) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migrate(db))
	return db
}

func serve(t *testing.T, register func(*grpc.Server)) (*grpc.Server, *grpc.ClientConn) {
	t.Helper()
	ic, err := grpcx.NewInterceptor(mapper.Default())
	require.NoError(t, err)
	srv := grpc.NewServer(grpc.UnaryInterceptor(ic.Unary()))
	register(srv)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpcx.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
	})
	return srv, conn
}

func newCluster(t *testing.T) *cluster {
	t.Helper()
	c := &cluster{
		userDB:  openDB(t, userstore.AutoMigrate),
		orderDB: openDB(t, orderstore.AutoMigrate),
	}
	m := mapper.Default()

	var userConn *grpc.ClientConn
	c.userSrv, userConn = serve(t, func(s *grpc.Server) {
		userv1.RegisterUserServiceServer(s, userhandler.New(userbiz.New(userstore.New(c.userDB), nil), m, nil))
	})
	c.users = userv1.NewUserServiceClient(userConn)

	_, orderConn := serve(t, func(s *grpc.Server) {
		orders := biz.New(orderstore.New(c.orderDB), c.users, nil)
		orderv1.RegisterOrderServiceServer(s, New(orders, m, nil))
	})
	c.orders = orderv1.NewOrderServiceClient(orderConn)
	return c
}

func (c *cluster) alice(t *testing.T) int64 {
	t.Helper()
	resp, err := c.users.CreateUser(context.Background(), &userv1.CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	require.True(t, resp.Response.Success)
	return resp.User.ID
}

func ptr(f float64) *float64 { return &f }

func (c *cluster) placeOrder(t *testing.T, customer int64) *orderv1.Order {
	t.Helper()
	resp, err := c.orders.CreateOrder(context.Background(), &orderv1.CreateOrderRequest{
		UserID: customer,
		Items: []*orderv1.OrderItem{
			{ProductID: 1, ProductName: "pen", Price: ptr(10), Quantity: 2},
			{ProductID: 2, ProductName: "pad", Price: ptr(5), Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.True(t, resp.Response.Success, resp.Response.Message)
	return resp.Order
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}

func TestCreateOrderForUnknownCustomer(t *testing.T) {
	c := newCluster(t)

	var trailer metadata.MD
	resp, err := c.orders.CreateOrder(context.Background(), &orderv1.CreateOrderRequest{
		UserID: 999,
		Items:  []*orderv1.OrderItem{{ProductID: 1, Price: ptr(10), Quantity: 1}},
	}, grpc.Trailer(&trailer))

	require.NoError(t, err)
	assert.False(t, resp.Response.Success)
	assert.Equal(t, "INVALID_CUSTOMER", resp.Response.ErrorCode)
	assert.Equal(t, "Invalid customer", resp.Response.Message)
	assert.Nil(t, resp.Order)
	assert.Equal(t, []string{"INVALID_CUSTOMER"}, trailer.Get(grpcx.TrailerErrorCode))
	assert.Equal(t, []string{"3"}, trailer.Get(grpcx.TrailerStatusCode))
	assert.Zero(t, countRows(t, c.orderDB, "orders"))
	assert.Zero(t, countRows(t, c.orderDB, "order_items"))
}

func TestCreateOrderComputesTotal(t *testing.T) {
	c := newCluster(t)
	id := c.alice(t)

	resp, err := c.orders.CreateOrder(context.Background(), &orderv1.CreateOrderRequest{
		UserID: id,
		Items: []*orderv1.OrderItem{
			{ProductID: 1, Price: ptr(10), Quantity: 2},
			{ProductID: 2, Price: ptr(5), Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.True(t, resp.Response.Success)
	assert.Equal(t, "Order created successfully", resp.Response.Message)
	assert.Equal(t, 25.0, resp.Order.TotalAmount)
	assert.Equal(t, orderv1.OrderStatusPending, resp.Order.Status)
	assert.Equal(t, id, resp.Order.UserID)
	assert.Len(t, resp.Order.Items, 2)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Alice", resp.User.Name)
}

func TestCancelDeliveredOrder(t *testing.T) {
	c := newCluster(t)
	order := c.placeOrder(t, c.alice(t))
	ctx := context.Background()

	up, err := c.orders.UpdateOrderStatus(ctx, &orderv1.UpdateOrderStatusRequest{OrderID: order.ID, Status: orderv1.OrderStatusDelivered})
	require.NoError(t, err)
	require.True(t, up.Response.Success)

	resp, err := c.orders.CancelOrder(ctx, &orderv1.CancelOrderRequest{OrderID: order.ID})
	require.NoError(t, err)
	assert.False(t, resp.Response.Success)
	assert.Equal(t, "ORDER_CANNOT_CANCEL", resp.Response.ErrorCode)

	got, err := c.orders.GetOrder(ctx, &orderv1.GetOrderRequest{OrderID: order.ID})
	require.NoError(t, err)
	require.True(t, got.Response.Success)
	assert.Equal(t, orderv1.OrderStatusDelivered, got.Order.Status)
}

func TestCancelPendingOrder(t *testing.T) {
	c := newCluster(t)
	order := c.placeOrder(t, c.alice(t))

	resp, err := c.orders.CancelOrder(context.Background(), &orderv1.CancelOrderRequest{OrderID: order.ID})
	require.NoError(t, err)
	require.True(t, resp.Response.Success)
	assert.Equal(t, "Order cancelled successfully", resp.Response.Message)
	assert.Equal(t, orderv1.OrderStatusCancelled, resp.Order.Status)
}

func TestGetMissingOrder(t *testing.T) {
	c := newCluster(t)

	resp, err := c.orders.GetOrder(context.Background(), &orderv1.GetOrderRequest{OrderID: 999})
	require.NoError(t, err)
	assert.False(t, resp.Response.Success)
	assert.Equal(t, "ORDER_NOT_FOUND", resp.Response.ErrorCode)
	assert.Equal(t, "Order not found", resp.Response.Message)
	assert.Nil(t, resp.Order)
}

func TestDuplicateEmailAcrossServices(t *testing.T) {
	c := newCluster(t)
	c.alice(t)

	resp, err := c.users.CreateUser(context.Background(), &userv1.CreateUserRequest{Name: "Other", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.False(t, resp.Response.Success)
	assert.Equal(t, "USER_ALREADY_EXISTS", resp.Response.ErrorCode)
	assert.EqualValues(t, 1, countRows(t, c.userDB, "users"))
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	c := newCluster(t)
	order := c.placeOrder(t, c.alice(t))

	resp, err := c.orders.UpdateOrderStatus(context.Background(), &orderv1.UpdateOrderStatusRequest{OrderID: order.ID, Status: "LOST"})
	require.NoError(t, err)
	assert.False(t, resp.Response.Success)
	assert.Equal(t, "INVALID_ORDER_STATUS", resp.Response.ErrorCode)
}

func TestGetCustomerOrders(t *testing.T) {
	c := newCluster(t)
	id := c.alice(t)
	first := c.placeOrder(t, id)
	second := c.placeOrder(t, id)

	resp, err := c.orders.GetUserOrders(context.Background(), &orderv1.GetUserOrdersRequest{UserID: id})
	require.NoError(t, err)
	require.True(t, resp.Response.Success)
	require.Len(t, resp.Orders, 2)
	ids := []int64{resp.Orders[0].ID, resp.Orders[1].ID}
	assert.ElementsMatch(t, []int64{first.ID, second.ID}, ids)
	assert.Equal(t, "Alice", resp.User.Name)
}

func TestCreateOrderWhenUserServiceIsDown(t *testing.T) {
	c := newCluster(t)
	c.userSrv.Stop()

	_, err := c.orders.CreateOrder(context.Background(), &orderv1.CreateOrderRequest{
		UserID: 1,
		Items:  []*orderv1.OrderItem{{ProductID: 1, Price: ptr(10), Quantity: 1}},
	})
	require.Error(t, err)
	st, _ := gstatus.FromError(err)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "Failed to create order", st.Message())
	assert.Zero(t, countRows(t, c.orderDB, "orders"))
}

func TestMalformedRequestIsRejectedBeforeTheHandler(t *testing.T) {
	c := newCluster(t)

	resp, err := c.orders.GetOrder(context.Background(), &orderv1.GetOrderRequest{OrderID: 0})
	require.Error(t, err)
	assert.Nil(t, resp)
	st, _ := gstatus.FromError(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())

	info, ok := grpcx.ExtractErrorInfo(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", info.GetReason())

	vs := grpcx.ExtractFieldViolations(err)
	require.Len(t, vs, 1)
	assert.Equal(t, "orderId", vs[0].Field)
	assert.Equal(t, "gt", vs[0].Reason)
}
