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

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	userv1 "dirpx.dev/commerce/api/user/v1"
	"dirpx.dev/commerce/envelope"
	"dirpx.dev/commerce/grpcx"
	"dirpx.dev/commerce/internal/order/biz"
	"dirpx.dev/commerce/internal/order/store"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type mockUsers struct {
	userv1.UserServiceClient
	mock.Mock
}

func (m *mockUsers) ValidateUser(ctx context.Context, in *userv1.ValidateUserRequest, _ ...grpc.CallOption) (*userv1.ValidateUserResponse, error) {
	args := m.Called(in.UserID)
	resp, _ := args.Get(0).(*userv1.ValidateUserResponse)
	return resp, args.Error(1)
}

func (m *mockUsers) GetUser(ctx context.Context, in *userv1.GetUserRequest, _ ...grpc.CallOption) (*userv1.GetUserResponse, error) {
	args := m.Called(in.UserID)
	resp, _ := args.Get(0).(*userv1.GetUserResponse)
	return resp, args.Error(1)
}

var alice = &userv1.User{ID: 42, Name: "Alice", Email: "alice@example.com"}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, store.AutoMigrate(db))

	users := new(mockUsers)
	users.On("ValidateUser", int64(42)).Return(&userv1.ValidateUserResponse{IsValid: true, User: alice}, nil)
	users.On("ValidateUser", int64(13)).Return(&userv1.ValidateUserResponse{IsValid: false, ErrorMessage: "blocked"}, nil)
	users.On("GetUser", int64(42)).Return(&userv1.GetUserResponse{Response: envelope.Success("User found"), User: alice}, nil)

	m, err := NewMapper()
	require.NoError(t, err)
	return New(biz.New(store.New(db), users, nil), m, nil).Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func errorInfo(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	details, _ := body["details"].([]any)
	for _, d := range details {
		m := d.(map[string]any)
		if m["@type"] == "type.googleapis.com/google.rpc.ErrorInfo" {
			return m
		}
	}
	t.Fatalf("no ErrorInfo in %v", body)
	return nil
}

func createOrder(t *testing.T, h http.Handler) int64 {
	t.Helper()
	rec, body := do(t, h, http.MethodPost, "/v1/orders",
		`{"userId":42,"items":[{"productName":"pen","price":10.0,"quantity":2},{"productName":"pad","price":5.0,"quantity":1}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := body["order"].(map[string]any)
	return int64(order["id"].(float64))
}

func TestCreateOrder(t *testing.T) {
	h := newRouter(t)
	rec, body := do(t, h, http.MethodPost, "/v1/orders",
		`{"userId":42,"items":[{"price":10.0,"quantity":2},{"price":5.0,"quantity":1}]}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(grpcx.CorrelationHeader))
	resp := body["response"].(map[string]any)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Order created successfully", resp["message"])
	order := body["order"].(map[string]any)
	assert.Equal(t, 25.0, order["totalAmount"])
	assert.Equal(t, "PENDING", order["status"])
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`, order["createdAt"])
}

func TestCreateOrderInvalidCustomer(t *testing.T) {
	h := newRouter(t)
	rec, body := do(t, h, http.MethodPost, "/v1/orders", `{"userId":13,"items":[{"price":1,"quantity":1}]}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.EqualValues(t, 3, body["code"])
	assert.Equal(t, "Invalid customer", body["message"])
	assert.Equal(t, "INVALID_CUSTOMER", errorInfo(t, body)["reason"])
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	h := newRouter(t)

	rec, body := do(t, h, http.MethodPost, "/v1/orders", `{"userId":42,"items":[{"price":1,"quantity":0}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorInfo(t, body)["reason"])
	assert.Contains(t, rec.Body.String(), "items[0].quantity")

	rec, body = do(t, h, http.MethodPost, "/v1/orders", `{"userId":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Malformed request body", body["message"])
}

func TestGetOrder(t *testing.T) {
	h := newRouter(t)
	id := createOrder(t, h)

	rec, body := do(t, h, http.MethodGet, "/v1/orders/"+itoa(id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alice", body["user"].(map[string]any)["name"])

	rec, body = do(t, h, http.MethodGet, "/v1/orders/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.EqualValues(t, 5, body["code"])
	assert.Equal(t, "ORDER_NOT_FOUND", errorInfo(t, body)["reason"])

	rec, _ = do(t, h, http.MethodGet, "/v1/orders/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelDeliveredIsConflict(t *testing.T) {
	h := newRouter(t)
	id := createOrder(t, h)

	rec, _ := do(t, h, http.MethodPut, "/v1/orders/"+itoa(id)+"/status", `{"status":"DELIVERED"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := do(t, h, http.MethodPost, "/v1/orders/"+itoa(id)+"/cancel", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.EqualValues(t, 3, body["code"], "gRPC code is not affected by the HTTP rule")
	info := errorInfo(t, body)
	assert.Equal(t, "ORDER_CANNOT_CANCEL", info["reason"])
	assert.Equal(t, "order.cancel", info["metadata"].(map[string]any)["reason"])

	_, body = do(t, h, http.MethodGet, "/v1/orders/"+itoa(id), "")
	assert.Equal(t, "DELIVERED", body["order"].(map[string]any)["status"])
}

func TestUpdateStatusInvalid(t *testing.T) {
	h := newRouter(t)
	id := createOrder(t, h)

	rec, body := do(t, h, http.MethodPut, "/v1/orders/"+itoa(id)+"/status", `{"status":"LOST"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ORDER_STATUS", errorInfo(t, body)["reason"])
}

func TestCustomerOrders(t *testing.T) {
	h := newRouter(t)
	createOrder(t, h)
	createOrder(t, h)

	rec, body := do(t, h, http.MethodGet, "/v1/customers/42/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["orders"], 2)

	rec, _ = do(t, h, http.MethodGet, "/v1/customers/13/orders", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHealthz(t *testing.T) {
	rec, body := do(t, newRouter(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
