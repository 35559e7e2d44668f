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

// Package gateway exposes the order operations over HTTP with gin. Failures
// are written by httpx as google.rpc.Status JSON, so HTTP and gRPC clients
// see the same error contract.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	v1 "dirpx.dev/commerce/api/order/v1"
	"dirpx.dev/commerce/apis"
	"dirpx.dev/commerce/code"
	"dirpx.dev/commerce/derrors"
	"dirpx.dev/commerce/envelope"
	"dirpx.dev/commerce/grpcx"
	"dirpx.dev/commerce/httpx"
	"dirpx.dev/commerce/internal/order/biz"
	"dirpx.dev/commerce/internal/order/errno"
	"dirpx.dev/commerce/internal/order/handler"
	"dirpx.dev/commerce/mapper"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/kart-io/version"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// NewMapper returns the mapper used by the gateway: cancelling an order in
// a state that forbids it is reported as 409 Conflict rather than 422.
func NewMapper() (apis.Mapper, error) {
	return mapper.New(
		mapper.WithHTTPPrefix(code.BusinessRuleViolation, errno.ReasonCancel.String(), http.StatusConflict),
	)
}

// Gateway serves the order REST API.
type Gateway struct {
	orders   *biz.Orders
	writer   httpx.Writer
	validate *validator.Validate
	tracer   trace.Tracer
	log      *zap.Logger
}

// New returns a gateway over orders with errors mapped by m.
func New(orders *biz.Orders, m apis.Mapper, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{
		orders:   orders,
		writer:   httpx.Writer{Mapper: m},
		validate: grpcx.NewValidator(),
		tracer:   otel.Tracer("dirpx.dev/commerce/internal/order/gateway"),
		log:      log.Named("gateway"),
	}
}

// Router builds the gin engine.
func (g *Gateway) Router() *gin.Engine {
	r := gin.New()
	r.Use(g.requestContext(), g.requestLogger(), gin.CustomRecovery(g.recover))

	r.GET("/healthz", g.healthz)
	r.GET("/version", g.version)

	api := r.Group("/v1")
	{
		api.POST("/orders", g.createOrder)
		api.GET("/orders/:id", g.getOrder)
		api.PUT("/orders/:id/status", g.updateOrderStatus)
		api.POST("/orders/:id/cancel", g.cancelOrder)
		api.GET("/customers/:id/orders", g.listCustomerOrders)
	}
	return r
}

func (g *Gateway) createOrder(c *gin.Context) {
	var req v1.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		g.fail(c, malformedBody(err))
		return
	}
	ctx := c.Request.Context()
	if err := grpcx.CheckMessage(ctx, g.validate, &req); err != nil {
		g.fail(c, err)
		return
	}
	o, customer, err := g.orders.Create(ctx, req.UserID, handler.ItemsFromWire(req.Items))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, &v1.CreateOrderResponse{
		Response: envelope.Success(errno.MsgOrderCreated),
		Order:    handler.OrderToWire(o),
		User:     customer,
	})
}

func (g *Gateway) getOrder(c *gin.Context) {
	id, ok := g.pathID(c)
	if !ok {
		return
	}
	o, customer, err := g.orders.Get(c.Request.Context(), id)
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &v1.GetOrderResponse{
		Response: envelope.Success(errno.MsgOrderFound),
		Order:    handler.OrderToWire(o),
		User:     customer,
	})
}

func (g *Gateway) updateOrderStatus(c *gin.Context) {
	id, ok := g.pathID(c)
	if !ok {
		return
	}
	var req v1.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		g.fail(c, malformedBody(err))
		return
	}
	o, err := g.orders.UpdateStatus(c.Request.Context(), id, string(req.Status))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &v1.UpdateOrderStatusResponse{
		Response: envelope.Success(errno.MsgStatusUpdated),
		Order:    handler.OrderToWire(o),
	})
}

func (g *Gateway) cancelOrder(c *gin.Context) {
	id, ok := g.pathID(c)
	if !ok {
		return
	}
	o, err := g.orders.Cancel(c.Request.Context(), id)
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &v1.CancelOrderResponse{
		Response: envelope.Success(errno.MsgOrderCancelled),
		Order:    handler.OrderToWire(o),
	})
}

func (g *Gateway) listCustomerOrders(c *gin.Context) {
	id, ok := g.pathID(c)
	if !ok {
		return
	}
	orders, customer, err := g.orders.ListForCustomer(c.Request.Context(), id)
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, &v1.GetUserOrdersResponse{
		Response: envelope.Success(errno.MsgCustomerOrders),
		Orders:   handler.OrdersToWire(orders),
		User:     customer,
	})
}

func (g *Gateway) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (g *Gateway) version(c *gin.Context) {
	info := version.Get()
	c.JSON(http.StatusOK, gin.H{
		"gitVersion": info.GitVersion,
		"gitCommit":  info.GitCommit,
		"buildDate":  info.BuildDate,
		"goVersion":  info.GoVersion,
	})
}

// pathID parses the :id parameter, writing a validation error when it is
// not a positive integer.
func (g *Gateway) pathID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err == nil && id > 0 {
		return id, true
	}
	g.fail(c, derrors.E(derrors.KindValidation, "Validation failed",
		derrors.WithViolations(apis.Detail{Type: "field", Field: "id", Reason: "gt", Info: map[string]string{"param": "0"}}),
		derrors.WithTechnicalf("path id %q is not a positive integer", raw),
	))
	return 0, false
}

func malformedBody(err error) error {
	return derrors.E(derrors.KindValidation, "Malformed request body",
		derrors.WithTechnical("decode body: "+err.Error()),
		derrors.WithCause(err),
	)
}

// fail writes err and logs it like the gRPC interceptor does.
func (g *Gateway) fail(c *gin.Context, err error) {
	ctx := c.Request.Context()
	sc := trace.SpanContextFromContext(ctx)
	meta := httpx.Meta{Correlation: correlationID(ctx)}
	if sc.IsValid() {
		meta.TraceID, meta.SpanID = sc.TraceID().String(), sc.SpanID().String()
	}

	fields := []zap.Field{
		zap.String("path", c.FullPath()),
		zap.String("correlation_id", meta.Correlation),
		zap.Error(err),
	}
	if k, ok := derrors.KindOf(err); ok && k.ClientFacing() {
		g.log.Warn("request failed", fields...)
	} else {
		g.log.Error("request failed", fields...)
	}

	g.writer.Write(c.Writer, err, meta)
	c.Abort()
}

func (g *Gateway) recover(c *gin.Context, recovered any) {
	g.fail(c, fmt.Errorf("panic serving %s: %v", c.FullPath(), recovered))
}

type correlationKey struct{}

func correlationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
