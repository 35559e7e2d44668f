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

// Package handler serves commerce.order.v1.OrderService.
package handler

import (
	"context"

	v1 "dirpx.dev/commerce/api/order/v1"
	"dirpx.dev/commerce/apis"
	"dirpx.dev/commerce/envelope"
	"dirpx.dev/commerce/grpcx"
	"dirpx.dev/commerce/internal/order/biz"
	"dirpx.dev/commerce/internal/order/errno"
	"go.uber.org/zap"
)

// Handler implements v1.OrderServiceServer.
type Handler struct {
	v1.UnimplementedOrderServiceServer

	orders *biz.Orders
	mapper apis.Mapper
	log    *zap.Logger
}

var (
	_ v1.OrderServiceServer = (*Handler)(nil)
	_ grpcx.CancelHook      = (*Handler)(nil)
)

// New returns a handler over orders. Client-facing errors are reported
// inline with statuses resolved by m.
func New(orders *biz.Orders, m apis.Mapper, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{orders: orders, mapper: m, log: log.Named("order.handler")}
}

func (h *Handler) CreateOrder(ctx context.Context, req *v1.CreateOrderRequest) (*v1.CreateOrderResponse, error) {
	o, customer, err := h.orders.Create(ctx, req.UserID, ItemsFromWire(req.Items))
	if err != nil {
		env, err := grpcx.Inline(ctx, h.mapper, err)
		if err != nil {
			return nil, err
		}
		return &v1.CreateOrderResponse{Response: env}, nil
	}
	return &v1.CreateOrderResponse{
		Response: envelope.Success(errno.MsgOrderCreated),
		Order:    OrderToWire(o),
		User:     customer,
	}, nil
}

func (h *Handler) GetOrder(ctx context.Context, req *v1.GetOrderRequest) (*v1.GetOrderResponse, error) {
	o, customer, err := h.orders.Get(ctx, req.OrderID)
	if err != nil {
		env, err := grpcx.Inline(ctx, h.mapper, err)
		if err != nil {
			return nil, err
		}
		return &v1.GetOrderResponse{Response: env}, nil
	}
	return &v1.GetOrderResponse{
		Response: envelope.Success(errno.MsgOrderFound),
		Order:    OrderToWire(o),
		User:     customer,
	}, nil
}

func (h *Handler) UpdateOrderStatus(ctx context.Context, req *v1.UpdateOrderStatusRequest) (*v1.UpdateOrderStatusResponse, error) {
	o, err := h.orders.UpdateStatus(ctx, req.OrderID, string(req.Status))
	if err != nil {
		env, err := grpcx.Inline(ctx, h.mapper, err)
		if err != nil {
			return nil, err
		}
		return &v1.UpdateOrderStatusResponse{Response: env}, nil
	}
	return &v1.UpdateOrderStatusResponse{
		Response: envelope.Success(errno.MsgStatusUpdated),
		Order:    OrderToWire(o),
	}, nil
}

func (h *Handler) GetUserOrders(ctx context.Context, req *v1.GetUserOrdersRequest) (*v1.GetUserOrdersResponse, error) {
	orders, customer, err := h.orders.ListForCustomer(ctx, req.UserID)
	if err != nil {
		env, err := grpcx.Inline(ctx, h.mapper, err)
		if err != nil {
			return nil, err
		}
		return &v1.GetUserOrdersResponse{Response: env}, nil
	}
	return &v1.GetUserOrdersResponse{
		Response: envelope.Success(errno.MsgCustomerOrders),
		Orders:   OrdersToWire(orders),
		User:     customer,
	}, nil
}

func (h *Handler) CancelOrder(ctx context.Context, req *v1.CancelOrderRequest) (*v1.CancelOrderResponse, error) {
	o, err := h.orders.Cancel(ctx, req.OrderID)
	if err != nil {
		env, err := grpcx.Inline(ctx, h.mapper, err)
		if err != nil {
			return nil, err
		}
		return &v1.CancelOrderResponse{Response: env}, nil
	}
	return &v1.CancelOrderResponse{
		Response: envelope.Success(errno.MsgOrderCancelled),
		Order:    OrderToWire(o),
	}, nil
}

// OnCancel records calls abandoned by the client. Work already started,
// such as customer validation, runs to completion.
func (h *Handler) OnCancel(ctx context.Context, method string) error {
	h.log.Info("call cancelled by client",
		zap.String("method", method),
		zap.String("correlation_id", grpcx.CorrelationID(ctx)),
	)
	return nil
}
