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

// Package v1 holds the wire messages and service descriptor of
// commerce.order.v1.OrderService. Messages travel as JSON (see grpcx.CodecName).
package v1

import (
	userv1 "dirpx.dev/commerce/api/user/v1"
	"dirpx.dev/commerce/envelope"
)

// OrderStatus is the wire form of an order's lifecycle state.
type OrderStatus string

const (
	OrderStatusUnknown   OrderStatus = "UNKNOWN"
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderItem is one line of an order. Price is optional on the wire; a
// missing price counts as zero.
type OrderItem struct {
	ProductID   int64    `json:"productId,omitempty"`
	ProductName string   `json:"productName,omitempty"`
	Quantity    int32    `json:"quantity" validate:"gt=0"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
}

// Order is the public view of a persisted order. CreatedAt is an ISO-8601
// local date-time ("2006-01-02T15:04:05").
type Order struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"userId"`
	TotalAmount float64      `json:"totalAmount"`
	Status      OrderStatus  `json:"status"`
	CreatedAt   string       `json:"createdAt,omitempty"`
	Items       []*OrderItem `json:"items,omitempty"`
}

type CreateOrderRequest struct {
	UserID int64        `json:"userId" validate:"gt=0"`
	Items  []*OrderItem `json:"items" validate:"dive,required"`
}

type CreateOrderResponse struct {
	Response *envelope.Envelope `json:"response"`
	Order    *Order             `json:"order,omitempty"`
	User     *userv1.User       `json:"user,omitempty"`
}

type GetOrderRequest struct {
	OrderID int64 `json:"orderId" validate:"gt=0"`
}

type GetOrderResponse struct {
	Response *envelope.Envelope `json:"response"`
	Order    *Order             `json:"order,omitempty"`
	User     *userv1.User       `json:"user,omitempty"`
}

type UpdateOrderStatusRequest struct {
	OrderID int64       `json:"orderId" validate:"gt=0"`
	Status  OrderStatus `json:"status"`
}

type UpdateOrderStatusResponse struct {
	Response *envelope.Envelope `json:"response"`
	Order    *Order             `json:"order,omitempty"`
}

type GetUserOrdersRequest struct {
	UserID int64 `json:"userId" validate:"gt=0"`
}

type GetUserOrdersResponse struct {
	Response *envelope.Envelope `json:"response"`
	Orders   []*Order           `json:"orders,omitempty"`
	User     *userv1.User       `json:"user,omitempty"`
}

type CancelOrderRequest struct {
	OrderID int64 `json:"orderId" validate:"gt=0"`
}

type CancelOrderResponse struct {
	Response *envelope.Envelope `json:"response"`
	Order    *Order             `json:"order,omitempty"`
}
