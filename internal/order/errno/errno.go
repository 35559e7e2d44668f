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

// Package errno is the error catalog of the order service.
package errno

import (
	"dirpx.dev/commerce/derrors"
	"dirpx.dev/commerce/reason"
)

var (
	ErrOrderNotFound         = derrors.Define(derrors.KindNotFound, "ORDER_NOT_FOUND", "Order not found")
	ErrOrderToUpdateNotFound = derrors.Define(derrors.KindNotFound, "ORDER_NOT_FOUND", "Order to update not found")
	ErrOrderToCancelNotFound = derrors.Define(derrors.KindNotFound, "ORDER_NOT_FOUND", "Order to cancel not found")

	ErrInvalidCustomer   = derrors.Define(derrors.KindBusinessRule, "INVALID_CUSTOMER", "Invalid customer")
	ErrCustomerNotFound  = derrors.Define(derrors.KindBusinessRule, "CUSTOMER_NOT_FOUND", "Customer not found for order")
	ErrOrderCannotCancel = derrors.Define(derrors.KindBusinessRule, "ORDER_CANNOT_CANCEL", "Cannot cancel delivered order")

	ErrInvalidOrderStatus = derrors.Define(derrors.KindValidation, "INVALID_ORDER_STATUS", "Invalid order status")

	ErrOrderCreate    = derrors.Define(derrors.KindInternal, "ORDER_CREATE_ERROR", "Failed to create order")
	ErrOrderFetch     = derrors.Define(derrors.KindInternal, "ORDER_FETCH_ERROR", "Failed to fetch order")
	ErrCustomerOrders = derrors.Define(derrors.KindInternal, "ORDER_FETCH_ERROR", "Failed to fetch customer orders")
	ErrOrderUpdate    = derrors.Define(derrors.KindInternal, "ORDER_UPDATE_ERROR", "Failed to update order status")
	ErrOrderCancel    = derrors.Define(derrors.KindInternal, "ORDER_CANCEL_ERROR", "Failed to cancel order")
)

// Operations, used as error reasons. The gateway maps BusinessRuleViolation
// under ReasonCancel to 409.
var (
	ReasonCreate       = reason.MustParse("order.create")
	ReasonGet          = reason.MustParse("order.get")
	ReasonUpdateStatus = reason.MustParse("order.update_status")
	ReasonCancel       = reason.MustParse("order.cancel")
	ReasonList         = reason.MustParse("order.list")
)

// Success messages.
const (
	MsgOrderCreated   = "Order created successfully"
	MsgOrderFound     = "Order found"
	MsgStatusUpdated  = "Order status updated successfully"
	MsgCustomerOrders = "Customer orders found"
	MsgOrderCancelled = "Order cancelled successfully"
)
