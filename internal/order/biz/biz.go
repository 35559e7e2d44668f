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

// Package biz orchestrates order operations across the order store and the
// user service.
package biz

import (
	"context"
	"errors"
	"fmt"

	userv1 "dirpx.dev/commerce/api/user/v1"
	"dirpx.dev/commerce/derrors"
	"dirpx.dev/commerce/internal/order/errno"
	"dirpx.dev/commerce/internal/order/model"
	"dirpx.dev/commerce/internal/order/store"
	"dirpx.dev/commerce/reason"
	"go.uber.org/zap"
)

// Store is the persistence the service needs.
type Store interface {
	Create(ctx context.Context, o model.Order) (model.Order, error)
	Get(ctx context.Context, id int64) (model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, o model.Order) (model.Order, error)
}

// Orders runs the order operations.
type Orders struct {
	store Store
	users userv1.UserServiceClient
	log   *zap.Logger
}

// New returns the order operations over s, checking customers with users.
func New(s Store, users userv1.UserServiceClient, log *zap.Logger) *Orders {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orders{store: s, users: users, log: log.Named("order")}
}

// Create places an order for a valid customer. The total is the sum of the
// line subtotals; nothing is stored when the customer is invalid.
func (b *Orders) Create(ctx context.Context, customerID int64, items []model.Item) (model.Order, *userv1.User, error) {
	customer, err := b.validateCustomer(ctx, customerID, errno.ErrOrderCreate, errno.ReasonCreate)
	if err != nil {
		return model.Order{}, nil, err
	}

	var total float64
	for i, it := range items {
		if !it.HasPrice {
			b.log.Warn("order item without price counted as zero",
				zap.Int64("customer_id", customerID),
				zap.Int("item", i),
				zap.Int64("product_id", it.ProductID),
			)
		}
		total += it.Subtotal()
	}

	o, err := b.store.Create(ctx, model.New(customerID, items, total))
	if err != nil {
		return model.Order{}, nil, errno.ErrOrderCreate.Wrap(err, derrors.WithReason(errno.ReasonCreate))
	}
	b.log.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.Int64("customer_id", customerID),
		zap.Float64("total", total),
	)
	return o, customer, nil
}

// Get returns an order together with its customer's profile.
func (b *Orders) Get(ctx context.Context, id int64) (model.Order, *userv1.User, error) {
	o, err := b.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Order{}, nil, errno.ErrOrderNotFound.Detail(fmt.Sprintf("order id %d", id),
			derrors.WithReason(errno.ReasonGet))
	}
	if err != nil {
		return model.Order{}, nil, errno.ErrOrderFetch.Wrap(err, derrors.WithReason(errno.ReasonGet))
	}

	resp, err := b.users.GetUser(ctx, &userv1.GetUserRequest{UserID: o.CustomerID})
	if err != nil {
		return model.Order{}, nil, errno.ErrOrderFetch.Wrap(err, derrors.WithReason(errno.ReasonGet))
	}
	if resp.Response.Failed() || resp.User == nil {
		return model.Order{}, nil, errno.ErrCustomerNotFound.Detail(
			fmt.Sprintf("customer %d of order %d", o.CustomerID, id),
			derrors.WithReason(errno.ReasonGet),
		)
	}
	return o, resp.User, nil
}

// UpdateStatus moves an order to the named status. Any transition is
// accepted.
func (b *Orders) UpdateStatus(ctx context.Context, id int64, status string) (model.Order, error) {
	st, err := model.ParseStatus(status)
	if err != nil {
		return model.Order{}, errno.ErrInvalidOrderStatus.Wrap(err,
			derrors.WithReason(errno.ReasonUpdateStatus),
			derrors.WithDetail("status", status),
		)
	}

	o, err := b.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Order{}, errno.ErrOrderToUpdateNotFound.Detail(fmt.Sprintf("order id %d", id),
			derrors.WithReason(errno.ReasonUpdateStatus))
	}
	if err != nil {
		return model.Order{}, errno.ErrOrderUpdate.Wrap(err, derrors.WithReason(errno.ReasonUpdateStatus))
	}

	updated, err := b.store.UpdateStatus(ctx, o.WithStatus(st))
	if errors.Is(err, store.ErrNotFound) {
		return model.Order{}, errno.ErrOrderToUpdateNotFound.Detail(fmt.Sprintf("order id %d", id),
			derrors.WithReason(errno.ReasonUpdateStatus))
	}
	if err != nil {
		return model.Order{}, errno.ErrOrderUpdate.Wrap(err, derrors.WithReason(errno.ReasonUpdateStatus))
	}
	b.log.Info("order status updated",
		zap.Int64("order_id", id),
		zap.String("from", string(o.Status)),
		zap.String("to", string(st)),
	)
	return updated, nil
}

// Cancel cancels an order unless it was delivered. Cancelling a cancelled
// order succeeds without a write.
func (b *Orders) Cancel(ctx context.Context, id int64) (model.Order, error) {
	o, err := b.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Order{}, errno.ErrOrderToCancelNotFound.Detail(fmt.Sprintf("order id %d", id),
			derrors.WithReason(errno.ReasonCancel))
	}
	if err != nil {
		return model.Order{}, errno.ErrOrderCancel.Wrap(err, derrors.WithReason(errno.ReasonCancel))
	}

	switch o.Status {
	case model.StatusDelivered:
		return model.Order{}, errno.ErrOrderCannotCancel.Detail(fmt.Sprintf("order %d is delivered", id),
			derrors.WithReason(errno.ReasonCancel))
	case model.StatusCancelled:
		return o, nil
	}

	cancelled, err := b.store.UpdateStatus(ctx, o.WithStatus(model.StatusCancelled))
	if err != nil {
		return model.Order{}, errno.ErrOrderCancel.Wrap(err, derrors.WithReason(errno.ReasonCancel))
	}
	b.log.Info("order cancelled", zap.Int64("order_id", id))
	return cancelled, nil
}

// ListForCustomer returns all orders of a valid customer, newest first.
func (b *Orders) ListForCustomer(ctx context.Context, customerID int64) ([]model.Order, *userv1.User, error) {
	customer, err := b.validateCustomer(ctx, customerID, errno.ErrCustomerOrders, errno.ReasonList)
	if err != nil {
		return nil, nil, err
	}
	orders, err := b.store.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, nil, errno.ErrCustomerOrders.Wrap(err, derrors.WithReason(errno.ReasonList))
	}
	return orders, customer, nil
}

// validateCustomer asks the user service whether the customer exists. The
// call is detached from the inbound cancellation: once started it runs to
// completion. A transport failure is reported as onFailure. Errors carry
// the reason "<op>.customer".
func (b *Orders) validateCustomer(ctx context.Context, customerID int64, onFailure derrors.Entry, op reason.Reason) (*userv1.User, error) {
	r := derrors.WithReason(op.Child("customer"))
	resp, err := b.users.ValidateUser(context.WithoutCancel(ctx), &userv1.ValidateUserRequest{UserID: customerID})
	if err != nil {
		return nil, onFailure.Wrap(err, r)
	}
	if !resp.IsValid {
		return nil, errno.ErrInvalidCustomer.Detail(
			fmt.Sprintf("customer %d: %s", customerID, resp.ErrorMessage), r)
	}
	return resp.User, nil
}
