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

// Package model holds the order snapshots handed between layers.
package model

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus parses a status name, ignoring case and surrounding space.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown order status %q", s)
	}
}

// Item is one order line.
type Item struct {
	ID          int64
	ProductID   int64
	ProductName string
	Quantity    int32
	Price       float64
	// HasPrice is false when the line was submitted without a price.
	HasPrice bool
}

// Subtotal is price times quantity; a line without a price counts as zero.
func (it Item) Subtotal() float64 {
	if !it.HasPrice {
		return 0
	}
	return it.Price * float64(it.Quantity)
}

// Order is an immutable snapshot of a stored order. Items must be treated
// as read-only; WithStatus returns a new snapshot with its own copy.
type Order struct {
	ID          int64
	CustomerID  int64
	TotalAmount float64
	Status      Status
	CreatedAt   time.Time
	Items       []Item
}

// New returns an unsaved pending order.
func New(customerID int64, items []Item, total float64) Order {
	return Order{
		CustomerID:  customerID,
		TotalAmount: total,
		Status:      StatusPending,
		Items:       slices.Clone(items),
	}
}

// WithStatus returns a copy of o in status s.
func (o Order) WithStatus(s Status) Order {
	o.Status = s
	o.Items = slices.Clone(o.Items)
	return o
}
