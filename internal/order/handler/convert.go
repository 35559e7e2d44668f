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
	v1 "dirpx.dev/commerce/api/order/v1"
	"dirpx.dev/commerce/internal/order/model"
)

// CreatedAtLayout is the wire format of Order.CreatedAt, a local date-time.
const CreatedAtLayout = "2006-01-02T15:04:05"

// ItemsFromWire converts request lines. Nil lines are skipped.
func ItemsFromWire(in []*v1.OrderItem) []model.Item {
	out := make([]model.Item, 0, len(in))
	for _, it := range in {
		if it == nil {
			continue
		}
		item := model.Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
		}
		if it.Price != nil {
			item.Price, item.HasPrice = *it.Price, true
		}
		out = append(out, item)
	}
	return out
}

// OrderToWire converts a snapshot to its wire form.
func OrderToWire(o model.Order) *v1.Order {
	out := &v1.Order{
		ID:          o.ID,
		UserID:      o.CustomerID,
		TotalAmount: o.TotalAmount,
		Status:      v1.OrderStatus(o.Status),
		Items:       make([]*v1.OrderItem, 0, len(o.Items)),
	}
	if !o.CreatedAt.IsZero() {
		out.CreatedAt = o.CreatedAt.Local().Format(CreatedAtLayout)
	}
	for _, it := range o.Items {
		w := &v1.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
		}
		if it.HasPrice {
			p := it.Price
			w.Price = &p
		}
		out.Items = append(out.Items, w)
	}
	return out
}

// OrdersToWire converts a list of snapshots.
func OrdersToWire(orders []model.Order) []*v1.Order {
	out := make([]*v1.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderToWire(o))
	}
	return out
}
