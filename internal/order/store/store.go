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

// Package store persists orders and their items with gorm.
package store

import (
	"context"
	"errors"
	"time"

	"dirpx.dev/commerce/internal/order/model"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no order matches.
var ErrNotFound = errors.New("order store: record not found")

type orderRow struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	CustomerID  int64     `gorm:"not null;index"`
	TotalAmount float64   `gorm:"not null"`
	Status      string    `gorm:"size:16;not null"`
	Items       []itemRow `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (orderRow) TableName() string { return "orders" }

type itemRow struct {
	ID          int64    `gorm:"primaryKey;autoIncrement"`
	OrderID     int64    `gorm:"not null;index"`
	ProductID   int64    `gorm:"not null"`
	ProductName string   `gorm:"size:255"`
	Quantity    int32    `gorm:"not null"`
	Price       *float64
}

func (itemRow) TableName() string { return "order_items" }

func (r orderRow) snapshot() model.Order {
	o := model.Order{
		ID:          r.ID,
		CustomerID:  r.CustomerID,
		TotalAmount: r.TotalAmount,
		Status:      model.Status(r.Status),
		CreatedAt:   r.CreatedAt,
		Items:       make([]model.Item, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		item := model.Item{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
		}
		if it.Price != nil {
			item.Price, item.HasPrice = *it.Price, true
		}
		o.Items = append(o.Items, item)
	}
	return o
}

func itemRowFrom(orderID int64, it model.Item) itemRow {
	row := itemRow{
		OrderID:     orderID,
		ProductID:   it.ProductID,
		ProductName: it.ProductName,
		Quantity:    it.Quantity,
	}
	if it.HasPrice {
		p := it.Price
		row.Price = &p
	}
	return row
}

// Orders is the order store.
type Orders struct {
	db *gorm.DB
}

// New returns a store over db.
func New(db *gorm.DB) *Orders {
	return &Orders{db: db}
}

// AutoMigrate creates or updates the orders and order_items tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderRow{}, &itemRow{})
}

// Create stores the header and then its items in one transaction, so either
// both exist or neither does.
func (s *Orders) Create(ctx context.Context, o model.Order) (model.Order, error) {
	header := orderRow{
		CustomerID:  o.CustomerID,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(&header).Error; err != nil {
			return err
		}
		if len(o.Items) == 0 {
			return nil
		}
		items := make([]itemRow, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, itemRowFrom(header.ID, it))
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		header.Items = items
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return header.snapshot(), nil
}

// Get returns the order with its items.
func (s *Orders) Get(ctx context.Context, id int64) (model.Order, error) {
	var row orderRow
	err := s.db.WithContext(ctx).Preload("Items", orderItems).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return row.snapshot(), nil
}

// ListByCustomer returns every order of a customer, newest first.
func (s *Orders) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	var rows []orderRow
	err := s.db.WithContext(ctx).
		Preload("Items", orderItems).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]model.Order, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.snapshot())
	}
	return out, nil
}

// UpdateStatus persists o's status and returns the stored snapshot.
func (s *Orders) UpdateStatus(ctx context.Context, o model.Order) (model.Order, error) {
	var row orderRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, o.ID).Error; err != nil {
			return err
		}
		if err := tx.Model(&row).Update("status", string(o.Status)).Error; err != nil {
			return err
		}
		return tx.Preload("Items", orderItems).First(&row, o.ID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return row.snapshot(), nil
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
