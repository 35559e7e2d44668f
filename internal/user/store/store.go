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

// Package store persists users with gorm.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dirpx.dev/commerce/internal/user/model"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no user matches.
	ErrNotFound = errors.New("user store: record not found")
	// ErrDuplicate is returned when an email is already registered.
	ErrDuplicate = errors.New("user store: duplicate email")
)

type userRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	Phone     string `gorm:"size:32"`
	Street    string `gorm:"size:255"`
	City      string `gorm:"size:128"`
	State     string `gorm:"size:128"`
	ZipCode   string `gorm:"size:32"`
	Country   string `gorm:"size:128"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRow) TableName() string { return "users" }

func rowFrom(u model.User) userRow {
	return userRow{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Street:    u.Address.Street,
		City:      u.Address.City,
		State:     u.Address.State,
		ZipCode:   u.Address.ZipCode,
		Country:   u.Address.Country,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r userRow) snapshot() model.User {
	return model.User{
		ID:    r.ID,
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
		Address: model.Address{
			Street:  r.Street,
			City:    r.City,
			State:   r.State,
			ZipCode: r.ZipCode,
			Country: r.Country,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Users is the user store.
type Users struct {
	db *gorm.DB
}

// New returns a store over db.
func New(db *gorm.DB) *Users {
	return &Users{db: db}
}

// AutoMigrate creates or updates the users table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&userRow{})
}

// Create inserts u and returns the stored snapshot with its generated id.
func (s *Users) Create(ctx context.Context, u model.User) (model.User, error) {
	row := rowFrom(u)
	row.ID = 0
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.User{}, translate(err)
	}
	return row.snapshot(), nil
}

// Get returns the user with the given id.
func (s *Users) Get(ctx context.Context, id int64) (model.User, error) {
	var row userRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return model.User{}, translate(err)
	}
	return row.snapshot(), nil
}

// GetByEmail returns the user registered with email.
func (s *Users) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var row userRow
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		return model.User{}, translate(err)
	}
	return row.snapshot(), nil
}

// Update overwrites the stored user with u's id.
func (s *Users) Update(ctx context.Context, u model.User) (model.User, error) {
	var out userRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current userRow
		if err := tx.First(&current, u.ID).Error; err != nil {
			return err
		}
		out = rowFrom(u)
		out.CreatedAt = current.CreatedAt
		return tx.Save(&out).Error
	})
	if err != nil {
		return model.User{}, translate(err)
	}
	return out.snapshot(), nil
}

// Delete removes the user with the given id.
func (s *Users) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&userRow{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	default:
		return err
	}
}
