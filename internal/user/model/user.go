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

// Package model holds the user snapshot handed between layers.
package model

import "time"

// Address is an optional postal address. The zero value means "none".
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// IsZero reports whether no address field is set.
func (a Address) IsZero() bool { return a == Address{} }

// Profile is the user-editable part of a user.
type Profile struct {
	Name  string
	Email string
	Phone string
	// Address is replaced only when non-nil.
	Address *Address
}

// User is an immutable snapshot of a stored user. Changes go through Apply,
// which returns a new snapshot to persist.
type User struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Address   Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New returns an unsaved user built from p.
func New(p Profile) User {
	return User{}.Apply(p)
}

// Apply returns a copy of u with p's fields.
func (u User) Apply(p Profile) User {
	u.Name = p.Name
	u.Email = p.Email
	u.Phone = p.Phone
	if p.Address != nil {
		u.Address = *p.Address
	}
	return u
}
