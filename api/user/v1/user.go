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
// commerce.user.v1.UserService. Messages travel as JSON (see grpcx.CodecName).
package v1

import "dirpx.dev/commerce/envelope"

// Address is the optional postal address of a user.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// User is the public view of a registered user.
type User struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone,omitempty"`
	Address *Address `json:"address,omitempty"`
}

type CreateUserRequest struct {
	Name    string   `json:"name" validate:"required,max=255"`
	Email   string   `json:"email" validate:"required,email,max=255"`
	Phone   string   `json:"phone,omitempty" validate:"max=32"`
	Address *Address `json:"address,omitempty"`
}

type CreateUserResponse struct {
	Response *envelope.Envelope `json:"response"`
	User     *User              `json:"user,omitempty"`
}

type GetUserRequest struct {
	UserID int64 `json:"userId" validate:"gt=0"`
}

type GetUserResponse struct {
	Response *envelope.Envelope `json:"response"`
	User     *User              `json:"user,omitempty"`
}

// UpdateUserRequest replaces name, email and phone. The address is replaced
// only when present.
type UpdateUserRequest struct {
	UserID  int64    `json:"userId" validate:"gt=0"`
	Name    string   `json:"name" validate:"required,max=255"`
	Email   string   `json:"email" validate:"required,email,max=255"`
	Phone   string   `json:"phone,omitempty" validate:"max=32"`
	Address *Address `json:"address,omitempty"`
}

type UpdateUserResponse struct {
	Response *envelope.Envelope `json:"response"`
	User     *User              `json:"user,omitempty"`
}

type DeleteUserRequest struct {
	UserID int64 `json:"userId" validate:"gt=0"`
}

type DeleteUserResponse struct {
	Response *envelope.Envelope `json:"response"`
}

type ValidateUserRequest struct {
	UserID int64 `json:"userId"`
}

// ValidateUserResponse carries no envelope: an unknown user is a regular
// answer (IsValid false), not a failure.
type ValidateUserResponse struct {
	IsValid      bool   `json:"isValid"`
	User         *User  `json:"user,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}
