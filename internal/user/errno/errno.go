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

// Package errno is the error catalog of the user service.
package errno

import (
	"dirpx.dev/commerce/derrors"
	"dirpx.dev/commerce/reason"
)

var (
	ErrUserNotFound         = derrors.Define(derrors.KindNotFound, "USER_NOT_FOUND", "User not found")
	ErrUserToUpdateNotFound = derrors.Define(derrors.KindNotFound, "USER_NOT_FOUND", "User to update not found")
	ErrUserToDeleteNotFound = derrors.Define(derrors.KindNotFound, "USER_NOT_FOUND", "User to delete not found")
	ErrUserAlreadyExists    = derrors.Define(derrors.KindDuplicate, "USER_ALREADY_EXISTS", "User with email already exists")

	ErrUserCreate = derrors.Define(derrors.KindInternal, "USER_CREATE_ERROR", "Failed to create user")
	ErrUserFetch  = derrors.Define(derrors.KindInternal, "USER_FETCH_ERROR", "Failed to fetch user")
	ErrUserUpdate = derrors.Define(derrors.KindInternal, "USER_UPDATE_ERROR", "Failed to update user")
	ErrUserDelete = derrors.Define(derrors.KindInternal, "USER_DELETE_ERROR", "Failed to delete user")
)

// Operations, used as error reasons.
var (
	ReasonCreate   = reason.MustParse("user.create")
	ReasonGet      = reason.MustParse("user.get")
	ReasonUpdate   = reason.MustParse("user.update")
	ReasonDelete   = reason.MustParse("user.delete")
	ReasonValidate = reason.MustParse("user.validate")
)

// Success messages.
const (
	MsgUserCreated = "User created successfully"
	MsgUserFound   = "User found"
	MsgUserUpdated = "User updated successfully"
	MsgUserDeleted = "User deleted successfully"
	MsgUserValid   = "User is valid"
)
