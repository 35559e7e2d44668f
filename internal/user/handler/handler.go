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

// Package handler serves commerce.user.v1.UserService.
package handler

import (
	"context"

	v1 "dirpx.dev/commerce/api/user/v1"
	"dirpx.dev/commerce/apis"
	"dirpx.dev/commerce/envelope"
	"dirpx.dev/commerce/grpcx"
	"dirpx.dev/commerce/internal/user/biz"
	"dirpx.dev/commerce/internal/user/errno"
	"dirpx.dev/commerce/internal/user/model"
	"go.uber.org/zap"
)

// Handler implements v1.UserServiceServer.
type Handler struct {
	v1.UnimplementedUserServiceServer

	users  *biz.Users
	mapper apis.Mapper
	log    *zap.Logger
}

var _ v1.UserServiceServer = (*Handler)(nil)

// New returns a handler over users. Client-facing errors are reported inline
// with statuses resolved by m.
func New(users *biz.Users, m apis.Mapper, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{users: users, mapper: m, log: log.Named("user.handler")}
}

func (h *Handler) CreateUser(ctx context.Context, req *v1.CreateUserRequest) (*v1.CreateUserResponse, error) {
	u, err := h.users.Create(ctx, profile(req.Name, req.Email, req.Phone, req.Address))
	if err != nil {
		env, err := grpcx.Inline(ctx, h.mapper, err)
		if err != nil {
			return nil, err
		}
		return &v1.CreateUserResponse{Response: env}, nil
	}
	return &v1.CreateUserResponse{Response: envelope.Success(errno.MsgUserCreated), User: ToWire(u)}, nil
}

func (h *Handler) GetUser(ctx context.Context, req *v1.GetUserRequest) (*v1.GetUserResponse, error) {
	u, err := h.users.Get(ctx, req.UserID)
	if err != nil {
		env, err := grpcx.Inline(ctx, h.mapper, err)
		if err != nil {
			return nil, err
		}
		return &v1.GetUserResponse{Response: env}, nil
	}
	return &v1.GetUserResponse{Response: envelope.Success(errno.MsgUserFound), User: ToWire(u)}, nil
}

func (h *Handler) UpdateUser(ctx context.Context, req *v1.UpdateUserRequest) (*v1.UpdateUserResponse, error) {
	u, err := h.users.Update(ctx, req.UserID, profile(req.Name, req.Email, req.Phone, req.Address))
	if err != nil {
		env, err := grpcx.Inline(ctx, h.mapper, err)
		if err != nil {
			return nil, err
		}
		return &v1.UpdateUserResponse{Response: env}, nil
	}
	return &v1.UpdateUserResponse{Response: envelope.Success(errno.MsgUserUpdated), User: ToWire(u)}, nil
}

func (h *Handler) DeleteUser(ctx context.Context, req *v1.DeleteUserRequest) (*v1.DeleteUserResponse, error) {
	if err := h.users.Delete(ctx, req.UserID); err != nil {
		env, err := grpcx.Inline(ctx, h.mapper, err)
		if err != nil {
			return nil, err
		}
		return &v1.DeleteUserResponse{Response: env}, nil
	}
	return &v1.DeleteUserResponse{Response: envelope.Success(errno.MsgUserDeleted)}, nil
}

// ValidateUser answers whether a user exists. Store failures are not folded
// into IsValid=false; they fail the call.
func (h *Handler) ValidateUser(ctx context.Context, req *v1.ValidateUserRequest) (*v1.ValidateUserResponse, error) {
	u, ok, err := h.users.Validate(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		h.log.Info("validation of unknown user",
			zap.Int64("user_id", req.UserID),
			zap.String("correlation_id", grpcx.CorrelationID(ctx)),
		)
		return &v1.ValidateUserResponse{IsValid: false, ErrorMessage: errno.ErrUserNotFound.Message}, nil
	}
	return &v1.ValidateUserResponse{IsValid: true, User: ToWire(u)}, nil
}

func profile(name, email, phone string, addr *v1.Address) model.Profile {
	p := model.Profile{Name: name, Email: email, Phone: phone}
	if addr != nil {
		p.Address = &model.Address{
			Street:  addr.Street,
			City:    addr.City,
			State:   addr.State,
			ZipCode: addr.ZipCode,
			Country: addr.Country,
		}
	}
	return p
}

// ToWire converts a snapshot to its wire form.
func ToWire(u model.User) *v1.User {
	out := &v1.User{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
	if !u.Address.IsZero() {
		out.Address = &v1.Address{
			Street:  u.Address.Street,
			City:    u.Address.City,
			State:   u.Address.State,
			ZipCode: u.Address.ZipCode,
			Country: u.Address.Country,
		}
	}
	return out
}
