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

// Package biz implements the user service operations on top of the store and
// translates store failures into catalog errors.
package biz

import (
	"context"
	"errors"
	"fmt"

	"dirpx.dev/commerce/derrors"
	"dirpx.dev/commerce/internal/user/errno"
	"dirpx.dev/commerce/internal/user/model"
	"dirpx.dev/commerce/internal/user/store"
	"dirpx.dev/commerce/reason"
	"go.uber.org/zap"
)

// Store is the persistence the service needs.
type Store interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	Get(ctx context.Context, id int64) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Update(ctx context.Context, u model.User) (model.User, error)
	Delete(ctx context.Context, id int64) error
}

// Users runs the user operations.
type Users struct {
	store Store
	log   *zap.Logger
}

// New returns the user operations over s.
func New(s Store, log *zap.Logger) *Users {
	if log == nil {
		log = zap.NewNop()
	}
	return &Users{store: s, log: log.Named("user")}
}

// Create registers a user. The email must not be registered yet.
func (b *Users) Create(ctx context.Context, p model.Profile) (model.User, error) {
	_, err := b.store.GetByEmail(ctx, p.Email)
	switch {
	case err == nil:
		return model.User{}, duplicateEmail(p.Email, errno.ReasonCreate)
	case !errors.Is(err, store.ErrNotFound):
		return model.User{}, errno.ErrUserCreate.Wrap(err, derrors.WithReason(errno.ReasonCreate))
	}

	u, err := b.store.Create(ctx, model.New(p))
	if errors.Is(err, store.ErrDuplicate) {
		return model.User{}, duplicateEmail(p.Email, errno.ReasonCreate)
	}
	if err != nil {
		return model.User{}, errno.ErrUserCreate.Wrap(err, derrors.WithReason(errno.ReasonCreate))
	}
	b.log.Info("user created", zap.Int64("user_id", u.ID))
	return u, nil
}

// Get returns the user with the given id.
func (b *Users) Get(ctx context.Context, id int64) (model.User, error) {
	u, err := b.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, errno.ErrUserNotFound.Detail(fmt.Sprintf("user id %d", id),
			derrors.WithReason(errno.ReasonGet))
	}
	if err != nil {
		return model.User{}, errno.ErrUserFetch.Wrap(err, derrors.WithReason(errno.ReasonGet))
	}
	return u, nil
}

// Update replaces the profile of user id. A changed email must not belong
// to another user.
func (b *Users) Update(ctx context.Context, id int64, p model.Profile) (model.User, error) {
	current, err := b.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, errno.ErrUserToUpdateNotFound.Detail(fmt.Sprintf("user id %d", id),
			derrors.WithReason(errno.ReasonUpdate))
	}
	if err != nil {
		return model.User{}, errno.ErrUserUpdate.Wrap(err, derrors.WithReason(errno.ReasonUpdate))
	}

	if p.Email != current.Email {
		other, err := b.store.GetByEmail(ctx, p.Email)
		switch {
		case err == nil && other.ID != id:
			return model.User{}, duplicateEmail(p.Email, errno.ReasonUpdate)
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return model.User{}, errno.ErrUserUpdate.Wrap(err, derrors.WithReason(errno.ReasonUpdate))
		}
	}

	updated, err := b.store.Update(ctx, current.Apply(p))
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return model.User{}, duplicateEmail(p.Email, errno.ReasonUpdate)
	case errors.Is(err, store.ErrNotFound):
		return model.User{}, errno.ErrUserToUpdateNotFound.Detail(fmt.Sprintf("user id %d", id),
			derrors.WithReason(errno.ReasonUpdate))
	case err != nil:
		return model.User{}, errno.ErrUserUpdate.Wrap(err, derrors.WithReason(errno.ReasonUpdate))
	}
	return updated, nil
}

// Delete removes user id.
func (b *Users) Delete(ctx context.Context, id int64) error {
	err := b.store.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return errno.ErrUserToDeleteNotFound.Detail(fmt.Sprintf("user id %d", id),
			derrors.WithReason(errno.ReasonDelete))
	}
	if err != nil {
		return errno.ErrUserDelete.Wrap(err, derrors.WithReason(errno.ReasonDelete))
	}
	b.log.Info("user deleted", zap.Int64("user_id", id))
	return nil
}

// Validate reports whether user id exists. An unknown id is a regular
// answer; only store failures are errors.
func (b *Users) Validate(ctx context.Context, id int64) (model.User, bool, error) {
	u, err := b.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, errno.ErrUserFetch.Wrap(err, derrors.WithReason(errno.ReasonValidate))
	}
	return u, true, nil
}

func duplicateEmail(email string, r reason.Reason) error {
	return errno.ErrUserAlreadyExists.Detail("email "+email,
		derrors.WithReason(r),
		derrors.WithDetail("email", email),
	)
}
