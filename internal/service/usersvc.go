package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"filmorate/internal/domain"
	"filmorate/internal/logging"
	"filmorate/internal/validation"
)

type UsersStore interface {
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
	UpdateUser(ctx context.Context, u domain.User) (domain.User, error)
	GetUser(ctx context.Context, id int64) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type UsersService struct {
	Users     UsersStore
	Validator *validation.Validator
}

func (s *UsersService) validator() *validation.Validator {
	if s.Validator != nil {
		return s.Validator
	}
	return validation.Default()
}

func (s *UsersService) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if u.ID != 0 {
		if _, err := s.Users.GetUser(ctx, u.ID); err == nil {
			return domain.User{}, fmt.Errorf("user %d: %w", u.ID, domain.ErrAlreadyExists)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, err
		}
		u.ID = 0
	}

	u, err := s.prepare(u)
	if err != nil {
		return domain.User{}, err
	}

	created, err := s.Users.CreateUser(ctx, u)
	if err != nil {
		return domain.User{}, err
	}
	logging.FromContext(ctx).Debug("user created", "user_id", created.ID)
	return created, nil
}

func (s *UsersService) Update(ctx context.Context, u domain.User) (domain.User, error) {
	u, err := s.prepare(u)
	if err != nil {
		return domain.User{}, err
	}
	return s.Users.UpdateUser(ctx, u)
}

func (s *UsersService) prepare(u domain.User) (domain.User, error) {
	if err := s.validator().Struct(u); err != nil {
		return domain.User{}, err
	}
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
	return u, nil
}

func (s *UsersService) Get(ctx context.Context, id int64) (domain.User, error) {
	return s.Users.GetUser(ctx, id)
}

func (s *UsersService) List(ctx context.Context) ([]domain.User, error) {
	return s.Users.ListUsers(ctx)
}

func (s *UsersService) Delete(ctx context.Context, id int64) error {
	return s.Users.DeleteUser(ctx, id)
}
