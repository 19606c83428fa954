package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
	"github.com/anika2711garg/Planix-sub000/internal/repository"
)

// CreateUserRequest is the admin-side user creation payload. Name becomes the
// username.
type CreateUserRequest struct {
	Name   string      `json:"name" validate:"required"`
	Email  string      `json:"email" validate:"required,email"`
	Role   domain.Role `json:"role" validate:"required,oneof=manager leader developer"`
	TeamID *uint       `json:"teamId"`
}

// UpdateUserRequest applies only the fields that are present. A teamId of 0
// removes the user from their team.
type UpdateUserRequest struct {
	Name   *string      `json:"name" validate:"omitempty,min=1"`
	Email  *string      `json:"email" validate:"omitempty,email"`
	Role   *domain.Role `json:"role" validate:"omitempty,oneof=manager leader developer"`
	TeamID *uint        `json:"teamId"`
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, req CreateUserRequest) (*domain.User, error)
	Update(ctx context.Context, id uint, req UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, id uint) error
	// Available lists users that belong to no team.
	Available(ctx context.Context) ([]domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Create(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if !req.Role.Valid() {
		return nil, domain.Invalidf("invalid role %q", req.Role)
	}
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Name, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, domain.Conflictf("User with this username or email already exists")
	}

	user := &domain.User{
		Username: req.Name,
		Email:    req.Email,
		Role:     req.Role,
		TeamID:   req.TeamID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uint, req UpdateUserRequest) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User %d not found", id)
	}

	if req.Name != nil {
		user.Username = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, domain.Invalidf("invalid role %q", *req.Role)
		}
		user.Role = *req.Role
	}
	if req.TeamID != nil {
		user.Team = nil
		if *req.TeamID == 0 {
			user.TeamID = nil
		} else {
			user.TeamID = req.TeamID
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflictf("User with this username or email already exists")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	return notFound(s.users.Delete(ctx, id), "User %d not found", id)
}

func (s *userService) Available(ctx context.Context) ([]domain.User, error) {
	return s.users.ListWithoutTeam(ctx)
}
