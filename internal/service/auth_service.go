package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/anika2711garg/Planix-sub000/internal/auth"
	"github.com/anika2711garg/Planix-sub000/internal/domain"
	"github.com/anika2711garg/Planix-sub000/internal/repository"
)

type SignupRequest struct {
	Username string      `json:"username" validate:"required"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required"`
	Role     domain.Role `json:"role" validate:"omitempty,oneof=manager leader developer"`
}

type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

// AuthService registers users, signs them in and resolves bearer tokens.
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	Signin(ctx context.Context, req SigninRequest) (*AuthResponse, error)
	// Authenticate validates a token and loads the user it names.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Me(ctx context.Context, userID uint) (*domain.User, error)
	// SeedManager creates a manager account unless the username or email is
	// taken. It reports whether an account was created.
	SeedManager(ctx context.Context, username, email, password string) (bool, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	hasher auth.Hasher
	log    *zap.SugaredLogger
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, hasher auth.Hasher, log *zap.SugaredLogger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		log:    log.Named("service.auth"),
	}
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, domain.Invalidf("Username, email, and password are required")
	}
	role := req.Role
	if role == "" {
		role = domain.RoleDeveloper
	}
	if !role.Valid() {
		return nil, domain.Invalidf("invalid role %q", role)
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, domain.Conflictf("User with this username or email already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Username: req.Username,
		Email:    req.Email,
		Password: &hash,
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflictf("User with this username or email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	s.log.Infow("user signed up", "user_id", user.ID, "role", user.Role)
	return &AuthResponse{Message: "User created successfully", User: user, Token: token}, nil
}

func (s *authService) Signin(ctx context.Context, req SigninRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.Invalidf("Username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthorizedf("Invalid credentials")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.Password == nil || !s.hasher.Compare(*user.Password, req.Password) {
		return nil, domain.Unauthorizedf("Invalid credentials")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Message: "Login successful", User: user, Token: token}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthorizedf("User not found")
		}
		return nil, fmt.Errorf("load token user: %w", err)
	}
	return user, nil
}

func (s *authService) Me(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return user, nil
}

func (s *authService) SeedManager(ctx context.Context, username, email, password string) (bool, error) {
	if password == "" {
		return false, nil
	}
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return false, fmt.Errorf("check seed user: %w", err)
	}
	if exists {
		return false, nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}
	user := &domain.User{Username: username, Email: email, Password: &hash, Role: domain.RoleManager}
	if err := s.users.Create(ctx, user); err != nil {
		return false, fmt.Errorf("create seed user: %w", err)
	}
	s.log.Infow("seeded manager account", "username", username)
	return true, nil
}
