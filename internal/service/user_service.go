package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bookameal/internal/errors"
	"bookameal/internal/model"
	"bookameal/internal/repository"
)

// UserService exposes user directory operations. Create and List are
// admin-gated at the router; Update and Delete additionally enforce the
// self-or-admin rule here.
type UserService interface {
	CreateUser(ctx context.Context, username, email, password string, admin bool) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id uint, username, email, password string, admin bool, requesterID uint, requesterAdmin bool) (*model.User, error)
	DeleteUser(ctx context.Context, id uint, requesterID uint, requesterAdmin bool) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// CreateUser inserts a user with a hashed password. Unlike signup, the admin
// flag is honored.
func (s *userService) CreateUser(ctx context.Context, username, email, password string, admin bool) (*model.User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Admin:    admin,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// UpdateUser applies a full update. It rejects an email already held by a
// different user and a payload identical to the current record, the password
// compared by hash verification.
func (s *userService) UpdateUser(ctx context.Context, id uint, username, email, password string, admin bool, requesterID uint, requesterAdmin bool) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !requesterAdmin && requesterID != user.ID {
		return nil, errors.ErrNotAccountOwner
	}

	samePassword := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
	if user.Username == username && user.Email == email && user.Admin == admin && samePassword {
		return nil, errors.ErrNoChange
	}

	if email != user.Email {
		byEmail, err := s.repo.FindByEmail(ctx, email)
		if err == nil && byEmail != nil && byEmail.ID != user.ID {
			return nil, errors.ErrEmailTaken
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check email: %w", err)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user.Username = username
	user.Email = email
	user.Password = string(hashed)
	user.Admin = admin
	if err := s.repo.Update(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user. Only admins and the account owner may delete.
func (s *userService) DeleteUser(ctx context.Context, id uint, requesterID uint, requesterAdmin bool) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if !requesterAdmin && requesterID != user.ID {
		return errors.ErrNotAccountOwner
	}

	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
