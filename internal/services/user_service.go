package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user does not exist")
	ErrEmailTaken   = errors.New("email is already taken")
)

// UserService is the user directory: CRUD with email uniqueness among
// users that are not soft-deleted.
type UserService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, log *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		log:      log,
	}
}

// CreateUserInput represents the required information to create a user.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Location  string
}

// UpdateUserInput is a patch; nil fields are left unchanged.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Location  *string
}

// FindByID returns the user or ErrUserNotFound when absent or soft-deleted.
func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(s.log, "find user", err, ErrUserNotFound)
	}
	return user, nil
}

// FindByEmail returns the user with the given email. On a miss it returns
// nil, nil unless throwOnMiss is set, in which case it returns ErrUserNotFound.
func (s *UserService) FindByEmail(ctx context.Context, email string, throwOnMiss bool) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return user, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if throwOnMiss {
			return nil, ErrUserNotFound
		}
		return nil, nil
	}
	return nil, storageError(s.log, "find user by email", err)
}

// Create registers a new user.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	email := normalizeEmail(input.Email)

	existing, err := s.FindByEmail(ctx, email, false)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     email,
		Location:  input.Location,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, storageError(s.log, "create user", err)
	}

	return user, nil
}

// Update applies the patch to the user, re-checking email uniqueness when
// the email changes.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*models.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			existing, err := s.FindByEmail(ctx, email, false)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, ErrEmailTaken
			}
		}
		user.Email = email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Location != nil {
		user.Location = *input.Location
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, storageError(s.log, "update user", err)
	}

	return user, nil
}

// Delete soft-deletes the user. A second call fails with ErrUserNotFound.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (*DeleteStatus, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SoftDelete(ctx, user); err != nil {
		return nil, storageError(s.log, "delete user", err)
	}

	return &DeleteStatus{Deleted: true, Message: constants.MsgUserDeleted}, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
