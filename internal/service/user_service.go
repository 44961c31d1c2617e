package service

import (
	"context"
	"strings"

	"vibecheck/internal/models"
	"vibecheck/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

// UpdateProfileInput carries the profile patch; nil fields are left
// unchanged.
type UpdateProfileInput struct {
	UserID   uint
	Username *string
	Avatar   *string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

const maxUsernameLen = 30

// SignUp creates an account. The username is trimmed before validation;
// passwords are stored as given and compared verbatim on login.
func (s *UserService) SignUp(ctx context.Context, username, password, avatar string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewValidationError("Username is required")
	}
	if len(username) > maxUsernameLen {
		return nil, models.NewValidationError("Username too long (max 30 characters)")
	}
	if password == "" {
		return nil, models.NewValidationError("Password is required")
	}

	// Friendlier than riding the unique constraint; the constraint still
	// backstops concurrent signups.
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Username already exists")
	}

	user := &models.User{
		Username: username,
		Password: password,
		Avatar:   avatar,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login matches username and password exactly. Any mismatch, whether the
// account is missing or the password is wrong, yields the same generic
// error so usernames cannot be probed.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByCredentials(ctx, strings.TrimSpace(username), password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	updates := repository.ProfileUpdates{}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, models.NewValidationError("Username is required")
		}
		if len(username) > maxUsernameLen {
			return nil, models.NewValidationError("Username too long (max 30 characters)")
		}
		updates.Username = &username
	}
	if in.Avatar != nil {
		updates.Avatar = in.Avatar
	}
	if updates.Username == nil && updates.Avatar == nil {
		return s.userRepo.GetByID(ctx, in.UserID)
	}
	return s.userRepo.UpdateProfile(ctx, in.UserID, updates)
}

// ListUsers returns every user with their current vibe attached, newest
// accounts first.
func (s *UserService) ListUsers(ctx context.Context) ([]models.UserWithVibe, error) {
	return s.userRepo.ListWithVibes(ctx)
}
