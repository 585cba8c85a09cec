package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/farmtofork-backend/pkg/db"
	"github.com/angelmondragon/farmtofork-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/farmtofork-backend/pkg/errors"
)

// Service exposes registration and the simple credential check.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*UserDTO, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	List(ctx context.Context) ([]UserDTO, error)
}

type userStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type service struct {
	repo userStore
	now  func() time.Time
}

// NewService constructs the users service. A nil clock defaults to time.Now.
func NewService(repo userStore, clock func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{repo: repo, now: clock}, nil
}

// Register stores the user as submitted. Emails are not checked for uniqueness and
// passwords are kept in plain text.
func (s *service) Register(ctx context.Context, input RegisterInput) (*UserDTO, error) {
	user, err := s.repo.Create(ctx, input.toModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return FromModel(user), nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if db.IsRecordNotFound(err) {
			return &LoginResult{Message: MessageUserNotFound}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}

	if user.Password != input.Password {
		return &LoginResult{Message: MessageInvalidPassword}, nil
	}
	if !strings.EqualFold(user.Role, strings.TrimSpace(input.Role)) {
		return &LoginResult{Message: MessageRoleMismatch}, nil
	}

	return &LoginResult{
		Message: MessageLoginSuccessful,
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		Token:   issueToken(user.ID, user.Email, s.now()),
	}, nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return FromModels(list), nil
}
