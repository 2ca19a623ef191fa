package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	repo "github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
)

// UserService is the admin-only user management surface.
type UserService struct {
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Logger: logger}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

// UpdateUserInput changes only the non-empty fields.
type UpdateUserInput struct {
	Name  string
	Email string
	Role  entity.Role
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, storeErr(err, "", "")
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, notFoundMsg("user", id), "")
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !role.Valid() {
		return nil, apperror.Validation("unknown role " + string(role))
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "could not hash password", err)
	}
	u := &entity.User{Name: in.Name, Email: in.Email, Role: role, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, storeErr(err, "", "email is already registered")
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user created by admin")
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Role != "" && !in.Role.Valid() {
		return nil, apperror.Validation("unknown role " + string(in.Role))
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Role != "" {
		u.Role = in.Role
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, storeErr(err, notFoundMsg("user", id), "email is already registered")
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Users.Delete(ctx, id); err != nil {
		return storeErr(err, notFoundMsg("user", id), "")
	}
	return nil
}
