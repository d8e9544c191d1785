package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartblog/internal/entity"
	"smartblog/internal/repository"
	"smartblog/pkg/apperror"
)

type UserService interface {
	// AssignRole grants a role to the target user. The route already
	// requires admin/superuser; granting admin is reserved for the
	// superuser on top of that.
	AssignRole(ctx context.Context, callerRole entity.Role, targetID uuid.UUID, role entity.Role) (string, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) AssignRole(ctx context.Context, callerRole entity.Role, targetID uuid.UUID, role entity.Role) (string, error) {
	if role == entity.RoleAdmin && callerRole != entity.RoleSuperuser {
		return "", apperror.Forbidden("Only superuser can assign admin role.")
	}

	if err := s.users.UpdateRole(ctx, targetID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperror.NotFound("User not found.")
		}
		return "", err
	}

	return fmt.Sprintf("'%s' role successfully assigned to user with ID %s.", role, targetID), nil
}
