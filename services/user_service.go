package services

import (
	"context"
	"fmt"
	"time"

	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/utils"
	"grocerflow-backend/utils/logger"
)

type UserService struct {
	users  repository.UserRepositoryInterface
	audit  repository.AuditRepositoryInterface
	logger logger.Logger
}

func NewUserService(users repository.UserRepositoryInterface, audit repository.AuditRepositoryInterface, log logger.Logger) *UserService {
	return &UserService{
		users:  users,
		audit:  audit,
		logger: log,
	}
}

// CreateUser provisions a portal account with a hashed password and the
// role's default permission set.
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest, actorID string) (*models.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user := &models.User{
		Role:         models.UserRole(req.Role),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Phone:        req.Phone,
		Status:       models.UserStatusActive,
		CustomerID:   req.CustomerID,
		SupplierID:   req.SupplierID,
		RiderID:      req.RiderID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.Write(ctx, "USER_CREATED", created.UserID, actorID, string(models.RoleSuperAdmin),
		fmt.Sprintf("User %s created with role %s", created.Username, created.Role))

	return created, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.ListUsers(ctx)
}
