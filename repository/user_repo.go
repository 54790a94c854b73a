package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grocerflow-backend/dal"
	"grocerflow-backend/models"
	"grocerflow-backend/utils"
	"grocerflow-backend/utils/logger"
)

type UserRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *UserRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_users"
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	var byEmail []*models.User
	err := r.db.QueryByIndex(ctx, r.table(), "EmailIndex", "email", user.Email, &byEmail)
	if err == nil && len(byEmail) > 0 {
		return nil, errors.New("user with this email already exists")
	}

	var byUsername []*models.User
	err = r.db.QueryByIndex(ctx, r.table(), "UsernameIndex", "username", user.Username, &byUsername)
	if err == nil && len(byUsername) > 0 {
		return nil, errors.New("user with this username already exists")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.UserID == "" {
		user.UserID = utils.GenerateUUID()
	}
	user.Status = models.UserStatusActive
	if len(user.Permissions) == 0 {
		user.Permissions = models.DefaultPermissions(user.Role)
	}

	if err := r.db.PutItem(ctx, r.table(), user); err != nil {
		r.logger.Errorf("Failed to create user: %v", err)
		return nil, err
	}

	r.logger.Infof("User created successfully: %s (%s)", user.UserID, user.Role)
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var users []*models.User
	if err := r.db.Query(ctx, r.table(), "userId", userID, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %s not found", userID)
	}
	return users[0], nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var users []*models.User
	if err := r.db.QueryByIndex(ctx, r.table(), "EmailIndex", "email", email, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no user with email %s", email)
	}
	return users[0], nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := r.db.Scan(ctx, r.table(), &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) RecordLogin(ctx context.Context, userID string, role models.UserRole) error {
	key := map[string]string{"userId": userID, "role": string(role)}
	return r.db.UpdateItem(ctx, r.table(), key, map[string]interface{}{
		"lastLogin": time.Now().UTC().Format(time.RFC3339),
	})
}
