package repository

import (
	"context"
	"database/sql"
	"errors"

	"careerboard/internal/user/model"
	"careerboard/pkg/logger"

	"github.com/google/uuid"
)

// UserRepository reads the users table maintained by the auth service.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// GetByID returns sql.ErrNoRows when the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, email, full_name, is_active, is_superuser FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.Email, &u.FullName, &u.IsActive, &u.IsSuperuser)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Sugar.Errorf("Failed to get user %s: %v", id, err)
		}
		return nil, err
	}
	return &u, nil
}
