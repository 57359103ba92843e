package repository

import (
	"context"
	"database/sql"
	"fmt"

	"careerboard/internal/access"
	"careerboard/internal/jobrole/model"
	"careerboard/pkg/logger"
	"careerboard/pkg/pgerr"
)

// OwnerColumn is the column the visibility scope filters on.
const OwnerColumn = "owner_id"

type JobRoleRepository struct {
	DB *sql.DB
}

func NewJobRoleRepository(db *sql.DB) *JobRoleRepository {
	return &JobRoleRepository{DB: db}
}

func (r *JobRoleRepository) Count(ctx context.Context, f access.Filter) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM job_role"+f.Clause, f.Args...).Scan(&count)
	if err != nil {
		logger.Sugar.Errorf("Failed to count job roles: %v", err)
	}
	return count, err
}

func (r *JobRoleRepository) List(ctx context.Context, f access.Filter, skip, limit int) ([]model.JobRole, error) {
	query := fmt.Sprintf("SELECT id, name, description, owner_id FROM job_role%s ORDER BY id LIMIT $%d OFFSET $%d",
		f.Clause, f.Next(), f.Next()+1)
	args := append(append([]any{}, f.Args...), limit, skip)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Sugar.Errorf("Failed to list job roles: %v", err)
		return nil, err
	}
	defer rows.Close()

	roles := []model.JobRole{}
	for rows.Next() {
		var jr model.JobRole
		if err := rows.Scan(&jr.ID, &jr.Name, &jr.Description, &jr.OwnerID); err != nil {
			logger.Sugar.Errorf("Failed to scan job role: %v", err)
			return nil, err
		}
		roles = append(roles, jr)
	}
	return roles, rows.Err()
}

// Create inserts jr and refreshes it with the stored row.
func (r *JobRoleRepository) Create(ctx context.Context, jr *model.JobRole) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO job_role (id, name, description, owner_id) VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, owner_id`,
		jr.ID, jr.Name, jr.Description, jr.OwnerID,
	).Scan(&jr.ID, &jr.Name, &jr.Description, &jr.OwnerID)
	if pgerr.IsForeignKeyViolation(err) {
		return fmt.Errorf("job role owner %s: %w", jr.OwnerID, access.ErrUnknownOwner)
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to create job role: %v", err)
	}
	return err
}
