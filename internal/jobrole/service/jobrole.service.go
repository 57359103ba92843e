package service

import (
	"context"

	"careerboard/internal/access"
	"careerboard/internal/jobrole/model"
	"careerboard/internal/jobrole/repository"
	"careerboard/socket"

	"github.com/google/uuid"
)

// Store is the persistence the service needs; *repository.JobRoleRepository
// satisfies it.
type Store interface {
	Count(ctx context.Context, f access.Filter) (int, error)
	List(ctx context.Context, f access.Filter, skip, limit int) ([]model.JobRole, error)
	Create(ctx context.Context, jr *model.JobRole) error
}

// Publisher receives change events after a successful write.
type Publisher interface {
	Publish(evt socket.Event)
}

type JobRoleService struct {
	Repo Store
	Hub  Publisher
}

func NewJobRoleService(repo Store, hub Publisher) *JobRoleService {
	return &JobRoleService{Repo: repo, Hub: hub}
}

// List returns one page of the job roles visible to caller, and the total
// number visible.
func (s *JobRoleService) List(ctx context.Context, caller access.Caller, skip, limit int) (*model.JobRolesPublic, error) {
	scope := access.Scope(caller, repository.OwnerColumn)

	count, err := s.Repo.Count(ctx, scope)
	if err != nil {
		return nil, err
	}
	roles, err := s.Repo.List(ctx, scope, skip, limit)
	if err != nil {
		return nil, err
	}
	return &model.JobRolesPublic{Data: roles, Count: count}, nil
}

// Create stores a new job role owned by caller.
func (s *JobRoleService) Create(ctx context.Context, caller access.Caller, in model.JobRoleCreate) (*model.JobRole, error) {
	jr := &model.JobRole{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     caller.ID,
	}
	if err := s.Repo.Create(ctx, jr); err != nil {
		return nil, err
	}

	s.Hub.Publish(socket.NewEvent(socket.CreatedType, socket.ResourceJobRole, jr.ID, jr.OwnerID, jr))
	return jr, nil
}
