package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"careerboard/internal/access"
	"careerboard/internal/post/model"
	"careerboard/internal/post/repository"
	"careerboard/socket"

	"github.com/google/uuid"
)

// Store is the persistence the service needs; *repository.PostRepository
// satisfies it.
type Store interface {
	Count(ctx context.Context, f access.Filter) (int, error)
	List(ctx context.Context, f access.Filter, skip, limit int) ([]model.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Create(ctx context.Context, p *model.Post) error
	Update(ctx context.Context, p *model.Post) error
}

// Publisher receives change events after a successful write.
type Publisher interface {
	Publish(evt socket.Event)
}

type PostService struct {
	Repo Store
	Hub  Publisher
}

func NewPostService(repo Store, hub Publisher) *PostService {
	return &PostService{Repo: repo, Hub: hub}
}

func (s *PostService) List(ctx context.Context, caller access.Caller, skip, limit int) (*model.PostsPublic, error) {
	scope := access.Scope(caller, repository.AuthorColumn)

	count, err := s.Repo.Count(ctx, scope)
	if err != nil {
		return nil, err
	}
	posts, err := s.Repo.List(ctx, scope, skip, limit)
	if err != nil {
		return nil, err
	}
	return &model.PostsPublic{Data: posts, Count: count}, nil
}

// Get returns access.ErrNotFound for a missing post and access.ErrForbidden
// when caller is neither the author nor a superuser.
func (s *PostService) Get(ctx context.Context, caller access.Caller, id uuid.UUID) (*model.Post, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("post %s: %w", id, access.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, p.AuthorID); err != nil {
		return nil, fmt.Errorf("post %s: %w", id, err)
	}
	return p, nil
}

func (s *PostService) Create(ctx context.Context, caller access.Caller, in model.PostCreate) (*model.Post, error) {
	p := &model.Post{
		ID:       uuid.New(),
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: caller.ID,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Hub.Publish(socket.NewEvent(socket.CreatedType, socket.ResourcePost, p.ID, p.AuthorID, p))
	return p, nil
}

// Update applies the supplied fields of in. An update that supplies nothing
// returns the stored post without writing.
func (s *PostService) Update(ctx context.Context, caller access.Caller, id uuid.UUID, in model.PostUpdate) (*model.Post, error) {
	p, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !in.Apply(p) {
		return p, nil
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.Hub.Publish(socket.NewEvent(socket.UpdatedType, socket.ResourcePost, p.ID, p.AuthorID, p))
	return p, nil
}
