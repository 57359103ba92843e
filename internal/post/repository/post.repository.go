package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"careerboard/internal/access"
	"careerboard/internal/post/model"
	"careerboard/pkg/logger"
	"careerboard/pkg/pgerr"

	"github.com/google/uuid"
)

// AuthorColumn is the column the visibility scope filters on.
const AuthorColumn = "author_id"

type PostRepository struct {
	DB *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Count(ctx context.Context, f access.Filter) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM post"+f.Clause, f.Args...).Scan(&count)
	if err != nil {
		logger.Sugar.Errorf("Failed to count posts: %v", err)
	}
	return count, err
}

func (r *PostRepository) List(ctx context.Context, f access.Filter, skip, limit int) ([]model.Post, error) {
	query := fmt.Sprintf("SELECT id, title, content, author_id FROM post%s ORDER BY id LIMIT $%d OFFSET $%d",
		f.Clause, f.Next(), f.Next()+1)
	args := append(append([]any{}, f.Args...), limit, skip)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Sugar.Errorf("Failed to list posts: %v", err)
		return nil, err
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID); err != nil {
			logger.Sugar.Errorf("Failed to scan post: %v", err)
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetByID returns sql.ErrNoRows when the post does not exist.
func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var p model.Post
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, content, author_id FROM post WHERE id = $1", id,
	).Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Sugar.Errorf("Failed to get post %s: %v", id, err)
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts p and refreshes it with the stored row.
func (r *PostRepository) Create(ctx context.Context, p *model.Post) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO post (id, title, content, author_id) VALUES ($1, $2, $3, $4)
		RETURNING id, title, content, author_id`,
		p.ID, p.Title, p.Content, p.AuthorID,
	).Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID)
	if pgerr.IsForeignKeyViolation(err) {
		return fmt.Errorf("post author %s: %w", p.AuthorID, access.ErrUnknownOwner)
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to create post: %v", err)
	}
	return err
}

// Update writes the mutable columns of p and refreshes it. The author is
// never written.
func (r *PostRepository) Update(ctx context.Context, p *model.Post) error {
	err := r.DB.QueryRowContext(ctx,
		`UPDATE post SET title = $1, content = $2 WHERE id = $3
		RETURNING id, title, content, author_id`,
		p.Title, p.Content, p.ID,
	).Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID)
	if err != nil {
		logger.Sugar.Errorf("Failed to update post %s: %v", p.ID, err)
	}
	return err
}
