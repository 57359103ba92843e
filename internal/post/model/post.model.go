package model

import "github.com/google/uuid"

type Post struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	AuthorID uuid.UUID `json:"author_id"`
}

type PostCreate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostUpdate is a partial update: nil fields are left untouched. Only the
// fields declared here can ever be changed; id and author_id are not.
type PostUpdate struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Apply copies every supplied field onto p and reports whether anything was set.
func (u PostUpdate) Apply(p *Post) bool {
	changed := false
	if u.Title != nil {
		p.Title = *u.Title
		changed = true
	}
	if u.Content != nil {
		p.Content = *u.Content
		changed = true
	}
	return changed
}

type PostsPublic struct {
	Data  []Post `json:"data"`
	Count int    `json:"count"`
}
