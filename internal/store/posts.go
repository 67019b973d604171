package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// ListPosts returns all posts, newest first.
func (s *Store) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, slug, title, excerpt, content, created_at
		FROM posts
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "listing posts")
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content, &p.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning post")
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating posts")
	}

	return posts, nil
}

// GetPost fetches one post by slug. A missing slug is not an error; it
// returns (nil, nil).
func (s *Store) GetPost(ctx context.Context, slug string) (*Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, slug, title, excerpt, content, created_at
		FROM posts
		WHERE slug = ?`, slug)

	var p Post
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "fetching post")
	}

	return &p, nil
}

// UpsertPost inserts a post or, when the slug already exists, replaces
// its title, excerpt and content. The row id and creation time survive
// a replace.
func (s *Store) UpsertPost(ctx context.Context, slug, title, excerpt, content string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (slug, title, excerpt, content)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			title = excluded.title,
			excerpt = excluded.excerpt,
			content = excluded.content`,
		slug, title, excerpt, content)
	return errors.Wrap(err, "upserting post")
}

// DeletePost removes the post with the given slug. Deleting a slug that
// does not exist is a no-op.
func (s *Store) DeletePost(ctx context.Context, slug string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE slug = ?", slug)
	return errors.Wrap(err, "deleting post")
}
