package pgx

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	blog "github.com/Garrette27/fullstack-blog-redux"
)

const postColumns = `id, owner_id, title, body, image_url, created_at, updated_at`

func scanPost(row pgx.Row) (*blog.Post, error) {
	post := &blog.Post{}
	err := row.Scan(&post.ID, &post.OwnerID, &post.Title, &post.Body,
		&post.ImageURL, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (a *Adapter) CountPosts(ctx context.Context) (int, error) {
	var count int
	err := a.pool.QueryRow(ctx, `SELECT count(*) FROM posts`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListPosts returns the inclusive [offsetStart, offsetEnd] slice of
// the collection ordered by creation time descending.
func (a *Adapter) ListPosts(ctx context.Context, offsetStart, offsetEnd int) ([]*blog.Post, error) {
	limit := offsetEnd - offsetStart + 1
	if limit < 0 {
		limit = 0
	}

	rows, err := a.pool.Query(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offsetStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*blog.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (a *Adapter) GetPost(ctx context.Context, id string) (*blog.Post, error) {
	post, err := scanPost(a.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, blog.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (a *Adapter) InsertPost(ctx context.Context, ownerID, title, body string, imageURL *string) (*blog.Post, error) {
	return scanPost(a.pool.QueryRow(ctx,
		`INSERT INTO posts (id, owner_id, title, body, image_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+postColumns,
		newID(), ownerID, title, body, imageURL))
}

func (a *Adapter) UpdatePost(ctx context.Context, id, title, body string, imageURL *string, modifiedAt time.Time) (*blog.Post, error) {
	post, err := scanPost(a.pool.QueryRow(ctx,
		`UPDATE posts SET title = $1, body = $2, image_url = $3, updated_at = $4
		  WHERE id = $5
		 RETURNING `+postColumns,
		title, body, imageURL, modifiedAt, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, blog.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (a *Adapter) DeletePost(ctx context.Context, id string) error {
	tag, err := a.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrPostNotFound
	}
	return nil
}
