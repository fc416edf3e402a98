package pgx

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	blog "github.com/Garrette27/fullstack-blog-redux"
)

const commentColumns = `id, post_id, owner_id, body, attachment_url, created_at, updated_at`

func scanComment(row pgx.Row) (*blog.Comment, error) {
	comment := &blog.Comment{}
	err := row.Scan(&comment.ID, &comment.PostID, &comment.OwnerID, &comment.Body,
		&comment.AttachmentURL, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns every comment of one post, newest first.
func (a *Adapter) ListComments(ctx context.Context, postID string) ([]*blog.Comment, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE post_id = $1 ORDER BY created_at DESC, id DESC`,
		postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*blog.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (a *Adapter) InsertComment(ctx context.Context, postID, ownerID, body string, attachmentURL *string) (*blog.Comment, error) {
	return scanComment(a.pool.QueryRow(ctx,
		`INSERT INTO comments (id, post_id, owner_id, body, attachment_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+commentColumns,
		newID(), postID, ownerID, body, attachmentURL))
}

func (a *Adapter) UpdateComment(ctx context.Context, id, body string, attachmentURL *string, modifiedAt time.Time) (*blog.Comment, error) {
	comment, err := scanComment(a.pool.QueryRow(ctx,
		`UPDATE comments SET body = $1, attachment_url = $2, updated_at = $3
		  WHERE id = $4
		 RETURNING `+commentColumns,
		body, attachmentURL, modifiedAt, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, blog.ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (a *Adapter) DeleteComment(ctx context.Context, id string) error {
	tag, err := a.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrCommentNotFound
	}
	return nil
}
