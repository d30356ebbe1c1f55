package sqlite

import (
	"context"
	"fmt"

	"github.com/ascendhq/ascend/pkg/models"
)

func (r *SQLiteRepo) CreateThread(ctx context.Context, t *models.DiscussionThread) (int64, error) {
	if t == nil {
		return 0, fmt.Errorf("thread is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO discussion_threads (user_id, title, category, created) VALUES (?, ?, ?, ?)`,
		t.UserID, t.Title, t.Category, now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepo) ListThreads(ctx context.Context) ([]models.ThreadDetail, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT t.id, t.user_id, t.title, t.category, t.created, `+displayName+`, u.role
		 FROM discussion_threads t
		 JOIN users u ON u.id = t.user_id
		 LEFT JOIN profile_info p ON p.user_id = u.id
		 ORDER BY t.created DESC, t.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ThreadDetail
	for rows.Next() {
		var t models.ThreadDetail
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Category, &t.Created, &t.AuthorName, &t.AuthorRole); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) CountThreadsByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM discussion_threads WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

func (r *SQLiteRepo) CountThreads(ctx context.Context) (int64, error) {
	var n int64
	err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM discussion_threads`).Scan(&n)
	return n, err
}
