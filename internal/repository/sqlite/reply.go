package sqlite

import (
	"context"
	"fmt"

	"github.com/ascendhq/ascend/pkg/models"
)

func (r *SQLiteRepo) CreateReply(ctx context.Context, rp *models.Reply) (int64, error) {
	if rp == nil {
		return 0, fmt.Errorf("reply is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO replies (question_id, user_id, content, created) VALUES (?, ?, ?, ?)`,
		rp.QuestionID, rp.UserID, rp.Content, now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepo) ListByQuestion(ctx context.Context, questionID int64) ([]models.ReplyDetail, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT rp.id, rp.question_id, rp.user_id, rp.content, rp.created, `+displayName+`, u.role
		 FROM replies rp
		 JOIN users u ON u.id = rp.user_id
		 LEFT JOIN profile_info p ON p.user_id = u.id
		 WHERE rp.question_id = ? ORDER BY rp.id`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ReplyDetail
	for rows.Next() {
		var rd models.ReplyDetail
		if err := rows.Scan(&rd.ID, &rd.QuestionID, &rd.UserID, &rd.Content, &rd.Created, &rd.AuthorName, &rd.AuthorRole); err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	return out, rows.Err()
}
