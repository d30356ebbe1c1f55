package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository"
)

const questionColumns = `q.id, q.user_id, q.title, q.content, q.is_urgent, q.bounty, q.created, ` + displayName + `, u.username, u.role`

const questionJoins = ` FROM questions q
	 JOIN users u ON u.id = q.user_id
	 LEFT JOIN profile_info p ON p.user_id = u.id`

func scanQuestion(row interface{ Scan(...any) error }) (*models.QuestionDetail, error) {
	var q models.QuestionDetail
	var urgent int64
	if err := row.Scan(&q.ID, &q.UserID, &q.Title, &q.Content, &urgent, &q.Bounty, &q.Created, &q.AuthorName, &q.AuthorUsername, &q.AuthorRole); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	q.IsUrgent = urgent != 0
	return &q, nil
}

func (r *SQLiteRepo) CreateQuestion(ctx context.Context, q *models.Question) (int64, error) {
	if q == nil {
		return 0, fmt.Errorf("question is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO questions (user_id, title, content, is_urgent, bounty, created) VALUES (?, ?, ?, ?, ?, ?)`,
		q.UserID, q.Title, q.Content, boolToInt(q.IsUrgent), q.Bounty, now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepo) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, title, content, is_urgent, bounty, created FROM questions WHERE id = ?`, id)

	var q models.Question
	var urgent int64
	if err := row.Scan(&q.ID, &q.UserID, &q.Title, &q.Content, &urgent, &q.Bounty, &q.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	q.IsUrgent = urgent != 0
	return &q, nil
}

// ListFeed surfaces urgent, high-bounty questions first regardless of age.
func (r *SQLiteRepo) ListFeed(ctx context.Context) ([]models.QuestionDetail, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT `+questionColumns+questionJoins+`
		 ORDER BY q.is_urgent DESC, q.bounty DESC, q.created DESC, q.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectQuestions(rows)
}

func (r *SQLiteRepo) ListLatest(ctx context.Context, limit int) ([]models.QuestionDetail, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT `+questionColumns+questionJoins+`
		 ORDER BY q.created DESC, q.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectQuestions(rows)
}

// ListUnanswered detects questions with zero replies through a left outer
// join. Urgent-only listings order by bounty, everything else by recency.
func (r *SQLiteRepo) ListUnanswered(ctx context.Context, filter repository.UrgencyFilter, limit int) ([]models.QuestionDetail, error) {
	q := `SELECT ` + questionColumns + questionJoins + `
	 LEFT JOIN replies rp ON rp.question_id = q.id
	 WHERE rp.id IS NULL`

	switch filter {
	case repository.FilterUrgentOnly:
		q += ` AND q.is_urgent = 1 ORDER BY q.bounty DESC, q.created DESC, q.id DESC`
	case repository.FilterNonUrgentOnly:
		q += ` AND q.is_urgent = 0 ORDER BY q.created DESC, q.id DESC`
	default:
		q += ` ORDER BY q.created DESC, q.id DESC`
	}

	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectQuestions(rows)
}

func (r *SQLiteRepo) CountUnanswered(ctx context.Context) (int64, error) {
	var n int64
	err := r.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM questions q LEFT JOIN replies rp ON rp.question_id = q.id WHERE rp.id IS NULL`).Scan(&n)
	return n, err
}

func (r *SQLiteRepo) CountQuestionsByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM questions WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

func collectQuestions(rows *sql.Rows) ([]models.QuestionDetail, error) {
	var out []models.QuestionDetail
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}
