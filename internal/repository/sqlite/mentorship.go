package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository"
)

// CreateRequest inserts a pending request. The partial unique index on
// (student_id, mentor_id) WHERE status = 'pending' closes the race between
// the existence check and the insert.
func (r *SQLiteRepo) CreateRequest(ctx context.Context, req *models.MentorshipRequest) (int64, error) {
	if req == nil {
		return 0, fmt.Errorf("request is nil")
	}

	var existing int64
	err := r.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM mentorship_requests WHERE student_id = ? AND mentor_id = ? AND status = ?`,
		req.StudentID, req.MentorID, models.RequestPending).Scan(&existing)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, repository.ErrDuplicatePending
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO mentorship_requests (student_id, mentor_id, status, message, created) VALUES (?, ?, ?, ?, ?)`,
		req.StudentID, req.MentorID, models.RequestPending, req.Message, now())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, repository.ErrDuplicatePending
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepo) GetRequest(ctx context.Context, id int64) (*models.MentorshipRequest, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, student_id, mentor_id, status, message, created FROM mentorship_requests WHERE id = ?`, id)

	var req models.MentorshipRequest
	if err := row.Scan(&req.ID, &req.StudentID, &req.MentorID, &req.Status, &req.Message, &req.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// UpdateStatus does not re-validate the source state: responding to an
// already-resolved request overwrites it, last write wins.
func (r *SQLiteRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := r.conn.Exec(ctx, `UPDATE mentorship_requests SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r *SQLiteRepo) ListByMentor(ctx context.Context, mentorID int64, status string) ([]models.RequestDetail, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT mr.id, mr.student_id, mr.mentor_id, mr.status, mr.message, mr.created, `+displayName+`, COALESCE(p.current_goal, '')
		 FROM mentorship_requests mr
		 JOIN users u ON u.id = mr.student_id
		 LEFT JOIN profile_info p ON p.user_id = u.id
		 WHERE mr.mentor_id = ? AND mr.status = ? ORDER BY mr.id`, mentorID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RequestDetail
	for rows.Next() {
		var rd models.RequestDetail
		if err := rows.Scan(&rd.ID, &rd.StudentID, &rd.MentorID, &rd.Status, &rd.Message, &rd.Created, &rd.StudentName, &rd.StudentGoal); err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) ListMentorsForStudent(ctx context.Context, studentID int64) ([]models.User, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT `+prefixedUserColumns("u")+`
		 FROM mentorship_requests mr
		 JOIN users u ON u.id = mr.mentor_id
		 WHERE mr.student_id = ? AND mr.status = ? ORDER BY mr.id`, studentID, models.RequestAccepted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *SQLiteRepo) CountByMentor(ctx context.Context, mentorID int64, status string) (int64, error) {
	var n int64
	err := r.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM mentorship_requests WHERE mentor_id = ? AND status = ?`, mentorID, status).Scan(&n)
	return n, err
}

func prefixedUserColumns(alias string) string {
	cols := strings.Split(userColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}
