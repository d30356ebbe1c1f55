package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ascendhq/ascend/pkg/models"
)

func (r *SQLiteRepo) GetByUserID(ctx context.Context, userID int64) (*models.ProfileInfo, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, user_id, bio, university, full_name, degree, graduation_year, current_goal, company, job_title
		 FROM profile_info WHERE user_id = ?`, userID)

	var p models.ProfileInfo
	if err := row.Scan(&p.ID, &p.UserID, &p.Bio, &p.University, &p.FullName, &p.Degree, &p.GraduationYear, &p.CurrentGoal, &p.Company, &p.JobTitle); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepo) UpsertProfile(ctx context.Context, p *models.ProfileInfo) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	_, err := r.conn.Exec(ctx,
		`INSERT INTO profile_info (user_id, bio, university, full_name, degree, graduation_year, current_goal, company, job_title)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   bio = excluded.bio,
		   university = excluded.university,
		   full_name = excluded.full_name,
		   degree = excluded.degree,
		   graduation_year = excluded.graduation_year,
		   current_goal = excluded.current_goal,
		   company = excluded.company,
		   job_title = excluded.job_title`,
		p.UserID, p.Bio, p.University, p.FullName, p.Degree, p.GraduationYear, p.CurrentGoal, p.Company, p.JobTitle)
	return err
}
