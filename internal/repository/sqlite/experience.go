package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ascendhq/ascend/pkg/models"
)

const experienceColumns = `e.id, e.user_id, e.company_id, e.role, e.start_date, e.end_date, e.description, COALESCE(c.name, 'Unknown')`

func scanExperience(row interface{ Scan(...any) error }) (*models.ExperienceDetail, error) {
	var e models.ExperienceDetail
	if err := row.Scan(&e.ID, &e.UserID, &e.CompanyID, &e.Role, &e.StartDate, &e.EndDate, &e.Description, &e.CompanyName); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *SQLiteRepo) CreateExperience(ctx context.Context, e *models.Experience) (int64, error) {
	if e == nil {
		return 0, fmt.Errorf("experience is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO experiences (user_id, company_id, role, start_date, end_date, description) VALUES (?, ?, ?, ?, ?, ?)`,
		e.UserID, e.CompanyID, e.Role, e.StartDate, e.EndDate, e.Description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepo) ListExperiencesByUser(ctx context.Context, userID int64) ([]models.ExperienceDetail, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT `+experienceColumns+` FROM experiences e LEFT JOIN companies c ON c.id = e.company_id
		 WHERE e.user_id = ? ORDER BY e.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ExperienceDetail
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// LatestByUser picks the row with the highest id. Insertion order, not the
// date range, decides which experience counts as current.
func (r *SQLiteRepo) LatestByUser(ctx context.Context, userID int64) (*models.ExperienceDetail, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+experienceColumns+` FROM experiences e LEFT JOIN companies c ON c.id = e.company_id
		 WHERE e.user_id = ? ORDER BY e.id DESC LIMIT 1`, userID)
	return scanExperience(row)
}
