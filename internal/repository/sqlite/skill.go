package sqlite

import (
	"context"

	"github.com/ascendhq/ascend/pkg/models"
)

func (r *SQLiteRepo) ListSkillsByUser(ctx context.Context, userID int64) ([]models.Skill, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, user_id, name FROM skills WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Skill
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ReplaceForUser implements the profile update contract: skills are hard
// deleted and reinserted rather than diffed.
func (r *SQLiteRepo) ReplaceForUser(ctx context.Context, userID int64, names []string) error {
	if _, err := r.conn.Exec(ctx, `DELETE FROM skills WHERE user_id = ?`, userID); err != nil {
		return err
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, err := r.conn.Exec(ctx, `INSERT INTO skills (user_id, name) VALUES (?, ?)`, userID, name); err != nil {
			return err
		}
	}
	return nil
}
