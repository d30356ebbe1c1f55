package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository"
)

const userColumns = `id, username, email, password_hash, role, is_verified, points, created`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	var verified int64
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &verified, &u.Points, &u.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	u.IsVerified = verified != 0
	return &u, nil
}

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO users (username, email, password_hash, role, is_verified, points, created) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.Role, boolToInt(u.IsVerified), u.Points, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *SQLiteRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *SQLiteRepo) ListUsers(ctx context.Context, limit int) ([]models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users ORDER BY id DESC`
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

	return collectUsers(rows)
}

func (r *SQLiteRepo) ListByRoles(ctx context.Context, roles []models.Role, limit int) ([]models.User, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	q := `SELECT ` + userColumns + ` FROM users WHERE role IN (` + placeholders(len(roles)) + `) ORDER BY id`
	args := roleArgs(roles)
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *SQLiteRepo) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *SQLiteRepo) CountByRoles(ctx context.Context, roles []models.Role) (int64, error) {
	if len(roles) == 0 {
		return 0, nil
	}

	var n int64
	err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role IN (`+placeholders(len(roles))+`)`, roleArgs(roles)...).Scan(&n)
	return n, err
}

func (r *SQLiteRepo) SetVerified(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE users SET is_verified = 1 WHERE id = ?`, id)
	return err
}

// DeductPoints is a single conditional UPDATE so two concurrent deductions
// cannot both pass the sufficiency check.
func (r *SQLiteRepo) DeductPoints(ctx context.Context, id, amount int64) (int64, error) {
	res, err := r.conn.Exec(ctx, `UPDATE users SET points = points - ? WHERE id = ? AND points >= ?`, amount, id, amount)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, repository.ErrInsufficientPoints
	}

	var points int64
	if err := r.conn.QueryRow(ctx, `SELECT points FROM users WHERE id = ?`, id).Scan(&points); err != nil {
		return 0, err
	}
	return points, nil
}

func collectUsers(rows *sql.Rows) ([]models.User, error) {
	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func roleArgs(roles []models.Role) []any {
	args := make([]any, 0, len(roles))
	for _, role := range roles {
		args = append(args, role)
	}
	return args
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
