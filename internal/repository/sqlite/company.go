package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ascendhq/ascend/pkg/models"
)

func (r *SQLiteRepo) CreateCompany(ctx context.Context, c *models.Company) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("company is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO companies (name, logo_url, description) VALUES (?, ?, ?)`, c.Name, c.LogoURL, c.Description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepo) GetCompanyByName(ctx context.Context, name string) (*models.Company, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, logo_url, description FROM companies WHERE name = ?`, name)

	var c models.Company
	if err := row.Scan(&c.ID, &c.Name, &c.LogoURL, &c.Description); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *SQLiteRepo) ListCompanies(ctx context.Context) ([]models.Company, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, name, logo_url, description FROM companies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.LogoURL, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) CountCompanies(ctx context.Context) (int64, error) {
	var n int64
	err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&n)
	return n, err
}
