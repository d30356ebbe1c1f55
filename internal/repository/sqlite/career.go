package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ascendhq/ascend/pkg/models"
)

func (r *SQLiteRepo) CreatePath(ctx context.Context, p *models.CareerPath) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("career path is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO career_paths (title, description) VALUES (?, ?)`, p.Title, p.Description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepo) ListPaths(ctx context.Context) ([]models.CareerPath, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, title, description FROM career_paths ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CareerPath
	for rows.Next() {
		var p models.CareerPath
		if err := rows.Scan(&p.ID, &p.Title, &p.Description); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) CountPaths(ctx context.Context) (int64, error) {
	var n int64
	err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM career_paths`).Scan(&n)
	return n, err
}

const roadmapColumns = `r.id, r.title, r.description, r.steps, r.career_path_id, r.creator_id, ` + displayName + `, u.role`

func scanRoadmap(row interface{ Scan(...any) error }) (*models.RoadmapDetail, error) {
	var rm models.RoadmapDetail
	if err := row.Scan(&rm.ID, &rm.Title, &rm.Description, &rm.Steps, &rm.CareerPathID, &rm.CreatorID, &rm.CreatorName, &rm.CreatorRole); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rm, nil
}

func (r *SQLiteRepo) CreateRoadmap(ctx context.Context, rm *models.Roadmap) (int64, error) {
	if rm == nil {
		return 0, fmt.Errorf("roadmap is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO roadmaps (title, description, steps, career_path_id, creator_id) VALUES (?, ?, ?, ?, ?)`,
		rm.Title, rm.Description, rm.Steps, rm.CareerPathID, rm.CreatorID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepo) GetRoadmap(ctx context.Context, id int64) (*models.RoadmapDetail, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+roadmapColumns+` FROM roadmaps r
		 JOIN users u ON u.id = r.creator_id
		 LEFT JOIN profile_info p ON p.user_id = u.id
		 WHERE r.id = ?`, id)
	return scanRoadmap(row)
}

func (r *SQLiteRepo) ListRoadmaps(ctx context.Context) ([]models.RoadmapDetail, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT `+roadmapColumns+` FROM roadmaps r
		 JOIN users u ON u.id = r.creator_id
		 LEFT JOIN profile_info p ON p.user_id = u.id
		 ORDER BY r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RoadmapDetail
	for rows.Next() {
		rm, err := scanRoadmap(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rm)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) CountRoadmaps(ctx context.Context) (int64, error) {
	var n int64
	err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM roadmaps`).Scan(&n)
	return n, err
}
