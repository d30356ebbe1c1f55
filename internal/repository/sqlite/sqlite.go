package sqlite

import (
	"time"

	"log/slog"

	"github.com/ascendhq/ascend/internal/db"
	"github.com/ascendhq/ascend/pkg/repository"
)

// SQLiteRepo implements the repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.UserRepo = (*SQLiteRepo)(nil)
var _ repository.ProfileRepo = (*SQLiteRepo)(nil)
var _ repository.SkillRepo = (*SQLiteRepo)(nil)
var _ repository.CompanyRepo = (*SQLiteRepo)(nil)
var _ repository.ExperienceRepo = (*SQLiteRepo)(nil)
var _ repository.CareerPathRepo = (*SQLiteRepo)(nil)
var _ repository.RoadmapRepo = (*SQLiteRepo)(nil)
var _ repository.ThreadRepo = (*SQLiteRepo)(nil)
var _ repository.QuestionRepo = (*SQLiteRepo)(nil)
var _ repository.ReplyRepo = (*SQLiteRepo)(nil)
var _ repository.MentorshipRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

// displayName is the SQL expression for an author's display name: the
// profile full name when set, the username otherwise.
const displayName = `COALESCE(NULLIF(p.full_name, ''), u.username)`
