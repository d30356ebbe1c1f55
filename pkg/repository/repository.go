package repository

import (
	"context"
	"errors"

	"github.com/ascendhq/ascend/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
// Lookups return (nil, nil) when the row does not exist.

// ErrInsufficientPoints is returned by DeductPoints when the balance does
// not cover the requested amount.
var ErrInsufficientPoints = errors.New("insufficient points")

// ErrDuplicatePending is returned by CreateRequest when a pending request
// already exists for the (student, mentor) pair.
var ErrDuplicatePending = errors.New("pending request already exists")

// UrgencyFilter restricts unanswered-question listings.
type UrgencyFilter int

const (
	FilterAll UrgencyFilter = iota
	FilterUrgentOnly
	FilterNonUrgentOnly
)

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// ListUsers returns users ordered by id descending; limit <= 0 means all.
	ListUsers(ctx context.Context, limit int) ([]models.User, error)
	// ListByRoles returns users holding any of the given roles; limit <= 0 means all.
	ListByRoles(ctx context.Context, roles []models.Role, limit int) ([]models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CountByRoles(ctx context.Context, roles []models.Role) (int64, error)
	SetVerified(ctx context.Context, id int64) error
	// DeductPoints atomically decrements the balance when it covers amount,
	// returning the new balance or ErrInsufficientPoints.
	DeductPoints(ctx context.Context, id, amount int64) (int64, error)
}

type ProfileRepo interface {
	GetByUserID(ctx context.Context, userID int64) (*models.ProfileInfo, error)
	UpsertProfile(ctx context.Context, p *models.ProfileInfo) error
}

type SkillRepo interface {
	ListSkillsByUser(ctx context.Context, userID int64) ([]models.Skill, error)
	// ReplaceForUser hard-deletes the user's skills and reinserts names.
	ReplaceForUser(ctx context.Context, userID int64, names []string) error
}

type CompanyRepo interface {
	CreateCompany(ctx context.Context, c *models.Company) (int64, error)
	GetCompanyByName(ctx context.Context, name string) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	CountCompanies(ctx context.Context) (int64, error)
}

type ExperienceRepo interface {
	CreateExperience(ctx context.Context, e *models.Experience) (int64, error)
	ListExperiencesByUser(ctx context.Context, userID int64) ([]models.ExperienceDetail, error)
	// LatestByUser returns the experience with the highest id, the row the
	// mentor listings treat as the current position.
	LatestByUser(ctx context.Context, userID int64) (*models.ExperienceDetail, error)
}

type CareerPathRepo interface {
	CreatePath(ctx context.Context, p *models.CareerPath) (int64, error)
	ListPaths(ctx context.Context) ([]models.CareerPath, error)
	CountPaths(ctx context.Context) (int64, error)
}

type RoadmapRepo interface {
	CreateRoadmap(ctx context.Context, r *models.Roadmap) (int64, error)
	GetRoadmap(ctx context.Context, id int64) (*models.RoadmapDetail, error)
	ListRoadmaps(ctx context.Context) ([]models.RoadmapDetail, error)
	CountRoadmaps(ctx context.Context) (int64, error)
}

type ThreadRepo interface {
	CreateThread(ctx context.Context, t *models.DiscussionThread) (int64, error)
	// ListThreads returns threads newest first with author display fields.
	ListThreads(ctx context.Context) ([]models.ThreadDetail, error)
	CountThreadsByUser(ctx context.Context, userID int64) (int64, error)
	CountThreads(ctx context.Context) (int64, error)
}

type QuestionRepo interface {
	CreateQuestion(ctx context.Context, q *models.Question) (int64, error)
	GetQuestion(ctx context.Context, id int64) (*models.Question, error)
	// ListFeed orders by urgency, then bounty, then recency.
	ListFeed(ctx context.Context) ([]models.QuestionDetail, error)
	// ListLatest returns the newest questions for the activity feed.
	ListLatest(ctx context.Context, limit int) ([]models.QuestionDetail, error)
	// ListUnanswered returns questions with zero replies. Urgent-filtered
	// listings order by bounty then recency, the rest by recency alone.
	// limit <= 0 means unbounded.
	ListUnanswered(ctx context.Context, filter UrgencyFilter, limit int) ([]models.QuestionDetail, error)
	CountUnanswered(ctx context.Context) (int64, error)
	CountQuestionsByUser(ctx context.Context, userID int64) (int64, error)
}

type ReplyRepo interface {
	CreateReply(ctx context.Context, rp *models.Reply) (int64, error)
	ListByQuestion(ctx context.Context, questionID int64) ([]models.ReplyDetail, error)
}

type MentorshipRepo interface {
	// CreateRequest inserts a pending request, returning ErrDuplicatePending
	// when one already exists for the pair.
	CreateRequest(ctx context.Context, req *models.MentorshipRequest) (int64, error)
	GetRequest(ctx context.Context, id int64) (*models.MentorshipRequest, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	ListByMentor(ctx context.Context, mentorID int64, status string) ([]models.RequestDetail, error)
	// ListMentorsForStudent returns the mentors behind the student's
	// accepted requests.
	ListMentorsForStudent(ctx context.Context, studentID int64) ([]models.User, error)
	CountByMentor(ctx context.Context, mentorID int64, status string) (int64, error)
}
