package models

// Domain models matching the database schema in db/migrations/0001_init.sql

type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username" validate:"required"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	PasswordHash string `json:"password_hash,omitempty" db:"password_hash"`
	Role         Role   `json:"role" db:"role"`
	IsVerified   bool   `json:"is_verified" db:"is_verified"`
	Points       int64  `json:"points" db:"points"`
	Created      int64  `json:"created" db:"created"`
}

// PublicUser is the summary returned by the auth endpoints.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Points   int64  `json:"points"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role, Points: u.Points}
}

type ProfileInfo struct {
	ID             int64  `json:"id" db:"id"`
	UserID         int64  `json:"user_id" db:"user_id"`
	Bio            string `json:"bio,omitempty" db:"bio"`
	University     string `json:"university,omitempty" db:"university"`
	FullName       string `json:"full_name,omitempty" db:"full_name"`
	Degree         string `json:"degree,omitempty" db:"degree"`
	GraduationYear int64  `json:"graduation_year,omitempty" db:"graduation_year"`
	CurrentGoal    string `json:"current_goal,omitempty" db:"current_goal"`
	Company        string `json:"company,omitempty" db:"company"`
	JobTitle       string `json:"job_title,omitempty" db:"job_title"`
}

type Skill struct {
	ID     int64  `json:"id" db:"id"`
	UserID int64  `json:"user_id" db:"user_id"`
	Name   string `json:"name" db:"name"`
}

type Company struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name" validate:"required"`
	LogoURL     string `json:"logo_url,omitempty" db:"logo_url"`
	Description string `json:"description,omitempty" db:"description"`
}

type Experience struct {
	ID          int64  `json:"id" db:"id"`
	UserID      int64  `json:"user_id" db:"user_id"`
	CompanyID   int64  `json:"company_id" db:"company_id"`
	Role        string `json:"role" db:"role"`
	StartDate   string `json:"start_date,omitempty" db:"start_date"`
	EndDate     string `json:"end_date,omitempty" db:"end_date"`
	Description string `json:"description,omitempty" db:"description"`
}

// ExperienceDetail carries an experience with the resolved company name.
type ExperienceDetail struct {
	Experience
	CompanyName string `json:"company"`
}

type CareerPath struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title" validate:"required"`
	Description string `json:"description,omitempty" db:"description"`
}

type Roadmap struct {
	ID           int64  `json:"id" db:"id"`
	Title        string `json:"title" db:"title"`
	Description  string `json:"description,omitempty" db:"description"`
	Steps        string `json:"steps,omitempty" db:"steps"`
	CareerPathID int64  `json:"career_path_id,omitempty" db:"career_path_id"`
	CreatorID    int64  `json:"creator_id" db:"creator_id"`
}

// RoadmapDetail adds the creator display fields used by the career endpoints.
type RoadmapDetail struct {
	Roadmap
	CreatorName string `json:"creator"`
	CreatorRole Role   `json:"creator_role"`
}

type DiscussionThread struct {
	ID       int64  `json:"id" db:"id"`
	UserID   int64  `json:"user_id" db:"user_id"`
	Title    string `json:"title" db:"title" validate:"required"`
	Category string `json:"category,omitempty" db:"category"`
	Created  int64  `json:"created" db:"created"`
}

type ThreadDetail struct {
	DiscussionThread
	AuthorName string `json:"author"`
	AuthorRole Role   `json:"author_role"`
}

type Question struct {
	ID       int64  `json:"id" db:"id"`
	UserID   int64  `json:"user_id" db:"user_id"`
	Title    string `json:"title" db:"title" validate:"required"`
	Content  string `json:"content" db:"content" validate:"required"`
	IsUrgent bool   `json:"is_urgent" db:"is_urgent"`
	Bounty   int64  `json:"bounty" db:"bounty"`
	Created  int64  `json:"created" db:"created"`
}

// QuestionDetail adds the author display fields derived by the feed queries.
// AuthorName falls back from the profile full name to the username.
type QuestionDetail struct {
	Question
	AuthorName     string `json:"author_name"`
	AuthorUsername string `json:"author_username"`
	AuthorRole     Role   `json:"author_role"`
}

type Reply struct {
	ID         int64  `json:"id" db:"id"`
	QuestionID int64  `json:"question_id" db:"question_id"`
	UserID     int64  `json:"user_id" db:"user_id"`
	Content    string `json:"content" db:"content" validate:"required"`
	Created    int64  `json:"created" db:"created"`
}

type ReplyDetail struct {
	Reply
	AuthorName string `json:"author_name"`
	AuthorRole Role   `json:"author_role"`
}

// Mentorship request lifecycle: pending -> accepted | rejected.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

type MentorshipRequest struct {
	ID        int64  `json:"id" db:"id"`
	StudentID int64  `json:"student_id" db:"student_id"`
	MentorID  int64  `json:"mentor_id" db:"mentor_id"`
	Status    string `json:"status" db:"status"`
	Message   string `json:"message,omitempty" db:"message"`
	Created   int64  `json:"created" db:"created"`
}

// RequestDetail adds the student display fields shown to mentors.
type RequestDetail struct {
	MentorshipRequest
	StudentName string `json:"name"`
	StudentGoal string `json:"goal"`
}
