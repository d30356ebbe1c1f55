package mock

import (
	"context"
	"sort"

	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository"
)

// In-memory repository mocks for handler tests. Entities live in slices,
// ids and creation stamps come from a monotonic counter, and cross-entity
// display fields are resolved the same way the SQL joins do.

type Mocks struct {
	Users       *UserRepo
	Profiles    *ProfileRepo
	Skills      *SkillRepo
	Companies   *CompanyRepo
	Experiences *ExperienceRepo
	Paths       *CareerPathRepo
	Roadmaps    *RoadmapRepo
	Threads     *ThreadRepo
	Questions   *QuestionRepo
	Replies     *ReplyRepo
	Requests    *MentorshipRepo

	seq int64
}

func NewMocks() *Mocks {
	m := &Mocks{}
	m.Users = &UserRepo{m: m}
	m.Profiles = &ProfileRepo{m: m, byUser: map[int64]models.ProfileInfo{}}
	m.Skills = &SkillRepo{m: m}
	m.Companies = &CompanyRepo{m: m}
	m.Experiences = &ExperienceRepo{m: m}
	m.Paths = &CareerPathRepo{m: m}
	m.Roadmaps = &RoadmapRepo{m: m}
	m.Threads = &ThreadRepo{m: m}
	m.Questions = &QuestionRepo{m: m}
	m.Replies = &ReplyRepo{m: m}
	m.Requests = &MentorshipRepo{m: m}
	return m
}

func (m *Mocks) next() int64 {
	m.seq++
	return m.seq
}

func (m *Mocks) userByID(id int64) *models.User {
	for i := range m.Users.Stored {
		if m.Users.Stored[i].ID == id {
			return &m.Users.Stored[i]
		}
	}
	return nil
}

// displayName mirrors the SQL fallback: profile full name, then username.
func (m *Mocks) displayName(userID int64) string {
	if p, ok := m.Profiles.byUser[userID]; ok && p.FullName != "" {
		return p.FullName
	}
	if u := m.userByID(userID); u != nil {
		return u.Username
	}
	return ""
}

func (m *Mocks) roleOf(userID int64) models.Role {
	if u := m.userByID(userID); u != nil {
		return u.Role
	}
	return ""
}

// UserRepo

type UserRepo struct {
	m         *Mocks
	Stored    []models.User
	CreateErr error
	Err       error
}

var _ repository.UserRepo = (*UserRepo)(nil)

func (r *UserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if r.CreateErr != nil {
		return 0, r.CreateErr
	}
	nu := *u
	nu.ID = r.m.next()
	nu.Created = nu.ID
	r.Stored = append(r.Stored, nu)
	return nu.ID, nil
}

func (r *UserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if u := r.m.userByID(id); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	for i := range r.Stored {
		if r.Stored[i].Email == email {
			cp := r.Stored[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	for i := range r.Stored {
		if r.Stored[i].Username == username {
			cp := r.Stored[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) ListUsers(ctx context.Context, limit int) ([]models.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	out := append([]models.User(nil), r.Stored...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *UserRepo) ListByRoles(ctx context.Context, roles []models.Role, limit int) ([]models.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	var out []models.User
	for _, u := range r.Stored {
		if hasRole(roles, u.Role) {
			out = append(out, u)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *UserRepo) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(r.Stored)), r.Err
}

func (r *UserRepo) CountByRoles(ctx context.Context, roles []models.Role) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for _, u := range r.Stored {
		if hasRole(roles, u.Role) {
			n++
		}
	}
	return n, nil
}

func (r *UserRepo) SetVerified(ctx context.Context, id int64) error {
	if r.Err != nil {
		return r.Err
	}
	if u := r.m.userByID(id); u != nil {
		u.IsVerified = true
	}
	return nil
}

func (r *UserRepo) DeductPoints(ctx context.Context, id, amount int64) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	u := r.m.userByID(id)
	if u == nil || u.Points < amount {
		return 0, repository.ErrInsufficientPoints
	}
	u.Points -= amount
	return u.Points, nil
}

func hasRole(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// ProfileRepo

type ProfileRepo struct {
	m      *Mocks
	byUser map[int64]models.ProfileInfo
	Err    error
}

var _ repository.ProfileRepo = (*ProfileRepo)(nil)

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (*models.ProfileInfo, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if p, ok := r.byUser[userID]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r *ProfileRepo) UpsertProfile(ctx context.Context, p *models.ProfileInfo) error {
	if r.Err != nil {
		return r.Err
	}
	cp := *p
	if existing, ok := r.byUser[p.UserID]; ok {
		cp.ID = existing.ID
	} else {
		cp.ID = r.m.next()
	}
	r.byUser[p.UserID] = cp
	return nil
}

// Set seeds a profile directly, for test preparation.
func (r *ProfileRepo) Set(p models.ProfileInfo) {
	if p.ID == 0 {
		p.ID = r.m.next()
	}
	r.byUser[p.UserID] = p
}

// SkillRepo

type SkillRepo struct {
	m      *Mocks
	Stored []models.Skill
	Err    error
}

var _ repository.SkillRepo = (*SkillRepo)(nil)

func (r *SkillRepo) ListSkillsByUser(ctx context.Context, userID int64) ([]models.Skill, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	var out []models.Skill
	for _, s := range r.Stored {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SkillRepo) ReplaceForUser(ctx context.Context, userID int64, names []string) error {
	if r.Err != nil {
		return r.Err
	}
	kept := r.Stored[:0]
	for _, s := range r.Stored {
		if s.UserID != userID {
			kept = append(kept, s)
		}
	}
	r.Stored = kept
	for _, name := range names {
		if name == "" {
			continue
		}
		r.Stored = append(r.Stored, models.Skill{ID: r.m.next(), UserID: userID, Name: name})
	}
	return nil
}

// CompanyRepo

type CompanyRepo struct {
	m      *Mocks
	Stored []models.Company
	Err    error
}

var _ repository.CompanyRepo = (*CompanyRepo)(nil)

func (r *CompanyRepo) CreateCompany(ctx context.Context, c *models.Company) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	nc := *c
	nc.ID = r.m.next()
	r.Stored = append(r.Stored, nc)
	return nc.ID, nil
}

func (r *CompanyRepo) GetCompanyByName(ctx context.Context, name string) (*models.Company, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	for _, c := range r.Stored {
		if c.Name == name {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CompanyRepo) ListCompanies(ctx context.Context) ([]models.Company, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return append([]models.Company(nil), r.Stored...), nil
}

func (r *CompanyRepo) CountCompanies(ctx context.Context) (int64, error) {
	return int64(len(r.Stored)), r.Err
}

// ExperienceRepo

type ExperienceRepo struct {
	m      *Mocks
	Stored []models.Experience
	Err    error
}

var _ repository.ExperienceRepo = (*ExperienceRepo)(nil)

func (r *ExperienceRepo) CreateExperience(ctx context.Context, e *models.Experience) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	ne := *e
	ne.ID = r.m.next()
	r.Stored = append(r.Stored, ne)
	return ne.ID, nil
}

func (r *ExperienceRepo) detail(e models.Experience) models.ExperienceDetail {
	d := models.ExperienceDetail{Experience: e, CompanyName: "Unknown"}
	for _, c := range r.m.Companies.Stored {
		if c.ID == e.CompanyID {
			d.CompanyName = c.Name
			break
		}
	}
	return d
}

func (r *ExperienceRepo) ListExperiencesByUser(ctx context.Context, userID int64) ([]models.ExperienceDetail, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	var out []models.ExperienceDetail
	for _, e := range r.Stored {
		if e.UserID == userID {
			out = append(out, r.detail(e))
		}
	}
	return out, nil
}

func (r *ExperienceRepo) LatestByUser(ctx context.Context, userID int64) (*models.ExperienceDetail, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	var latest *models.Experience
	for i := range r.Stored {
		e := &r.Stored[i]
		if e.UserID == userID && (latest == nil || e.ID > latest.ID) {
			latest = e
		}
	}
	if latest == nil {
		return nil, nil
	}
	d := r.detail(*latest)
	return &d, nil
}

// CareerPathRepo

type CareerPathRepo struct {
	m      *Mocks
	Stored []models.CareerPath
	Err    error
}

var _ repository.CareerPathRepo = (*CareerPathRepo)(nil)

func (r *CareerPathRepo) CreatePath(ctx context.Context, p *models.CareerPath) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	np := *p
	np.ID = r.m.next()
	r.Stored = append(r.Stored, np)
	return np.ID, nil
}

func (r *CareerPathRepo) ListPaths(ctx context.Context) ([]models.CareerPath, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return append([]models.CareerPath(nil), r.Stored...), nil
}

func (r *CareerPathRepo) CountPaths(ctx context.Context) (int64, error) {
	return int64(len(r.Stored)), r.Err
}

// RoadmapRepo

type RoadmapRepo struct {
	m      *Mocks
	Stored []models.Roadmap
	Err    error
}

var _ repository.RoadmapRepo = (*RoadmapRepo)(nil)

func (r *RoadmapRepo) CreateRoadmap(ctx context.Context, rm *models.Roadmap) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	nr := *rm
	nr.ID = r.m.next()
	r.Stored = append(r.Stored, nr)
	return nr.ID, nil
}

func (r *RoadmapRepo) detail(rm models.Roadmap) models.RoadmapDetail {
	return models.RoadmapDetail{
		Roadmap:     rm,
		CreatorName: r.m.displayName(rm.CreatorID),
		CreatorRole: r.m.roleOf(rm.CreatorID),
	}
}

func (r *RoadmapRepo) GetRoadmap(ctx context.Context, id int64) (*models.RoadmapDetail, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	for _, rm := range r.Stored {
		if rm.ID == id {
			d := r.detail(rm)
			return &d, nil
		}
	}
	return nil, nil
}

func (r *RoadmapRepo) ListRoadmaps(ctx context.Context) ([]models.RoadmapDetail, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	var out []models.RoadmapDetail
	for _, rm := range r.Stored {
		out = append(out, r.detail(rm))
	}
	return out, nil
}

func (r *RoadmapRepo) CountRoadmaps(ctx context.Context) (int64, error) {
	return int64(len(r.Stored)), r.Err
}

// ThreadRepo

type ThreadRepo struct {
	m      *Mocks
	Stored []models.DiscussionThread
	Err    error
}

var _ repository.ThreadRepo = (*ThreadRepo)(nil)

func (r *ThreadRepo) CreateThread(ctx context.Context, t *models.DiscussionThread) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	nt := *t
	nt.ID = r.m.next()
	nt.Created = nt.ID
	r.Stored = append(r.Stored, nt)
	return nt.ID, nil
}

func (r *ThreadRepo) ListThreads(ctx context.Context) ([]models.ThreadDetail, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	sorted := append([]models.DiscussionThread(nil), r.Stored...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })
	var out []models.ThreadDetail
	for _, t := range sorted {
		out = append(out, models.ThreadDetail{
			DiscussionThread: t,
			AuthorName:       r.m.displayName(t.UserID),
			AuthorRole:       r.m.roleOf(t.UserID),
		})
	}
	return out, nil
}

func (r *ThreadRepo) CountThreadsByUser(ctx context.Context, userID int64) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for _, t := range r.Stored {
		if t.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *ThreadRepo) CountThreads(ctx context.Context) (int64, error) {
	return int64(len(r.Stored)), r.Err
}

// QuestionRepo

type QuestionRepo struct {
	m      *Mocks
	Stored []models.Question
	Err    error
}

var _ repository.QuestionRepo = (*QuestionRepo)(nil)

func (r *QuestionRepo) CreateQuestion(ctx context.Context, q *models.Question) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	nq := *q
	nq.ID = r.m.next()
	nq.Created = nq.ID
	r.Stored = append(r.Stored, nq)
	return nq.ID, nil
}

func (r *QuestionRepo) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	for _, q := range r.Stored {
		if q.ID == id {
			cp := q
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *QuestionRepo) detail(q models.Question) models.QuestionDetail {
	d := models.QuestionDetail{
		Question:   q,
		AuthorName: r.m.displayName(q.UserID),
		AuthorRole: r.m.roleOf(q.UserID),
	}
	if u := r.m.userByID(q.UserID); u != nil {
		d.AuthorUsername = u.Username
	}
	return d
}

func (r *QuestionRepo) ListFeed(ctx context.Context) ([]models.QuestionDetail, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	sorted := append([]models.Question(nil), r.Stored...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsUrgent != b.IsUrgent {
			return a.IsUrgent
		}
		if a.Bounty != b.Bounty {
			return a.Bounty > b.Bounty
		}
		return a.Created > b.Created
	})
	var out []models.QuestionDetail
	for _, q := range sorted {
		out = append(out, r.detail(q))
	}
	return out, nil
}

func (r *QuestionRepo) ListLatest(ctx context.Context, limit int) ([]models.QuestionDetail, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	sorted := append([]models.Question(nil), r.Stored...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Created > sorted[j].Created })
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	var out []models.QuestionDetail
	for _, q := range sorted {
		out = append(out, r.detail(q))
	}
	return out, nil
}

func (r *QuestionRepo) answered(questionID int64) bool {
	for _, rp := range r.m.Replies.Stored {
		if rp.QuestionID == questionID {
			return true
		}
	}
	return false
}

func (r *QuestionRepo) ListUnanswered(ctx context.Context, filter repository.UrgencyFilter, limit int) ([]models.QuestionDetail, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	var open []models.Question
	for _, q := range r.Stored {
		if r.answered(q.ID) {
			continue
		}
		switch filter {
		case repository.FilterUrgentOnly:
			if !q.IsUrgent {
				continue
			}
		case repository.FilterNonUrgentOnly:
			if q.IsUrgent {
				continue
			}
		}
		open = append(open, q)
	}
	sort.Slice(open, func(i, j int) bool {
		a, b := open[i], open[j]
		if filter == repository.FilterUrgentOnly && a.Bounty != b.Bounty {
			return a.Bounty > b.Bounty
		}
		return a.Created > b.Created
	})
	if limit > 0 && len(open) > limit {
		open = open[:limit]
	}
	var out []models.QuestionDetail
	for _, q := range open {
		out = append(out, r.detail(q))
	}
	return out, nil
}

func (r *QuestionRepo) CountUnanswered(ctx context.Context) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for _, q := range r.Stored {
		if !r.answered(q.ID) {
			n++
		}
	}
	return n, nil
}

func (r *QuestionRepo) CountQuestionsByUser(ctx context.Context, userID int64) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for _, q := range r.Stored {
		if q.UserID == userID {
			n++
		}
	}
	return n, nil
}

// ReplyRepo

type ReplyRepo struct {
	m      *Mocks
	Stored []models.Reply
	Err    error
}

var _ repository.ReplyRepo = (*ReplyRepo)(nil)

func (r *ReplyRepo) CreateReply(ctx context.Context, rp *models.Reply) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	nr := *rp
	nr.ID = r.m.next()
	nr.Created = nr.ID
	r.Stored = append(r.Stored, nr)
	return nr.ID, nil
}

func (r *ReplyRepo) ListByQuestion(ctx context.Context, questionID int64) ([]models.ReplyDetail, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	var out []models.ReplyDetail
	for _, rp := range r.Stored {
		if rp.QuestionID == questionID {
			out = append(out, models.ReplyDetail{
				Reply:      rp,
				AuthorName: r.m.displayName(rp.UserID),
				AuthorRole: r.m.roleOf(rp.UserID),
			})
		}
	}
	return out, nil
}

// MentorshipRepo

type MentorshipRepo struct {
	m      *Mocks
	Stored []models.MentorshipRequest
	Err    error
}

var _ repository.MentorshipRepo = (*MentorshipRepo)(nil)

func (r *MentorshipRepo) CreateRequest(ctx context.Context, req *models.MentorshipRequest) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	for _, existing := range r.Stored {
		if existing.StudentID == req.StudentID && existing.MentorID == req.MentorID && existing.Status == models.RequestPending {
			return 0, repository.ErrDuplicatePending
		}
	}
	nr := *req
	nr.ID = r.m.next()
	nr.Created = nr.ID
	nr.Status = models.RequestPending
	r.Stored = append(r.Stored, nr)
	return nr.ID, nil
}

func (r *MentorshipRepo) GetRequest(ctx context.Context, id int64) (*models.MentorshipRequest, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	for _, req := range r.Stored {
		if req.ID == id {
			cp := req
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MentorshipRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	if r.Err != nil {
		return r.Err
	}
	for i := range r.Stored {
		if r.Stored[i].ID == id {
			r.Stored[i].Status = status
			return nil
		}
	}
	return nil
}

func (r *MentorshipRepo) ListByMentor(ctx context.Context, mentorID int64, status string) ([]models.RequestDetail, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	var out []models.RequestDetail
	for _, req := range r.Stored {
		if req.MentorID != mentorID || req.Status != status {
			continue
		}
		d := models.RequestDetail{MentorshipRequest: req, StudentName: r.m.displayName(req.StudentID)}
		if p, ok := r.m.Profiles.byUser[req.StudentID]; ok {
			d.StudentGoal = p.CurrentGoal
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *MentorshipRepo) ListMentorsForStudent(ctx context.Context, studentID int64) ([]models.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	var out []models.User
	for _, req := range r.Stored {
		if req.StudentID == studentID && req.Status == models.RequestAccepted {
			if u := r.m.userByID(req.MentorID); u != nil {
				out = append(out, *u)
			}
		}
	}
	return out, nil
}

func (r *MentorshipRepo) CountByMentor(ctx context.Context, mentorID int64, status string) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for _, req := range r.Stored {
		if req.MentorID == mentorID && req.Status == status {
			n++
		}
	}
	return n, nil
}
