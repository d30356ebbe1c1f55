package sqlite_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	dbfs "github.com/ascendhq/ascend/db"
	dbpkg "github.com/ascendhq/ascend/internal/db"
	sqlite "github.com/ascendhq/ascend/internal/repository/sqlite"
	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository"
)

func setupRepo(t *testing.T) (*sqlite.SQLiteRepo, func()) {
	t.Helper()
	ctx := context.Background()

	// one named in-memory database per test
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	d, err := dbpkg.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		d.Close()
		t.Fatalf("failed to migrate: %v", err)
	}

	repo := sqlite.New(d, nil)
	return repo, func() { d.Close() }
}

func mustCreateUser(t *testing.T, repo *sqlite.SQLiteRepo, username, email string, role models.Role, points int64) int64 {
	t.Helper()
	id, err := repo.CreateUser(context.Background(), &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		Points:       points,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return id
}

func TestUserCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil user")
	}

	got, err := repo.GetUserByID(ctx, 9999)
	if err != nil {
		t.Fatalf("expected no error for missing id, got: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing id, got: %#v", got)
	}

	id := mustCreateUser(t, repo, "alice", "alice@example.com", models.RoleStudent, 100)

	u, err := repo.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if u == nil || u.ID != id || u.Username != "alice" || u.Role != models.RoleStudent || u.Points != 100 {
		t.Fatalf("unexpected user: %#v", u)
	}

	if _, err := repo.CreateUser(ctx, &models.User{Username: "other", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleStudent, Points: 100}); err == nil {
		t.Fatalf("expected unique constraint error for duplicate email")
	}
	n, err := repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 1 {
		t.Fatalf("duplicate insert must not create a row, count=%d", n)
	}

	if err := repo.SetVerified(ctx, id); err != nil {
		t.Fatalf("set verified: %v", err)
	}
	u, _ = repo.GetUserByID(ctx, id)
	if !u.IsVerified {
		t.Fatalf("expected user to be verified")
	}
}

func TestDeductPoints(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	id := mustCreateUser(t, repo, "bob", "bob@example.com", models.RoleStudent, 100)

	left, err := repo.DeductPoints(ctx, id, 30)
	if err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if left != 70 {
		t.Fatalf("expected 70 points left, got %d", left)
	}

	if _, err := repo.DeductPoints(ctx, id, 1000); !errors.Is(err, repository.ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}

	u, _ := repo.GetUserByID(ctx, id)
	if u.Points != 70 {
		t.Fatalf("failed deduction must leave balance unchanged, got %d", u.Points)
	}
}

func TestUnansweredQuestions(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	student := mustCreateUser(t, repo, "stu", "stu@example.com", models.RoleStudent, 100)
	mentor := mustCreateUser(t, repo, "men", "men@example.com", models.RoleMentor, 100)

	answered, _ := repo.CreateQuestion(ctx, &models.Question{UserID: student, Title: "answered", Content: "c"})
	unanswered, _ := repo.CreateQuestion(ctx, &models.Question{UserID: student, Title: "open", Content: "c"})
	if _, err := repo.CreateReply(ctx, &models.Reply{QuestionID: answered, UserID: mentor, Content: "here"}); err != nil {
		t.Fatalf("create reply: %v", err)
	}

	got, err := repo.ListUnanswered(ctx, repository.FilterAll, 0)
	if err != nil {
		t.Fatalf("list unanswered: %v", err)
	}
	if len(got) != 1 || got[0].ID != unanswered {
		t.Fatalf("expected exactly the open question, got %#v", got)
	}

	n, err := repo.CountUnanswered(ctx)
	if err != nil {
		t.Fatalf("count unanswered: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 unanswered, got %d", n)
	}
}

func TestUnansweredQuestions_UrgentOrdering(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	student := mustCreateUser(t, repo, "stu", "stu@example.com", models.RoleStudent, 1000)

	low, _ := repo.CreateQuestion(ctx, &models.Question{UserID: student, Title: "low", Content: "c", IsUrgent: true, Bounty: 10})
	high, _ := repo.CreateQuestion(ctx, &models.Question{UserID: student, Title: "high", Content: "c", IsUrgent: true, Bounty: 50})
	repo.CreateQuestion(ctx, &models.Question{UserID: student, Title: "calm", Content: "c"})

	got, err := repo.ListUnanswered(ctx, repository.FilterUrgentOnly, 5)
	if err != nil {
		t.Fatalf("list urgent unanswered: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 urgent questions, got %d", len(got))
	}
	if got[0].ID != high || got[1].ID != low {
		t.Fatalf("expected bounty-descending order [high, low], got [%d, %d]", got[0].ID, got[1].ID)
	}

	calm, err := repo.ListUnanswered(ctx, repository.FilterNonUrgentOnly, 5)
	if err != nil {
		t.Fatalf("list non-urgent unanswered: %v", err)
	}
	if len(calm) != 1 || calm[0].Title != "calm" {
		t.Fatalf("expected only the non-urgent question, got %#v", calm)
	}
}

func TestQuestionFeedOrdering(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	student := mustCreateUser(t, repo, "stu", "stu@example.com", models.RoleStudent, 1000)

	// insertion order deliberately scrambled relative to the expected feed
	calm, _ := repo.CreateQuestion(ctx, &models.Question{UserID: student, Title: "calm", Content: "c"})
	low, _ := repo.CreateQuestion(ctx, &models.Question{UserID: student, Title: "low", Content: "c", IsUrgent: true, Bounty: 10})
	high, _ := repo.CreateQuestion(ctx, &models.Question{UserID: student, Title: "high", Content: "c", IsUrgent: true, Bounty: 50})

	feed, err := repo.ListFeed(ctx)
	if err != nil {
		t.Fatalf("list feed: %v", err)
	}
	if len(feed) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(feed))
	}
	want := []int64{high, low, calm}
	for i, q := range feed {
		if q.ID != want[i] {
			t.Fatalf("feed position %d: want id %d got %d", i, want[i], q.ID)
		}
	}
	if feed[0].AuthorUsername != "stu" {
		t.Fatalf("expected author username on feed rows, got %q", feed[0].AuthorUsername)
	}
}

func TestLatestExperience_ByInsertionOrder(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	mentor := mustCreateUser(t, repo, "men", "men@example.com", models.RoleMentor, 100)
	acme, _ := repo.CreateCompany(ctx, &models.Company{Name: "Acme"})
	globex, _ := repo.CreateCompany(ctx, &models.Company{Name: "Globex"})

	// first row has the later end date; insertion order must still win
	repo.CreateExperience(ctx, &models.Experience{UserID: mentor, CompanyID: acme, Role: "Engineer", EndDate: "2030-01-01"})
	repo.CreateExperience(ctx, &models.Experience{UserID: mentor, CompanyID: globex, Role: "Manager", EndDate: "2020-01-01"})

	latest, err := repo.LatestByUser(ctx, mentor)
	if err != nil {
		t.Fatalf("latest by user: %v", err)
	}
	if latest == nil || latest.CompanyName != "Globex" || latest.Role != "Manager" {
		t.Fatalf("expected the last inserted experience to win, got %#v", latest)
	}

	all, err := repo.ListExperiencesByUser(ctx, mentor)
	if err != nil {
		t.Fatalf("list experiences: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 experiences, got %d", len(all))
	}
}

func TestMentorshipRequests(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	student := mustCreateUser(t, repo, "stu", "stu@example.com", models.RoleStudent, 100)
	mentor := mustCreateUser(t, repo, "men", "men@example.com", models.RoleMentor, 100)

	id, err := repo.CreateRequest(ctx, &models.MentorshipRequest{StudentID: student, MentorID: mentor, Message: "help"})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	if _, err := repo.CreateRequest(ctx, &models.MentorshipRequest{StudentID: student, MentorID: mentor, Message: "again"}); !errors.Is(err, repository.ErrDuplicatePending) {
		t.Fatalf("expected ErrDuplicatePending, got %v", err)
	}

	pending, err := repo.ListByMentor(ctx, mentor, models.RequestPending)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].StudentName != "stu" {
		t.Fatalf("unexpected pending list: %#v", pending)
	}

	if err := repo.UpdateStatus(ctx, id, models.RequestAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	// responding again overwrites: last write wins
	if err := repo.UpdateStatus(ctx, id, models.RequestRejected); err != nil {
		t.Fatalf("reject after accept: %v", err)
	}
	req, _ := repo.GetRequest(ctx, id)
	if req.Status != models.RequestRejected {
		t.Fatalf("expected second response to win, got %q", req.Status)
	}

	// with the pending row resolved, a new request for the pair is allowed
	if _, err := repo.CreateRequest(ctx, &models.MentorshipRequest{StudentID: student, MentorID: mentor, Message: "retry"}); err != nil {
		t.Fatalf("create after resolution: %v", err)
	}
}

func TestMentorsForStudent(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	student := mustCreateUser(t, repo, "stu", "stu@example.com", models.RoleStudent, 100)
	accepted := mustCreateUser(t, repo, "yes", "yes@example.com", models.RoleMentor, 100)
	pending := mustCreateUser(t, repo, "maybe", "maybe@example.com", models.RoleMentor, 100)

	idA, _ := repo.CreateRequest(ctx, &models.MentorshipRequest{StudentID: student, MentorID: accepted})
	repo.CreateRequest(ctx, &models.MentorshipRequest{StudentID: student, MentorID: pending})
	repo.UpdateStatus(ctx, idA, models.RequestAccepted)

	mentors, err := repo.ListMentorsForStudent(ctx, student)
	if err != nil {
		t.Fatalf("list mentors for student: %v", err)
	}
	if len(mentors) != 1 || mentors[0].Username != "yes" {
		t.Fatalf("expected only the accepted mentor, got %#v", mentors)
	}

	n, err := repo.CountByMentor(ctx, accepted, models.RequestAccepted)
	if err != nil {
		t.Fatalf("count by mentor: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 accepted mentee, got %d", n)
	}
}

func TestSkillsReplace(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	id := mustCreateUser(t, repo, "stu", "stu@example.com", models.RoleStudent, 100)

	if err := repo.ReplaceForUser(ctx, id, []string{"Go", "SQL"}); err != nil {
		t.Fatalf("replace skills: %v", err)
	}
	if err := repo.ReplaceForUser(ctx, id, []string{"Rust", "", "Go"}); err != nil {
		t.Fatalf("replace skills again: %v", err)
	}

	skills, err := repo.ListSkillsByUser(ctx, id)
	if err != nil {
		t.Fatalf("list skills: %v", err)
	}
	if len(skills) != 2 || skills[0].Name != "Rust" || skills[1].Name != "Go" {
		t.Fatalf("expected replace-all semantics, got %#v", skills)
	}
}

func TestProfileUpsert(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	id := mustCreateUser(t, repo, "stu", "stu@example.com", models.RoleStudent, 100)

	missing, err := repo.GetByUserID(ctx, id)
	if err != nil {
		t.Fatalf("get missing profile: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing profile, got %#v", missing)
	}

	if err := repo.UpsertProfile(ctx, &models.ProfileInfo{UserID: id, Bio: "hi", FullName: "Stu Dent"}); err != nil {
		t.Fatalf("insert profile: %v", err)
	}
	if err := repo.UpsertProfile(ctx, &models.ProfileInfo{UserID: id, Bio: "updated", FullName: "Stu Dent", CurrentGoal: "SRE"}); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	p, err := repo.GetByUserID(ctx, id)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p == nil || p.Bio != "updated" || p.CurrentGoal != "SRE" {
		t.Fatalf("unexpected profile: %#v", p)
	}
}
