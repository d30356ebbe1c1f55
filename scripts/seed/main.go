package main

import (
	"context"
	"fmt"
	"os"

	dbfs "github.com/ascendhq/ascend/db"
	"github.com/ascendhq/ascend/internal/config"
	"github.com/ascendhq/ascend/internal/db"
	"github.com/ascendhq/ascend/internal/repository/sqlite"
	"github.com/ascendhq/ascend/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the database with demo accounts and career content. Safe to run
// more than once: existing rows are matched by their natural keys.

type mentorSeed struct {
	username string
	email    string
	company  string
	job      string
}

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	repo := sqlite.New(database, nil)

	if err := seed(ctx, repo); err != nil {
		fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Database seeded successfully.")
}

func seed(ctx context.Context, repo *sqlite.SQLiteRepo) error {
	companies := map[string]int64{}
	for _, c := range []models.Company{
		{Name: "Google", Description: "Tech Giant", LogoURL: "https://upload.wikimedia.org/wikipedia/commons/2/2f/Google_2015_logo.svg"},
		{Name: "Microsoft", Description: "Software Corp", LogoURL: "https://upload.wikimedia.org/wikipedia/commons/4/44/Microsoft_logo.svg"},
	} {
		existing, err := repo.GetCompanyByName(ctx, c.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			companies[c.Name] = existing.ID
			continue
		}
		id, err := repo.CreateCompany(ctx, &c)
		if err != nil {
			return err
		}
		companies[c.Name] = id
		fmt.Printf("Added company: %s\n", c.Name)
	}

	student, err := ensureUser(ctx, repo, "Demo Student", "student@demo.com", "password123", models.RoleStudent, true)
	if err != nil {
		return err
	}
	if _, err := ensureUser(ctx, repo, "Admin User", "admin@ascend.com", "admin123", models.RoleAdmin, true); err != nil {
		return err
	}

	if err := repo.UpsertProfile(ctx, &models.ProfileInfo{
		UserID:         student.ID,
		Bio:            "I am a demo student interested in AI and Web Development.",
		University:     "Demo University",
		FullName:       "Demo Student",
		Degree:         "B.S. Computer Science",
		GraduationYear: 2026,
		CurrentGoal:    "Become a Full Stack Developer",
	}); err != nil {
		return err
	}
	if err := repo.ReplaceForUser(ctx, student.ID, []string{"Go", "SQL", "JavaScript", "React"}); err != nil {
		return err
	}

	existingExp, err := repo.ListExperiencesByUser(ctx, student.ID)
	if err != nil {
		return err
	}
	if len(existingExp) == 0 {
		if _, err := repo.CreateExperience(ctx, &models.Experience{
			UserID:      student.ID,
			CompanyID:   companies["Google"],
			Role:        "Software Engineering Intern",
			StartDate:   "2024-06-01",
			EndDate:     "2024-09-01",
			Description: "Worked on backend infrastructure.",
		}); err != nil {
			return err
		}
	}

	mentors := map[string]*models.User{}
	for _, m := range []mentorSeed{
		{"Dr. Sarah Chen", "sarah@google.com", "Google", "Software Engineer Lead"},
		{"Michael Torres", "michael@stripe.com", "Microsoft", "Principal Engineer"},
		{"Emily Watson", "emily@netflix.com", "Google", "Data Scientist"},
	} {
		user, err := ensureUser(ctx, repo, m.username, m.email, "password123", models.RoleMentor, true)
		if err != nil {
			return err
		}
		mentors[m.email] = user

		if err := repo.UpsertProfile(ctx, &models.ProfileInfo{
			UserID:         user.ID,
			FullName:       m.username,
			CurrentGoal:    m.job + " at " + m.company,
			Bio:            "Experienced " + m.job + ".",
			University:     "Tech University",
			Degree:         "PhD Computer Science",
			GraduationYear: 2015,
			Company:        m.company,
			JobTitle:       m.job,
		}); err != nil {
			return err
		}

		exps, err := repo.ListExperiencesByUser(ctx, user.ID)
		if err != nil {
			return err
		}
		if len(exps) == 0 {
			if _, err := repo.CreateExperience(ctx, &models.Experience{
				UserID:      user.ID,
				CompanyID:   companies[m.company],
				Role:        m.job,
				Description: "Leading teams.",
			}); err != nil {
				return err
			}
		}
	}

	questionCount, err := repo.CountQuestionsByUser(ctx, student.ID)
	if err != nil {
		return err
	}
	if questionCount == 0 {
		questionID, err := repo.CreateQuestion(ctx, &models.Question{
			UserID:  student.ID,
			Title:   "How to avoid N+1 queries in an ORM?",
			Content: "My list endpoints fire one query per row. Any tips?",
		})
		if err != nil {
			return err
		}
		if _, err := repo.CreateReply(ctx, &models.Reply{
			QuestionID: questionID,
			UserID:     mentors["sarah@google.com"].ID,
			Content:    "You should look into eager loading the related rows in one join.",
		}); err != nil {
			return err
		}
	}

	for _, p := range []models.CareerPath{
		{Title: "Software Engineering", Description: "Build software."},
		{Title: "Product Management", Description: "Manage products."},
		{Title: "Data Science", Description: "Analyze data."},
		{Title: "Investment Banking", Description: "Finance."},
	} {
		if err := ensurePath(ctx, repo, p); err != nil {
			return err
		}
	}

	roadmapCount, err := repo.CountRoadmaps(ctx)
	if err != nil {
		return err
	}
	if roadmapCount == 0 {
		for _, rm := range []struct {
			title, description, creator string
		}{
			{"Breaking into FAANG", "Guide for new grads.", "sarah@google.com"},
			{"From Bootcamp to Senior", "The journey.", "michael@stripe.com"},
			{"PM Interview Prep", "Crack the PM interview.", "emily@netflix.com"},
			{"Data Science Progression", "Junior to Lead.", "emily@netflix.com"},
		} {
			if _, err := repo.CreateRoadmap(ctx, &models.Roadmap{
				Title:       rm.title,
				Description: rm.description,
				CreatorID:   mentors[rm.creator].ID,
			}); err != nil {
				return err
			}
			fmt.Printf("Added roadmap: %s\n", rm.title)
		}
	}

	threadCount, err := repo.CountThreads(ctx)
	if err != nil {
		return err
	}
	if threadCount == 0 {
		for _, td := range []struct {
			title, category string
			userID          int64
		}{
			{"Best resources for system design?", "Interview Prep", student.ID},
			{"Transitioning to PM?", "Career Change", mentors["sarah@google.com"].ID},
			{"Negotiating offers?", "Compensation", mentors["michael@stripe.com"].ID},
			{"Masters for AI/ML?", "Education", mentors["emily@netflix.com"].ID},
		} {
			if _, err := repo.CreateThread(ctx, &models.DiscussionThread{
				UserID:   td.userID,
				Title:    td.title,
				Category: td.category,
			}); err != nil {
				return err
			}
			fmt.Printf("Added thread: %s\n", td.title)
		}
	}

	pending, err := repo.CountByMentor(ctx, mentors["sarah@google.com"].ID, models.RequestPending)
	if err != nil {
		return err
	}
	if pending == 0 {
		if _, err := repo.CreateRequest(ctx, &models.MentorshipRequest{
			StudentID: student.ID,
			MentorID:  mentors["sarah@google.com"].ID,
			Status:    models.RequestPending,
			Message:   "I'd love to learn from your experience at Google!",
		}); err != nil {
			return err
		}
		fmt.Println("Added mentorship request.")
	}

	return nil
}

func ensureUser(ctx context.Context, repo *sqlite.SQLiteRepo, username, email, password string, role models.Role, verified bool) (*models.User, error) {
	existing, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsVerified:   verified,
		Points:       100,
	}
	id, err := repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	fmt.Printf("Created user: %s\n", username)
	return user, nil
}

func ensurePath(ctx context.Context, repo *sqlite.SQLiteRepo, p models.CareerPath) error {
	paths, err := repo.ListPaths(ctx)
	if err != nil {
		return err
	}
	for _, existing := range paths {
		if existing.Title == p.Title {
			return nil
		}
	}
	if _, err := repo.CreatePath(ctx, &p); err != nil {
		return err
	}
	fmt.Printf("Added career path: %s\n", p.Title)
	return nil
}
