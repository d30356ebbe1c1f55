package api

import (
	"github.com/ascendhq/ascend/internal/auth"
	"github.com/ascendhq/ascend/internal/config"
	"github.com/ascendhq/ascend/internal/db"
	"github.com/ascendhq/ascend/internal/metrics"
	"github.com/ascendhq/ascend/internal/repository/sqlite"
	"github.com/gorilla/mux"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB, sessions auth.SessionStore) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	m := metrics.NewMetrics("api")
	r.Use(m.Middleware())

	// Repository
	repo := sqlite.New(database, logger)

	// Identity resolution runs on every route; RequireAuth gates the
	// protected subrouters below.
	r.Use(AuthMiddleware(cfg.JWTSecret, sessions, repo))

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, sessions, cfg.JWTSecret, cfg.TokenDuration, cfg.SessionTTL)
	profileHandler := NewProfileHandler(repo, repo, repo)
	dashboardHandler := NewDashboardHandler(repo, repo, repo, repo, repo, repo)
	mentorsHandler := NewMentorsHandler(repo, repo, repo, repo)
	careerHandler := NewCareerHandler(repo, repo, repo)
	discussionsHandler := NewDiscussionsHandler(repo)
	questionsHandler := NewQuestionsHandler(repo, repo, repo)
	mentorshipHandler := NewMentorshipHandler(repo)
	adminHandler := NewAdminHandler(repo, repo, repo, repo, repo)
	messagesHandler := &MessagesHandler{}

	// Open endpoints
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.Handle("/metrics", m.Handler()).Methods("GET")
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/status", authHandler.Status).Methods("GET")
	r.HandleFunc("/api/companies", careerHandler.ListCompanies).Methods("GET")
	r.HandleFunc("/api/career/paths", careerHandler.ListPaths).Methods("GET")
	r.HandleFunc("/api/career/roadmaps", careerHandler.ListRoadmaps).Methods("GET")
	r.HandleFunc("/api/career/roadmaps/{id:[0-9]+}", careerHandler.RoadmapDetail).Methods("GET")
	r.HandleFunc("/api/discussions", discussionsHandler.ListThreads).Methods("GET")

	// Auth endpoints requiring an identity
	authProtected := r.PathPrefix("/auth").Subrouter()
	authProtected.Use(RequireAuth)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	// Protected API routes
	apiProtected := r.PathPrefix("/api").Subrouter()
	apiProtected.Use(RequireAuth)

	apiProtected.HandleFunc("/user/profile", profileHandler.GetProfile).Methods("GET")
	apiProtected.HandleFunc("/user/profile", profileHandler.UpdateProfile).Methods("POST")

	apiProtected.HandleFunc("/dashboard", dashboardHandler.StudentDashboard).Methods("GET")
	apiProtected.HandleFunc("/mentor/dashboard", dashboardHandler.MentorDashboard).Methods("GET")
	apiProtected.HandleFunc("/admin/dashboard", adminHandler.Dashboard).Methods("GET")

	apiProtected.HandleFunc("/mentors", mentorsHandler.ListMentors).Methods("GET")
	apiProtected.HandleFunc("/student/mentors", mentorsHandler.ConnectedMentors).Methods("GET")
	apiProtected.HandleFunc("/messages", messagesHandler.SendMessage).Methods("POST")

	apiProtected.HandleFunc("/discussions", discussionsHandler.CreateThread).Methods("POST")
	apiProtected.HandleFunc("/questions", questionsHandler.ListQuestions).Methods("GET")
	apiProtected.HandleFunc("/questions", questionsHandler.CreateQuestion).Methods("POST")
	apiProtected.HandleFunc("/questions/{id:[0-9]+}/reply", questionsHandler.CreateReply).Methods("POST")
	apiProtected.HandleFunc("/roadmaps", careerHandler.CreateRoadmap).Methods("POST")

	apiProtected.HandleFunc("/mentor/questions", questionsHandler.MentorQuestions).Methods("GET")
	apiProtected.HandleFunc("/mentor/mentees", mentorshipHandler.Mentees).Methods("GET")
	apiProtected.HandleFunc("/mentor/requests", mentorshipHandler.PendingRequests).Methods("GET")
	apiProtected.HandleFunc("/mentorship/request", mentorshipHandler.CreateRequest).Methods("POST")
	apiProtected.HandleFunc("/mentorship/request/{id:[0-9]+}/respond", mentorshipHandler.Respond).Methods("POST")

	apiProtected.HandleFunc("/admin/users", adminHandler.ListUsers).Methods("GET")
	apiProtected.HandleFunc("/admin/verify_user/{id:[0-9]+}", adminHandler.VerifyUser).Methods("POST")
	apiProtected.HandleFunc("/admin/content", adminHandler.Content).Methods("GET")

	return r
}
