package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ascendhq/ascend/internal/auth"
	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo      repository.UserRepo
	sessions      auth.SessionStore
	jwtSecret     string
	tokenDuration time.Duration
	sessionTTL    time.Duration
	validate      *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, sessions auth.SessionStore, jwtSecret string, tokenDuration, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userRepo:      ur,
		sessions:      sessions,
		jwtSecret:     jwtSecret,
		tokenDuration: tokenDuration,
		sessionTTL:    sessionTTL,
		validate:      validator.New(),
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		writeError(w, "Invalid role", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if existing, err := h.userRepo.GetUserByEmail(ctx, req.Email); err != nil {
		writeError(w, "Error creating user", http.StatusInternalServerError)
		return
	} else if existing != nil {
		writeError(w, "Email already registered", http.StatusBadRequest)
		return
	}

	if existing, err := h.userRepo.GetUserByUsername(ctx, req.Username); err != nil {
		writeError(w, "Error creating user", http.StatusInternalServerError)
		return
	} else if existing != nil {
		writeError(w, "Username already taken", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		Points:       100,
	}
	if _, err := h.userRepo.CreateUser(ctx, &user); err != nil {
		writeError(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "User registered successfully"}, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "Missing email or password", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil || user == nil {
		writeError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	sid, err := h.sessions.Create(ctx, user.ID)
	if err != nil {
		writeError(w, "Error creating session", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	token, err := auth.IssueToken(h.jwtSecret, user.ID, h.tokenDuration)
	if err != nil {
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    user.Public(),
	}, http.StatusOK)
}

// Logout deletes the server-side session and clears the cookie. Bearer
// tokens already issued remain valid until they expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			logger.Error("failed to delete session", "err", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeJSON(w, map[string]string{"message": "Logged out successfully"}, http.StatusOK)
}

func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	if user := userFrom(r); user != nil {
		writeJSON(w, map[string]any{"authenticated": true, "user": user.Public()}, http.StatusOK)
		return
	}
	writeJSON(w, map[string]any{"authenticated": false}, http.StatusOK)
}
