package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/setrep/workout-api/internal/auth"
	"github.com/setrep/workout-api/internal/repo"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users  *repo.UserRepo
	Tokens *auth.TokenIssuer
}

type authResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if input.Name == "" || input.Email == "" || input.Password == "" {
		JSONError(w, "All fields (name, email, password) are required", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Var(input.Email, "email"); err != nil {
		JSONError(w, "Email is not valid", http.StatusBadRequest)
		return
	}

	if !auth.IsStrongPassword(input.Password) {
		JSONError(w, "Password is not strong enough", http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		slog.Error("register: hash password", "error", err)
		JSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	user, err := h.Users.Create(r.Context(), input.Name, input.Email, hash)
	if err != nil {
		// Unique violation on the email index means the address is taken.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			JSONError(w, "Email already in use", http.StatusBadRequest)
			return
		}
		slog.Error("register: create user", "error", err)
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		slog.Error("register: issue token", "error", err)
		JSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if input.Email == "" || input.Password == "" {
		JSONError(w, "All fields must be provided", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), input.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, "Incorrect email", http.StatusBadRequest)
			return
		}
		slog.Error("login: get user", "error", err)
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !auth.VerifyPassword(input.Password, user.PasswordHash) {
		JSONError(w, "Incorrect password", http.StatusBadRequest)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		slog.Error("login: issue token", "error", err)
		JSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}
