package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/setrep/workout-api/internal/metrics"
	"github.com/setrep/workout-api/internal/middleware"
	"github.com/setrep/workout-api/internal/repo"
)

// ==========================
// Workout Handler
// ==========================

// WorkoutHandler serves CRUD and search over workout records. Every
// operation reads the authenticated user id from the request context and
// passes it to the repo, so access is always owner-scoped.
type WorkoutHandler struct {
	Repo *repo.WorkoutRepo
}

func (h *WorkoutHandler) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		// Only reachable if the route is wired without RequireAuth.
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}

// ==========================
// List / Search
// ==========================

// List returns all of the caller's workouts, newest first. When a "q"
// query parameter is present the request is a title search instead.
func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if q := r.URL.Query().Get("q"); q != "" {
		h.search(w, r, userID, q)
		return
	}

	workouts, err := h.Repo.ListByUser(r.Context(), userID)
	if err != nil {
		slog.Error("list workouts", "error", err, "user_id", userID)
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("%d workouts found", len(workouts)),
		"data":    workouts,
	})
}

// search does a case-insensitive substring match on titles. Zero matches is
// a 404, unlike List where an empty result is a success.
func (h *WorkoutHandler) search(w http.ResponseWriter, r *http.Request, userID uuid.UUID, query string) {
	titles, err := h.Repo.SearchTitles(r.Context(), userID, query)
	if err != nil {
		slog.Error("search workouts", "error", err, "user_id", userID)
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(titles) == 0 {
		JSONMessage(w, "No workouts found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, titles)
}

// ==========================
// Get By ID
// ==========================
func (h *WorkoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		JSONMessage(w, "Invalid workout ID", http.StatusNotFound)
		return
	}

	workout, err := h.Repo.GetByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONMessage(w, "Workout not found", http.StatusNotFound)
			return
		}
		slog.Error("get workout", "error", err, "user_id", userID)
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, workout)
}

// ==========================
// Create
// ==========================
func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var input struct {
		Title string  `json:"title"`
		Reps  int     `json:"reps"`
		Load  float64 `json:"load"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	// Every missing field is reported together, not just the first.
	emptyFields := []string{}
	if input.Title == "" {
		emptyFields = append(emptyFields, "title")
	}
	if input.Reps == 0 {
		emptyFields = append(emptyFields, "reps")
	}
	if input.Load == 0 {
		emptyFields = append(emptyFields, "load")
	}
	if len(emptyFields) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":       "Please fill in all the required fields!",
			"emptyFields": emptyFields,
		})
		return
	}

	workout, err := h.Repo.Create(r.Context(), userID, input.Title, input.Reps, input.Load)
	if err != nil {
		slog.Error("create workout", "error", err, "user_id", userID)
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	metrics.IncWorkoutsCreated()
	writeJSON(w, http.StatusCreated, workout)
}

// ==========================
// Update (partial)
// ==========================
func (h *WorkoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		JSONMessage(w, "Invalid workout ID", http.StatusNotFound)
		return
	}

	// Pointers distinguish "absent" from zero values so omitted fields
	// retain their stored values.
	var input struct {
		Title *string  `json:"title"`
		Reps  *int     `json:"reps"`
		Load  *float64 `json:"load"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	workout, err := h.Repo.Update(r.Context(), userID, id, input.Title, input.Reps, input.Load)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONMessage(w, "Workout not found", http.StatusNotFound)
			return
		}
		slog.Error("update workout", "error", err, "user_id", userID)
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, workout)
}

// ==========================
// Delete
// ==========================
func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		JSONMessage(w, "Invalid workout ID", http.StatusNotFound)
		return
	}

	workout, err := h.Repo.Delete(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONMessage(w, "Workout not found", http.StatusNotFound)
			return
		}
		slog.Error("delete workout", "error", err, "user_id", userID)
		JSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Workout deleted successfully",
		"workout": workout,
	})
}
