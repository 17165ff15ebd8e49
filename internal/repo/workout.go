package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/setrep/workout-api/internal/models"
)

// ==========================
// WorkoutRepo
// ==========================

// WorkoutRepo persists workout records. Every read and mutation filters by
// both the record id and the owning user id, so one user can never observe
// or change another user's records.
type WorkoutRepo struct {
	DB *sql.DB
}

func NewWorkoutRepo(db *sql.DB) *WorkoutRepo {
	return &WorkoutRepo{DB: db}
}

const workoutColumns = `id, user_id, title, reps, load, created_at, updated_at`

func scanWorkout(row *sql.Row) (models.Workout, error) {
	var w models.Workout
	err := row.Scan(&w.ID, &w.UserID, &w.Title, &w.Reps, &w.Load, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}

// ==========================
// Create Workout
// ==========================
func (r *WorkoutRepo) Create(ctx context.Context, userID uuid.UUID, title string, reps int, load float64) (models.Workout, error) {
	row := r.DB.QueryRowContext(ctx,
		`INSERT INTO workouts (id, user_id, title, reps, load)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+workoutColumns,
		uuid.New(), userID, title, reps, load,
	)
	return scanWorkout(row)
}

// ==========================
// List By User (newest first)
// ==========================
func (r *WorkoutRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Workout, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+workoutColumns+`
		 FROM workouts
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []models.Workout{}
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Title, &w.Reps, &w.Load, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// ==========================
// Get By ID (owner scoped)
// ==========================
func (r *WorkoutRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (models.Workout, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+workoutColumns+`
		 FROM workouts
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return scanWorkout(row)
}

// ==========================
// Update Workout (partial)
// ==========================

// Update applies a partial merge: nil fields keep their stored values.
// Returns sql.ErrNoRows when the record is absent or owned by someone else.
func (r *WorkoutRepo) Update(ctx context.Context, userID, id uuid.UUID, title *string, reps *int, load *float64) (models.Workout, error) {
	row := r.DB.QueryRowContext(ctx,
		`UPDATE workouts
		 SET title = COALESCE($1, title),
		     reps = COALESCE($2, reps),
		     load = COALESCE($3, load),
		     updated_at = now()
		 WHERE id = $4 AND user_id = $5
		 RETURNING `+workoutColumns,
		title, reps, load, id, userID,
	)
	return scanWorkout(row)
}

// ==========================
// Delete Workout
// ==========================

// Delete removes the record and returns the value it had just before
// deletion. Returns sql.ErrNoRows when nothing matched.
func (r *WorkoutRepo) Delete(ctx context.Context, userID, id uuid.UUID) (models.Workout, error) {
	row := r.DB.QueryRowContext(ctx,
		`DELETE FROM workouts
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+workoutColumns,
		id, userID,
	)
	return scanWorkout(row)
}

// ==========================
// Search Titles (case-insensitive substring)
// ==========================
func (r *WorkoutRepo) SearchTitles(ctx context.Context, userID uuid.UUID, query string) ([]models.WorkoutTitle, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT title
		 FROM workouts
		 WHERE user_id = $1 AND title ILIKE '%' || $2 || '%'
		 ORDER BY created_at DESC`,
		userID, query,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	titles := []models.WorkoutTitle{}
	for rows.Next() {
		var t models.WorkoutTitle
		if err := rows.Scan(&t.Title); err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

// ==========================
// Count Workouts
// ==========================
func (r *WorkoutRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM workouts`).Scan(&n)
	return n, err
}
