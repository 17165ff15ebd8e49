package models

import (
	"time"

	"github.com/google/uuid"
)

type Workout struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Reps      int       `json:"reps"`
	Load      float64   `json:"load"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkoutTitle is the projection returned by title search.
type WorkoutTitle struct {
	Title string `json:"title"`
}
