package models

import "time"

// ExerciseStatus is the execution state of a scheduled exercise for a day.
type ExerciseStatus string

const (
	StatusNotStarted ExerciseStatus = "NOT STARTED"
	StatusInProgress ExerciseStatus = "IN PROGRESS"
	StatusCompleted  ExerciseStatus = "COMPLETED"
)

// ExerciseStats holds targets copied at start and the progress made so far.
type ExerciseStats struct {
	ID            int64      `db:"id" json:"id"`
	Sets          *int       `db:"sets" json:"sets,omitempty"`
	Reps          *int       `db:"reps" json:"reps,omitempty"`
	Goal          *int       `db:"goal" json:"goal,omitempty"`
	ConcludedSets *int       `db:"concluded_sets" json:"concluded_sets,omitempty"`
	ConcludedReps *int       `db:"concluded_reps" json:"concluded_reps,omitempty"`
	ConcludedGoal *int       `db:"concluded_goal" json:"concluded_goal,omitempty"`
	StartDate     time.Time  `db:"start_date" json:"start_date"`
	EndDate       *time.Time `db:"end_date" json:"end_date,omitempty"`
}

// Scheme rebuilds the progress model from the copied targets.
func (s ExerciseStats) Scheme() Scheme {
	if s.Goal != nil {
		return Goal{Target: *s.Goal}
	}
	var sr SetsReps
	if s.Sets != nil {
		sr.Sets = *s.Sets
	}
	if s.Reps != nil {
		sr.Reps = *s.Reps
	}
	return sr
}

// ExerciseHistory records one execution of a routine exercise.
type ExerciseHistory struct {
	ID                int64          `db:"id" json:"id"`
	StatsID           int64          `db:"id_exercise_stats" json:"id_exercise_stats"`
	RoutineExerciseID int64          `db:"id_routine_has_exercise" json:"id_routine_has_exercise"`
	Status            ExerciseStatus `db:"status" json:"status"`
	PerformedOn       Date           `db:"performed_on" json:"performed_on"`
	CreatedBy         string         `db:"created_by" json:"created_by"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedBy         *string        `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt         *time.Time     `db:"updated_at" json:"updated_at,omitempty"`
}
