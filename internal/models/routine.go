package models

import (
	"time"

	"github.com/noah-isme/teamfit-api/internal/recurrence"
)

// Routine is an athlete's named training plan.
type Routine struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	AthleteID int64     `db:"id_athlete" json:"id_athlete"`
	CreatedBy string    `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RoutineExercise schedules an exercise weekly on one day within a time window.
type RoutineExercise struct {
	ID         int64              `db:"id" json:"id"`
	RoutineID  int64              `db:"id_routine" json:"id_routine"`
	ExerciseID int64              `db:"id_exercise" json:"id_exercise"`
	DaysOfWeek recurrence.Weekday `db:"days_of_week" json:"days_of_week"`
	Start      string             `db:"start_hour" json:"start_hour"`
	End        string             `db:"end_hour" json:"end_hour"`
	CreatedBy  string             `db:"created_by" json:"created_by"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
}

// OccurrenceID implements recurrence.Recurring.
func (r RoutineExercise) OccurrenceID() int64 { return r.ID }

// Weekday implements recurrence.Recurring.
func (r RoutineExercise) Weekday() recurrence.Weekday { return r.DaysOfWeek }

// StartHour implements recurrence.Recurring.
func (r RoutineExercise) StartHour() string { return r.Start }

// ScheduledExercise is a routine slot joined with its exercise and routine.
type ScheduledExercise struct {
	RoutineExercise
	RoutineName  string  `db:"routine_name" json:"routine_name"`
	AthleteID    int64   `db:"id_athlete" json:"id_athlete"`
	ExerciseName string  `db:"exercise_name" json:"exercise_name"`
	TypeID       int64   `db:"id_type" json:"id_type"`
	Sets         *int    `db:"sets" json:"sets,omitempty"`
	Reps         *int    `db:"reps" json:"reps,omitempty"`
	Goal         *int    `db:"goal" json:"goal,omitempty"`
	PhotoPath    *string `db:"photo_path" json:"photo_path,omitempty"`
}

// Exercise rebuilds the joined exercise for scheme resolution.
func (s ScheduledExercise) Exercise() Exercise {
	return Exercise{ID: s.ExerciseID, Name: s.ExerciseName, TypeID: s.TypeID, Sets: s.Sets, Reps: s.Reps, Goal: s.Goal}
}

// ExcludedDate suppresses one weekly occurrence of a routine exercise.
type ExcludedDate struct {
	ID                int64     `db:"id" json:"id"`
	RoutineExerciseID int64     `db:"id_routine_has_exercise" json:"id_routine_has_exercise"`
	Date              Date      `db:"excluded_date" json:"excluded_date"`
	Reason            *string   `db:"reason" json:"reason"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
