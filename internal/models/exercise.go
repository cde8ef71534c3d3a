package models

import (
	"fmt"
	"time"
)

// Exercise type ids from the type_exercise catalog.
const (
	TypeSetsReps int64 = 1
	TypeGoal     int64 = 2
)

// TypeExercise is a read-only catalog entry naming a progress model.
type TypeExercise struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Exercise is a trainable activity. Sets/Reps or Goal are set depending on TypeID.
type Exercise struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	TypeID      int64     `db:"id_type" json:"id_type"`
	SportID     int64     `db:"id_sport" json:"id_sport"`
	Sets        *int      `db:"sets" json:"sets,omitempty"`
	Reps        *int      `db:"reps" json:"reps,omitempty"`
	Goal        *int      `db:"goal" json:"goal,omitempty"`
	PhotoPath   *string   `db:"photo_path" json:"photo_path,omitempty"`
	VideoPath   *string   `db:"video_path" json:"video_path,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Scheme is the progress model of an exercise: SetsReps or Goal.
type Scheme interface {
	TypeID() int64
}

// SetsReps tracks completed sets of a fixed repetition count.
type SetsReps struct {
	Sets int `json:"sets"`
	Reps int `json:"reps"`
}

// TypeID implements Scheme.
func (SetsReps) TypeID() int64 { return TypeSetsReps }

// Apply clamps concluded sets at zero and derives concluded reps from them.
func (s SetsReps) Apply(concludedSets int) (sets, reps int) {
	if concludedSets < 0 {
		concludedSets = 0
	}
	return concludedSets, concludedSets * s.Reps
}

// Complete reports whether the target set count is reached.
func (s SetsReps) Complete(concludedSets int) bool {
	return concludedSets >= s.Sets
}

// Goal tracks progress towards a single numeric target.
type Goal struct {
	Target int `json:"goal"`
}

// TypeID implements Scheme.
func (Goal) TypeID() int64 { return TypeGoal }

// Apply clamps the concluded goal at zero.
func (g Goal) Apply(concluded int) int {
	if concluded < 0 {
		return 0
	}
	return concluded
}

// Complete reports whether the target is reached.
func (g Goal) Complete(concluded int) bool {
	return concluded >= g.Target
}

// Scheme resolves the progress model from the type discriminant.
func (e Exercise) Scheme() (Scheme, error) {
	switch e.TypeID {
	case TypeSetsReps:
		if e.Sets == nil || e.Reps == nil || *e.Sets <= 0 || *e.Reps <= 0 {
			return nil, fmt.Errorf("exercise %d: sets and reps must be positive", e.ID)
		}
		return SetsReps{Sets: *e.Sets, Reps: *e.Reps}, nil
	case TypeGoal:
		if e.Goal == nil || *e.Goal <= 0 {
			return nil, fmt.Errorf("exercise %d: goal must be positive", e.ID)
		}
		return Goal{Target: *e.Goal}, nil
	default:
		return nil, fmt.Errorf("exercise %d: unknown type %d", e.ID, e.TypeID)
	}
}

// ApplyScheme stores s in the type-specific columns, clearing the others.
func (e *Exercise) ApplyScheme(s Scheme) {
	e.Sets, e.Reps, e.Goal = nil, nil, nil
	switch v := s.(type) {
	case SetsReps:
		sets, reps := v.Sets, v.Reps
		e.TypeID, e.Sets, e.Reps = TypeSetsReps, &sets, &reps
	case Goal:
		goal := v.Target
		e.TypeID, e.Goal = TypeGoal, &goal
	}
}

// ExerciseFilter narrows exercise listings.
type ExerciseFilter struct {
	ListFilter
	SportID int64
}
