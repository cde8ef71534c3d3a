package dto

import "github.com/noah-isme/teamfit-api/internal/models"

// StartExerciseRequest starts today's occurrence of a scheduled exercise.
type StartExerciseRequest struct {
	RoutineExerciseID int64  `json:"id_routine_has_exercise" validate:"required,gt=0"`
	CreatedBy         string `json:"created_by"`
}

// ProgressRequest reports progress. Exactly one of the fields matches the
// exercise type; concluded reps are derived and never accepted.
type ProgressRequest struct {
	ConcludedSets *int   `json:"concluded_sets"`
	ConcludedGoal *int   `json:"concluded_goal"`
	UpdatedBy     string `json:"updated_by"`
}

// EndExerciseRequest finishes an exercise. Ending below target requires
// ConfirmIncomplete.
type EndExerciseRequest struct {
	ProgressRequest
	ConfirmIncomplete bool `json:"confirm_incomplete"`
}

// ExecutionResult is the state after a start, progress or end call.
type ExecutionResult struct {
	History  models.ExerciseHistory `json:"history"`
	Stats    models.ExerciseStats   `json:"stats"`
	Complete bool                   `json:"complete"`
}

// TodayItem is one of today's occurrences with its execution state.
type TodayItem struct {
	models.ScheduledExercise
	Status         models.ExerciseStatus `json:"status"`
	HistoryID      *int64                `json:"id_history,omitempty"`
	Stats          *models.ExerciseStats `json:"stats,omitempty"`
	ElapsedSeconds *int64                `json:"elapsed_seconds,omitempty"`
}

// TodayView lists today's workout for an athlete.
type TodayView struct {
	AthleteID int64       `json:"id_athlete"`
	Date      string      `json:"date"`
	Weekday   string      `json:"day"`
	Items     []TodayItem `json:"items"`
}
