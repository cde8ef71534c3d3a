package dto

import (
	"github.com/noah-isme/teamfit-api/internal/models"
	"github.com/noah-isme/teamfit-api/internal/recurrence"
)

// RoutineRequest creates a routine.
type RoutineRequest struct {
	Name      string `json:"name" validate:"required"`
	AthleteID int64  `json:"id_athlete" validate:"required,gt=0"`
	CreatedBy string `json:"created_by"`
}

// RenameRoutineRequest changes a routine's name.
type RenameRoutineRequest struct {
	Name string `json:"name" validate:"required"`
}

// ScheduleExerciseRequest places an exercise on a weekly slot.
type ScheduleExerciseRequest struct {
	ExerciseID int64  `json:"id_exercise" validate:"required,gt=0"`
	DaysOfWeek string `json:"days_of_week"`
	StartHour  string `json:"start_hour"`
	EndHour    string `json:"end_hour"`
	CreatedBy  string `json:"created_by"`
}

// ExcludeDateRequest suppresses one occurrence.
type ExcludeDateRequest struct {
	Date   string  `json:"excluded_date" validate:"required"`
	Reason *string `json:"reason"`
}

// WeekView is the resolved Monday..Sunday schedule for a week offset.
type WeekView struct {
	Offset    int                                         `json:"offset"`
	WeekStart string                                      `json:"week_start"`
	Days      [7]recurrence.Day[models.ScheduledExercise] `json:"days"`
}
