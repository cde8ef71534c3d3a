package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teamfit-api/internal/models"
)

// Handlers bundles every API handler registered under the API prefix.
type Handlers struct {
	Sports         *SportHandler
	Coaches        *CoachHandler
	Athletes       *AthleteHandler
	Teams          *TeamHandler
	Enrollments    *EnrollmentHandler
	Exercises      *ExerciseHandler
	Routines       *RoutineHandler
	Metrics        *MetricHandler
	AthleteMetrics *AthleteMetricHandler
	ExerciseStats  *ExerciseStatsHandler
	Media          *MediaHandler
	System         *SystemHandler
}

// Register mounts the API routes on api.
func Register(api gin.IRouter, h Handlers) {
	sports := api.Group("/sports")
	sports.GET("", h.Sports.List)
	sports.POST("", h.Sports.Create)
	sports.GET("/:id", h.Sports.Get)
	sports.PUT("/:id", h.Sports.Update)
	sports.DELETE("/:id", h.Sports.Delete)
	photoRoutes(sports, h.Media, models.PhotoOwnerSport)

	coaches := api.Group("/coaches")
	coaches.GET("", h.Coaches.List)
	coaches.POST("", h.Coaches.Create)
	coaches.GET("/:id", h.Coaches.Get)
	coaches.PUT("/:id", h.Coaches.Update)
	coaches.DELETE("/:id", h.Coaches.Delete)
	coaches.GET("/:id/teams", h.Coaches.Teams)
	photoRoutes(coaches, h.Media, models.PhotoOwnerCoach)

	athletes := api.Group("/athletes")
	athletes.GET("", h.Athletes.List)
	athletes.POST("", h.Athletes.Create)
	athletes.GET("/:id", h.Athletes.Get)
	athletes.PUT("/:id", h.Athletes.Update)
	athletes.DELETE("/:id", h.Athletes.Delete)
	athletes.GET("/:id/teams", h.Athletes.Teams)
	athletes.GET("/:id/week", h.Routines.AthleteWeek)
	athletes.GET("/:id/metrics", h.AthleteMetrics.Board)
	athletes.GET("/:id/metrics/export", h.AthleteMetrics.Export)
	photoRoutes(athletes, h.Media, models.PhotoOwnerAthlete)

	teams := api.Group("/teams")
	teams.GET("", h.Teams.List)
	teams.POST("", h.Teams.Create)
	teams.GET("/coach/:id", h.Teams.ByCoach)
	teams.GET("/:id", h.Teams.Get)
	teams.PUT("/:id", h.Teams.Update)
	teams.DELETE("/:id", h.Teams.Delete)
	teams.GET("/:id/athletes", h.Teams.Athletes)
	photoRoutes(teams, h.Media, models.PhotoOwnerTeam)

	enrollments := api.Group("/enrollments")
	enrollments.GET("", h.Enrollments.List)
	enrollments.POST("", h.Enrollments.Create)
	enrollments.GET("/team/:id", h.Enrollments.ByTeam)
	enrollments.GET("/athlete/:id", h.Enrollments.ByAthlete)
	enrollments.GET("/:id", h.Enrollments.Get)
	enrollments.DELETE("/:id", h.Enrollments.Delete)

	api.GET("/type-exercises", h.Exercises.Types)
	exercises := api.Group("/exercises")
	exercises.GET("", h.Exercises.List)
	exercises.POST("", h.Exercises.Create)
	exercises.GET("/:id", h.Exercises.Get)
	exercises.PUT("/:id", h.Exercises.Update)
	exercises.DELETE("/:id", h.Exercises.Delete)
	exercises.GET("/:id/video", h.Media.Video)
	exercises.PUT("/:id/video", h.Media.UploadVideo)
	exercises.DELETE("/:id/video", h.Media.DeleteVideo)
	photoRoutes(exercises, h.Media, models.PhotoOwnerExercise)

	routines := api.Group("/routines")
	routines.GET("", h.Routines.List)
	routines.POST("", h.Routines.Create)
	routines.GET("/athlete/:id", h.Routines.ByAthlete)
	routines.GET("/exercises/:id", h.Routines.ScheduledExercise)
	routines.DELETE("/exercises/:id", h.Routines.RemoveExercise)
	routines.GET("/exercises/:id/excluded-dates", h.Routines.ExcludedDates)
	routines.POST("/exercises/:id/excluded-dates", h.Routines.ExcludeDate)
	routines.DELETE("/excluded-dates/:id", h.Routines.RestoreDate)
	routines.GET("/:id", h.Routines.Get)
	routines.PUT("/:id", h.Routines.Rename)
	routines.DELETE("/:id", h.Routines.Delete)
	routines.GET("/:id/exercises", h.Routines.Exercises)
	routines.POST("/:id/exercises", h.Routines.ScheduleExercise)
	routines.GET("/:id/week", h.Routines.Week)

	metrics := api.Group("/metrics")
	metrics.GET("", h.Metrics.List)
	metrics.POST("", h.Metrics.Create)
	metrics.GET("/selectable", h.Metrics.Selectable)
	metrics.GET("/:id", h.Metrics.Get)
	metrics.PUT("/:id", h.Metrics.Update)
	metrics.DELETE("/:id", h.Metrics.Delete)
	api.GET("/formulas", h.Metrics.Formulas)
	api.GET("/formulas/:id", h.Metrics.Formula)

	assignments := api.Group("/athlete-metrics")
	assignments.GET("", h.AthleteMetrics.List)
	assignments.POST("", h.AthleteMetrics.Assign)
	assignments.GET("/:id", h.AthleteMetrics.Get)
	assignments.PUT("/:id", h.AthleteMetrics.Edit)
	assignments.DELETE("/:id", h.AthleteMetrics.Delete)
	assignments.POST("/:id/increment", h.AthleteMetrics.Increment)
	assignments.POST("/:id/decrement", h.AthleteMetrics.Decrement)

	stats := api.Group("/exercise-stats")
	stats.GET("/today/:id", h.ExerciseStats.Today)
	stats.GET("/athlete/:id/today", h.ExerciseStats.Today)
	stats.POST("/start", h.ExerciseStats.Start)
	stats.GET("/routine-exercise/:id/history", h.ExerciseStats.History)
	stats.GET("/history/:id", h.ExerciseStats.Stats)
	stats.DELETE("/history/:id", h.ExerciseStats.DeleteHistory)
	stats.PATCH("/:id/progress", h.ExerciseStats.Progress)
	stats.PATCH("/history/:id/progress", h.ExerciseStats.HistoryProgress)
	stats.PATCH("/history/:id/end", h.ExerciseStats.End)

	api.GET("/files/:token", h.Media.File)
	api.GET("/system/telemetry", h.System.Telemetry)
}

// RegisterOps mounts the unversioned operational endpoints.
func RegisterOps(r gin.IRouter, h *SystemHandler) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", h.Prometheus)
}

func photoRoutes(group gin.IRouter, media *MediaHandler, owner models.PhotoOwner) {
	group.GET("/:id/photo", media.Photo(owner))
	group.PUT("/:id/photo", media.UploadPhoto(owner))
	group.GET("/:id/photo-url", media.PhotoURL(owner))
}
