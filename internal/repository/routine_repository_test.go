package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teamfit-api/internal/models"
	"github.com/noah-isme/teamfit-api/internal/recurrence"
)

var scheduledRowColumns = []string{"id", "id_routine", "id_exercise", "days_of_week", "start_hour", "end_hour", "created_by", "created_at",
	"routine_name", "id_athlete", "exercise_name", "id_type", "sets", "reps", "goal", "photo_path"}

func TestRoutineRepositoryListByAthlete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRoutineRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, id_athlete, created_by, created_at FROM routines WHERE deleted_at IS NULL AND id_athlete = $1 ORDER BY id ASC")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "id_athlete", "created_by", "created_at"}).AddRow(1, "Base", 9, "coach", time.Now()))

	routines, err := repo.List(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, routines, 1)
	assert.Equal(t, "Base", routines[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutineRepositorySoftDeleteRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRoutineRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE routines SET deleted_at").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE routine_has_exercise SET deleted_at").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	require.Error(t, repo.SoftDelete(context.Background(), 1, "coach"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutineExerciseRepositoryListByAthlete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRoutineExerciseRepository(db)

	rows := sqlmock.NewRows(scheduledRowColumns).
		AddRow(5, 1, 2, "MONDAY", "08:00", "09:00", "coach", time.Now(), "Base", 9, "Squat", 1, 3, 10, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("AND r.id_athlete = $1 ORDER BY rhe.start_hour ASC")).
		WithArgs(int64(9)).
		WillReturnRows(rows)

	items, err := repo.ListByAthlete(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, recurrence.Monday, items[0].DaysOfWeek)
	assert.Equal(t, "08:00", items[0].Start)
	assert.Equal(t, int64(9), items[0].AthleteID)
	scheme, err := items[0].Exercise().Scheme()
	require.NoError(t, err)
	assert.Equal(t, models.SetsReps{Sets: 3, Reps: 10}, scheme)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutineExerciseRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRoutineExerciseRepository(db)

	mock.ExpectQuery("INSERT INTO routine_has_exercise").
		WithArgs(int64(1), int64(2), "FRIDAY", "17:00", "18:30", "coach", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	item := &models.RoutineExercise{RoutineID: 1, ExerciseID: 2, DaysOfWeek: recurrence.Friday, Start: "17:00", End: "18:30", CreatedBy: "coach"}
	require.NoError(t, repo.Create(context.Background(), item))
	assert.Equal(t, int64(12), item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutineExerciseRepositoryExcludedDates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRoutineExerciseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "id_routine_has_exercise", "excluded_date", "reason", "created_at"}).
		AddRow(1, 5, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), "Holiday", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM routine_exercise_excluded_dates WHERE id_routine_has_exercise = ANY($1)")).
		WithArgs("{5,6}").
		WillReturnRows(rows)

	dates, err := repo.ExcludedDates(context.Background(), []int64{5, 6})
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, "2026-10-19", dates[0].Date.String())
	require.NotNil(t, dates[0].Reason)
	assert.Equal(t, "Holiday", *dates[0].Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}
