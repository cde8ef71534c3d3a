package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teamfit-api/internal/models"
)

func TestExerciseRepositoryListBySport(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewExerciseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "description", "id_type", "id_sport", "sets", "reps", "goal", "photo_path", "video_path", "created_at", "updated_at"}).
		AddRow(1, "Squat", nil, 1, 2, 3, 10, nil, nil, nil, time.Now(), time.Now()).
		AddRow(2, "Plank", nil, 2, 2, nil, nil, 60, nil, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM exercises WHERE 1=1 AND id_sport = $1 ORDER BY name ASC LIMIT 20 OFFSET 0")).
		WithArgs(int64(2)).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM exercises WHERE 1=1 AND id_sport = $1")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	exercises, total, err := repo.List(context.Background(), models.ExerciseFilter{SportID: 2})
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	assert.Equal(t, 2, total)

	scheme, err := exercises[1].Scheme()
	require.NoError(t, err)
	assert.Equal(t, models.Goal{Target: 60}, scheme)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExerciseRepositoryListTypes(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewExerciseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM type_exercise ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Sets and Reps").AddRow(2, "Goal"))

	types, err := repo.ListTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.TypeExercise{{ID: 1, Name: "Sets and Reps"}, {ID: 2, Name: "Goal"}}, types)
}

func TestPhotoRepositorySetPhotoPath(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPhotoRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE athletes SET photo_path = $1, updated_at = $2 WHERE id = $3")).
		WithArgs("abc.png", sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	found, err := repo.SetPhotoPath(context.Background(), models.PhotoOwnerAthlete, 5, "abc.png")
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotoRepositoryRejectsUnknownOwner(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPhotoRepository(db)

	_, err := repo.PhotoPath(context.Background(), models.PhotoOwner("users; DROP TABLE x"), 1)
	assert.Error(t, err)
}
