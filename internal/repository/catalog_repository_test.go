package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teamfit-api/internal/models"
)

func TestCoachRepositoryListWithSearch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoachRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "id_level", "photo_path", "created_at", "updated_at"}).
		AddRow(1, "Rita", nil, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, id_level, photo_path, created_at, updated_at FROM coaches WHERE LOWER(name) LIKE $1 ORDER BY name ASC LIMIT 20 OFFSET 0")).
		WithArgs("%rit%").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM coaches WHERE LOWER(name) LIKE $1")).
		WithArgs("%rit%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	coaches, total, err := repo.List(context.Background(), models.ListFilter{Search: " Rit "})
	require.NoError(t, err)
	assert.Len(t, coaches, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoachRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoachRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM coaches WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSportRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSportRepository(db)

	mock.ExpectQuery("INSERT INTO sports").
		WithArgs("Volleyball", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	sport := &models.Sport{Name: "Volleyball"}
	require.NoError(t, repo.Create(context.Background(), sport))
	assert.Equal(t, int64(7), sport.ID)
	assert.False(t, sport.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepositoryListByCoach(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeamRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "id_coach", "id_sport", "photo_path", "created_at", "updated_at"}).
		AddRow(1, "U17", 3, 2, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM teams t WHERE 1=1 AND t.id_coach = $1 ORDER BY t.name ASC LIMIT 20 OFFSET 0")).
		WithArgs(int64(3)).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM teams t WHERE 1=1 AND t.id_coach = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	teams, total, err := repo.List(context.Background(), models.TeamFilter{CoachID: 3})
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, int64(3), teams[0].CoachID)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAthleteRepositoryListByTeam(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAthleteRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "birth_date", "photo_path", "created_at", "updated_at"}).
		AddRow(9, "Ana", "ana@example.com", time.Date(2008, 3, 1, 0, 0, 0, 0, time.UTC), nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("JOIN enrollments e ON e.id_athlete = a.id WHERE e.id_team = $1")).
		WithArgs(int64(4)).
		WillReturnRows(rows)

	athletes, err := repo.ListByTeam(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, athletes, 1)
	require.NotNil(t, athletes[0].BirthDate)
	assert.Equal(t, "2008-03-01", athletes[0].BirthDate.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
