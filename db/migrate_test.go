package db

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreOrdered(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.Len(t, migrations, 3)
	assert.Equal(t, "0001_catalog", migrations[0].Version)
	assert.Equal(t, "0003_metrics", migrations[2].Version)
	assert.Contains(t, migrations[2].SQL, "ids_metrics  BIGINT[]")
}

func TestMigrateSkipsAppliedVersions(t *testing.T) {
	raw, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer raw.Close()
	conn := sqlx.NewDb(raw, "sqlmock")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version FROM schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0001_catalog").AddRow("0002_exercises"))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS formulas").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("0003_metrics").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	ran, err := Migrate(context.Background(), conn, nil, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"0003_metrics"}, ran)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateDryRun(t *testing.T) {
	raw, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer raw.Close()
	conn := sqlx.NewDb(raw, "sqlmock")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").WillReturnRows(sqlmock.NewRows([]string{"version"}))

	ran, err := Migrate(context.Background(), conn, nil, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_catalog", "0002_exercises", "0003_metrics"}, ran)
	assert.NoError(t, mock.ExpectationsWereMet())
}
