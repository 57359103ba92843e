package database

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingRetriesUntilHealthy(t *testing.T) {
	retryDelay = time.Millisecond

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("dial tcp: connection refused"))
	mock.ExpectPing()

	require.NoError(t, ping(db, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPingGivesUp(t *testing.T) {
	retryDelay = time.Millisecond

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("boom"))
	mock.ExpectPing().WillReturnError(errors.New("boom"))

	err = ping(db, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateAppliesSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS job_role")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaDeclaresOwnershipColumns(t *testing.T) {
	assert.Contains(t, schema, "owner_id    UUID NOT NULL REFERENCES users(id)")
	assert.Contains(t, schema, "author_id UUID NOT NULL REFERENCES users(id)")
}
