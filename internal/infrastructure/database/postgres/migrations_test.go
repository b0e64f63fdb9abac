package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations(t *testing.T) {
	migrations, err := LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, "0001_init", migrations[0].Version)
	assert.Equal(t, "0002_accounts", migrations[1].Version)
	assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS customers")
	assert.Contains(t, migrations[1].SQL, "push_tokens")
}

func TestMigrateAppliesPendingOnly(t *testing.T) {
	ctx := context.Background()
	mockPool := newMockPool(t)

	mockPool.ExpectExec(regexp.QuoteMeta(createMigrationsTableSQL)).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mockPool.ExpectQuery(regexp.QuoteMeta(selectAppliedMigrationsSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"version"}).AddRow("0001_init"))
	mockPool.ExpectBegin()
	mockPool.ExpectExec("CREATE TABLE IF NOT EXISTS accounts").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mockPool.ExpectExec(regexp.QuoteMeta(insertMigrationSQL)).WithArgs("0002_accounts").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectCommit()

	applied, err := Migrate(ctx, mockPool, testLogger)
	require.NoError(t, err)
	assert.Equal(t, []string{"0002_accounts"}, applied)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestMigrateNothingToDo(t *testing.T) {
	ctx := context.Background()
	mockPool := newMockPool(t)

	mockPool.ExpectExec(regexp.QuoteMeta(createMigrationsTableSQL)).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mockPool.ExpectQuery(regexp.QuoteMeta(selectAppliedMigrationsSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"version"}).AddRow("0001_init").AddRow("0002_accounts"))

	applied, err := Migrate(ctx, mockPool, testLogger)
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
