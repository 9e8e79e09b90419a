package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"

	"github.com/hpcprof/pkg/model"
)

// newMockRepository runs the repository through the postgres dialect on a
// sqlmock connection so the generated SQL can be asserted.
func newMockRepository(t *testing.T) (*GormProfileRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := OpenGorm(postgres.New(postgres.Config{Conn: sqlDB}))
	require.NoError(t, err)
	return NewGormProfileRepository(db), mock
}

var profileColumns = []string{
	"id", "source_key", "prof_file", "file_type", "version", "add_mode", "endian",
	"process_count", "thread_count", "cpu_clock", "measure_time", "option_mask",
	"exec_kind_mask", "exec_kind", "pa_event_category", "group_count",
	"symbol_count", "total_samples", "imported_at",
}

func TestPostgresProfileRepository_Save(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "hpcprof_profiles"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "hpcprof_event_counters"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))
	mock.ExpectCommit()

	id, err := repo.Save(context.Background(), eprofSet("runs/a.eprof"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProfileRepository_Save_RollsBack(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "hpcprof_profiles"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "hpcprof_costs"`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	set := dprofSet("runs/b.dprof")
	_, err := repo.Save(context.Background(), set)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert costs")
	assert.Zero(t, set.Summary.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProfileRepository_List(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	rows := sqlmock.NewRows(profileColumns).
		AddRow(int64(2), "runs/b.dprof", "/w/b.dprof", "DPRF", int16(0x0412), int16(0), "big",
			int32(8), int16(4), int32(2200), "2024/01/02", int64(0x44), int32(0x1), "serial", "",
			0, 3, int64(100), now).
		AddRow(int64(1), "runs/a.eprof", "/w/a.eprof", "EPRF", int16(0x0402), int16(0), "little",
			int32(4), int16(1), int32(2000), "2024/01/01", int64(0x3), int32(0x42), "hybrid", "Cache",
			1, 0, int64(0), now)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "hpcprof_profiles" ORDER BY id DESC LIMIT`)).
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "DPRF", list[0].FileType)
	assert.Equal(t, "big", list[0].Endian)
	assert.Equal(t, "Cache", list[1].PaEventCategory)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProfileRepository_Get_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "hpcprof_profiles" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(profileColumns))

	_, err := repo.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProfileRepository_Costs_Error(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "hpcprof_costs" WHERE profile_id = $1 AND info_type = $2 ORDER BY seq ASC`)).
		WithArgs(int64(3), model.InfoTypeCostLine).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Costs(context.Background(), 3, model.InfoTypeCostLine)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query costs")
	assert.NoError(t, mock.ExpectationsWereMet())
}
