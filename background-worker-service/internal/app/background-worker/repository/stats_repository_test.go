package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// StatsRepositoryTestSuite тестовый suite для PostgreSQL repository
type StatsRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  StatsRepository
	sqlDB *sql.DB
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositoryTestSuite))
}

func (s *StatsRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewStatsRepository(s.db)
}

func (s *StatsRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// ===================== IncrementDailyStat Tests =====================

func (s *StatsRepositoryTestSuite) TestIncrementDailyStat_Insert() {
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "daily_stats"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	s.mock.ExpectCommit()

	err := s.repo.IncrementDailyStat(ctx, day, "vehicle_view")

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *StatsRepositoryTestSuite) TestIncrementDailyStat_ConflictUpdates() {
	// Upsert: конфликт по (date, event_type) увеличивает счетчик
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT ("date","event_type") DO UPDATE`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	s.mock.ExpectCommit()

	err := s.repo.IncrementDailyStat(ctx, day, "vehicle_view")

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *StatsRepositoryTestSuite) TestIncrementDailyStat_DBError() {
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "daily_stats"`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	err := s.repo.IncrementDailyStat(ctx, day, "vehicle_view")

	s.Error(err)
	s.Contains(err.Error(), "failed to increment daily stat")
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetDailyStats Tests =====================

func (s *StatsRepositoryTestSuite) TestGetDailyStats_Success() {
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "date", "event_type", "count"}).
		AddRow(1, day, "page_view", 42).
		AddRow(2, day, "vehicle_view", 17)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "daily_stats" WHERE date = $1`)).
		WithArgs(day).
		WillReturnRows(rows)

	stats, err := s.repo.GetDailyStats(ctx, day)

	s.NoError(err)
	s.Len(stats, 2)
	s.Equal("page_view", stats[0].EventType)
	s.Equal(int64(42), stats[0].Count)
	s.Equal("vehicle_view", stats[1].EventType)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *StatsRepositoryTestSuite) TestGetDailyStats_Empty() {
	ctx := context.Background()
	day := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "daily_stats" WHERE date = $1`)).
		WithArgs(day).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "event_type", "count"}))

	stats, err := s.repo.GetDailyStats(ctx, day)

	s.NoError(err)
	s.Empty(stats)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *StatsRepositoryTestSuite) TestGetDailyStats_DBError() {
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "daily_stats" WHERE date = $1`)).
		WithArgs(day).
		WillReturnError(sql.ErrConnDone)

	stats, err := s.repo.GetDailyStats(ctx, day)

	s.Error(err)
	s.Nil(stats)
	s.Contains(err.Error(), "failed to get daily stats")

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== NewStatsRepository Tests =====================

func TestNewStatsRepository(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	dialector := postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	repo := NewStatsRepository(db)

	assert.NotNil(t, repo)
}
