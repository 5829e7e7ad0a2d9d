package main

import (
	goerrors "errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSeedMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestCreateDefaultBusinessSkipsExisting(t *testing.T) {
	db, mock := newSeedMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "name", "email"}).
		AddRow(1, "Fiesta总部", "hq@fiesta.local")
	mock.ExpectQuery(`SELECT \* FROM "businesses" WHERE email = \$1`).
		WillReturnRows(rows)

	business, err := createDefaultBusiness(db)
	require.NoError(t, err)
	assert.Equal(t, uint(1), business.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDefaultBusinessCreatesWhenMissing(t *testing.T) {
	db, mock := newSeedMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "businesses" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "businesses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	business, err := createDefaultBusiness(db)
	require.NoError(t, err)
	assert.Equal(t, uint(1), business.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 查询失败必须原样上抛，当成"不存在"会在重启重试时播种出重复行
func TestCreateDefaultBusinessPropagatesLookupError(t *testing.T) {
	db, mock := newSeedMockDB(t)

	lookupErr := goerrors.New("connection reset by peer")
	mock.ExpectQuery(`SELECT \* FROM "businesses" WHERE email = \$1`).
		WillReturnError(lookupErr)

	_, err := createDefaultBusiness(db)
	require.Error(t, err)
	assert.ErrorIs(t, err, lookupErr)
	// 未消费的INSERT期望为零，证明没有走创建分支
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOwnerRolePropagatesLookupError(t *testing.T) {
	db, mock := newSeedMockDB(t)

	lookupErr := goerrors.New("driver: bad connection")
	mock.ExpectQuery(`SELECT \* FROM "roles" WHERE business_id = \$1 AND name = \$2`).
		WillReturnError(lookupErr)

	_, err := createOwnerRole(db, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, lookupErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
