package services

import (
	"testing"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newMockDB 基于sqlmock构造gorm连接，用于断言生成的SQL形状
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

func TestApplyArchiveVisibility_DefaultExcludesArchived(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "venues" WHERE business_id = \$1 AND is_archived = \$2`).
		WithArgs(7, false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	var venues []models.Venue
	query := applyArchiveVisibility(db.Model(&models.Venue{}).Where("business_id = ?", 7), ListQuery{})
	require.NoError(t, query.Find(&venues).Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyArchiveVisibility_IncludeArchivedLiftsFilter(t *testing.T) {
	db, mock := newMockDB(t)

	// 正则以$1收尾，若追加了is_archived过滤则不匹配
	mock.ExpectQuery(`SELECT \* FROM "venues" WHERE business_id = \$1$`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	var venues []models.Venue
	query := applyArchiveVisibility(db.Model(&models.Venue{}).Where("business_id = ?", 7), ListQuery{IncludeArchived: true})
	require.NoError(t, query.Find(&venues).Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}
