package services

import (
	"testing"
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 已投递的active提醒不应再次进入扫描结果，否则每个调度周期都会重复入队
func TestReminderGetDueExcludesDelivered(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &ReminderService{db: db}

	mock.ExpectQuery(`status = \$2 AND remind_at <= \$3 AND notified_at IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	reminders, err := svc.GetDue(time.Now(), 50)
	require.NoError(t, err)
	assert.Empty(t, reminders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 改期视为新一轮提醒，更新remind_at后应清除投递记录重新武装
func TestReminderUpdateReschedulingRearmsDelivery(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &ReminderService{db: db}

	notifiedAt := time.Now().Add(-time.Hour)
	remindAt := time.Now().Add(-30 * time.Minute)

	rows := sqlmock.NewRows([]string{"id", "business_id", "user_id", "title", "remind_at", "status", "notified_at", "is_archived"}).
		AddRow(5, 3, 9, "场地巡检", remindAt, models.ReminderStatusActive, notifiedAt, false)
	mock.ExpectQuery(`SELECT \* FROM "reminders" WHERE business_id = \$1`).
		WillReturnRows(rows)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reminders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	newRemindAt := time.Now().Add(2 * time.Hour)
	reminder, err := svc.Update(3, 5, "场地巡检", "改期复查", newRemindAt)
	require.NoError(t, err)
	assert.Nil(t, reminder.NotifiedAt)
	assert.True(t, reminder.RemindAt.Equal(newRemindAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}
