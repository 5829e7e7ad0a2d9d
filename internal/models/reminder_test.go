package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminder_CompleteFromActive(t *testing.T) {
	r := Reminder{Status: ReminderStatusActive}
	require.NoError(t, r.Complete())
	assert.Equal(t, ReminderStatusCompleted, r.Status)
}

func TestReminder_CompleteFromSnoozedClearsSnooze(t *testing.T) {
	until := time.Now().Add(time.Hour)
	r := Reminder{Status: ReminderStatusSnoozed, SnoozedUntil: &until}

	require.NoError(t, r.Complete())
	assert.Equal(t, ReminderStatusCompleted, r.Status)
	assert.Nil(t, r.SnoozedUntil)
}

func TestReminder_TerminalStatesRejectTransitions(t *testing.T) {
	for _, status := range []string{ReminderStatusCompleted, ReminderStatusCancelled} {
		r := Reminder{Status: status}
		assert.Error(t, r.Complete(), status)
		assert.Error(t, r.Snooze(time.Now().Add(time.Hour)), status)
		assert.Error(t, r.Cancel(), status)
	}
}

func TestReminder_SnoozeRequiresFutureTime(t *testing.T) {
	r := Reminder{Status: ReminderStatusActive}
	assert.Error(t, r.Snooze(time.Now().Add(-time.Minute)))
	assert.Equal(t, ReminderStatusActive, r.Status)
}

func TestReminder_SnoozeAgainMovesTarget(t *testing.T) {
	r := Reminder{Status: ReminderStatusActive}
	first := time.Now().Add(time.Hour)
	require.NoError(t, r.Snooze(first))

	second := time.Now().Add(2 * time.Hour)
	require.NoError(t, r.Snooze(second))

	assert.Equal(t, ReminderStatusSnoozed, r.Status)
	assert.Equal(t, second, *r.SnoozedUntil)
}

func TestReminder_CancelFromActiveAndSnoozed(t *testing.T) {
	active := Reminder{Status: ReminderStatusActive}
	require.NoError(t, active.Cancel())
	assert.Equal(t, ReminderStatusCancelled, active.Status)

	until := time.Now().Add(time.Hour)
	snoozed := Reminder{Status: ReminderStatusSnoozed, SnoozedUntil: &until}
	require.NoError(t, snoozed.Cancel())
	assert.Equal(t, ReminderStatusCancelled, snoozed.Status)
	assert.Nil(t, snoozed.SnoozedUntil)
}

func TestReminder_IsDue(t *testing.T) {
	now := time.Now()

	due := Reminder{Status: ReminderStatusActive, RemindAt: now.Add(-time.Minute)}
	assert.True(t, due.IsDue(now))

	future := Reminder{Status: ReminderStatusActive, RemindAt: now.Add(time.Minute)}
	assert.False(t, future.IsDue(now))

	snoozePast := now.Add(-time.Second)
	snoozed := Reminder{Status: ReminderStatusSnoozed, RemindAt: now.Add(-time.Hour), SnoozedUntil: &snoozePast}
	assert.True(t, snoozed.IsDue(now))

	cancelled := Reminder{Status: ReminderStatusCancelled, RemindAt: now.Add(-time.Hour)}
	assert.False(t, cancelled.IsDue(now))
}
