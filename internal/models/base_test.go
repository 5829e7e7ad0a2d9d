package models

import (
	"testing"
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchivable_ArchiveSetsMetadata(t *testing.T) {
	var a Archivable
	now := time.Now()

	require.NoError(t, a.Archive(7, now))

	assert.True(t, a.IsArchived)
	require.NotNil(t, a.ArchivedAt)
	assert.Equal(t, now, *a.ArchivedAt)
	require.NotNil(t, a.ArchivedBy)
	assert.Equal(t, uint(7), *a.ArchivedBy)
}

func TestArchivable_DoubleArchiveRejected(t *testing.T) {
	var a Archivable
	require.NoError(t, a.Archive(7, time.Now()))

	err := a.Archive(8, time.Now())
	assert.ErrorIs(t, err, errors.ErrAlreadyArchived)

	// 首次归档的元数据不能被第二次尝试破坏
	assert.Equal(t, uint(7), *a.ArchivedBy)
}

func TestArchivable_RestoreClearsMetadata(t *testing.T) {
	var a Archivable
	require.NoError(t, a.Archive(7, time.Now()))
	require.NoError(t, a.Restore())

	assert.False(t, a.IsArchived)
	assert.Nil(t, a.ArchivedAt)
	assert.Nil(t, a.ArchivedBy)
}

func TestArchivable_RestoreActiveRejected(t *testing.T) {
	var a Archivable
	assert.ErrorIs(t, a.Restore(), errors.ErrNotArchived)
}

func TestArchivable_ArchiveRestoreArchiveCycle(t *testing.T) {
	var a Archivable
	require.NoError(t, a.Archive(1, time.Now()))
	require.NoError(t, a.Restore())

	later := time.Now().Add(time.Hour)
	require.NoError(t, a.Archive(2, later))

	assert.True(t, a.IsArchived)
	assert.Equal(t, uint(2), *a.ArchivedBy)
	assert.Equal(t, later, *a.ArchivedAt)
}
