package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/isdelr/pixelgram/internal/database"
	"github.com/isdelr/pixelgram/internal/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSessionLifecycle(t *testing.T) {
	svc := NewSessionService(newTestDB(t))

	current, err := svc.CurrentSession()
	require.NoError(t, err)
	assert.Nil(t, current)

	_, err = svc.SaveSession("old@b.com", "old-token")
	require.NoError(t, err)
	saved, err := svc.SaveSession("a@b.com", "token-1")
	require.NoError(t, err)

	current, err = svc.CurrentSession()
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, saved.ID, current.ID)
	assert.Equal(t, "a@b.com", current.Email)
	assert.Equal(t, "token-1", current.Token)
	assert.True(t, saved.CreatedAt.Equal(current.CreatedAt))

	require.NoError(t, svc.ClearSession())
	current, err = svc.CurrentSession()
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestActivityRecordsTerminalOutcomesOnly(t *testing.T) {
	svc := NewActivityService(newTestDB(t))

	svc.Observe(outcome.New(outcome.Like, outcome.Pending, "inv-1", ""))
	svc.Observe(outcome.New(outcome.Like, outcome.Success, "inv-1", "liked"))
	svc.Observe(outcome.New(outcome.DeletePost, outcome.Failure, "inv-2", "not found"))

	recent, err := svc.GetRecentActivity(10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	assert.Equal(t, "inv-2", recent[0].InvocationID)
	assert.Equal(t, "deletePost", recent[0].Category)
	assert.Equal(t, "failure", recent[0].Phase)
	assert.Equal(t, "not found", recent[0].Message)
	assert.Equal(t, "inv-1", recent[1].InvocationID)

	limited, err := svc.GetRecentActivity(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestActivityPrune(t *testing.T) {
	svc := NewActivityService(newTestDB(t))

	old := outcome.New(outcome.Like, outcome.Success, "old", "liked")
	old.At = time.Now().Add(-48 * time.Hour)
	require.NoError(t, svc.RecordOutcome(old))
	require.NoError(t, svc.RecordOutcome(outcome.New(outcome.Like, outcome.Success, "new", "liked")))

	removed, err := svc.PruneBefore(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	recent, err := svc.GetRecentActivity(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "new", recent[0].InvocationID)
}
