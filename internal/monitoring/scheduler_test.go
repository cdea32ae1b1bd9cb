package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/isdelr/pixelgram/internal/models"
	"github.com/isdelr/pixelgram/internal/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActivity struct {
	cutoffs []time.Time
	err     error
}

func (f *fakeActivity) RecordOutcome(outcome.Signal) error { return nil }

func (f *fakeActivity) GetRecentActivity(int) ([]models.Activity, error) { return nil, nil }

func (f *fakeActivity) PruneBefore(cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return 3, f.err
}

func TestPruneUsesRetention(t *testing.T) {
	activity := &fakeActivity{}
	s, err := NewScheduler(activity, "@daily", 24*time.Hour)
	require.NoError(t, err)

	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Start()
	s.Stop()

	require.Len(t, activity.cutoffs, 1)
	assert.Equal(t, now.Add(-24*time.Hour), activity.cutoffs[0])
}

func TestPruneErrorIsLogged(t *testing.T) {
	activity := &fakeActivity{err: errors.New("locked")}
	s, err := NewScheduler(activity, "*/5 * * * *", time.Hour)
	require.NoError(t, err)

	assert.NotPanics(t, s.pruneActivity)
	assert.Len(t, activity.cutoffs, 1)
}

func TestNewSchedulerValidation(t *testing.T) {
	_, err := NewScheduler(&fakeActivity{}, "not a schedule", time.Hour)
	assert.Error(t, err)

	_, err = NewScheduler(&fakeActivity{}, "@daily", 0)
	assert.Error(t, err)
}
