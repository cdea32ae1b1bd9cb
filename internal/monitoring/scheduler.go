package monitoring

import (
	"fmt"
	"time"

	"github.com/isdelr/pixelgram/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler prunes old activity on a cron schedule.
type Scheduler struct {
	activitySvc services.ActivityServiceProvider
	retention   time.Duration
	cron        *cron.Cron
	now         func() time.Time
}

// NewScheduler creates a scheduler that runs on spec (standard cron syntax or
// a descriptor such as "@daily") and deletes activity older than retention.
func NewScheduler(activitySvc services.ActivityServiceProvider, spec string, retention time.Duration) (*Scheduler, error) {
	if retention <= 0 {
		return nil, fmt.Errorf("activity retention must be positive, got %s", retention)
	}
	s := &Scheduler{
		activitySvc: activitySvc,
		retention:   retention,
		cron:        cron.New(),
		now:         time.Now,
	}
	if _, err := s.cron.AddFunc(spec, s.pruneActivity); err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return s, nil
}

// Start runs one pruning pass immediately and then follows the schedule.
func (s *Scheduler) Start() {
	log.Info().Dur("retention", s.retention).Msg("Starting activity pruning scheduler")
	s.pruneActivity()
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Stopped activity pruning scheduler")
}

func (s *Scheduler) pruneActivity() {
	cutoff := s.now().Add(-s.retention)
	removed, err := s.activitySvc.PruneBefore(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Scheduler: failed to prune activity")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("Scheduler: pruned activity")
	}
}
