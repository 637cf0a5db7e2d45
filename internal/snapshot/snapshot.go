// Package snapshot records periodic roster counts on a cron schedule.
package snapshot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mergington/rollcall/internal/events"
)

type rosterRepo interface {
	ParticipantCounts(ctx context.Context) (map[string]int, error)
	RecordRosterSnapshot(ctx context.Context, takenAt time.Time, counts map[string]int) (int64, error)
}

// Options configures the snapshot service.
type Options struct {
	// Schedule is a cron expression (robfig/cron standard syntax, including
	// @hourly and @every forms). Empty disables the service.
	Schedule string
	EventHub *events.Hub
}

// Service writes roster snapshots whenever the schedule fires.
type Service struct {
	repo      rosterRepo
	opts      Options
	sched     cron.Schedule
	startOnce sync.Once
	stopOnce  sync.Once
	stopFn    context.CancelFunc
	doneCh    chan struct{}
}

// New creates a snapshot service. A bad cron expression is an error; an
// empty one yields a disabled service whose Start is a no-op.
func New(repo rosterRepo, opts Options) (*Service, error) {
	s := &Service{repo: repo, opts: opts}
	if opts.Schedule != "" {
		sched, err := cron.ParseStandard(opts.Schedule)
		if err != nil {
			return nil, err
		}
		s.sched = sched
	}
	return s, nil
}

// Enabled reports whether a schedule was configured.
func (s *Service) Enabled() bool {
	return s != nil && s.sched != nil
}

// Start begins the snapshot loop in a background goroutine.
func (s *Service) Start(parent context.Context) {
	if !s.Enabled() {
		return
	}
	s.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(parent)
		s.stopFn = cancel
		s.doneCh = make(chan struct{})

		go func() {
			defer close(s.doneCh)
			for {
				next := s.sched.Next(time.Now())
				timer := time.NewTimer(time.Until(next))
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-timer.C:
					s.runOnce(ctx)
				}
			}
		}()
	})
}

// Stop cancels the loop and waits for it, bounded by ctx.
func (s *Service) Stop(ctx context.Context) {
	if s == nil {
		return
	}
	s.stopOnce.Do(func() {
		if s.stopFn != nil {
			s.stopFn()
		}
		if s.doneCh == nil {
			return
		}
		select {
		case <-s.doneCh:
		case <-ctx.Done():
		}
	})
}

func (s *Service) runOnce(ctx context.Context) {
	workCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	counts, err := s.repo.ParticipantCounts(workCtx)
	if err != nil {
		slog.Warn("roster snapshot count failed", "err", err)
		return
	}
	total := 0
	for _, n := range counts {
		total += n
	}

	id, err := s.repo.RecordRosterSnapshot(workCtx, time.Now(), counts)
	if err != nil {
		slog.Warn("roster snapshot write failed", "err", err)
		return
	}

	slog.Info("roster snapshot recorded", "id", id, "activities", len(counts), "participants", total)
	if s.opts.EventHub != nil {
		s.opts.EventHub.Publish(events.NewEvent(events.TypeSnapshotTaken, map[string]any{
			"id":           id,
			"participants": total,
		}))
	}
}
