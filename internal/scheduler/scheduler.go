package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ykvlv/assistant-bot/internal/domain"
	"github.com/ykvlv/assistant-bot/internal/store"
)

// Sender is the minimal capability the scheduler needs to deliver a reminder.
// telegram.Router implements it.
type Sender interface {
	SendReminder(ctx context.Context, userID int64, payload string) error
}

// Options tune the polling loop. Zero values fall back to defaults.
type Options struct {
	Interval    time.Duration    // default 60s
	BatchSize   int              // default 100
	SendTimeout time.Duration    // default 10s
	Now         func() time.Time // default time.Now
}

// Stats summarizes one poll cycle.
type Stats struct {
	Due         int
	Delivered   int
	Failed      int
	Unconfirmed int // sent, but the delete failed twice
}

// Scheduler periodically polls the store and delivers due reminders.
type Scheduler struct {
	repo        store.ReminderStore
	log         *zap.Logger
	sender      Sender
	interval    time.Duration
	batchSize   int
	sendTimeout time.Duration
	now         func() time.Time

	mu sync.Mutex // serializes poll cycles
	// unconfirmed holds IDs that were sent but could not be deleted.
	// They are never sent again; later cycles only retry the delete.
	unconfirmed map[string]struct{}
}

// New creates a new Scheduler.
func New(repo store.ReminderStore, log *zap.Logger, sender Sender, opts Options) *Scheduler {
	s := &Scheduler{
		repo:        repo,
		log:         log,
		sender:      sender,
		interval:    opts.Interval,
		batchSize:   opts.BatchSize,
		sendTimeout: opts.SendTimeout,
		now:         opts.Now,
		unconfirmed: make(map[string]struct{}),
	}
	if s.interval <= 0 {
		s.interval = time.Minute
	}
	if s.batchSize <= 0 {
		s.batchSize = 100
	}
	if s.sendTimeout <= 0 {
		s.sendTimeout = 10 * time.Second
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Run polls once immediately, to catch reminders that fell due while the
// process was down, then on every tick until ctx is canceled. A cycle that
// has started always runs to completion.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("scheduler started", zap.Duration("interval", s.interval), zap.Int("batch", s.batchSize))
	s.PollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			s.PollOnce(ctx)
		}
	}
}

// PollOnce performs one cycle: list due reminders, send each, delete what was sent.
// The batch runs detached from ctx cancellation so that a successful send is
// always followed by its delete.
func (s *Scheduler) PollOnce(ctx context.Context) (st Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			s.log.Error("poll panicked", zap.Any("panic", p))
		}
	}()

	work := context.WithoutCancel(ctx)
	now := s.now().UTC()

	listCtx, cancel := context.WithTimeout(work, s.sendTimeout)
	due, err := s.repo.ListDue(listCtx, now, s.batchSize)
	cancel()
	if err != nil {
		s.log.Error("ListDue failed", zap.Error(err))
		return st
	}
	st.Due = len(due)

	for _, r := range due {
		if _, sent := s.unconfirmed[r.ID]; sent {
			if err := s.remove(work, r.ID); err != nil {
				s.log.Error("DeleteReminder failed again", zap.Error(err), zap.String("id", r.ID))
				continue
			}
			delete(s.unconfirmed, r.ID)
			continue
		}

		if err := s.deliver(work, r); err != nil {
			st.Failed++
			s.log.Error("reminder delivery failed, will retry",
				zap.Error(err), zap.String("id", r.ID), zap.Int64("userID", r.UserID))
			continue
		}
		if err := s.remove(work, r.ID); err != nil {
			s.unconfirmed[r.ID] = struct{}{}
			st.Unconfirmed++
			s.log.Error("DeleteReminder failed, will not resend",
				zap.Error(err), zap.String("id", r.ID))
			continue
		}
		st.Delivered++
	}
	if st.Due > 0 {
		s.log.Info("reminders polled",
			zap.Int("due", st.Due), zap.Int("delivered", st.Delivered),
			zap.Int("failed", st.Failed), zap.Int("unconfirmed", st.Unconfirmed))
	}
	return st
}

// remove deletes a sent reminder, retrying once within the cycle.
func (s *Scheduler) remove(ctx context.Context, id string) error {
	var err error
	for range 2 {
		delCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
		err = s.repo.DeleteReminder(delCtx, id)
		cancel()
		if err == nil {
			return nil
		}
	}
	return err
}

func (s *Scheduler) deliver(ctx context.Context, r domain.Reminder) error {
	ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()
	if err := s.sender.SendReminder(ctx, r.UserID, r.Payload); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	return nil
}
