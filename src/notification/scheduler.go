package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"reminder-app/src/dateutil"
	"reminder-app/src/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Scheduler is an in-process notification scheduler. Scheduling
// returns an opaque handle the store persists on the reminder; the
// handle is the only way to cancel. Actual delivery beyond firing the
// dispatch log entry is out of scope.
type Scheduler struct {
	repo    domain.ReminderRepository
	logger  *logrus.Logger
	enabled bool

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

// NewScheduler creates a notification scheduler. When disabled it
// rejects scheduling requests, which the store treats as a swallowed
// best-effort failure.
func NewScheduler(repo domain.ReminderRepository, logger *logrus.Logger, enabled bool) *Scheduler {
	return &Scheduler{
		repo:    repo,
		logger:  logger,
		enabled: enabled,
		timers:  make(map[string]*time.Timer),
	}
}

// ScheduleReminderNotification schedules a one-shot notification at
// the reminder's combined date+time instant and returns its handle.
func (s *Scheduler) ScheduleReminderNotification(ctx context.Context, reminder *domain.Reminder) (string, error) {
	if !s.enabled {
		return "", fmt.Errorf("notification scheduler is disabled")
	}

	due, err := dateutil.CombineDateAndTime(reminder.ReminderDate, reminder.ReminderTime)
	if err != nil {
		return "", fmt.Errorf("cannot schedule notification: %w", err)
	}

	delay := time.Until(due)
	if delay < 0 {
		return "", fmt.Errorf("cannot schedule notification in the past: %s", due.Format(time.RFC3339))
	}

	handle := uuid.NewString()
	title := reminder.Title

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", fmt.Errorf("notification scheduler is closed")
	}
	s.timers[handle] = time.AfterFunc(delay, func() {
		s.fire(handle, title)
	})

	s.logger.WithFields(logrus.Fields{
		"handle":      handle,
		"reminder_id": reminder.ID,
		"due":         due.Format(time.RFC3339),
	}).Info("通知をスケジュールしました")

	return handle, nil
}

// CancelNotification cancels a previously scheduled notification.
// Canceling an unknown or already-fired handle is an error the caller
// is expected to swallow.
func (s *Scheduler) CancelNotification(ctx context.Context, handle string) error {
	s.mu.Lock()
	timer, ok := s.timers[handle]
	if ok {
		delete(s.timers, handle)
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("unknown notification handle: %s", handle)
	}

	timer.Stop()
	s.logger.WithField("handle", handle).Info("通知をキャンセルしました")
	return nil
}

// UpdateBadgeCount recomputes the user's badge count as the number of
// reminders currently upcoming.
func (s *Scheduler) UpdateBadgeCount(ctx context.Context, userID string) error {
	reminders, err := s.repo.GetReminders(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to refresh badge count: %w", err)
	}

	count := 0
	now := time.Now()
	for _, r := range reminders {
		if domain.CalculateStatus(r, now) == domain.StatusUpcoming {
			count++
		}
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"badge":   count,
	}).Info("バッジ数を更新しました")
	return nil
}

// Close stops every pending timer.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for handle, timer := range s.timers {
		timer.Stop()
		delete(s.timers, handle)
	}
	s.logger.Info("通知スケジューラを停止しました")
}

func (s *Scheduler) fire(handle, title string) {
	s.mu.Lock()
	delete(s.timers, handle)
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"handle": handle,
		"title":  title,
	}).Info("通知を発火しました")
}
