package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"reminder-app/src/dateutil"
	"reminder-app/src/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrInvalidTitle     = errors.New("title is required and must be less than 200 characters")
	ErrInvalidCategory  = errors.New("category must be personal, work, health, or money")
	ErrInvalidPriority  = errors.New("priority must be low, medium, high, or urgent")
	ErrInvalidSchedule  = errors.New("reminder date and time are required")
)

// CreateReminderInput represents input for creating a reminder
type CreateReminderInput struct {
	Title        string
	Note         string
	Category     domain.Category
	Subcategory  string
	Priority     domain.Priority
	ProjectID    *string
	ProjectName  string
	ImageURI     string
	ReminderDate string
	ReminderTime string
}

// ReminderStore is the single in-memory source of truth for one user's
// reminder list. It reconciles the list against persistence on every
// load, recomputing each reminder's status and writing the corrected
// list back when storage has drifted, and it coordinates notification
// scheduling and cancellation as a side effect of CRUD operations.
//
// Notification failures never fail the primary operation; they are
// logged and swallowed. Persistence failures are surfaced to the
// caller. Overlapping updates to the same reminder are last-write-wins;
// the mutex only guarantees the in-memory list is replaced wholesale,
// never torn.
type ReminderStore struct {
	userID   string
	repo     domain.ReminderRepository
	notifier domain.Notifier
	logger   *logrus.Logger
	now      func() time.Time

	mu        sync.Mutex
	reminders []domain.Reminder
	filter    domain.FilterState
	sort      domain.SortState
	loading   bool
	errMsg    string
}

// NewReminderStore creates a reminder store for one user. The clock is
// injected so status recalculation is deterministic under test.
func NewReminderStore(userID string, repo domain.ReminderRepository, notifier domain.Notifier, logger *logrus.Logger, now func() time.Time) *ReminderStore {
	if now == nil {
		now = time.Now
	}
	return &ReminderStore{
		userID:   userID,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      now,
		filter:   domain.DefaultFilter(),
		sort:     domain.DefaultSort(),
	}
}

// Load fetches all reminders from persistence, recomputes every status
// against the current clock, and publishes the result. If any stored
// status differs from the recomputed one, the corrected list is written
// back to persistence before the in-memory publish, so storage never
// diverges from reality for more than one load cycle.
//
// On persistence failure the previous in-memory list is kept and the
// error is recorded as a user-visible message.
func (s *ReminderStore) Load(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	list, err := s.repo.GetReminders(ctx, s.userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", s.userID).Error("リマインダーの読み込みに失敗")
		s.setError("リマインダーを読み込めませんでした")
		return err
	}

	now := s.now()
	recalced, changed := s.recalculate(list, now)

	if changed {
		if err := s.repo.SaveReminders(ctx, s.userID, recalced); err != nil {
			s.logger.WithError(err).WithField("user_id", s.userID).Error("ステータス修正の書き戻しに失敗")
			s.setError("リマインダーを読み込めませんでした")
			return err
		}
		s.logger.WithField("user_id", s.userID).Info("古いステータスを修正して保存しました")
	}

	s.publish(recalced)
	return nil
}

// Create persists a new reminder with its initial status computed from
// the clock. When the reminder is upcoming and the user's reminder
// alerts are enabled, a notification is scheduled and its handle is
// persisted onto the record best-effort; a scheduling failure never
// fails the create.
func (s *ReminderStore) Create(ctx context.Context, input CreateReminderInput) (*domain.Reminder, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	now := s.now()
	reminder := &domain.Reminder{
		ID:           uuid.NewString(),
		UserID:       s.userID,
		Title:        input.Title,
		Note:         input.Note,
		Category:     input.Category,
		Subcategory:  input.Subcategory,
		Priority:     input.Priority,
		ProjectID:    input.ProjectID,
		ProjectName:  input.ProjectName,
		ImageURI:     input.ImageURI,
		ReminderDate: input.ReminderDate,
		ReminderTime: input.ReminderTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	reminder.Status = domain.CalculateStatus(*reminder, now)

	list, err := s.repo.SaveReminder(ctx, reminder)
	if err != nil {
		s.logger.WithError(err).Error("リマインダーの作成に失敗")
		return nil, err
	}

	recalced, _ := s.recalculate(list, now)
	s.publish(recalced)

	if reminder.Status == domain.StatusUpcoming && s.alertsEnabled(ctx) {
		s.scheduleAndPersistHandle(ctx, reminder, "")
	}

	return reminder, nil
}

// Update applies a partial field patch to the named reminder,
// recomputes statuses, and publishes the result. When the updated
// reminder lands on upcoming and alerts are enabled, the previous
// notification handle is canceled best-effort and a fresh one is
// scheduled and persisted.
func (s *ReminderStore) Update(ctx context.Context, id string, patch domain.ReminderPatch) (*domain.Reminder, error) {
	prev := s.GetByID(id)

	list, err := s.repo.UpdateReminder(ctx, s.userID, id, patch)
	if err != nil {
		if strings.Contains(err.Error(), "reminder not found") {
			return nil, ErrReminderNotFound
		}
		s.logger.WithError(err).WithField("reminder_id", id).Error("リマインダーの更新に失敗")
		return nil, err
	}

	now := s.now()
	recalced, _ := s.recalculate(list, now)
	s.publish(recalced)

	updated := s.GetByID(id)
	if updated == nil {
		return nil, ErrReminderNotFound
	}

	if updated.Status == domain.StatusUpcoming && s.alertsEnabled(ctx) {
		oldHandle := updated.NotificationID
		if prev != nil && prev.NotificationID != "" {
			oldHandle = prev.NotificationID
		}
		s.scheduleAndPersistHandle(ctx, updated, oldHandle)
	}

	return updated, nil
}

// Delete cancels the reminder's notification handle best-effort,
// removes the reminder from persistence, and publishes the result.
func (s *ReminderStore) Delete(ctx context.Context, id string) error {
	s.cancelHandle(ctx, s.GetByID(id))

	list, err := s.repo.DeleteReminder(ctx, s.userID, id)
	if err != nil {
		if strings.Contains(err.Error(), "reminder not found") {
			return ErrReminderNotFound
		}
		s.logger.WithError(err).WithField("reminder_id", id).Error("リマインダーの削除に失敗")
		return err
	}

	recalced, _ := s.recalculate(list, s.now())
	s.publish(recalced)
	return nil
}

// MarkAsDone cancels the reminder's notification handle best-effort,
// sets its status to done through the dedicated persistence call,
// publishes the result, and refreshes the badge count. Done is sticky:
// recalculation never reverts it.
func (s *ReminderStore) MarkAsDone(ctx context.Context, id string) error {
	s.cancelHandle(ctx, s.GetByID(id))

	list, err := s.repo.UpdateReminderStatus(ctx, s.userID, id, domain.StatusDone)
	if err != nil {
		if strings.Contains(err.Error(), "reminder not found") {
			return ErrReminderNotFound
		}
		s.logger.WithError(err).WithField("reminder_id", id).Error("リマインダーの完了処理に失敗")
		return err
	}

	recalced, _ := s.recalculate(list, s.now())
	s.publish(recalced)

	if err := s.notifier.UpdateBadgeCount(ctx, s.userID); err != nil {
		s.logger.WithError(err).Warn("バッジ数の更新に失敗")
	}
	return nil
}

// BulkDelete cancels each reminder's notification handle best-effort,
// continuing past individual cancellation failures, then removes all of
// them in a single persistence call.
func (s *ReminderStore) BulkDelete(ctx context.Context, ids []string) error {
	for _, id := range ids {
		s.cancelHandle(ctx, s.GetByID(id))
	}

	list, err := s.repo.BulkDeleteReminders(ctx, s.userID, ids)
	if err != nil {
		s.logger.WithError(err).WithField("count", len(ids)).Error("リマインダーの一括削除に失敗")
		return err
	}

	recalced, _ := s.recalculate(list, s.now())
	s.publish(recalced)
	return nil
}

// GetByID returns the reminder from in-memory state, or nil when
// absent. Callers must treat nil as "not found", not as a loading
// state.
func (s *ReminderStore) GetByID(id string) *domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			r := s.reminders[i]
			return &r
		}
	}
	return nil
}

// Reminders returns a copy of the current in-memory list.
func (s *ReminderStore) Reminders() []domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

// SetFilter replaces the store's active filter state.
func (s *ReminderStore) SetFilter(filter domain.FilterState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
}

// SetSort replaces the store's active sort state.
func (s *ReminderStore) SetSort(sort domain.SortState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = sort
}

// Filtered returns the derived view for the store's current filter and
// sort state.
func (s *ReminderStore) Filtered() []domain.Reminder {
	s.mu.Lock()
	filter, sortState := s.filter, s.sort
	s.mu.Unlock()
	return s.View(filter, sortState)
}

// View returns the filtered and sorted projection of the current list
// for an explicit filter/sort state.
func (s *ReminderStore) View(filter domain.FilterState, sort domain.SortState) []domain.Reminder {
	return ApplyFilters(s.Reminders(), filter, sort)
}

// Stats returns aggregate counts computed over the same
// status-recalculated list the filtered view reads, so the two can
// never disagree.
func (s *ReminderStore) Stats() domain.Stats {
	return ComputeStats(s.Reminders())
}

// Error returns the last user-visible load error, or "".
func (s *ReminderStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Loading reports whether a load is in flight.
func (s *ReminderStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// recalculate recomputes every status against now and logs a warning
// for reminders whose schedule text cannot be parsed (those fall open
// to upcoming).
func (s *ReminderStore) recalculate(list []domain.Reminder, now time.Time) ([]domain.Reminder, bool) {
	for i := range list {
		if list[i].Status.IsTerminal() {
			continue
		}
		if _, err := dateutil.CombineDateAndTime(list[i].ReminderDate, list[i].ReminderTime); err != nil {
			s.logger.WithFields(logrus.Fields{
				"reminder_id": list[i].ID,
				"date":        list[i].ReminderDate,
				"time":        list[i].ReminderTime,
			}).Warn("日時を解析できないためupcoming扱いにします")
		}
	}
	return domain.RecalculateAll(list, now)
}

// scheduleAndPersistHandle cancels oldHandle if present, schedules a
// notification for the reminder, and persists the returned handle onto
// the record. Every step is best-effort.
func (s *ReminderStore) scheduleAndPersistHandle(ctx context.Context, reminder *domain.Reminder, oldHandle string) {
	if oldHandle != "" {
		if err := s.notifier.CancelNotification(ctx, oldHandle); err != nil {
			s.logger.WithError(err).WithField("handle", oldHandle).Warn("通知のキャンセルに失敗")
		}
	}

	handle, err := s.notifier.ScheduleReminderNotification(ctx, reminder)
	if err != nil {
		s.logger.WithError(err).WithField("reminder_id", reminder.ID).Warn("通知のスケジュールに失敗")
		return
	}
	reminder.NotificationID = handle

	list, err := s.repo.UpdateReminder(ctx, s.userID, reminder.ID, domain.ReminderPatch{NotificationID: &handle})
	if err != nil {
		s.logger.WithError(err).WithField("reminder_id", reminder.ID).Warn("通知ハンドルの保存に失敗")
		return
	}
	recalced, _ := s.recalculate(list, s.now())
	s.publish(recalced)
}

// cancelHandle cancels the reminder's notification handle best-effort.
func (s *ReminderStore) cancelHandle(ctx context.Context, reminder *domain.Reminder) {
	if reminder == nil || reminder.NotificationID == "" {
		return
	}
	if err := s.notifier.CancelNotification(ctx, reminder.NotificationID); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"reminder_id": reminder.ID,
			"handle":      reminder.NotificationID,
		}).Warn("通知のキャンセルに失敗")
	}
}

// alertsEnabled reads the user's reminder-alert preference. A
// preference lookup failure is treated as alerts disabled.
func (s *ReminderStore) alertsEnabled(ctx context.Context) bool {
	prefs, err := s.repo.GetUserPreferences(ctx, s.userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", s.userID).Warn("ユーザー設定の取得に失敗")
		return false
	}
	return prefs.Notifications.ReminderAlerts
}

// publish replaces the in-memory list wholesale and clears the error
// state. Mutations are never published partially.
func (s *ReminderStore) publish(list []domain.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = list
	s.errMsg = ""
}

func (s *ReminderStore) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *ReminderStore) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

// validateCreateInput validates create reminder input
func validateCreateInput(input CreateReminderInput) error {
	if strings.TrimSpace(input.Title) == "" || len(input.Title) > 200 {
		return ErrInvalidTitle
	}
	if !input.Category.IsValid() {
		return ErrInvalidCategory
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if input.ReminderDate == "" || input.ReminderTime == "" {
		return ErrInvalidSchedule
	}
	return nil
}

// StoreManager hands out one ReminderStore per user and keeps it for
// the lifetime of the process.
type StoreManager struct {
	repo     domain.ReminderRepository
	notifier domain.Notifier
	logger   *logrus.Logger
	now      func() time.Time

	mu     sync.Mutex
	stores map[string]*ReminderStore
}

// NewStoreManager creates a store manager.
func NewStoreManager(repo domain.ReminderRepository, notifier domain.Notifier, logger *logrus.Logger, now func() time.Time) *StoreManager {
	return &StoreManager{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      now,
		stores:   make(map[string]*ReminderStore),
	}
}

// ForUser returns the user's store, creating it on first use.
func (m *StoreManager) ForUser(userID string) *ReminderStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.stores[userID]
	if !ok {
		store = NewReminderStore(userID, m.repo, m.notifier, m.logger, m.now)
		m.stores[userID] = store
	}
	return store
}
