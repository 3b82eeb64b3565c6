package domain

import "context"

// ReminderRepository defines the interface for reminder persistence.
// Mutating operations return the full updated list for the user so the
// store can republish its in-memory state wholesale.
type ReminderRepository interface {
	GetReminders(ctx context.Context, userID string) ([]Reminder, error)
	SaveReminders(ctx context.Context, userID string, reminders []Reminder) error
	SaveReminder(ctx context.Context, reminder *Reminder) ([]Reminder, error)
	UpdateReminder(ctx context.Context, userID, id string, patch ReminderPatch) ([]Reminder, error)
	UpdateReminderStatus(ctx context.Context, userID, id string, status Status) ([]Reminder, error)
	DeleteReminder(ctx context.Context, userID, id string) ([]Reminder, error)
	BulkDeleteReminders(ctx context.Context, userID string, ids []string) ([]Reminder, error)
	GetUserPreferences(ctx context.Context, userID string) (*Preferences, error)
}

// Notifier defines the interface for the notification collaborator.
// All operations may fail independently of persistence; callers treat
// failures as best-effort.
type Notifier interface {
	ScheduleReminderNotification(ctx context.Context, reminder *Reminder) (string, error)
	CancelNotification(ctx context.Context, handle string) error
	UpdateBadgeCount(ctx context.Context, userID string) error
}

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) (*Project, error)
	GetByID(ctx context.Context, userID, id string) (*Project, error)
	List(ctx context.Context, userID string) ([]Project, error)
	Update(ctx context.Context, userID, id string, name, color *string) (*Project, error)
	Delete(ctx context.Context, userID, id string) error
}

// PatternRepository defines the interface for discovered-pattern persistence
type PatternRepository interface {
	List(ctx context.Context, userID string) ([]Pattern, error)
	Replace(ctx context.Context, userID string, patterns []Pattern) error
}
