package domain

import (
	"time"
)

// Reminder represents a reminder domain entity. The Status field is a
// persisted cache of a derived value: only done/snoozed are
// authoritative, upcoming/overdue are recomputed against the clock on
// every load (see CalculateStatus).
type Reminder struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Note           string    `json:"note"`
	Category       Category  `json:"category"`
	Subcategory    string    `json:"subcategory"`
	Priority       Priority  `json:"priority,omitempty"`
	ProjectID      *string   `json:"project_id,omitempty"`
	ProjectName    string    `json:"project_name,omitempty"`
	ImageURI       string    `json:"image_uri,omitempty"`
	ReminderDate   string    `json:"reminder_date"`
	ReminderTime   string    `json:"reminder_time"`
	Status         Status    `json:"status"`
	NotificationID string    `json:"notification_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ReminderPatch represents a partial update to a reminder. Nil fields
// are left untouched.
type ReminderPatch struct {
	Title          *string
	Note           *string
	Category       *Category
	Subcategory    *string
	Priority       *Priority
	ProjectID      *string
	ProjectName    *string
	ImageURI       *string
	ReminderDate   *string
	ReminderTime   *string
	Status         *Status
	NotificationID *string
}

// Status represents the reminder lifecycle state
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusDone     Status = "done"
	StatusOverdue  Status = "overdue"
	StatusSnoozed  Status = "snoozed"
)

// Category represents the fixed reminder categories
type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryHealth   Category = "health"
	CategoryMoney    Category = "money"
)

// Priority represents reminder priority levels; the empty string means
// no priority was assigned.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid validates if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusDone, StatusOverdue, StatusSnoozed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status is user-set and must never be
// overwritten by recalculation.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusSnoozed
}

// IsValid validates if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryHealth, CategoryMoney:
		return true
	default:
		return false
	}
}

// IsValid validates if the priority is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// Weight returns the numeric sort weight of a priority. Missing
// priority weighs zero.
func (p Priority) Weight() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// String returns string representation of Status
func (s Status) String() string {
	return string(s)
}

// String returns string representation of Category
func (c Category) String() string {
	return string(c)
}

// String returns string representation of Priority
func (p Priority) String() string {
	return string(p)
}

// StatusFilter is a status filter value: a concrete Status or "all".
type StatusFilter string

const StatusFilterAll StatusFilter = "all"

// CategoryFilter is a category filter value: a concrete Category or "all".
type CategoryFilter string

const CategoryFilterAll CategoryFilter = "all"

// FilterState represents the active filters over the reminder list.
// The zero value is not the default; use DefaultFilter.
type FilterState struct {
	Status    StatusFilter
	Category  CategoryFilter
	ProjectID *string
	DateFrom  *string // inclusive, YYYY-MM-DD
	DateTo    *string // inclusive, YYYY-MM-DD
	Search    string
}

// DefaultFilter returns the filter state matching every reminder.
func DefaultFilter() FilterState {
	return FilterState{
		Status:   StatusFilterAll,
		Category: CategoryFilterAll,
	}
}

// SortKey enumerates the supported sort keys
type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByCreated  SortKey = "created"
	SortByUpdated  SortKey = "updated"
	SortByPriority SortKey = "priority"
	SortByCategory SortKey = "category"
)

// IsValid validates if the sort key is valid
func (k SortKey) IsValid() bool {
	switch k {
	case SortByDate, SortByCreated, SortByUpdated, SortByPriority, SortByCategory:
		return true
	default:
		return false
	}
}

// SortState represents the active sort key and direction.
type SortState struct {
	Key        SortKey
	Descending bool
}

// DefaultSort returns the default sort state (date ascending).
func DefaultSort() SortState {
	return SortState{Key: SortByDate}
}

// Stats holds aggregate counts over the status-recalculated reminder
// list. Snoozed reminders count toward Total only.
type Stats struct {
	Total    int `json:"total"`
	Upcoming int `json:"upcoming"`
	Done     int `json:"done"`
	Overdue  int `json:"overdue"`
}

// Preferences holds per-user application preferences.
type Preferences struct {
	Notifications NotificationPreferences `json:"notifications"`
}

// NotificationPreferences holds the notification toggles.
type NotificationPreferences struct {
	ReminderAlerts bool `json:"reminder_alerts"`
}

// Project represents a project a reminder can belong to
type Project struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pattern represents a recurring behavior discovered from the
// reminder history: the same normalized title showing up repeatedly.
type Pattern struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Category    Category  `json:"category"`
	Occurrences int       `json:"occurrences"`
	FirstSeen   time.Time `json:"first_seen"`
	LastSeen    time.Time `json:"last_seen"`
}
