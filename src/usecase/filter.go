package usecase

import (
	"sort"
	"strings"
	"time"

	"reminder-app/src/dateutil"
	"reminder-app/src/domain"
)

// ApplyFilters returns the filtered and sorted projection of a
// reminder list. Filters apply in order: status, category, project,
// inclusive date range on the reminder's date field, then a
// case-insensitive substring search across title, note, subcategory,
// and project name. The sort is stable, so the all-pass filter with
// equal keys preserves input order.
//
// The input slice is not modified; statuses are assumed to be already
// recalculated by the store.
func ApplyFilters(reminders []domain.Reminder, filter domain.FilterState, sortState domain.SortState) []domain.Reminder {
	out := make([]domain.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if matchesFilter(r, filter) {
			out = append(out, r)
		}
	}
	sortReminders(out, sortState)
	return out
}

// ComputeStats counts reminders per current status. Snoozed reminders
// contribute to the total only.
func ComputeStats(reminders []domain.Reminder) domain.Stats {
	stats := domain.Stats{Total: len(reminders)}
	for _, r := range reminders {
		switch r.Status {
		case domain.StatusUpcoming:
			stats.Upcoming++
		case domain.StatusDone:
			stats.Done++
		case domain.StatusOverdue:
			stats.Overdue++
		}
	}
	return stats
}

func matchesFilter(r domain.Reminder, f domain.FilterState) bool {
	if f.Status != "" && f.Status != domain.StatusFilterAll && string(f.Status) != string(r.Status) {
		return false
	}

	if f.Category != "" && f.Category != domain.CategoryFilterAll && string(f.Category) != string(r.Category) {
		return false
	}

	if f.ProjectID != nil {
		if r.ProjectID == nil || *r.ProjectID != *f.ProjectID {
			return false
		}
	}

	if f.DateFrom != nil || f.DateTo != nil {
		day, err := dateutil.ParseDate(r.ReminderDate)
		if err != nil {
			return false
		}
		if f.DateFrom != nil {
			from, err := dateutil.ParseDate(*f.DateFrom)
			if err == nil && day.Before(from) {
				return false
			}
		}
		if f.DateTo != nil {
			to, err := dateutil.ParseDate(*f.DateTo)
			// 終端日はその日全体を含む
			if err == nil && day.After(to.Add(24*time.Hour-time.Nanosecond)) {
				return false
			}
		}
	}

	if q := strings.TrimSpace(f.Search); q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(r.Title), q) &&
			!strings.Contains(strings.ToLower(r.Note), q) &&
			!strings.Contains(strings.ToLower(r.Subcategory), q) &&
			!strings.Contains(strings.ToLower(r.ProjectName), q) {
			return false
		}
	}

	return true
}

func sortReminders(reminders []domain.Reminder, s domain.SortState) {
	less := lessFunc(s.Key, reminders)
	if s.Descending {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(reminders, less)
}

func lessFunc(key domain.SortKey, reminders []domain.Reminder) func(i, j int) bool {
	switch key {
	case domain.SortByCreated:
		return func(i, j int) bool { return reminders[i].CreatedAt.Before(reminders[j].CreatedAt) }
	case domain.SortByUpdated:
		return func(i, j int) bool { return reminders[i].UpdatedAt.Before(reminders[j].UpdatedAt) }
	case domain.SortByPriority:
		return func(i, j int) bool { return reminders[i].Priority.Weight() < reminders[j].Priority.Weight() }
	case domain.SortByCategory:
		return func(i, j int) bool { return reminders[i].Category < reminders[j].Category }
	default: // SortByDate
		return func(i, j int) bool { return dueInstant(reminders[i]).Before(dueInstant(reminders[j])) }
	}
}

// dueInstant combines date and time; unparseable schedules sort as the
// zero instant.
func dueInstant(r domain.Reminder) time.Time {
	t, err := dateutil.CombineDateAndTime(r.ReminderDate, r.ReminderTime)
	if err != nil {
		return time.Time{}
	}
	return t
}
