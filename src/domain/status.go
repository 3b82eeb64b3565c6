package domain

import (
	"time"

	"reminder-app/src/dateutil"
)

// CalculateStatus derives a reminder's effective lifecycle state from
// its stored flags, scheduled instant, and the given clock reading.
// It is pure and idempotent: done and snoozed are sticky, everything
// else is recomputed from scratch on every call.
//
// An unparseable date or time falls open to upcoming rather than
// erroring; callers that care should log it.
func CalculateStatus(r Reminder, now time.Time) Status {
	if r.Status.IsTerminal() {
		return r.Status
	}

	due, err := dateutil.CombineDateAndTime(r.ReminderDate, r.ReminderTime)
	if err != nil {
		return StatusUpcoming
	}

	if due.Before(now) {
		return StatusOverdue
	}
	return StatusUpcoming
}

// RecalculateAll returns a copy of the list with every reminder's
// status recomputed against now, plus whether any status changed. The
// input slice is not modified.
func RecalculateAll(reminders []Reminder, now time.Time) ([]Reminder, bool) {
	out := make([]Reminder, len(reminders))
	changed := false
	for i, r := range reminders {
		status := CalculateStatus(r, now)
		if status != r.Status {
			changed = true
		}
		out[i] = r
		out[i].Status = status
	}
	return out, changed
}
