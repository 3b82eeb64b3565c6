package domain_test

import (
	"testing"
	"time"

	"reminder-app/src/domain"

	"github.com/stretchr/testify/assert"
)

func TestCalculateStatus(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		reminder domain.Reminder
		expected domain.Status
	}{
		{
			name: "future schedule is upcoming",
			reminder: domain.Reminder{
				ReminderDate: "2026-12-01",
				ReminderTime: "09:00",
				Status:       domain.StatusUpcoming,
			},
			expected: domain.StatusUpcoming,
		},
		{
			name: "past schedule is overdue",
			reminder: domain.Reminder{
				ReminderDate: "2026-01-01",
				ReminderTime: "09:00",
				Status:       domain.StatusUpcoming,
			},
			expected: domain.StatusOverdue,
		},
		{
			name: "earlier today is overdue",
			reminder: domain.Reminder{
				ReminderDate: "2026-08-23",
				ReminderTime: "08:00",
				Status:       domain.StatusUpcoming,
			},
			expected: domain.StatusOverdue,
		},
		{
			name: "done stays done even with a past schedule",
			reminder: domain.Reminder{
				ReminderDate: "2020-01-01",
				ReminderTime: "09:00",
				Status:       domain.StatusDone,
			},
			expected: domain.StatusDone,
		},
		{
			name: "snoozed stays snoozed even with a future schedule",
			reminder: domain.Reminder{
				ReminderDate: "2027-01-01",
				ReminderTime: "09:00",
				Status:       domain.StatusSnoozed,
			},
			expected: domain.StatusSnoozed,
		},
		{
			name: "stale overdue flips back to upcoming when rescheduled",
			reminder: domain.Reminder{
				ReminderDate: "2026-12-01",
				ReminderTime: "09:00",
				Status:       domain.StatusOverdue,
			},
			expected: domain.StatusUpcoming,
		},
		{
			name: "unparseable date falls open to upcoming",
			reminder: domain.Reminder{
				ReminderDate: "not-a-date",
				ReminderTime: "09:00",
				Status:       domain.StatusOverdue,
			},
			expected: domain.StatusUpcoming,
		},
		{
			name: "unparseable time falls open to upcoming",
			reminder: domain.Reminder{
				ReminderDate: "2026-01-01",
				ReminderTime: "25:99",
				Status:       domain.StatusOverdue,
			},
			expected: domain.StatusUpcoming,
		},
		{
			name: "due exactly now is upcoming",
			reminder: domain.Reminder{
				ReminderDate: "2026-08-23",
				ReminderTime: "12:00",
				Status:       domain.StatusUpcoming,
			},
			expected: domain.StatusUpcoming,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.CalculateStatus(tt.reminder, now))
		})
	}
}

func TestCalculateStatusIsIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	reminders := []domain.Reminder{
		{ReminderDate: "2026-01-01", ReminderTime: "09:00", Status: domain.StatusUpcoming},
		{ReminderDate: "2026-12-01", ReminderTime: "09:00", Status: domain.StatusOverdue},
		{ReminderDate: "2020-01-01", ReminderTime: "09:00", Status: domain.StatusDone},
		{ReminderDate: "garbage", ReminderTime: "09:00", Status: domain.StatusUpcoming},
	}

	for _, r := range reminders {
		first := domain.CalculateStatus(r, now)
		r.Status = first
		second := domain.CalculateStatus(r, now)
		assert.Equal(t, first, second)
	}
}

func TestRecalculateAll(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	t.Run("reports change when a status drifts", func(t *testing.T) {
		input := []domain.Reminder{
			{ID: "a", ReminderDate: "2026-01-01", ReminderTime: "09:00", Status: domain.StatusUpcoming},
			{ID: "b", ReminderDate: "2026-12-01", ReminderTime: "09:00", Status: domain.StatusUpcoming},
		}

		out, changed := domain.RecalculateAll(input, now)
		assert.True(t, changed)
		assert.Equal(t, domain.StatusOverdue, out[0].Status)
		assert.Equal(t, domain.StatusUpcoming, out[1].Status)

		// 入力スライスは変更されない
		assert.Equal(t, domain.StatusUpcoming, input[0].Status)
	})

	t.Run("no change when everything is current", func(t *testing.T) {
		input := []domain.Reminder{
			{ID: "a", ReminderDate: "2026-12-01", ReminderTime: "09:00", Status: domain.StatusUpcoming},
			{ID: "b", ReminderDate: "2020-01-01", ReminderTime: "09:00", Status: domain.StatusDone},
		}

		out, changed := domain.RecalculateAll(input, now)
		assert.False(t, changed)
		assert.Equal(t, input, out)
	})

	t.Run("empty list", func(t *testing.T) {
		out, changed := domain.RecalculateAll(nil, now)
		assert.False(t, changed)
		assert.Empty(t, out)
	})
}

func TestPriorityWeight(t *testing.T) {
	assert.Equal(t, 4, domain.PriorityUrgent.Weight())
	assert.Equal(t, 3, domain.PriorityHigh.Weight())
	assert.Equal(t, 2, domain.PriorityMedium.Weight())
	assert.Equal(t, 1, domain.PriorityLow.Weight())
	assert.Equal(t, 0, domain.Priority("").Weight())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, domain.StatusDone.IsTerminal())
	assert.True(t, domain.StatusSnoozed.IsTerminal())
	assert.False(t, domain.StatusUpcoming.IsTerminal())
	assert.False(t, domain.StatusOverdue.IsTerminal())
}
