package usecase_test

import (
	"testing"
	"time"

	"reminder-app/src/domain"
	"reminder-app/src/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleReminders() []domain.Reminder {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	return []domain.Reminder{
		{
			ID: "r1", Title: "Pay rent", Note: "transfer before noon",
			Category: domain.CategoryMoney, Priority: domain.PriorityUrgent,
			ReminderDate: "2026-08-01", ReminderTime: "09:00",
			Status:    domain.StatusOverdue,
			CreatedAt: base, UpdatedAt: base.Add(4 * time.Hour),
		},
		{
			ID: "r2", Title: "Dentist appointment", Subcategory: "checkup",
			Category: domain.CategoryHealth, Priority: domain.PriorityHigh,
			ProjectID: strPtr("p1"), ProjectName: "Health 2026",
			ReminderDate: "2026-08-10", ReminderTime: "14:00",
			Status:    domain.StatusUpcoming,
			CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(3 * time.Hour),
		},
		{
			ID: "r3", Title: "Weekly review", Note: "plan the sprint",
			Category: domain.CategoryWork, Priority: domain.PriorityMedium,
			ProjectID: strPtr("p2"), ProjectName: "Sprint board",
			ReminderDate: "2026-08-20", ReminderTime: "17:00",
			Status:    domain.StatusDone,
			CreatedAt: base.Add(2 * time.Hour), UpdatedAt: base.Add(2 * time.Hour),
		},
		{
			ID: "r4", Title: "Call mom",
			Category: domain.CategoryPersonal,
			ReminderDate: "2026-08-30", ReminderTime: "19:00",
			Status:    domain.StatusSnoozed,
			CreatedAt: base.Add(3 * time.Hour), UpdatedAt: base.Add(time.Hour),
		},
	}
}

func ids(reminders []domain.Reminder) []string {
	out := make([]string, len(reminders))
	for i, r := range reminders {
		out[i] = r.ID
	}
	return out
}

func TestApplyFiltersDefaultIsIdentity(t *testing.T) {
	// サンプルは日付昇順に並んでいるため、デフォルトのフィルタと
	// ソートでは入力順がそのまま返る
	reminders := sampleReminders()
	got := usecase.ApplyFilters(reminders, domain.DefaultFilter(), domain.DefaultSort())
	assert.Equal(t, ids(reminders), ids(got))
}

func TestApplyFiltersDoesNotModifyInput(t *testing.T) {
	reminders := sampleReminders()
	usecase.ApplyFilters(reminders, domain.DefaultFilter(), domain.SortState{Key: domain.SortByDate, Descending: true})
	assert.Equal(t, "r1", reminders[0].ID)
	assert.Equal(t, "r4", reminders[3].ID)
}

func TestApplyFiltersByStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.StatusFilter
		expected []string
	}{
		{name: "all matches everything", status: domain.StatusFilterAll, expected: []string{"r1", "r2", "r3", "r4"}},
		{name: "empty matches everything", status: "", expected: []string{"r1", "r2", "r3", "r4"}},
		{name: "upcoming only", status: "upcoming", expected: []string{"r2"}},
		{name: "overdue only", status: "overdue", expected: []string{"r1"}},
		{name: "done only", status: "done", expected: []string{"r3"}},
		{name: "snoozed only", status: "snoozed", expected: []string{"r4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := domain.DefaultFilter()
			filter.Status = tt.status
			got := usecase.ApplyFilters(sampleReminders(), filter, domain.DefaultSort())
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestApplyFiltersByCategory(t *testing.T) {
	filter := domain.DefaultFilter()
	filter.Category = "health"
	got := usecase.ApplyFilters(sampleReminders(), filter, domain.DefaultSort())
	assert.Equal(t, []string{"r2"}, ids(got))
}

func TestApplyFiltersByProject(t *testing.T) {
	filter := domain.DefaultFilter()
	filter.ProjectID = strPtr("p1")
	got := usecase.ApplyFilters(sampleReminders(), filter, domain.DefaultSort())
	assert.Equal(t, []string{"r2"}, ids(got))

	// プロジェクト未設定のリマインダーはマッチしない
	filter.ProjectID = strPtr("nope")
	got = usecase.ApplyFilters(sampleReminders(), filter, domain.DefaultSort())
	assert.Empty(t, got)
}

func TestApplyFiltersByDateRange(t *testing.T) {
	t.Run("inclusive on both ends", func(t *testing.T) {
		filter := domain.DefaultFilter()
		filter.DateFrom = strPtr("2026-08-10")
		filter.DateTo = strPtr("2026-08-20")
		got := usecase.ApplyFilters(sampleReminders(), filter, domain.DefaultSort())
		assert.Equal(t, []string{"r2", "r3"}, ids(got))
	})

	t.Run("from only", func(t *testing.T) {
		filter := domain.DefaultFilter()
		filter.DateFrom = strPtr("2026-08-15")
		got := usecase.ApplyFilters(sampleReminders(), filter, domain.DefaultSort())
		assert.Equal(t, []string{"r3", "r4"}, ids(got))
	})

	t.Run("to only", func(t *testing.T) {
		filter := domain.DefaultFilter()
		filter.DateTo = strPtr("2026-08-01")
		got := usecase.ApplyFilters(sampleReminders(), filter, domain.DefaultSort())
		assert.Equal(t, []string{"r1"}, ids(got))
	})

	t.Run("unparseable reminder date is excluded when a range is set", func(t *testing.T) {
		reminders := sampleReminders()
		reminders[0].ReminderDate = "garbage"

		filter := domain.DefaultFilter()
		filter.DateFrom = strPtr("2026-08-01")
		got := usecase.ApplyFilters(reminders, filter, domain.DefaultSort())
		assert.NotContains(t, ids(got), "r1")

		// 範囲なしなら含まれる
		got = usecase.ApplyFilters(reminders, domain.DefaultFilter(), domain.DefaultSort())
		assert.Contains(t, ids(got), "r1")
	})
}

func TestApplyFiltersBySearch(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		expected []string
	}{
		{name: "title match case-insensitive", search: "PAY RENT", expected: []string{"r1"}},
		{name: "note match", search: "sprint", expected: []string{"r3"}},
		{name: "subcategory match", search: "checkup", expected: []string{"r2"}},
		{name: "project name match", search: "health 2026", expected: []string{"r2"}},
		{name: "substring match", search: "mom", expected: []string{"r4"}},
		{name: "no match", search: "zzz", expected: nil},
		{name: "blank search matches everything", search: "   ", expected: []string{"r1", "r2", "r3", "r4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := domain.DefaultFilter()
			filter.Search = tt.search
			got := usecase.ApplyFilters(sampleReminders(), filter, domain.DefaultSort())
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestApplyFiltersComposition(t *testing.T) {
	// 全フィルタ条件のAND結合
	filter := domain.FilterState{
		Status:    "upcoming",
		Category:  "health",
		ProjectID: strPtr("p1"),
		DateFrom:  strPtr("2026-08-01"),
		DateTo:    strPtr("2026-08-31"),
		Search:    "dentist",
	}
	got := usecase.ApplyFilters(sampleReminders(), filter, domain.DefaultSort())
	require.Len(t, got, 1)
	assert.Equal(t, "r2", got[0].ID)

	// 1条件でも外れると空
	filter.Status = "done"
	got = usecase.ApplyFilters(sampleReminders(), filter, domain.DefaultSort())
	assert.Empty(t, got)
}

func TestSortKeys(t *testing.T) {
	tests := []struct {
		name     string
		sort     domain.SortState
		expected []string
	}{
		{name: "date ascending", sort: domain.SortState{Key: domain.SortByDate}, expected: []string{"r1", "r2", "r3", "r4"}},
		{name: "date descending", sort: domain.SortState{Key: domain.SortByDate, Descending: true}, expected: []string{"r4", "r3", "r2", "r1"}},
		{name: "created ascending", sort: domain.SortState{Key: domain.SortByCreated}, expected: []string{"r1", "r2", "r3", "r4"}},
		{name: "updated ascending", sort: domain.SortState{Key: domain.SortByUpdated}, expected: []string{"r4", "r3", "r2", "r1"}},
		{name: "priority ascending weighs none lowest", sort: domain.SortState{Key: domain.SortByPriority}, expected: []string{"r4", "r3", "r2", "r1"}},
		{name: "priority descending weighs urgent highest", sort: domain.SortState{Key: domain.SortByPriority, Descending: true}, expected: []string{"r1", "r2", "r3", "r4"}},
		{name: "category ascending is lexicographic", sort: domain.SortState{Key: domain.SortByCategory}, expected: []string{"r2", "r1", "r4", "r3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.ApplyFilters(sampleReminders(), domain.DefaultFilter(), tt.sort)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestSortDescendingReversesAscending(t *testing.T) {
	// キーが互いに異なる場合、降順は昇順の逆順になる
	keys := []domain.SortKey{
		domain.SortByDate,
		domain.SortByCreated,
		domain.SortByUpdated,
		domain.SortByPriority,
		domain.SortByCategory,
	}

	for _, key := range keys {
		asc := usecase.ApplyFilters(sampleReminders(), domain.DefaultFilter(), domain.SortState{Key: key})
		desc := usecase.ApplyFilters(sampleReminders(), domain.DefaultFilter(), domain.SortState{Key: key, Descending: true})

		require.Len(t, desc, len(asc))
		for i := range asc {
			assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID, "key %s index %d", key, i)
		}
	}
}

func TestSortIsStable(t *testing.T) {
	// 同一キーのリマインダーは入力順を保つ
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	reminders := []domain.Reminder{
		{ID: "a", Category: domain.CategoryWork, Priority: domain.PriorityHigh, ReminderDate: "2026-08-10", ReminderTime: "09:00", CreatedAt: base, UpdatedAt: base},
		{ID: "b", Category: domain.CategoryWork, Priority: domain.PriorityHigh, ReminderDate: "2026-08-10", ReminderTime: "09:00", CreatedAt: base, UpdatedAt: base},
		{ID: "c", Category: domain.CategoryWork, Priority: domain.PriorityHigh, ReminderDate: "2026-08-10", ReminderTime: "09:00", CreatedAt: base, UpdatedAt: base},
	}

	for _, key := range []domain.SortKey{domain.SortByDate, domain.SortByPriority, domain.SortByCategory} {
		got := usecase.ApplyFilters(reminders, domain.DefaultFilter(), domain.SortState{Key: key})
		assert.Equal(t, []string{"a", "b", "c"}, ids(got), "key %s", key)
	}
}

func TestSortUnparseableScheduleSortsFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	reminders := []domain.Reminder{
		{ID: "ok", ReminderDate: "2026-08-10", ReminderTime: "09:00", Category: domain.CategoryWork, CreatedAt: base, UpdatedAt: base},
		{ID: "broken", ReminderDate: "garbage", ReminderTime: "09:00", Category: domain.CategoryWork, CreatedAt: base, UpdatedAt: base},
	}

	got := usecase.ApplyFilters(reminders, domain.DefaultFilter(), domain.SortState{Key: domain.SortByDate})
	assert.Equal(t, []string{"broken", "ok"}, ids(got))
}

func TestComputeStats(t *testing.T) {
	stats := usecase.ComputeStats(sampleReminders())
	assert.Equal(t, domain.Stats{Total: 4, Upcoming: 1, Done: 1, Overdue: 1}, stats)
}

func TestComputeStatsSnoozedCountsTotalOnly(t *testing.T) {
	reminders := []domain.Reminder{
		{ID: "a", Status: domain.StatusSnoozed},
		{ID: "b", Status: domain.StatusSnoozed},
	}
	stats := usecase.ComputeStats(reminders)
	assert.Equal(t, domain.Stats{Total: 2}, stats)
}

func TestComputeStatsEmpty(t *testing.T) {
	assert.Equal(t, domain.Stats{}, usecase.ComputeStats(nil))
}
