package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"reminder-app/src/domain"

	"github.com/google/uuid"
)

// patternThreshold is the minimum number of occurrences of one
// normalized title before it counts as a pattern.
const patternThreshold = 3

// PatternUsecase derives recurring patterns from a user's reminder
// history and persists the derived set.
type PatternUsecase interface {
	List(ctx context.Context, userID string) ([]domain.Pattern, error)
	Refresh(ctx context.Context, userID string) ([]domain.Pattern, error)
}

type patternUsecase struct {
	patternRepo  domain.PatternRepository
	reminderRepo domain.ReminderRepository
}

// NewPatternUsecase creates a new pattern usecase
func NewPatternUsecase(patternRepo domain.PatternRepository, reminderRepo domain.ReminderRepository) PatternUsecase {
	return &patternUsecase{patternRepo: patternRepo, reminderRepo: reminderRepo}
}

func (u *patternUsecase) List(ctx context.Context, userID string) ([]domain.Pattern, error) {
	return u.patternRepo.List(ctx, userID)
}

// Refresh re-derives the user's patterns from the full reminder list
// and replaces the stored set.
func (u *patternUsecase) Refresh(ctx context.Context, userID string) ([]domain.Pattern, error) {
	reminders, err := u.reminderRepo.GetReminders(ctx, userID)
	if err != nil {
		return nil, err
	}

	patterns := DiscoverPatterns(userID, reminders)
	if err := u.patternRepo.Replace(ctx, userID, patterns); err != nil {
		return nil, err
	}
	return patterns, nil
}

// DiscoverPatterns groups reminders by normalized title and reports
// every title that recurs at least patternThreshold times, ordered by
// occurrence count descending then title.
func DiscoverPatterns(userID string, reminders []domain.Reminder) []domain.Pattern {
	type bucket struct {
		title     string
		category  domain.Category
		count     int
		firstSeen time.Time
		lastSeen  time.Time
	}

	buckets := make(map[string]*bucket)
	for _, r := range reminders {
		key := strings.ToLower(strings.TrimSpace(r.Title))
		if key == "" {
			continue
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{title: r.Title, category: r.Category, firstSeen: r.CreatedAt, lastSeen: r.CreatedAt}
			buckets[key] = b
		}
		b.count++
		if r.CreatedAt.Before(b.firstSeen) {
			b.firstSeen = r.CreatedAt
		}
		if r.CreatedAt.After(b.lastSeen) {
			b.lastSeen = r.CreatedAt
			// 最新のカテゴリを採用
			b.category = r.Category
		}
	}

	var patterns []domain.Pattern
	for _, b := range buckets {
		if b.count < patternThreshold {
			continue
		}
		patterns = append(patterns, domain.Pattern{
			ID:          uuid.NewString(),
			UserID:      userID,
			Title:       b.title,
			Category:    b.category,
			Occurrences: b.count,
			FirstSeen:   b.firstSeen,
			LastSeen:    b.lastSeen,
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Occurrences != patterns[j].Occurrences {
			return patterns[i].Occurrences > patterns[j].Occurrences
		}
		return patterns[i].Title < patterns[j].Title
	})

	return patterns
}
