package security

import (
	"fmt"
	"regexp"
	"strings"
)

// InputSanitizer validates free-text query inputs before they reach
// the filter pipeline.
type InputSanitizer struct {
	// 危険な入力パターン
	dangerousPatterns []*regexp.Regexp
}

// NewInputSanitizer creates a new input sanitizer
func NewInputSanitizer() *InputSanitizer {
	patterns := []*regexp.Regexp{
		// SQLインジェクション攻撃パターン
		regexp.MustCompile(`(?i)(^|\s)(union|select|insert|update|delete|drop|create|alter|exec|execute|declare|grant|revoke|truncate)\s`),
		regexp.MustCompile(`(?i)(--|/\*|\*/|;)`),
		regexp.MustCompile(`(?i)(<script|javascript:|onload\s*=|onerror\s*=)`),
		regexp.MustCompile(`(?i)(xp_|sp_|information_schema|pg_catalog)`),
	}

	return &InputSanitizer{
		dangerousPatterns: patterns,
	}
}

// ValidateSearchQuery validates a free-text search query
func (s *InputSanitizer) ValidateSearchQuery(query string) error {
	if query == "" {
		return nil
	}

	// 長さチェック
	if len(query) > 200 {
		return fmt.Errorf("search query too long (max: 200 characters)")
	}

	// 危険なパターンをチェック
	for _, pattern := range s.dangerousPatterns {
		if pattern.MatchString(query) {
			return fmt.Errorf("potentially dangerous pattern detected in search query")
		}
	}

	return nil
}

// SanitizeSearchQuery normalizes a search query: trims whitespace and
// collapses runs of whitespace to single spaces.
func (s *InputSanitizer) SanitizeSearchQuery(query string) string {
	sanitized := strings.TrimSpace(query)
	sanitized = regexp.MustCompile(`\s+`).ReplaceAllString(sanitized, " ")
	return sanitized
}

// ValidateDateRange validates from/to date range strings for obviously
// malformed input before the filter layer parses them.
func (s *InputSanitizer) ValidateDateRange(from, to string) error {
	datePattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	if from != "" && !datePattern.MatchString(from) {
		return fmt.Errorf("invalid from date: %s", from)
	}
	if to != "" && !datePattern.MatchString(to) {
		return fmt.Errorf("invalid to date: %s", to)
	}
	if from != "" && to != "" && from > to {
		return fmt.Errorf("from date is after to date")
	}
	return nil
}
