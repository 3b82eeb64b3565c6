package validator

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"reminder-app/src/dateutil"

	"github.com/go-playground/validator/v10"
)

// CustomValidator は拡張バリデーション機能を提供
type CustomValidator struct {
	validator           *validator.Validate
	subcategoryPattern  *regexp.Regexp
	sqlInjectionPattern *regexp.Regexp
}

// ValidationError はバリデーションエラーの詳細情報
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// ValidationErrors は複数のバリデーションエラー
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (ve ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %d errors", len(ve.Errors))
}

// NewCustomValidator creates a new custom validator instance
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	cv := &CustomValidator{
		validator:           v,
		subcategoryPattern:  regexp.MustCompile(`^[a-zA-Z0-9_\- ]*$`),
		sqlInjectionPattern: regexp.MustCompile(`(?i)(\bunion\s+select\b|\bselect\s+.*\bfrom\b|\binsert\s+into\b|\bupdate\s+.*\bset\b|\bdelete\s+from\b|\bdrop\s+table\b|\bexec\s*\(|<script|</script>|onload\s*=|onerror\s*=|--|/\*|\*/)`),
	}

	// カスタムバリデーションルールを登録
	v.RegisterValidation("safe_text", cv.validateSafeText)
	v.RegisterValidation("safe_subcategory", cv.validateSafeSubcategory)
	v.RegisterValidation("no_sql_injection", cv.validateNoSQLInjection)
	v.RegisterValidation("reminder_date", validateReminderDate)
	v.RegisterValidation("reminder_time", validateReminderTime)

	return cv
}

// Validate validates a struct and returns detailed error information
func (cv *CustomValidator) Validate(s interface{}) error {
	if err := cv.validator.Struct(s); err != nil {
		var validationErrors []ValidationError

		for _, err := range err.(validator.ValidationErrors) {
			ve := ValidationError{
				Field: err.Field(),
				Tag:   err.Tag(),
				Value: err.Value(),
			}
			ve.Message = cv.generateErrorMessage(err)
			validationErrors = append(validationErrors, ve)
		}

		return ValidationErrors{Errors: validationErrors}
	}
	return nil
}

// SanitizeInput sanitizes input data to prevent XSS and other attacks
func (cv *CustomValidator) SanitizeInput(input string) string {
	// HTMLエスケープ
	sanitized := html.EscapeString(input)

	// 前後の空白を除去
	sanitized = strings.TrimSpace(sanitized)

	// 連続する空白を単一の空白に変換
	sanitized = regexp.MustCompile(`\s+`).ReplaceAllString(sanitized, " ")

	return sanitized
}

// カスタムバリデーション関数

func (cv *CustomValidator) validateSafeText(fl validator.FieldLevel) bool {
	value := fl.Field().String()

	if cv.sqlInjectionPattern.MatchString(value) {
		return false
	}

	// タブ、改行、復帰以外の制御文字を拒否
	for _, r := range value {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return false
		}
	}

	return true
}

func (cv *CustomValidator) validateSafeSubcategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 任意フィールド
	}

	return cv.subcategoryPattern.MatchString(value) && !cv.sqlInjectionPattern.MatchString(value)
}

func (cv *CustomValidator) validateNoSQLInjection(fl validator.FieldLevel) bool {
	return !cv.sqlInjectionPattern.MatchString(fl.Field().String())
}

// validateReminderDate checks the YYYY-MM-DD (or other supported) date format
func validateReminderDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // requiredタグ側で処理
	}
	_, err := dateutil.ParseDate(value)
	return err == nil
}

// validateReminderTime checks the HH:MM time format
func validateReminderTime(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, _, err := dateutil.ParseTime(value)
	return err == nil
}

// generateErrorMessage generates user-friendly error messages
func (cv *CustomValidator) generateErrorMessage(err validator.FieldError) string {
	field := err.Field()
	tag := err.Tag()
	value := err.Value()

	switch tag {
	case "required":
		return fmt.Sprintf("%s は必須項目です", field)
	case "max":
		return fmt.Sprintf("%s は %s 文字以下で入力してください", field, err.Param())
	case "min":
		return fmt.Sprintf("%s は %s 文字以上で入力してください", field, err.Param())
	case "oneof":
		return fmt.Sprintf("%s は有効な値を選択してください (許可された値: %s)", field, err.Param())
	case "safe_text":
		return fmt.Sprintf("%s に不正な文字が含まれています", field)
	case "safe_subcategory":
		return fmt.Sprintf("%s は英数字、ハイフン、アンダースコアのみ使用できます", field)
	case "no_sql_injection":
		return fmt.Sprintf("%s に危険なパターンが検出されました", field)
	case "reminder_date":
		return fmt.Sprintf("%s はYYYY-MM-DD形式で入力してください", field)
	case "reminder_time":
		return fmt.Sprintf("%s はHH:MM形式で入力してください", field)
	default:
		return fmt.Sprintf("%s が無効です (値: %v)", field, value)
	}
}
