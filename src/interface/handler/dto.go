package handler

import (
	"time"
)

// CreateReminderRequestDTO represents HTTP request for creating a reminder
type CreateReminderRequestDTO struct {
	Title        string  `json:"title" binding:"required,max=200,min=1" validate:"required,max=200,min=1,safe_text,no_sql_injection"`
	Note         string  `json:"note" validate:"omitempty,safe_text,no_sql_injection"`
	Category     string  `json:"category" binding:"required,oneof=personal work health money" validate:"required,oneof=personal work health money"`
	Subcategory  string  `json:"subcategory" binding:"max=50" validate:"omitempty,max=50,safe_subcategory"`
	Priority     string  `json:"priority" binding:"omitempty,oneof=low medium high urgent" validate:"omitempty,oneof=low medium high urgent"`
	ProjectID    *string `json:"project_id,omitempty"`
	ProjectName  string  `json:"project_name" validate:"omitempty,max=100,safe_text"`
	ImageURI     string  `json:"image_uri" validate:"omitempty,max=500"`
	ReminderDate string  `json:"reminder_date" binding:"required" validate:"required,reminder_date"`
	ReminderTime string  `json:"reminder_time" binding:"required" validate:"required,reminder_time"`
}

// UpdateReminderRequestDTO represents HTTP request for updating a reminder
type UpdateReminderRequestDTO struct {
	Title        *string `json:"title,omitempty" binding:"omitempty,max=200" validate:"omitempty,max=200,min=1,safe_text,no_sql_injection"`
	Note         *string `json:"note,omitempty" validate:"omitempty,safe_text,no_sql_injection"`
	Category     *string `json:"category,omitempty" binding:"omitempty,oneof=personal work health money" validate:"omitempty,oneof=personal work health money"`
	Subcategory  *string `json:"subcategory,omitempty" binding:"omitempty,max=50" validate:"omitempty,max=50,safe_subcategory"`
	Priority     *string `json:"priority,omitempty" binding:"omitempty,oneof=low medium high urgent" validate:"omitempty,oneof=low medium high urgent"`
	ProjectID    *string `json:"project_id,omitempty"`
	ProjectName  *string `json:"project_name,omitempty" validate:"omitempty,max=100,safe_text"`
	ImageURI     *string `json:"image_uri,omitempty" validate:"omitempty,max=500"`
	ReminderDate *string `json:"reminder_date,omitempty" validate:"omitempty,reminder_date"`
	ReminderTime *string `json:"reminder_time,omitempty" validate:"omitempty,reminder_time"`
	Status       *string `json:"status,omitempty" binding:"omitempty,oneof=upcoming done overdue snoozed" validate:"omitempty,oneof=upcoming done overdue snoozed"`
}

// ReminderResponseDTO represents HTTP response for a reminder
type ReminderResponseDTO struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Note           string    `json:"note"`
	Category       string    `json:"category"`
	Subcategory    string    `json:"subcategory"`
	Priority       string    `json:"priority,omitempty"`
	ProjectID      *string   `json:"project_id,omitempty"`
	ProjectName    string    `json:"project_name,omitempty"`
	ImageURI       string    `json:"image_uri,omitempty"`
	ReminderDate   string    `json:"reminder_date"`
	ReminderTime   string    `json:"reminder_time"`
	Status         string    `json:"status"`
	NotificationID string    `json:"notification_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ReminderListResponseDTO represents HTTP response for a reminder list
type ReminderListResponseDTO struct {
	Reminders []ReminderResponseDTO `json:"reminders"`
	Total     int                   `json:"total"`
}

// ReminderFilterDTO represents HTTP query parameters for filtering reminders
type ReminderFilterDTO struct {
	Status    string `form:"status" binding:"omitempty,oneof=all upcoming done overdue snoozed" validate:"omitempty,oneof=all upcoming done overdue snoozed"`
	Category  string `form:"category" binding:"omitempty,oneof=all personal work health money" validate:"omitempty,oneof=all personal work health money"`
	ProjectID string `form:"project_id"`
	DateFrom  string `form:"date_from" validate:"omitempty,reminder_date"`
	DateTo    string `form:"date_to" validate:"omitempty,reminder_date"`
	Search    string `form:"search" validate:"omitempty,max=200,safe_text,no_sql_injection"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=date created updated priority category" validate:"omitempty,oneof=date created updated priority category"`
	Order     string `form:"order" binding:"omitempty,oneof=asc desc" validate:"omitempty,oneof=asc desc"`
}

// StatsResponseDTO represents HTTP response for reminder statistics
type StatsResponseDTO struct {
	Total    int `json:"total"`
	Upcoming int `json:"upcoming"`
	Done     int `json:"done"`
	Overdue  int `json:"overdue"`
}

// BulkDeleteRequestDTO represents HTTP request for bulk deletion
type BulkDeleteRequestDTO struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// CreateProjectRequestDTO represents HTTP request for creating a project
type CreateProjectRequestDTO struct {
	Name  string `json:"name" binding:"required,max=100,min=1" validate:"required,max=100,min=1,safe_text"`
	Color string `json:"color" binding:"max=20" validate:"omitempty,max=20"`
}

// UpdateProjectRequestDTO represents HTTP request for updating a project
type UpdateProjectRequestDTO struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,max=100" validate:"omitempty,max=100,min=1,safe_text"`
	Color *string `json:"color,omitempty" binding:"omitempty,max=20" validate:"omitempty,max=20"`
}

// ProjectResponseDTO represents HTTP response for a project
type ProjectResponseDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PatternResponseDTO represents HTTP response for a discovered pattern
type PatternResponseDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Occurrences int       `json:"occurrences"`
	FirstSeen   time.Time `json:"first_seen"`
	LastSeen    time.Time `json:"last_seen"`
}

// RegisterRequestDTO 新規登録リクエスト
type RegisterRequestDTO struct {
	Username string `json:"username" binding:"required,min=3,max=50" validate:"required,min=3,max=50,safe_text"`
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128" validate:"required,min=8,max=128"`
}

// LoginRequestDTO ログインリクエスト
type LoginRequestDTO struct {
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required,min=8" validate:"required,min=8"`
}

// RefreshTokenRequestDTO リフレッシュトークンリクエスト
type RefreshTokenRequestDTO struct {
	RefreshToken string `json:"refresh_token" binding:"required" validate:"required"`
}

// AuthResponseDTO 認証レスポンス
type AuthResponseDTO struct {
	User         interface{} `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"` // 秒単位
}

// ErrorResponseDTO represents HTTP error response
type ErrorResponseDTO struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
