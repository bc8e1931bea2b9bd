package models

import "gorm.io/gorm"

const (
	ActivityQuestionAnswered      = "question_answered"
	ActivityLogin                 = "login"
	ActivityPasswordChanged       = "password_changed"
	ActivityProfileUpdated        = "profile_updated"
	ActivitySubscriptionActivated = "subscription_activated"
)

// Activity is the append-only audit trail of user actions.
type Activity struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null"`
	Type    string `gorm:"index;not null"`
	TopicID *uint  `gorm:"index"`
	Detail  string // JSON payload, shape depends on Type
}

// ErrorLog records server-side failures (5xx responses) for the admin console.
type ErrorLog struct {
	gorm.Model
	Method     string `json:"method"`
	Path       string `json:"path"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	UserID     *uint  `json:"user_id"`
}
