package models

import (
	"time"

	"gorm.io/gorm"
)

// Answer is an append-only submission event. Users may answer the same
// question repeatedly; every submission is recorded but only the first
// one per (user, question) pair feeds TopicProgress.
type Answer struct {
	gorm.Model
	UserID     uint   `gorm:"index;not null"`
	QuestionID uint   `gorm:"index;not null"`
	UserOption string // A, B, C or D
	IsCorrect  bool
	TimeSpent  int // seconds
}

// TopicProgress holds the cumulative counters for one (user, topic) pair.
// The composite unique index backs the atomic insert-or-increment upsert,
// so concurrent first attempts in the same topic cannot lose updates.
type TopicProgress struct {
	gorm.Model
	UserID             uint `gorm:"not null;uniqueIndex:idx_user_topic"`
	TopicID            uint `gorm:"not null;uniqueIndex:idx_user_topic"`
	QuestionsAttempted int  `gorm:"default:0"`
	QuestionsCorrect   int  `gorm:"default:0"`
	TotalTimeSpent     int  `gorm:"default:0"` // seconds
	LastUpdated        time.Time
}
