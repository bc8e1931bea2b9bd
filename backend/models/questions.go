package models

import "gorm.io/gorm"

type Question struct {
	gorm.Model
	TopicID       uint  `gorm:"index;not null"`
	ChapterID     *uint `gorm:"index"`
	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       *string // nil for legacy 3-option questions
	CorrectOption string  // A, B, C or D
	Difficulty    int     `gorm:"default:1;check:difficulty>=1 AND difficulty<=3"`
}

// HasOption reports whether the given letter addresses an option this
// question actually carries.
func (q *Question) HasOption(letter string) bool {
	switch letter {
	case "A", "B", "C":
		return true
	case "D":
		return q.OptionD != nil
	}
	return false
}

type PracticeSet struct {
	gorm.Model
	TopicID     uint `gorm:"index;not null"`
	Title       string
	Description string
	QuestionIDs string // JSON array of question IDs
}
