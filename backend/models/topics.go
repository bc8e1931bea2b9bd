package models

import "gorm.io/gorm"

type Topic struct {
	gorm.Model
	Name         string `gorm:"unique;not null"`
	Description  string
	DisplayOrder int
	Chapters     []Chapter
}

type Chapter struct {
	gorm.Model
	TopicID       uint `gorm:"index;not null"`
	Title         string
	Description   string
	SequenceOrder int
}
