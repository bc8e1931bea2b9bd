package models

import "gorm.io/gorm"

type Payment struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	Plan      string // premium
	Amount    int    // smallest currency unit
	Currency  string `gorm:"default:INR"`
	OrderID   string `gorm:"uniqueIndex"`
	PaymentID string
	Receipt   string
	Status    string `gorm:"default:created"` // created, paid, failed
}
