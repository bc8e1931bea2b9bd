package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:student"` // student, admin
	Plan         string `gorm:"default:free"`    // free, premium
	PlanExpires  *time.Time
}

// IsSubscribed reports whether the user currently holds an active paid plan.
func (u *User) IsSubscribed() bool {
	return u.Plan == "premium" && u.PlanExpires != nil && u.PlanExpires.After(time.Now())
}
