package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User roles. Managers additionally see team dashboards.
const (
	RoleRep     = "rep"
	RoleManager = "manager"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex"`
	Password  string
	FirstName string
	LastName  string
	Role      string `gorm:"default:rep"`
	Team      string `gorm:"index"`

	// XP is the single persisted driver of the displayed level; the level
	// tuple is always derived, never stored.
	XP int64 `gorm:"not null;default:0"`

	EmailNotifications bool
	ReminderTime       string // HH:MM, stored in UTC
	TimeZone           string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}
