package models

import "time"

// User represents an operator of the platform. Users own projects (cap
// tables); investors are domain records, not login identities.
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	Projects    []Project  `gorm:"foreignKey:OwnerID" json:"projects,omitempty"`
}
