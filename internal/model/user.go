package model

import "time"

// Role identifies which part of the campus workflow a user belongs to.
type Role string

const (
	RoleStudent Role = "student"
	RoleWarden  Role = "warden"
	RoleGuard   Role = "guard"
)

// User represents a student, warden, or guard account.
type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Username      string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash  string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role          Role      `json:"role" gorm:"type:varchar(20);not null;default:'student'"`
	Name          string    `json:"name" gorm:"size:255;not null"`
	ProfilePhoto  *string   `json:"profilePhoto,omitempty" gorm:"size:255"`
	RoomNo        string    `json:"roomNo,omitempty" gorm:"size:50"`
	Course        string    `json:"course,omitempty" gorm:"size:100"`
	Batch         string    `json:"batch,omitempty" gorm:"size:50"`
	PhoneNo       string    `json:"phoneNo,omitempty" gorm:"size:20"`
	ParentPhoneNo string    `json:"parentPhoneNo,omitempty" gorm:"size:20"`
	CreatedAt     time.Time `json:"createdAt"`
}
