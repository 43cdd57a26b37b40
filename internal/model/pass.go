package model

import "time"

// PassStatus is the review state of a gate pass.
type PassStatus string

const (
	PassPending  PassStatus = "pending"
	PassApproved PassStatus = "approved"
	PassRejected PassStatus = "rejected"
)

// Pass is a student's request to leave campus for a given date and time slot.
// A pass starts pending and is moved exactly once to approved or rejected by
// a warden; WardenID and WardenNote stay NULL until that review.
type Pass struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	UserID          uint       `json:"userId" gorm:"not null;index"`
	OutDate         string     `json:"outDate" gorm:"size:20;not null"`
	OutTime         string     `json:"outTime" gorm:"size:50;not null"`
	InDate          string     `json:"inDate" gorm:"size:20;not null"`
	InTime          string     `json:"inTime" gorm:"size:50;not null"`
	Reason          string     `json:"reason" gorm:"type:text;not null"`
	Destination     string     `json:"destination" gorm:"size:255;not null"`
	ContactNumber   string     `json:"contactNumber" gorm:"size:20;not null"`
	ParentContactNo string     `json:"parentContactNo" gorm:"size:20;not null"`
	Status          PassStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	WardenID        *uint      `json:"wardenId"`
	WardenNote      *string    `json:"wardenNote" gorm:"type:text"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	// Student is the owning user, preloaded for warden/guard listings.
	Student *User `json:"student,omitempty" gorm:"foreignKey:UserID"`
}
