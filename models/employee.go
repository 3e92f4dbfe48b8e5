package models

import "time"

// Employee is a staff member who can be booked.
type Employee struct {
	ID          string    `bson:"id" json:"id" gorm:"primaryKey;type:uuid"`
	DisplayName string    `bson:"display_name" json:"display_name" gorm:"not null"`
	Active      bool      `bson:"active" json:"active" gorm:"not null"`
	FCMToken    string    `bson:"fcm_token,omitempty" json:"-"` // device registration token for push
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// EmployeeInput is the admin payload for creating or editing an employee.
type EmployeeInput struct {
	DisplayName string  `json:"display_name" binding:"required"`
	Active      *bool   `json:"active,omitempty"`
	FCMToken    *string `json:"fcm_token,omitempty"`
}
