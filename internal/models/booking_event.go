package models

import "time"

type BookingEvent struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	VisitorID  string `gorm:"size:64;index" json:"visitor_id"`
	ClinicSlug string `gorm:"size:100;index" json:"clinic_slug"`
	Action     string `gorm:"size:50;not null" json:"action"`

	AppointmentID *string `gorm:"size:64" json:"appointment_id"`
	Metadata      string  `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
