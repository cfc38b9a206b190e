package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// BookingStatuses lists every value the status column accepts.
var BookingStatuses = []string{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCancelled,
	BookingStatusCompleted,
}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64" json:"reference_code,omitempty"`

	ListingID uint `gorm:"column:listing_id;index" json:"listing_id"`
	GuestID   uint `gorm:"column:guest_id;index" json:"guest_id"`

	CheckInDate    datatypes.Date `gorm:"column:check_in_date" json:"check_in_date"`
	CheckOutDate   datatypes.Date `gorm:"column:check_out_date" json:"check_out_date"`
	NumberOfGuests int            `gorm:"column:number_of_guests" json:"number_of_guests"`

	// Derived server-side at creation from the persisted listing; never taken
	// from the client.
	TotalPrice float64 `gorm:"column:total_price" json:"total_price"`

	Status string `gorm:"column:status;size:32;default:pending" json:"status"`

	Listing Listing `gorm:"foreignKey:ListingID;references:ID" json:"listing,omitempty"`
	Guest   User    `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
}

// IsValidBookingStatus reports whether s is one of the known status values.
func IsValidBookingStatus(s string) bool {
	for _, v := range BookingStatuses {
		if v == s {
			return true
		}
	}
	return false
}
