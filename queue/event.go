// Package queue defines the message payloads exchanged over the broker and the
// publisher/consumer pair around the booking.created queue.
package queue

// BookingCreatedEvent is published after a booking has been durably committed.
// It carries everything the notification worker needs to compose the
// confirmation email without querying the primary database.
type BookingCreatedEvent struct {
	BookingID     uint    `json:"booking_id"`
	ReferenceCode string  `json:"reference_code"`
	GuestEmail    string  `json:"guest_email"`
	GuestName     string  `json:"guest_name"`
	ListingTitle  string  `json:"listing_title"`
	CheckInDate   string  `json:"check_in_date"`
	CheckOutDate  string  `json:"check_out_date"`
	TotalPrice    float64 `json:"total_price"`
	CreatedAt     string  `json:"created_at"`
}
