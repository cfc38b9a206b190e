// services/pricing.go
package services

import (
	"errors"
	"time"
)

// Validation and authorization sentinels. Controllers map these onto HTTP
// status codes; anything not listed here is treated as an infrastructure error.
var (
	ErrCheckOutNotAfterCheckIn = errors.New("checkout_must_be_after_checkin")
	ErrGuestsOverCapacity      = errors.New("guests_over_capacity")
	ErrInvalidDate             = errors.New("invalid_date_format")
	ErrInvalidGuestCount       = errors.New("invalid_guest_count")
	ErrListingNotFound         = errors.New("listing_not_found")
	ErrBookingNotFound         = errors.New("booking_not_found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatus           = errors.New("invalid_status")
)

// Nights returns the whole-day difference between two calendar dates.
// Dates are calendar dates: no timezone adjustment, no proration.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// QuoteBooking validates a booking request against the listing's nightly rate
// and capacity and returns the total price for the stay.
//
// The caller must pass the rate and capacity read from the persisted listing,
// never values supplied by the client, so the quote cannot be tampered with.
func QuoteBooking(pricePerNight float64, checkIn, checkOut time.Time, numberOfGuests, maxGuests int) (float64, error) {
	if !checkOut.After(checkIn) {
		return 0, ErrCheckOutNotAfterCheckIn
	}
	if numberOfGuests > maxGuests {
		return 0, ErrGuestsOverCapacity
	}
	return pricePerNight * float64(Nights(checkIn, checkOut)), nil
}
