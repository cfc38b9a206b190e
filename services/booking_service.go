// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"travel-backend/models"
	"travel-backend/queue"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingService wraps *gorm.DB for guest-facing booking operations. All reads
// go through the caller's visibility scope: a non-staff user only ever sees
// bookings where they are the guest.
type BookingService struct {
	DB *gorm.DB

	// PublishBookingCreated submits the post-persistence notification event.
	// Left nil in tests; failures are logged and never fail the request.
	PublishBookingCreated func(ctx context.Context, ev queue.BookingCreatedEvent) error
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// visibleTo narrows the booking set according to the access policy.
func (s *BookingService) visibleTo(user models.User) *gorm.DB {
	q := s.DB.Model(&models.Booking{}).Preload("Listing").Preload("Guest")
	if user.IsStaff {
		return q
	}
	return q.Where("guest_id = ?", user.ID)
}

func (s *BookingService) GetAllFor(user models.User) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.visibleTo(user).Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetByIDFor(user models.User, id uint) (models.Booking, error) {
	var booking models.Booking
	if err := s.visibleTo(user).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to find booking: %w", err)
	}
	return booking, nil
}

// FilterByStatus returns the caller's visible bookings with an exact status
// match, so a non-staff caller never sees another guest's bookings regardless
// of the filter value.
func (s *BookingService) FilterByStatus(user models.User, status string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.visibleTo(user).Where("status = ?", status).Find(&bookings).Error
	return bookings, err
}

// Create validates and persists a booking for guest. The nightly rate and
// capacity are re-read from the persisted listing so the total price can never
// be client-supplied. On success the confirmation event is published
// fire-and-forget; a publish failure is logged but never fails the booking.
func (s *BookingService) Create(guest models.User, listingID uint, checkIn, checkOut time.Time, numberOfGuests int) (models.Booking, error) {
	var listing models.Listing
	if err := s.DB.First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrListingNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to find listing: %w", err)
	}

	totalPrice, err := QuoteBooking(listing.PricePerNight, checkIn, checkOut, numberOfGuests, listing.MaxGuests)
	if err != nil {
		return models.Booking{}, err
	}

	booking := models.Booking{
		ReferenceCode:  uuid.NewString(),
		ListingID:      listing.ID,
		GuestID:        guest.ID,
		CheckInDate:    datatypes.Date(checkIn),
		CheckOutDate:   datatypes.Date(checkOut),
		NumberOfGuests: numberOfGuests,
		TotalPrice:     totalPrice,
		Status:         models.BookingStatusPending,
	}
	if err := s.DB.Create(&booking).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}
	booking.Listing = listing
	booking.Guest = guest

	if s.PublishBookingCreated != nil {
		ev := queue.BookingCreatedEvent{
			BookingID:     booking.ID,
			ReferenceCode: booking.ReferenceCode,
			GuestEmail:    guest.Email,
			GuestName:     guest.Username,
			ListingTitle:  listing.Title,
			CheckInDate:   checkIn.Format("2006-01-02"),
			CheckOutDate:  checkOut.Format("2006-01-02"),
			TotalPrice:    booking.TotalPrice,
			CreatedAt:     booking.CreatedAt.UTC().Format(time.RFC3339),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.PublishBookingCreated(ctx, ev); err != nil {
				log.Printf("⚠️  booking %d: failed to publish confirmation event: %v", booking.ID, err)
			}
		}()
	}

	return booking, nil
}

// Cancel sets the booking status to cancelled. Only the booking's own guest or
// a staff user may cancel; anyone else gets ErrForbidden and no state change.
// There is deliberately no guard on the prior status: cancelling an already
// cancelled or completed booking is allowed, matching the generic update path.
func (s *BookingService) Cancel(user models.User, id uint) (models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Listing").Preload("Guest").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to find booking: %w", err)
	}

	if booking.GuestID != user.ID && !user.IsStaff {
		return models.Booking{}, ErrForbidden
	}

	if err := s.DB.Model(&booking).Update("status", models.BookingStatusCancelled).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to cancel booking: %w", err)
	}
	booking.Status = models.BookingStatusCancelled
	return booking, nil
}

// UpdateFor applies a partial update within the caller's visibility scope.
// Server-derived fields are stripped; status stays freely settable to any
// known value (no transition table is enforced). Changes to the stay dates or
// the guest count are re-validated against the listing, and the total price is
// re-derived whenever any of them move.
func (s *BookingService) UpdateFor(user models.User, id uint, updates map[string]interface{}) (models.Booking, error) {
	booking, err := s.GetByIDFor(user, id)
	if err != nil {
		return models.Booking{}, err
	}

	for _, k := range []string{"id", "guest_id", "total_price", "reference_code", "created_at", "updated_at", "deleted_at", "listing_id"} {
		delete(updates, k)
	}
	if raw, ok := updates["status"]; ok {
		status, _ := raw.(string)
		if !models.IsValidBookingStatus(status) {
			return models.Booking{}, ErrInvalidStatus
		}
	}

	checkIn := time.Time(booking.CheckInDate)
	checkOut := time.Time(booking.CheckOutDate)
	numberOfGuests := booking.NumberOfGuests
	stayChanged := false
	if raw, ok := updates["check_in_date"]; ok {
		if checkIn, err = parseBookingDate(raw); err != nil {
			return models.Booking{}, err
		}
		updates["check_in_date"] = datatypes.Date(checkIn)
		stayChanged = true
	}
	if raw, ok := updates["check_out_date"]; ok {
		if checkOut, err = parseBookingDate(raw); err != nil {
			return models.Booking{}, err
		}
		updates["check_out_date"] = datatypes.Date(checkOut)
		stayChanged = true
	}
	if raw, ok := updates["number_of_guests"]; ok {
		if numberOfGuests, err = parseGuestCount(raw); err != nil {
			return models.Booking{}, err
		}
		updates["number_of_guests"] = numberOfGuests
		stayChanged = true
	}
	if stayChanged {
		totalPrice, err := QuoteBooking(booking.Listing.PricePerNight, checkIn, checkOut, numberOfGuests, booking.Listing.MaxGuests)
		if err != nil {
			return models.Booking{}, err
		}
		updates["total_price"] = totalPrice
	}

	if len(updates) == 0 {
		return booking, nil
	}

	if err := s.DB.Model(&booking).Updates(updates).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to update booking: %w", err)
	}
	return s.GetByIDFor(user, id)
}

// parseBookingDate reads a YYYY-MM-DD string out of a raw JSON update value.
func parseBookingDate(raw interface{}) (time.Time, error) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// parseGuestCount reads a positive whole number out of a raw JSON update value.
// JSON numbers arrive as float64.
func parseGuestCount(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case float64:
		if v < 1 || v != float64(int(v)) {
			return 0, ErrInvalidGuestCount
		}
		return int(v), nil
	case int:
		if v < 1 {
			return 0, ErrInvalidGuestCount
		}
		return v, nil
	default:
		return 0, ErrInvalidGuestCount
	}
}

func (s *BookingService) DeleteFor(user models.User, id uint) error {
	booking, err := s.GetByIDFor(user, id)
	if err != nil {
		return err
	}
	return s.DB.Delete(&models.Booking{}, booking.ID).Error
}
