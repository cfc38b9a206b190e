// controllers/response.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"travel-backend/models"
	"travel-backend/services"
	"travel-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Response shapes (API representations with derived fields)
// ---------------------------

type ListingResponse struct {
	ID            uint     `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	PricePerNight float64  `json:"price_per_night"`
	Bedrooms      int      `json:"bedrooms"`
	MaxGuests     int      `json:"max_guests"`
	HostName      string   `json:"host_name"`
	IsAvailable   bool     `json:"is_available"`
	AverageRating *float64 `json:"average_rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookingResponse struct {
	ID             uint    `json:"id"`
	ReferenceCode  string  `json:"reference_code"`
	Listing        uint    `json:"listing"`
	ListingTitle   string  `json:"listing_title"`
	GuestName      string  `json:"guest_name"`
	CheckInDate    string  `json:"check_in_date"`
	CheckOutDate   string  `json:"check_out_date"`
	NumberOfGuests int     `json:"number_of_guests"`
	TotalPrice     float64 `json:"total_price"`
	Status         string  `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toListingResponse(l models.Listing) ListingResponse {
	return ListingResponse{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		Address:       l.Address,
		City:          l.City,
		Country:       l.Country,
		PricePerNight: l.PricePerNight,
		Bedrooms:      l.Bedrooms,
		MaxGuests:     l.MaxGuests,
		HostName:      l.Host.Username,
		IsAvailable:   l.IsAvailable,
		AverageRating: services.AverageRating(l.Reviews),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func toListingResponses(listings []models.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	return out
}

func toBookingResponse(b models.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		ReferenceCode:  b.ReferenceCode,
		Listing:        b.ListingID,
		ListingTitle:   b.Listing.Title,
		GuestName:      b.Guest.Username,
		CheckInDate:    time.Time(b.CheckInDate).Format("2006-01-02"),
		CheckOutDate:   time.Time(b.CheckOutDate).Format("2006-01-02"),
		NumberOfGuests: b.NumberOfGuests,
		TotalPrice:     b.TotalPrice,
		Status:         b.Status,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func toBookingResponses(bookings []models.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

// ---------------------------
// Shared helpers
// ---------------------------

// currentUser returns the authenticated user the auth middleware stored on the
// context.
func currentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// respondServiceError maps service sentinels onto HTTP statuses; anything
// unrecognized is a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCheckOutNotAfterCheckIn):
		utils.JSONError(c, http.StatusBadRequest, "Check-out date must be after check-in date")
	case errors.Is(err, services.ErrGuestsOverCapacity):
		utils.JSONError(c, http.StatusBadRequest, "Number of guests exceeds listing capacity")
	case errors.Is(err, services.ErrInvalidDate):
		utils.JSONError(c, http.StatusBadRequest, "Dates must use the YYYY-MM-DD format")
	case errors.Is(err, services.ErrInvalidGuestCount):
		utils.JSONError(c, http.StatusBadRequest, "Number of guests must be a positive integer")
	case errors.Is(err, services.ErrInvalidStatus):
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking status")
	case errors.Is(err, services.ErrInvalidRating):
		utils.JSONError(c, http.StatusBadRequest, "Rating must be between 1 and 5")
	case errors.Is(err, services.ErrListingNotFound):
		utils.JSONError(c, http.StatusNotFound, "Listing not found")
	case errors.Is(err, services.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found")
	case errors.Is(err, services.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "You don't have permission to perform this action")
	case errors.Is(err, services.ErrUsernameTaken):
		utils.JSONError(c, http.StatusConflict, "Username already taken")
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrUserNotFound):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
	}
}
