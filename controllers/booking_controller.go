// controllers/booking_controller.go
package controllers

import (
	"log"
	"net/http"
	"time"

	"travel-backend/services"
	"travel-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

// CreateBookingRequest carries the client-settable booking fields. The total
// price and guest are always derived server-side.
type CreateBookingRequest struct {
	Listing        uint   `json:"listing" binding:"required"`
	CheckInDate    string `json:"check_in_date" binding:"required,bookingdate"`
	CheckOutDate   string `json:"check_out_date" binding:"required,bookingdate"`
	NumberOfGuests int    `json:"number_of_guests" binding:"required,min=1"`
}

// bookingFilterParams is the typed shape of the query-string filters.
type bookingFilterParams struct {
	Status string
}

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// ----------------------------------------------------
// 1. List Bookings (GET /api/bookings)
// Scoped to the caller: guests see their own, staff see everything.
// ----------------------------------------------------

func (bc *BookingController) GetBookings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	bookings, err := bc.BookingSvc.GetAllFor(user)
	if err != nil {
		log.Printf("❌ DB ERROR listing bookings: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, toBookingResponses(bookings))
}

// ----------------------------------------------------
// 2. Create Booking (POST /api/bookings)
// ----------------------------------------------------

func (bc *BookingController) CreateBooking(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// Binding already validated the date format.
	checkIn, _ := time.Parse("2006-01-02", req.CheckInDate)
	checkOut, _ := time.Parse("2006-01-02", req.CheckOutDate)

	booking, err := bc.BookingSvc.Create(user, req.Listing, checkIn, checkOut, req.NumberOfGuests)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, toBookingResponse(booking))
}

// ----------------------------------------------------
// 3. Get Booking (GET /api/bookings/:id)
// ----------------------------------------------------

func (bc *BookingController) GetBookingDetails(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := bc.BookingSvc.GetByIDFor(user, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, toBookingResponse(booking))
}

// ----------------------------------------------------
// 4. Update Booking (PUT/PATCH /api/bookings/:id)
// ----------------------------------------------------

func (bc *BookingController) UpdateBooking(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	booking, err := bc.BookingSvc.UpdateFor(user, id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, toBookingResponse(booking))
}

// ----------------------------------------------------
// 5. Delete Booking (DELETE /api/bookings/:id)
// ----------------------------------------------------

func (bc *BookingController) DeleteBooking(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := bc.BookingSvc.DeleteFor(user, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// ----------------------------------------------------
// 6. Cancel Booking (POST /api/bookings/:id/cancel)
// 403 for anyone who is not the booking's guest or staff; no state change on
// a refused attempt.
// ----------------------------------------------------

func (bc *BookingController) CancelBooking(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if _, err := bc.BookingSvc.Cancel(user, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}

// ----------------------------------------------------
// 7. Filter by status (GET /api/bookings/by_status?status=)
// Exact match on top of the caller's visible set.
// ----------------------------------------------------

func (bc *BookingController) ByStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	params := bookingFilterParams{Status: c.Query("status")}
	bookings, err := bc.BookingSvc.FilterByStatus(user, params.Status)
	if err != nil {
		log.Printf("❌ DB ERROR filtering bookings by status: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, toBookingResponses(bookings))
}
