// controllers/listing_controller.go
package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"travel-backend/models"
	"travel-backend/services"
	"travel-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateListingRequest struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	Address       string  `json:"address" binding:"required"`
	City          string  `json:"city" binding:"required"`
	Country       string  `json:"country" binding:"required"`
	PricePerNight float64 `json:"price_per_night" binding:"required,gt=0"`
	Bedrooms      int     `json:"bedrooms" binding:"min=0"`
	Bathrooms     int     `json:"bathrooms" binding:"min=0"`
	MaxGuests     int     `json:"max_guests" binding:"required,min=1"`
	IsAvailable   *bool   `json:"is_available"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// listingFilterParams is the typed shape of the query-string filters.
type listingFilterParams struct {
	City      string
	Available bool
}

type ListingController struct {
	ListingSvc *services.ListingService
	ReviewSvc  *services.ReviewService
}

func NewListingController(svc *services.ListingService, reviews *services.ReviewService) *ListingController {
	return &ListingController{ListingSvc: svc, ReviewSvc: reviews}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// ----------------------------------------------------
// 1. List Listings (GET /api/listings)
// ----------------------------------------------------

func (lc *ListingController) GetListings(c *gin.Context) {
	listings, err := lc.ListingSvc.GetAll()
	if err != nil {
		log.Printf("❌ DB ERROR listing listings: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, toListingResponses(listings))
}

// ----------------------------------------------------
// 2. Create Listing (POST /api/listings)
// The authenticated caller becomes the host; the payload cannot set one.
// ----------------------------------------------------

func (lc *ListingController) CreateListing(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	listing := models.Listing{
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		PricePerNight: req.PricePerNight,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		MaxGuests:     req.MaxGuests,
		IsAvailable:   available,
	}

	created, err := lc.ListingSvc.Create(listing, user.ID)
	if err != nil {
		log.Printf("❌ DB ERROR creating listing: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, toListingResponse(created))
}

// ----------------------------------------------------
// 3. Get Listing (GET /api/listings/:id)
// ----------------------------------------------------

func (lc *ListingController) GetListing(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	listing, err := lc.ListingSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, toListingResponse(listing))
}

// ----------------------------------------------------
// 4. Update Listing (PUT/PATCH /api/listings/:id)
// ----------------------------------------------------

func (lc *ListingController) UpdateListing(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// Protect identity and server-managed fields.
	for _, k := range []string{"id", "host_id", "created_at", "updated_at", "deleted_at"} {
		delete(updates, k)
	}

	if err := lc.ListingSvc.Update(id, updates); err != nil {
		respondServiceError(c, err)
		return
	}

	listing, err := lc.ListingSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, toListingResponse(listing))
}

// ----------------------------------------------------
// 5. Delete Listing (DELETE /api/listings/:id)
// ----------------------------------------------------

func (lc *ListingController) DeleteListing(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := lc.ListingSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Listing deleted successfully"})
}

// ----------------------------------------------------
// 6. Filter by city (GET /api/listings/by_city?city=)
// Case-insensitive substring; empty filter matches everything.
// ----------------------------------------------------

func (lc *ListingController) ByCity(c *gin.Context) {
	params := listingFilterParams{City: c.Query("city")}
	listings, err := lc.ListingSvc.FilterByCity(params.City)
	if err != nil {
		log.Printf("❌ DB ERROR filtering by city: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, toListingResponses(listings))
}

// ----------------------------------------------------
// 7. Filter by availability (GET /api/listings/available?available=)
// Absent defaults to true; any value other than "true" reads as false.
// ----------------------------------------------------

func (lc *ListingController) Available(c *gin.Context) {
	params := listingFilterParams{
		Available: strings.ToLower(c.DefaultQuery("available", "true")) == "true",
	}
	listings, err := lc.ListingSvc.FilterByAvailability(params.Available)
	if err != nil {
		log.Printf("❌ DB ERROR filtering by availability: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, toListingResponses(listings))
}

// ----------------------------------------------------
// 8. Create Review (POST /api/listings/:id/reviews)
// ----------------------------------------------------

func (lc *ListingController) CreateReview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	review, err := lc.ReviewSvc.Create(user.ID, id, req.Rating, req.Comment)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, review)
}
