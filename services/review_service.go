// services/review_service.go
package services

import (
	"errors"
	"fmt"

	"travel-backend/models"

	"gorm.io/gorm"
)

var ErrInvalidRating = errors.New("rating_out_of_range")

// ReviewService persists guest reviews; ratings feed the listing's average
// rating projection.
type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

func (s *ReviewService) Create(userID, listingID uint, rating int, comment string) (models.Review, error) {
	if rating < 1 || rating > 5 {
		return models.Review{}, ErrInvalidRating
	}

	var listing models.Listing
	if err := s.DB.First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Review{}, ErrListingNotFound
		}
		return models.Review{}, fmt.Errorf("failed to find listing: %w", err)
	}

	review := models.Review{
		ListingID: listingID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.DB.Create(&review).Error; err != nil {
		return models.Review{}, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}
