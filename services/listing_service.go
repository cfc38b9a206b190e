// services/listing_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"travel-backend/models"

	"gorm.io/gorm"
)

// ListingService wraps *gorm.DB for listing reads and host-side writes.
type ListingService struct {
	DB *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{DB: db}
}

func (s *ListingService) GetAll() ([]models.Listing, error) {
	var listings []models.Listing
	err := s.DB.Preload("Host").Preload("Reviews").Find(&listings).Error
	return listings, err
}

func (s *ListingService) GetByID(id uint) (models.Listing, error) {
	var listing models.Listing
	if err := s.DB.Preload("Host").Preload("Reviews").First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Listing{}, ErrListingNotFound
		}
		return models.Listing{}, fmt.Errorf("failed to find listing: %w", err)
	}
	return listing, nil
}

// Create persists a new listing owned by hostID. The host is always the
// authenticated caller, never taken from the payload.
func (s *ListingService) Create(listing models.Listing, hostID uint) (models.Listing, error) {
	listing.HostID = hostID
	if err := s.DB.Create(&listing).Error; err != nil {
		return models.Listing{}, err
	}
	// Reload with the host so responses can carry the derived host name.
	return s.GetByID(listing.ID)
}

func (s *ListingService) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		_, err := s.GetByID(id)
		return err
	}
	res := s.DB.Model(&models.Listing{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		s.DB.Model(&models.Listing{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return ErrListingNotFound
		}
	}
	return nil
}

func (s *ListingService) Delete(id uint) error {
	res := s.DB.Delete(&models.Listing{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

// FilterByCity returns listings whose city contains the given value,
// case-insensitive. An empty value matches everything.
func (s *ListingService) FilterByCity(city string) ([]models.Listing, error) {
	var listings []models.Listing
	pattern := "%" + strings.ToLower(strings.TrimSpace(city)) + "%"
	err := s.DB.
		Preload("Host").Preload("Reviews").
		Where("LOWER(city) LIKE ?", pattern).
		Find(&listings).Error
	return listings, err
}

// FilterByAvailability returns listings matching the availability flag.
func (s *ListingService) FilterByAvailability(available bool) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.DB.
		Preload("Host").Preload("Reviews").
		Where("is_available = ?", available).
		Find(&listings).Error
	return listings, err
}

// AverageRating returns the arithmetic mean of a listing's review ratings, or
// nil when the listing has no reviews. Recomputed on every call; no caching.
func AverageRating(reviews []models.Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return &avg
}
