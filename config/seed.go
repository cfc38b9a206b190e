package config

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"travel-backend/models"

	"github.com/go-faker/faker/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	demoHostUsername = "demo_host"
	demoHostEmail    = "demo.host@example.com"
)

var seedCities = []struct {
	City    string
	Country string
}{
	{"New York", "USA"},
	{"Oyo State", "Nigeria"},
	{"Paris", "France"},
	{"Cairo", "Egypt"},
	{"Sydney", "Australia"},
}

// ensureDemoHost fetches or creates the demo host, keyed on the unique
// username. A duplicate-key error from a concurrent seed run is resolved by
// re-fetching, so the host is created at most once.
func ensureDemoHost(db *gorm.DB) (models.User, error) {
	var host models.User
	err := db.Where("username = ?", demoHostUsername).First(&host).Error
	if err == nil {
		return host, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("failed to look up demo host: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(faker.Password()), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash demo host password: %w", err)
	}
	host = models.User{
		Username: demoHostUsername,
		Email:    demoHostEmail,
		Password: string(hash),
	}
	if err := db.Create(&host).Error; err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			// Lost the race to another seed run; reuse the winner's row.
			if fErr := db.Where("username = ?", demoHostUsername).First(&host).Error; fErr == nil {
				return host, nil
			}
		}
		return models.User{}, fmt.Errorf("failed to create demo host: %w", err)
	}
	log.Println("✅ Created demo host user")
	return host, nil
}

// SeedListings creates count sample listings owned by the demo host. The
// operation is additive: each run appends count more listings.
func SeedListings(db *gorm.DB, count int) error {
	host, err := ensureDemoHost(db)
	if err != nil {
		return err
	}

	created := 0
	for i := 0; i < count; i++ {
		place := seedCities[rand.Intn(len(seedCities))]
		listing := models.Listing{
			Title:         fmt.Sprintf("Beautiful Properties in %s", place.City),
			Description:   fmt.Sprintf("A wonderful place to stay in %s. %s", place.City, faker.Paragraph()),
			Address:       fmt.Sprintf("%d %s Street", rand.Intn(999)+1, faker.Word()),
			City:          place.City,
			Country:       place.Country,
			PricePerNight: float64(rand.Intn(451) + 50),
			Bedrooms:      rand.Intn(5) + 1,
			Bathrooms:     rand.Intn(3) + 1,
			MaxGuests:     rand.Intn(9) + 2,
			HostID:        host.ID,
			IsAvailable:   true,
		}
		if err := db.Create(&listing).Error; err != nil {
			return fmt.Errorf("failed to create listing %d: %w", i+1, err)
		}
		created++
	}

	log.Printf("✅ Successfully created %d listings", created)
	return nil
}
