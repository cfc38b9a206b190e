package services

import (
	"fmt"
	"testing"

	"travel-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Booking{},
		&models.Review{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, staff bool) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		IsStaff:  staff,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createListing(t *testing.T, db *gorm.DB, hostID uint, city string, price float64, maxGuests int) models.Listing {
	t.Helper()
	listing := models.Listing{
		Title:         "Listing in " + city,
		Address:       "1 Test Street",
		City:          city,
		Country:       "Testland",
		PricePerNight: price,
		Bedrooms:      2,
		Bathrooms:     1,
		MaxGuests:     maxGuests,
		HostID:        hostID,
		IsAvailable:   true,
	}
	require.NoError(t, db.Create(&listing).Error)
	return listing
}
