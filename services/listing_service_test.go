package services

import (
	"testing"

	"travel-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateListingAssignsHost(t *testing.T) {
	db := newTestDB(t)
	svc := NewListingService(db)
	host := createUser(t, db, "host", false)

	created, err := svc.Create(models.Listing{
		Title:         "Loft",
		Address:       "2 Canal Street",
		City:          "Amsterdam",
		Country:       "Netherlands",
		PricePerNight: 150,
		MaxGuests:     2,
		IsAvailable:   true,
		// A client-supplied host id must be overridden.
		HostID: 9999,
	}, host.ID)
	require.NoError(t, err)
	assert.Equal(t, host.ID, created.HostID)
	assert.Equal(t, "host", created.Host.Username)
}

func TestFilterByCityIsCaseInsensitiveSubstring(t *testing.T) {
	db := newTestDB(t)
	svc := NewListingService(db)
	host := createUser(t, db, "host", false)
	createListing(t, db, host.ID, "Paris", 100, 4)
	createListing(t, db, host.ID, "South Paris Hills", 90, 2)
	createListing(t, db, host.ID, "Cairo", 80, 2)

	matches, err := svc.FilterByCity("paris")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, l := range matches {
		assert.Contains(t, []string{"Paris", "South Paris Hills"}, l.City)
	}

	matches, err = svc.FilterByCity("PARIS")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestFilterByCityEmptyReturnsAll(t *testing.T) {
	db := newTestDB(t)
	svc := NewListingService(db)
	host := createUser(t, db, "host", false)
	createListing(t, db, host.ID, "Paris", 100, 4)
	createListing(t, db, host.ID, "Cairo", 80, 2)
	createListing(t, db, host.ID, "Sydney", 120, 6)

	matches, err := svc.FilterByCity("")
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestFilterByAvailability(t *testing.T) {
	db := newTestDB(t)
	svc := NewListingService(db)
	host := createUser(t, db, "host", false)
	createListing(t, db, host.ID, "Paris", 100, 4)
	unavailable := createListing(t, db, host.ID, "Cairo", 80, 2)
	require.NoError(t, db.Model(&unavailable).Update("is_available", false).Error)

	available, err := svc.FilterByAvailability(true)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Paris", available[0].City)

	offMarket, err := svc.FilterByAvailability(false)
	require.NoError(t, err)
	require.Len(t, offMarket, 1)
	assert.Equal(t, "Cairo", offMarket[0].City)
}

func TestAverageRating(t *testing.T) {
	assert.Nil(t, AverageRating(nil))
	assert.Nil(t, AverageRating([]models.Review{}))

	avg := AverageRating([]models.Review{{Rating: 4}, {Rating: 5}, {Rating: 3}})
	require.NotNil(t, avg)
	assert.Equal(t, 4.0, *avg)

	avg = AverageRating([]models.Review{{Rating: 4}, {Rating: 5}})
	require.NotNil(t, avg)
	assert.Equal(t, 4.5, *avg)
}

func TestReviewsFeedListingAverage(t *testing.T) {
	db := newTestDB(t)
	listings := NewListingService(db)
	reviews := NewReviewService(db)
	host := createUser(t, db, "host", false)
	guest := createUser(t, db, "guest", false)
	listing := createListing(t, db, host.ID, "Paris", 100, 4)

	_, err := reviews.Create(guest.ID, listing.ID, 5, "Lovely stay")
	require.NoError(t, err)
	_, err = reviews.Create(guest.ID, listing.ID, 3, "A bit noisy")
	require.NoError(t, err)

	loaded, err := listings.GetByID(listing.ID)
	require.NoError(t, err)
	avg := AverageRating(loaded.Reviews)
	require.NotNil(t, avg)
	assert.Equal(t, 4.0, *avg)
}

func TestReviewValidation(t *testing.T) {
	db := newTestDB(t)
	reviews := NewReviewService(db)
	guest := createUser(t, db, "guest", false)

	_, err := reviews.Create(guest.ID, 9999, 4, "ghost listing")
	assert.ErrorIs(t, err, ErrListingNotFound)

	host := createUser(t, db, "host", false)
	listing := createListing(t, db, host.ID, "Paris", 100, 4)
	_, err = reviews.Create(guest.ID, listing.ID, 6, "too good")
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = reviews.Create(guest.ID, listing.ID, 0, "impossible")
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestListingDeleteAndNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewListingService(db)
	host := createUser(t, db, "host", false)
	listing := createListing(t, db, host.ID, "Paris", 100, 4)

	require.NoError(t, svc.Delete(listing.ID))
	assert.ErrorIs(t, svc.Delete(listing.ID), ErrListingNotFound)

	_, err := svc.GetByID(listing.ID)
	assert.ErrorIs(t, err, ErrListingNotFound)
}
