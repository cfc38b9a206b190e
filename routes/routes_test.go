package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-backend/controllers"
	"travel-backend/models"
	"travel-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("bookingdate", func(fl validator.FieldLevel) bool {
			raw, ok := fl.Field().Interface().(string)
			if !ok {
				return false
			}
			_, err := time.Parse("2006-01-02", raw)
			return err == nil
		})
	}
}

type testAPI struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
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

	authSvc := services.NewAuthService(db)
	listingSvc := services.NewListingService(db)
	reviewSvc := services.NewReviewService(db)
	bookingSvc := services.NewBookingService(db)

	router := SetupRouter(
		controllers.NewAuthController(authSvc),
		controllers.NewListingController(listingSvc, reviewSvc),
		controllers.NewBookingController(bookingSvc),
		authSvc,
	)
	return &testAPI{t: t, db: db, router: router}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) registerAndLogin(username string, staff bool) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	if staff {
		require.NoError(a.t, a.db.Model(&models.User{}).
			Where("username = ?", username).
			Update("is_staff", true).Error)
	}

	w = a.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": "s3cret-pass",
	})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(a.t, resp.Data.Token)
	return resp.Data.Token
}

func (a *testAPI) createListing(token, city string, price float64, maxGuests int) uint {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/listings", token, gin.H{
		"title":           "Listing in " + city,
		"address":         "1 Test Street",
		"city":            city,
		"country":         "Testland",
		"price_per_night": price,
		"max_guests":      maxGuests,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.ID
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var resp struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestListingsReadableByAnonymous(t *testing.T) {
	api := newTestAPI(t)
	host := api.registerAndLogin("host", false)
	api.createListing(host, "Paris", 100, 4)

	w := api.do(http.MethodGet, "/api/listings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listings := decodeList(t, w)
	require.Len(t, listings, 1)
	assert.Equal(t, "host", listings[0]["host_name"])
	assert.Nil(t, listings[0]["average_rating"])
}

func TestListingWriteRequiresAuth(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodPost, "/api/listings", "", gin.H{
		"title":           "No auth",
		"address":         "1 Test Street",
		"city":            "Paris",
		"country":         "France",
		"price_per_night": 100,
		"max_guests":      2,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListingFilters(t *testing.T) {
	api := newTestAPI(t)
	host := api.registerAndLogin("host", false)
	api.createListing(host, "Paris", 100, 4)
	api.createListing(host, "Cairo", 80, 2)

	w := api.do(http.MethodGet, "/api/listings/by_city?city=paris", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	// Empty city filter matches everything.
	w = api.do(http.MethodGet, "/api/listings/by_city", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 2)

	// Availability defaults to true when the parameter is absent.
	w = api.do(http.MethodGet, "/api/listings/available", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 2)

	w = api.do(http.MethodGet, "/api/listings/available?available=false", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))
}

func TestCreateBookingComputesPrice(t *testing.T) {
	api := newTestAPI(t)
	host := api.registerAndLogin("host", false)
	guest := api.registerAndLogin("guest", false)
	listingID := api.createListing(host, "Paris", 100, 4)

	w := api.do(http.MethodPost, "/api/bookings", guest, gin.H{
		"listing":          listingID,
		"check_in_date":    "2024-01-01",
		"check_out_date":   "2024-01-04",
		"number_of_guests": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, 300.0, data["total_price"])
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "guest", data["guest_name"])
	assert.Equal(t, "Listing in Paris", data["listing_title"])
}

func TestCreateBookingValidationAndNotFound(t *testing.T) {
	api := newTestAPI(t)
	host := api.registerAndLogin("host", false)
	guest := api.registerAndLogin("guest", false)
	listingID := api.createListing(host, "Paris", 100, 2)

	// Unknown listing -> 404
	w := api.do(http.MethodPost, "/api/bookings", guest, gin.H{
		"listing":          99999,
		"check_in_date":    "2024-01-01",
		"check_out_date":   "2024-01-04",
		"number_of_guests": 2,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Over capacity -> 400
	w = api.do(http.MethodPost, "/api/bookings", guest, gin.H{
		"listing":          listingID,
		"check_in_date":    "2024-01-01",
		"check_out_date":   "2024-01-04",
		"number_of_guests": 3,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Bad date order -> 400
	w = api.do(http.MethodPost, "/api/bookings", guest, gin.H{
		"listing":          listingID,
		"check_in_date":    "2024-01-04",
		"check_out_date":   "2024-01-01",
		"number_of_guests": 2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed date -> 400 from binding
	w = api.do(http.MethodPost, "/api/bookings", guest, gin.H{
		"listing":          listingID,
		"check_in_date":    "01/04/2024",
		"check_out_date":   "2024-01-07",
		"number_of_guests": 2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	api.db.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count)
}

func TestCancelBookingPolicy(t *testing.T) {
	api := newTestAPI(t)
	host := api.registerAndLogin("host", false)
	guest := api.registerAndLogin("guest", false)
	stranger := api.registerAndLogin("stranger", false)
	staff := api.registerAndLogin("staff", true)
	listingID := api.createListing(host, "Paris", 100, 4)

	w := api.do(http.MethodPost, "/api/bookings", guest, gin.H{
		"listing":          listingID,
		"check_in_date":    "2024-01-01",
		"check_out_date":   "2024-01-04",
		"number_of_guests": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := uint(decodeData(t, w)["id"].(float64))

	// A stranger gets 403 and the booking stays pending.
	w = api.do(http.MethodPost, fmt.Sprintf("/api/bookings/%d/cancel", bookingID), stranger, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored models.Booking
	require.NoError(t, api.db.First(&stored, bookingID).Error)
	assert.Equal(t, models.BookingStatusPending, stored.Status)

	// The guest cancels their own booking.
	w = api.do(http.MethodPost, fmt.Sprintf("/api/bookings/%d/cancel", bookingID), guest, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Booking cancelled successfully", decodeData(t, w)["message"])

	require.NoError(t, api.db.First(&stored, bookingID).Error)
	assert.Equal(t, models.BookingStatusCancelled, stored.Status)

	// Staff may cancel any booking, even an already cancelled one.
	w = api.do(http.MethodPost, fmt.Sprintf("/api/bookings/%d/cancel", bookingID), staff, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookingListScoping(t *testing.T) {
	api := newTestAPI(t)
	host := api.registerAndLogin("host", false)
	alice := api.registerAndLogin("alice", false)
	bob := api.registerAndLogin("bob", false)
	staff := api.registerAndLogin("staff", true)
	listingID := api.createListing(host, "Paris", 100, 4)

	for _, token := range []string{alice, bob} {
		w := api.do(http.MethodPost, "/api/bookings", token, gin.H{
			"listing":          listingID,
			"check_in_date":    "2024-01-01",
			"check_out_date":   "2024-01-04",
			"number_of_guests": 2,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := api.do(http.MethodGet, "/api/bookings", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	aliceBookings := decodeList(t, w)
	require.Len(t, aliceBookings, 1)
	assert.Equal(t, "alice", aliceBookings[0]["guest_name"])

	w = api.do(http.MethodGet, "/api/bookings", staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 2)

	// Scoping holds for every status filter value.
	w = api.do(http.MethodGet, "/api/bookings/by_status?status=pending", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	bobPending := decodeList(t, w)
	require.Len(t, bobPending, 1)
	assert.Equal(t, "bob", bobPending[0]["guest_name"])

	w = api.do(http.MethodGet, "/api/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReviewsChangeAverageRating(t *testing.T) {
	api := newTestAPI(t)
	host := api.registerAndLogin("host", false)
	guest := api.registerAndLogin("guest", false)
	listingID := api.createListing(host, "Paris", 100, 4)

	for _, rating := range []int{5, 3} {
		w := api.do(http.MethodPost, fmt.Sprintf("/api/listings/%d/reviews", listingID), guest, gin.H{
			"rating":  rating,
			"comment": "noted",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := api.do(http.MethodGet, fmt.Sprintf("/api/listings/%d", listingID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4.0, decodeData(t, w)["average_rating"])
}
