package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"travel-backend/controllers"
	"travel-backend/middleware"
	"travel-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers onto the gin engine. Listing reads are public;
// everything that mutates state or touches bookings requires a token.
func SetupRouter(
	ac *controllers.AuthController,
	lc *controllers.ListingController,
	bc *controllers.BookingController,
	authSvc *services.AuthService,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
		}

		// Listings: read for everyone, write for authenticated hosts.
		listings := api.Group("/listings")
		listings.Use(middleware.OptionalAuth(authSvc))
		{
			listings.GET("", lc.GetListings)

			// Filter routes must come before /:id
			listings.GET("/by_city", lc.ByCity)
			listings.GET("/available", lc.Available)

			listings.GET("/:id", lc.GetListing)

			authed := listings.Group("")
			authed.Use(middleware.RequireAuth(authSvc))
			{
				authed.POST("", lc.CreateListing)
				authed.PUT("/:id", lc.UpdateListing)
				authed.PATCH("/:id", lc.UpdateListing)
				authed.DELETE("/:id", lc.DeleteListing)
				authed.POST("/:id/reviews", lc.CreateReview)
			}
		}

		// Bookings: everything requires a caller.
		bookings := api.Group("/bookings")
		bookings.Use(middleware.RequireAuth(authSvc))
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)

			// Filter route must come before /:id
			bookings.GET("/by_status", bc.ByStatus)

			bookings.GET("/:id", bc.GetBookingDetails)
			bookings.PUT("/:id", bc.UpdateBooking)
			bookings.PATCH("/:id", bc.UpdateBooking)
			bookings.DELETE("/:id", bc.DeleteBooking)
			bookings.POST("/:id/cancel", bc.CancelBooking)
		}
	}

	return r
}
