package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"travel-backend/config"
	"travel-backend/controllers"
	"travel-backend/mailer"
	"travel-backend/queue"
	"travel-backend/routes"
	"travel-backend/services"
)

// bookingDateValidator accepts calendar dates in YYYY-MM-DD form.
var bookingDateValidator validator.Func = func(fl validator.FieldLevel) bool {
	raw, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse("2006-01-02", raw)
	return err == nil
}

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	seedCount := flag.Int("seed", 0, "create N sample listings under the demo host and exit")
	flag.Parse()

	// Connect database (config.ConnectDatabase should set config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied")

	// Seed mode: create sample data and exit.
	if *seedCount > 0 {
		if err := config.SeedListings(db, *seedCount); err != nil {
			log.Fatalf("❌ Seeding failed: %v", err)
		}
		return
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("bookingdate", bookingDateValidator); err != nil {
			log.Fatalf("❌ Failed to register bookingdate validator: %v", err)
		}
	}

	// Initialize services
	authService := services.NewAuthService(db)
	listingService := services.NewListingService(db)
	reviewService := services.NewReviewService(db)
	bookingService := services.NewBookingService(db)
	bookingService.PublishBookingCreated = queue.PublishBookingCreated

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	listingController := controllers.NewListingController(listingService, reviewService)
	bookingController := controllers.NewBookingController(bookingService)

	// Notification worker: consumes booking.created events and sends the
	// confirmation email out-of-band from the request path.
	go queue.StartNotificationConsumer(mailer.SendBookingConfirmation)

	// Build router
	router := routes.SetupRouter(authController, listingController, bookingController, authService)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
