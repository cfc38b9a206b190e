package mailer

import (
	"testing"

	"travel-backend/queue"

	"github.com/stretchr/testify/assert"
)

func TestConfirmationTemplate(t *testing.T) {
	ev := queue.BookingCreatedEvent{
		BookingID:     12,
		ReferenceCode: "abc-123",
		ListingTitle:  "Canal Loft",
		CheckInDate:   "2024-01-01",
		CheckOutDate:  "2024-01-04",
		TotalPrice:    300,
	}

	assert.Equal(t, "Booking Confirmation - Canal Loft", ConfirmationSubject(ev))

	body := ConfirmationBody(ev)
	assert.Contains(t, body, "Booking ID: 12")
	assert.Contains(t, body, "Reference: abc-123")
	assert.Contains(t, body, "Property: Canal Loft")
	assert.Contains(t, body, "Check-in: 2024-01-01")
	assert.Contains(t, body, "Total: 300.00")
	assert.Contains(t, body, "We hope you enjoy your stay!")
}

func TestSMTPClientWithoutCredentials(t *testing.T) {
	// A host with no username means an unauthenticated relay; the client must
	// still build without AUTH configured.
	t.Setenv("SMTP_HOST", "localhost")
	t.Setenv("SMTP_USERNAME", "")
	t.Setenv("SMTP_PASSWORD", "")
	t.Setenv("SMTP_PORT", "25")

	c, err := smtpClient()
	assert.NoError(t, err)
	assert.NotNil(t, c)
}

func TestSendBookingConfirmationWithoutSMTPIsMocked(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	err := SendBookingConfirmation(queue.BookingCreatedEvent{
		BookingID:  1,
		GuestEmail: "guest@example.com",
	})
	assert.NoError(t, err)
}
