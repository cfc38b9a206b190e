// Package mailer sends transactional email over SMTP.
package mailer

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"travel-backend/queue"
)

func smtpClient() (*mail.Client, error) {
	host := os.Getenv("SMTP_HOST")
	user := os.Getenv("SMTP_USERNAME")
	pass := os.Getenv("SMTP_PASSWORD")
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	opts := []mail.Option{mail.WithPort(port)}
	// Servers without credentials (e.g. a local relay) reject AUTH negotiation.
	if user != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(user),
			mail.WithPassword(pass),
		)
	}
	c, err := mail.NewClient(host, opts...)
	if err != nil {
		log.Printf("Could not initialize smtp client: %s\n", err.Error())
		return nil, err
	}
	return c, nil
}

// ConfirmationSubject and ConfirmationBody compose the fixed booking
// confirmation template.
func ConfirmationSubject(ev queue.BookingCreatedEvent) string {
	return fmt.Sprintf("Booking Confirmation - %s", ev.ListingTitle)
}

func ConfirmationBody(ev queue.BookingCreatedEvent) string {
	return fmt.Sprintf(`Thank you for your booking!

Booking Details:
- Booking ID: %d
- Reference: %s
- Property: %s
- Check-in: %s
- Check-out: %s
- Total: %.2f

We hope you enjoy your stay!
`, ev.BookingID, ev.ReferenceCode, ev.ListingTitle, ev.CheckInDate, ev.CheckOutDate, ev.TotalPrice)
}

// SendBookingConfirmation composes and delivers the confirmation email for a
// booking event. Any SMTP failure is returned to the caller so the job is
// marked failed; nothing here retries. Without SMTP configuration the message
// is logged instead of sent, which keeps local development working.
func SendBookingConfirmation(ev queue.BookingCreatedEvent) error {
	if os.Getenv("SMTP_HOST") == "" {
		log.Printf("[MOCK EMAIL] booking confirmation to:%s booking:%d listing:%q", ev.GuestEmail, ev.BookingID, ev.ListingTitle)
		return nil
	}

	c, err := smtpClient()
	if err != nil {
		return err
	}

	fromAddr := os.Getenv("SMTP_FROM")
	if fromAddr == "" {
		fromAddr = os.Getenv("SMTP_USERNAME")
	}
	fromName := os.Getenv("SMTP_FROM_NAME")

	msg := mail.NewMsg()
	if err := msg.FromFormat(fromName, fromAddr); err != nil {
		return fmt.Errorf("set From address: %w", err)
	}
	if err := msg.To(ev.GuestEmail); err != nil {
		return fmt.Errorf("set To address: %w", err)
	}
	msg.Subject(ConfirmationSubject(ev))
	msg.SetBodyString(mail.TypeTextPlain, ConfirmationBody(ev))

	if err := c.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
