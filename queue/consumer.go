package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// SendConfirmation delivers a confirmation message for one event. A returned
// error marks the job as failed.
type SendConfirmation func(ev BookingCreatedEvent) error

// StartNotificationConsumer connects to RabbitMQ, declares the booking.created
// queue and consumes events, handing each one to send. Delivery failures are
// not swallowed: the message is Nacked so the broker's retry/dead-letter
// policy governs what happens next, and the already-committed booking is never
// touched. The function runs a reconnect loop with backoff and is meant to be
// started in its own goroutine from main.
func StartNotificationConsumer(send SendConfirmation) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("notification-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = consumeLoop(conn, send)
		// The connection may still be alive when the loop exits on a
		// channel-level error; close it before redialing.
		_ = conn.Close()
		if err != nil {
			log.Printf("notification-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, send SendConfirmation) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		log.Printf("notification-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(bookingQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(bookingQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, send); err != nil {
			log.Printf("notification-consumer: handle message failed: %v", err)
			// Reject without requeue; redelivery is the broker's call via DLX.
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, send SendConfirmation) error {
	var ev BookingCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := send(ev); err != nil {
		return fmt.Errorf("send confirmation for booking %d: %w", ev.BookingID, err)
	}
	log.Printf("✅ confirmation email sent for booking %d (%s)", ev.BookingID, ev.GuestEmail)
	return nil
}
