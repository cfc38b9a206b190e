package queue

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessageDeliversEvent(t *testing.T) {
	ev := BookingCreatedEvent{
		BookingID:     42,
		ReferenceCode: "ref-42",
		GuestEmail:    "guest@example.com",
		ListingTitle:  "Canal Loft",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	var got BookingCreatedEvent
	err = handleMessage(body, func(ev BookingCreatedEvent) error {
		got = ev
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), got.BookingID)
	assert.Equal(t, "guest@example.com", got.GuestEmail)
}

func TestHandleMessageSurfacesSendFailure(t *testing.T) {
	body, err := json.Marshal(BookingCreatedEvent{BookingID: 7})
	require.NoError(t, err)

	sendErr := errors.New("smtp down")
	err = handleMessage(body, func(BookingCreatedEvent) error { return sendErr })
	require.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
}

func TestHandleMessageRejectsMalformedPayload(t *testing.T) {
	called := false
	err := handleMessage([]byte("not json"), func(BookingCreatedEvent) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}
