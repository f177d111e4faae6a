package mq

import (
	"context"
	"encoding/json"
	"log"

	"pitchbook/models"
	"pitchbook/rdx"
)

const bookingChannel = "booking-events"

// Emit publishes a booking lifecycle event to Redis. Failures are logged
// and swallowed: event delivery must never fail a booking write that has
// already committed.
func Emit(ctx context.Context, event models.BookingEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[mq] marshal event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, bookingChannel, data).Err(); err != nil {
		log.Printf("[mq] publish %s: %v", event.Type, err)
	}
}

// Handler consumes booking events off the channel.
type Handler func(ctx context.Context, event models.BookingEvent)

// StartWorker subscribes to booking events and dispatches each one to the
// handler. Runs until the process exits.
func StartWorker(handle Handler) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, bookingChannel)
	ch := sub.Channel()

	log.Println("[mq] listening for booking events")
	for msg := range ch {
		var event models.BookingEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[mq] parse event: %v", err)
			continue
		}
		handle(ctx, event)
	}
}
