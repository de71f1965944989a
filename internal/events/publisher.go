// Package events publishes auction domain events to RabbitMQ so indexing,
// search and notification consumers stay decoupled from the record store.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
)

const (
	// Exchange is the topic exchange all auction events are addressed to.
	Exchange = "topic_fleet"

	// RoutingKeyAuctionCreated identifies the auction-created event type.
	RoutingKeyAuctionCreated = "auctions.create"
)

// RabbitPublisher delivers auction events to a topic exchange. Delivery is
// at-least-once: a transient failure is returned to the caller rather than
// swallowed, and retry policy belongs to the messaging transport, not here.
type RabbitPublisher struct {
	url     string
	timeout time.Duration
}

// NewRabbitPublisher creates a publisher for the given broker URL. Every
// publish runs under the given timeout; a timed-out send is reported as a
// delivery failure.
func NewRabbitPublisher(url string, timeout time.Duration) *RabbitPublisher {
	return &RabbitPublisher{
		url:     url,
		timeout: timeout,
	}
}

// PublishAuctionCreated sends the full creation-time auction snapshot as a
// persistent JSON message under the auctions.create routing key. All failure
// modes wrap ErrDeliveryFailed so callers can report partial success without
// inspecting transport errors.
func (p *RabbitPublisher) PublishAuctionCreated(ctx context.Context, auction models.Auction) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("publisher: dial broker: %v: %w", err, auctionerrors.ErrDeliveryFailed)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("publisher: open channel: %v: %w", err, auctionerrors.ErrDeliveryFailed)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent; durable so the exchange survives broker restarts.
	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("publisher: declare exchange %s: %v: %w", Exchange, err, auctionerrors.ErrDeliveryFailed)
	}

	body, err := json.Marshal(auction)
	if err != nil {
		return fmt.Errorf("publisher: marshal auction %s: %v: %w", auction.AuctionID, err, auctionerrors.ErrDeliveryFailed)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, Exchange, RoutingKeyAuctionCreated, false, false, pub); err != nil {
		return fmt.Errorf("publisher: publish %s: %v: %w", RoutingKeyAuctionCreated, err, auctionerrors.ErrDeliveryFailed)
	}

	return nil
}
