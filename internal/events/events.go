// Package events handles NATS messaging between the analytics service and
// the rest of the Shopsy platform.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Event subjects
const (
	SubjectOrderCreated       = "order.created"
	SubjectOrderStatusChanged = "order.status.changed"
	SubjectReportRefreshed    = "analytics.report.refreshed"
)

// OrderChangedEvent is published by the order service whenever an order is
// created or transitions state. Either kind invalidates every derived
// aggregate here.
type OrderChangedEvent struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	ShopID    string    `json:"shop_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ReportRefreshedEvent announces that a fresh aggregate snapshot is
// available.
type ReportRefreshedEvent struct {
	ReportID    uuid.UUID `json:"report_id"`
	OrderCount  int       `json:"order_count"`
	WeekCount   int       `json:"week_count"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Publisher publishes analytics events to NATS.
type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

// NewPublisher creates a new NATS publisher.
func NewPublisher(nc *nats.Conn, logger *zap.Logger) *Publisher {
	return &Publisher{nc: nc, logger: logger}
}

// PublishReportRefreshed publishes a report refreshed event.
func (p *Publisher) PublishReportRefreshed(event *ReportRefreshedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.nc.Publish(SubjectReportRefreshed, data)
}

// OrderEventHandler reacts to order changes.
type OrderEventHandler interface {
	HandleOrderChanged(event *OrderChangedEvent) error
}

// Subscriber handles NATS event subscriptions.
type Subscriber struct {
	nc      *nats.Conn
	logger  *zap.Logger
	handler OrderEventHandler
	subs    []*nats.Subscription
}

// NewSubscriber creates a new NATS subscriber.
func NewSubscriber(nc *nats.Conn, handler OrderEventHandler, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		nc:      nc,
		logger:  logger,
		handler: handler,
		subs:    make([]*nats.Subscription, 0),
	}
}

// Start subscribes to all relevant events.
func (s *Subscriber) Start() error {
	for _, subject := range []string{SubjectOrderCreated, SubjectOrderStatusChanged} {
		sub, err := s.nc.Subscribe(subject, s.handleOrderChanged)
		if err != nil {
			return err
		}
		s.subs = append(s.subs, sub)
		s.logger.Info("Subscribed to event", zap.String("subject", subject))
	}
	return nil
}

// Stop unsubscribes from all events.
func (s *Subscriber) Stop() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	s.logger.Info("NATS subscriber stopped")
}

// handleOrderChanged processes order change events.
func (s *Subscriber) handleOrderChanged(msg *nats.Msg) {
	var event OrderChangedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		s.logger.Error("Failed to unmarshal order changed event", zap.Error(err))
		return
	}

	s.logger.Info("Received order changed event",
		zap.String("order_id", event.OrderID),
		zap.String("status", event.Status),
	)

	if err := s.handler.HandleOrderChanged(&event); err != nil {
		s.logger.Error("Failed to handle order changed event",
			zap.String("order_id", event.OrderID),
			zap.Error(err),
		)
	}
}
