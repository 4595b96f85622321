package services

import (
	"encoding/json"

	"github.com/KDAtkins/infrastructure/internal/metrics"

	"go.uber.org/zap"
)

// Routing keys of the domain events.
const (
	EventProfileCreated = "profile.created"
	EventReportCreated  = "report.created"
	EventReportUpdated  = "report.updated"
	EventReportDeleted  = "report.deleted"
)

// EventPublisher sends a domain event to the broker. *rabbitmq.Client
// satisfies it.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// publishEvent never fails the caller: a nil publisher disables events and a
// broker error is only logged and counted.
func publishEvent(pub EventPublisher, routingKey string, payload any) {
	if pub == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("failed to marshal event", zap.String("routing_key", routingKey), zap.Error(err))
		return
	}
	if err := pub.Publish(routingKey, body); err != nil {
		metrics.EventPublishFailures.WithLabelValues(routingKey).Inc()
		zap.L().Warn("failed to publish event", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
