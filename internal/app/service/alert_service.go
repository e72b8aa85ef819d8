package service

import (
	"context"

	"careconnect/internal/domain/model"
)

// AlertPublisher hands HIGH priority requests to the coordinator alert queue.
type AlertPublisher interface {
	Publish(ctx context.Context, alert model.PriorityAlert) error
}

type noopAlertPublisher struct{}

// NewNoopAlertPublisher is used when no alert queue is configured.
func NewNoopAlertPublisher() AlertPublisher {
	return noopAlertPublisher{}
}

func (noopAlertPublisher) Publish(context.Context, model.PriorityAlert) error {
	return nil
}
