package infrastructure

import (
	"context"

	"catalog-service/internal/application/interfaces"
	"catalog-service/internal/domain/events"
)

// FanoutBroadcaster hands each event to every target in order.
type FanoutBroadcaster struct {
	targets []interfaces.EventBroadcaster
}

func NewFanoutBroadcaster(targets ...interfaces.EventBroadcaster) *FanoutBroadcaster {
	return &FanoutBroadcaster{targets: targets}
}

func (f *FanoutBroadcaster) Add(target interfaces.EventBroadcaster) {
	f.targets = append(f.targets, target)
}

func (f *FanoutBroadcaster) Broadcast(ctx context.Context, event events.Event) {
	for _, target := range f.targets {
		target.Broadcast(ctx, event)
	}
}
