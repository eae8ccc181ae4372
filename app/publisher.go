package app

import (
	"context"

	"pravaah/domain/alert"
	"pravaah/ports"
)

// FanoutPublisher forwards alerts to every configured publisher. One
// failing sink does not stop the others; the first error is returned.
type FanoutPublisher struct {
	sinks []ports.AlertPublisher
}

// NewFanoutPublisher creates a publisher over the non-nil sinks.
func NewFanoutPublisher(sinks ...ports.AlertPublisher) *FanoutPublisher {
	f := &FanoutPublisher{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *FanoutPublisher) Publish(ctx context.Context, alerts []alert.Alert) error {
	var first error
	for _, sink := range f.sinks {
		if err := sink.Publish(ctx, alerts); err != nil && first == nil {
			first = err
		}
	}
	return first
}
