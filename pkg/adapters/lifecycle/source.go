// Package lifecycle exposes content change events as a lifecycle.Source.
package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/lifecycle"

	"github.com/smartymode/folio/pkg/core"
)

// Batch is every change that arrived in one burst. One batch means one
// rebuild.
type Batch []core.Event

// String implements lifecycle.Event.
func (b Batch) String() string {
	paths := make([]string, len(b))
	for i, e := range b {
		paths[i] = e.Path
	}
	return fmt.Sprintf("%d change(s): %s", len(b), strings.Join(paths, ", "))
}

type batchSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource wraps a watcher channel. Events already queued when a batch
// starts are folded into it; the output closes once the input does.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &batchSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *batchSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *batchSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			var batch Batch
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				batch = append(batch, e)
			}

			open := drain(s.events, &batch)
			select {
			case s.out <- batch:
			case <-ctx.Done():
				return nil
			}
			if !open {
				return nil
			}
		}
	})
	return nil
}

// drain appends every event that is ready without blocking.
// It reports false when the input has been closed.
func drain(events <-chan core.Event, batch *Batch) bool {
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return false
			}
			*batch = append(*batch, e)
		default:
			return true
		}
	}
}
