package persist

import (
	"context"
	"time"

	"gitlab.com/dirk.krummacker/peoplehub/internal/model"
)

// flushTimeout bounds a single save.
const flushTimeout = 5 * time.Second

// Writer saves state snapshots in the background. It only keeps the most recent snapshot, so a
// burst of changes results in few writes, and observing a change never blocks.
type Writer struct {
	adapter *Adapter
	latest  chan []model.Person
}

// NewWriter creates a writer saving through adapter.
func NewWriter(adapter *Adapter) *Writer {
	return &Writer{
		adapter: adapter,
		latest:  make(chan []model.Person, 1),
	}
}

// Observe queues the people list of state for saving, replacing any snapshot that has not been
// saved yet. It is meant to be registered with Store.Subscribe.
func (w *Writer) Observe(state model.State) {
	select {
	case <-w.latest:
	default:
	}
	select {
	case w.latest <- state.People:
	default:
	}
}

// Run saves queued snapshots until ctx is cancelled, then saves whatever is still queued. Saves
// are detached from the cancellation of ctx and bounded by flushTimeout, so that a snapshot taken
// from the queue is never dropped because shutdown began.
func (w *Writer) Run(ctx context.Context) error {
	for {
		select {
		case people := <-w.latest:
			w.save(ctx, people)
		case <-ctx.Done():
			select {
			case people := <-w.latest:
				w.save(ctx, people)
			default:
			}
			return nil
		}
	}
}

// save writes one snapshot. Failures are logged and counted, never retried.
func (w *Writer) save(ctx context.Context, people []model.Person) {
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
	defer cancel()
	if err := w.adapter.Save(saveCtx, people); err != nil {
		w.adapter.log.Error("save state failed", "error", err)
		w.adapter.metrics.countFailure("save")
	}
}
