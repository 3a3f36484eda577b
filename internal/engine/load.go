package engine

import (
	"context"
	"errors"
	"image"

	"github.com/example/markyfy/internal/persist"
)

// LoadTask is a pending read-and-decode of the stored snapshot.
type LoadTask struct {
	cancel context.CancelFunc
	done   chan struct{}
	img    image.Image
	err    error
}

// Done is closed when the decode has finished or been cancelled.
func (t *LoadTask) Done() <-chan struct{} { return t.done }

// Cancel abandons the load. The engine then treats it as empty.
func (t *LoadTask) Cancel() { t.cancel() }

// Result returns the decoded snapshot. It is only valid after Done.
func (t *LoadTask) Result() (image.Image, error) { return t.img, t.err }

// Load starts decoding the stored snapshot in the background. Until the task
// is finished with FinishLoad or AwaitLoad, pointer, key and blur events are
// queued rather than applied. Calling Load while a task is pending returns
// that task.
func (e *Engine) Load(ctx context.Context) *LoadTask {
	if e.pending != nil {
		return e.pending
	}
	ctx, cancel := context.WithCancel(ctx)
	t := &LoadTask{cancel: cancel, done: make(chan struct{})}
	e.pending = t
	store := e.store
	go func() {
		defer close(t.done)
		img, err := store.Load(ctx)
		if cerr := ctx.Err(); cerr != nil {
			img, err = nil, cerr
		}
		t.img, t.err = img, err
	}()
	e.log.Debug("snapshot load started")
	return t
}

// Loading reports whether a load is pending.
func (e *Engine) Loading() bool { return e.pending != nil }

// FinishLoad waits for t, draws its snapshot at the origin and then replays
// every event queued while it was pending. Stale tasks are ignored.
func (e *Engine) FinishLoad(t *LoadTask) {
	if t == nil || t != e.pending {
		return
	}
	<-t.done
	t.cancel()

	img, err := t.Result()
	switch {
	case err == nil:
		e.surf.DrawImage(img)
		e.metrics.Loaded("ok")
		e.log.Info("snapshot restored", "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	case errors.Is(err, persist.ErrNotFound):
		e.metrics.Loaded("empty")
		e.log.Debug("no stored snapshot")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		e.metrics.Loaded("cancelled")
		e.log.Debug("snapshot load cancelled")
	case errors.Is(err, persist.ErrDecode):
		e.metrics.Loaded("invalid")
		e.log.Warn("stored snapshot is invalid, starting blank", "error", err)
	default:
		e.metrics.Loaded("failed")
		e.log.Warn("snapshot load failed, starting blank", "error", err)
	}

	e.pending = nil
	queued := e.queue
	e.queue = nil
	if len(queued) > 0 {
		e.log.Debug("replaying queued events", "count", len(queued))
	}
	for _, in := range queued {
		e.dispatch(in)
	}
}

// AwaitLoad blocks until the pending load, if any, completes and then
// finishes it. It returns ctx.Err() when ctx ends first; the load stays
// pending in that case.
func (e *Engine) AwaitLoad(ctx context.Context) error {
	t := e.pending
	if t == nil {
		return nil
	}
	select {
	case <-t.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	e.FinishLoad(t)
	return nil
}
