package input

import (
	"context"
	"errors"
	"time"
)

// ErrLoopStopped is returned by Do when the loop exits before running fn.
var ErrLoopStopped = errors.New("input loop stopped")

// Loop owns a Dispatcher on a single goroutine. Hosts with their own threads
// hand registry and listener changes to Do, which runs them between ticks, so
// tick processing and event delivery never race with mutation.
type Loop struct {
	d        *Dispatcher
	interval time.Duration
	cmds     chan command
	done     chan struct{}
}

type command struct {
	fn   func(*Dispatcher)
	done chan struct{}
}

// NewLoop creates a loop that ticks d every interval.
func NewLoop(d *Dispatcher, interval time.Duration) *Loop {
	return &Loop{
		d:        d,
		interval: interval,
		cmds:     make(chan command),
		done:     make(chan struct{}),
	}
}

// Run ticks until ctx is cancelled and returns ctx.Err().
// It must be called at most once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-l.cmds:
			c.fn(l.d)
			close(c.done)
		case <-ticker.C:
			l.d.Tick()
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func(*Dispatcher)) error {
	c := command{fn: fn, done: make(chan struct{})}
	select {
	case l.cmds <- c:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	// once accepted the command always completes
	<-c.done
	return nil
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
