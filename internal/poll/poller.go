package poll

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// Logger provides minimal logging required by the polling layer.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Refresh performs one re-fetch of the tracked resource.
type Refresh func(ctx context.Context) error

// Source delivers refresh signals. The fixed-interval timer is the
// default implementation; a push transport can replace it without the
// call sites changing.
type Source interface {
	Subscribe(ctx context.Context, onSignal func()) (stop func(), err error)
}

// IntervalSource signals on a fixed interval, with optional jitter so
// many clients do not tick in lockstep.
type IntervalSource struct {
	Interval time.Duration
	Jitter   time.Duration
}

func (s IntervalSource) Subscribe(ctx context.Context, onSignal func()) (func(), error) {
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			delay := s.Interval
			if s.Jitter > 0 {
				delay += time.Duration(rand.Int63n(int64(s.Jitter)))
			}
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-done:
				timer.Stop()
				return
			case <-timer.C:
				onSignal()
			}
		}
	}()

	stop := func() {
		once.Do(func() { close(done) })
	}
	return stop, nil
}

// Poller runs an immediate refresh, then re-runs it on every source
// signal. A failed tick is logged and dropped; the next signal retries.
type Poller struct {
	source  Source
	refresh Refresh
	initial Refresh
	log     Logger

	mu   sync.Mutex
	stop func()
}

type Option func(*Poller)

// WithInitial overrides the refresh used for the first, visible load;
// timer ticks keep using the silent refresh.
func WithInitial(fn Refresh) Option {
	return func(p *Poller) { p.initial = fn }
}

func New(source Source, refresh Refresh, log Logger, opts ...Option) *Poller {
	p := &Poller{source: source, refresh: refresh, log: log}
	for _, opt := range opts {
		opt(p)
	}
	if p.initial == nil {
		p.initial = refresh
	}
	return p
}

// Start tears down any previous subscription, performs the immediate
// fetch and subscribes for further signals. Calling it again with a new
// context is how a key change (switching conversations) restarts the
// loop.
func (p *Poller) Start(ctx context.Context) error {
	p.Stop()

	if err := p.initial(ctx); err != nil {
		p.log.Errorf("poll: initial refresh: %v", err)
	}

	stop, err := p.source.Subscribe(ctx, func() {
		if err := p.refresh(ctx); err != nil {
			p.log.Errorf("poll: refresh: %v", err)
		}
	})
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.stop = stop
	p.mu.Unlock()
	return nil
}

// Stop halts the subscription. Safe to call repeatedly or before Start.
func (p *Poller) Stop() {
	p.mu.Lock()
	stop := p.stop
	p.stop = nil
	p.mu.Unlock()

	if stop != nil {
		stop()
	}
}
