// Package sampler polls a time source on a fixed short period and
// publishes the displayed time under a discrete/continuous policy.
// In discrete mode the displayed time is truncated to whole seconds and
// republished only when the sampled second changes; in continuous mode
// every sample is published at full precision. In both modes the
// "time changed" notification fires only on whole-second crossings.
package sampler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nholloway/clockface/binding"
	"github.com/nholloway/clockface/clock"
	"github.com/nholloway/clockface/logger"
	"github.com/nholloway/clockface/timeutil"
)

// Sampler owns the displayed-time value and its update policy.
type Sampler struct {
	clk    clock.Clock
	period time.Duration
	logger logger.Logger

	displayed *binding.Value[time.Time]
	discrete  *binding.Value[bool]

	mu         sync.Mutex
	lastSample time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// Params holds configuration for creating a Sampler.
type Params struct {
	Config Config
	Clock  clock.Clock
	Logger logger.Logger
}

// New creates a Sampler. The displayed time stays zero until Start (or
// the first step) publishes a sample.
func New(p Params) *Sampler {
	p.Config.Defaults()

	clk := p.Clock
	if clk == nil {
		clk = clock.System()
	}
	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &Sampler{
		clk:       clk,
		period:    p.Config.Period,
		logger:    log,
		displayed: binding.NewValue(time.Time{}),
		discrete:  binding.NewValue(p.Config.Discrete),
	}
}

// DisplayedTime returns the currently published time.
func (s *Sampler) DisplayedTime() time.Time {
	return s.displayed.Get()
}

// Discrete reports whether whole-second display mode is active.
func (s *Sampler) Discrete() bool {
	return s.discrete.Get()
}

// SetDiscrete switches the display mode. Enabling discrete mode
// truncates the currently displayed time immediately so it never
// carries a fractional-second component. Redundant sets are ignored.
func (s *Sampler) SetDiscrete(v bool) {
	if s.discrete.Get() == v {
		return
	}
	s.discrete.Set(v)

	if v {
		if cur := s.displayed.Get(); !cur.IsZero() && cur.Nanosecond() != 0 {
			s.displayed.Set(timeutil.TruncateSecond(cur))
		}
	}
}

// WatchTime registers fn for displayed-time changes. It fires only when
// the whole-second component of the published value changes; sub-second
// updates in continuous mode do not notify. The returned function
// removes the registration.
func (s *Sampler) WatchTime(fn func(old, new time.Time)) (remove func()) {
	return s.displayed.Watch(func(old, new time.Time) {
		if timeutil.SameSecond(old, new) {
			return
		}
		fn(old, new)
	})
}

// WatchDisplayed registers fn for every published sample, including
// sub-second updates in continuous mode.
func (s *Sampler) WatchDisplayed(fn func(old, new time.Time)) (remove func()) {
	return s.displayed.Watch(fn)
}

// WatchDiscrete registers fn for display-mode changes. This is a
// notification distinct from WatchTime; mode flips never masquerade as
// time changes.
func (s *Sampler) WatchDiscrete(fn func(old, new bool)) (remove func()) {
	return s.discrete.Watch(fn)
}

// Start publishes an initial sample and begins the polling loop.
func (s *Sampler) Start(ctx context.Context) error {
	if s.period <= 0 {
		return errors.New("sampler: period must be positive")
	}

	// Fail fast at startup if the time source is unusable.
	now := s.clk.Now()
	if now.IsZero() {
		return errors.New("sampler: time source returned zero time")
	}
	s.step(now)

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.run(ctx)

	s.logger.InfoW("sampler started", "period", s.period, "discrete", s.discrete.Get())
	return nil
}

// Stop shuts down the polling loop.
func (s *Sampler) Stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
}

func (s *Sampler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.step(s.clk.Now())
		}
	}
}

// step applies the publish policy for one sampled instant. The last
// sampled time advances on every call whether or not a publish occurs.
func (s *Sampler) step(now time.Time) {
	s.mu.Lock()
	prev := s.lastSample
	s.lastSample = now
	s.mu.Unlock()

	if s.discrete.Get() {
		if !prev.IsZero() && timeutil.SameSecond(prev, now) {
			return
		}
		s.displayed.Set(timeutil.TruncateSecond(now))
		return
	}

	s.displayed.Set(now)
}
