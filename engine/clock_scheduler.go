package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/crashx/core"
	"github.com/lixenwraith/crashx/parameter"
	"github.com/lixenwraith/crashx/status"
)

// ClockScheduler fires a tick function on a fixed cadence
// Deadlines advance by the interval for drift correction; missed ticks are dropped, not replayed
// A scheduler runs once: Start after Stop is a no-op
type ClockScheduler struct {
	tick func()

	// Tick configuration
	tickInterval     time.Duration
	nextTickDeadline time.Time

	// Tick counter for debugging and metrics
	tickCount atomic.Uint64

	// Control channels
	mu       sync.Mutex
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  bool
	stopped  bool

	// Cached metric pointers
	statTicks *atomic.Int64
}

// NewClockScheduler creates a scheduler calling tick every interval
func NewClockScheduler(tickInterval time.Duration, tick func(), reg *status.Registry) *ClockScheduler {
	if tickInterval <= 0 {
		tickInterval = parameter.TickInterval
	}
	return &ClockScheduler{
		tick:         tick,
		tickInterval: tickInterval,
		stopChan:     make(chan struct{}),
		statTicks:    reg.Ints.Get("engine.ticks"),
	}
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.running || cs.stopped {
		return
	}
	cs.running = true
	cs.wg.Add(1)
	// Use core.Go for safe execution with centralized crash handling
	core.Go(cs.schedulerLoop)
}

// Stop halts the scheduler loop; no tick runs after Stop returns
// Must not be called from inside the tick function
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		cs.mu.Lock()
		cs.stopped = true
		wasRunning := cs.running
		cs.running = false
		cs.mu.Unlock()

		close(cs.stopChan)
		if wasRunning {
			cs.wg.Wait()
		}
	})
}

// TickCount returns the number of completed ticks
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// schedulerLoop runs the main scheduling loop
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.nextTickDeadline = time.Now().Add(cs.tickInterval)

	timer := time.NewTimer(cs.tickInterval)
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		case <-timer.C:
		}

		// Stop may race the timer; a closed stop channel always wins
		select {
		case <-cs.stopChan:
			return
		default:
		}

		now := time.Now()
		if now.Before(cs.nextTickDeadline) {
			timer.Reset(cs.nextTickDeadline.Sub(now))
			continue
		}

		cs.tick()
		cs.tickCount.Add(1)
		cs.statTicks.Add(1)

		cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)
		now = time.Now()
		maxBehind := cs.tickInterval * 2
		if now.Sub(cs.nextTickDeadline) > maxBehind {
			cs.nextTickDeadline = now.Add(cs.tickInterval)
		}

		timer.Reset(max(cs.nextTickDeadline.Sub(now), 0))
	}
}
