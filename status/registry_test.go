package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMap_GetReturnsCachedPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("engine.ticks")
	b := r.Ints.Get("engine.ticks")
	assert.Same(t, a, b)
	assert.Equal(t, 1, r.Ints.Count())
}

func TestMetricMap_ConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Ints.Get("feed.updates").Add(1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(32), r.Ints.Get("feed.updates").Load())
}

func TestRegistry_SnapshotAndSummary(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("engine.ticks").Store(42)
	r.Floats.Get("engine.tick_us").Set(12.34)

	snap := r.Snapshot()
	assert.Equal(t, int64(42), snap["engine.ticks"])
	assert.InDelta(t, 12.34, snap["engine.tick_us"].(float64), 1e-9)

	assert.Equal(t, "ticks=42 tick_us=12.3", r.Summary("engine.ticks", "missing.key", "engine.tick_us"))
}

func TestAtomicFloat_Smooth(t *testing.T) {
	var f AtomicFloat
	assert.Equal(t, 10.0, f.Smooth(10, 0.5))
	assert.Equal(t, 15.0, f.Smooth(20, 0.5))
}
