package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry is the central metrics facade
// Components cache pointers at construction; tick code writes directly to atomics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Snapshot copies every metric value into a plain map
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.Ints.Count()+r.Floats.Count())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		out[key] = v.Load()
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		out[key] = v.Get()
	})
	return out
}

// Summary renders the named metrics as one "key=value" line, unknown keys are skipped
func (r *Registry) Summary(keys ...string) string {
	var sb strings.Builder
	for _, k := range keys {
		var val string
		switch {
		case r.Ints.Has(k):
			val = fmt.Sprintf("%d", r.Ints.Get(k).Load())
		case r.Floats.Has(k):
			val = fmt.Sprintf("%.1f", r.Floats.Get(k).Get())
		default:
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(k[strings.LastIndexByte(k, '.')+1:])
		sb.WriteByte('=')
		sb.WriteString(val)
	}
	return sb.String()
}
