package engine

import (
	"image"
	"time"

	"github.com/lixenwraith/crashx/parameter"
	"github.com/lixenwraith/crashx/render"
	"github.com/lixenwraith/crashx/vmath"
)

// ParticleEffect plays a vertically stacked sprite sheet once (or forever when Loop)
type ParticleEffect struct {
	Origin     vmath.Vec2
	DrawSize   float64
	FrameCount int
	Frame      int
	Duration   time.Duration
	StartedAt  time.Time
	Active     bool
	Loop       bool
}

// NewExplosion creates the round-end explosion centred on origin
func NewExplosion(origin vmath.Vec2, drawSize float64, now time.Time) ParticleEffect {
	return ParticleEffect{
		Origin:     origin,
		DrawSize:   drawSize,
		FrameCount: parameter.ExplosionFrameCount,
		Duration:   parameter.ExplosionDuration,
		StartedAt:  now,
		Active:     true,
		Loop:       parameter.ExplosionLoop,
	}
}

// Step advances the frame for now; false means nothing should be drawn
func (p *ParticleEffect) Step(now time.Time) bool {
	if !p.Active && !p.Loop {
		return false
	}

	dt := now.Sub(p.StartedAt)
	if dt >= p.Duration {
		if !p.Loop {
			p.Active = false
			p.Frame = p.FrameCount - 1
			return false
		}
		p.StartedAt = now
		dt = 0
	}

	frame := int(float64(dt) / float64(p.Duration) * float64(p.FrameCount))
	p.Frame = min(max(frame, 0), p.FrameCount-1)
	return true
}

// Done reports whether the effect can be discarded
func (p *ParticleEffect) Done() bool {
	return !p.Active && !p.Loop
}

// ParticleSet holds running effects
type ParticleSet struct {
	items []ParticleEffect
}

func (s *ParticleSet) Spawn(p ParticleEffect) {
	s.items = append(s.items, p)
}

func (s *ParticleSet) Len() int { return len(s.items) }

func (s *ParticleSet) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// Step advances all effects, emits a sprite for each visible one and drops finished effects
func (s *ParticleSet) Step(now time.Time, sheet image.Rectangle, draw func(render.ParticleSprite)) {
	kept := s.items[:0]
	for _, p := range s.items {
		if p.Step(now) && draw != nil {
			draw(render.ParticleSprite{
				Src:    render.FrameRect(sheet, p.Frame, p.FrameCount),
				Center: p.Origin,
				Size:   p.DrawSize,
			})
		}
		if !p.Done() {
			kept = append(kept, p)
		}
	}
	clear(s.items[len(kept):])
	s.items = kept
}

// Items returns the live effects; the slice is reused by Step
func (s *ParticleSet) Items() []ParticleEffect { return s.items }
