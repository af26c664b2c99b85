package engine

import (
	"math/rand/v2"

	"github.com/lixenwraith/crashx/parameter"
	"github.com/lixenwraith/crashx/vmath"
)

// Star is one background star
type Star struct {
	Pos      vmath.Vec2
	Size     float64
	Lifetime int
}

// StarField is a bounded population of short-lived stars scattered around the rocket
type StarField struct {
	stars []Star
	rng   *rand.Rand
}

func NewStarField(rng *rand.Rand) *StarField {
	return &StarField{
		stars: make([]Star, 0, parameter.StarMaxCount),
		rng:   rng,
	}
}

// Spawn adds one star in a band twice the playfield size around the rocket
// Returns false when the population is full
func (f *StarField) Spawn(rocket vmath.Vec2, width, height float64) bool {
	if len(f.stars) >= parameter.StarMaxCount {
		return false
	}
	f.stars = append(f.stars, Star{
		Pos: vmath.V2(
			rocket.X-width+f.rng.Float64()*2*width,
			rocket.Y-height+f.rng.Float64()*2*height,
		),
		Size:     f.rng.Float64() * parameter.StarMaxSize,
		Lifetime: int(f.rng.Float64() * parameter.StarMaxLifetime),
	})
	return true
}

// Step hands every star to draw, then drifts, ages and removes expired stars
// Survivors are compacted in place so no star is skipped or visited twice
func (f *StarField) Step(drift bool, draw func(Star)) {
	kept := f.stars[:0]
	for _, s := range f.stars {
		if draw != nil {
			draw(s)
		}
		if drift {
			s.Pos.X += parameter.StarDriftX
			s.Pos.Y += parameter.StarDriftY
		}
		s.Lifetime--
		if s.Lifetime > 0 {
			kept = append(kept, s)
		}
	}
	clear(f.stars[len(kept):])
	f.stars = kept
}

// Stars returns the live population; the slice is reused by Step
func (f *StarField) Stars() []Star { return f.stars }

func (f *StarField) Len() int { return len(f.stars) }
