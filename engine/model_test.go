package engine

import (
	"image"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/crashx/parameter"
	"github.com/lixenwraith/crashx/render"
	"github.com/lixenwraith/crashx/round"
	"github.com/lixenwraith/crashx/vmath"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestTrajectory_ScaleStaysInBounds(t *testing.T) {
	for _, payout := range []float64{1, 1.5, 3, 20, 1000} {
		var tr Trajectory
		tr.Reset(500)
		st := round.State{Status: round.StatusInProgress, Payout: payout, StartTime: t0}
		for ms := 0; ms <= 600_000; ms += 160 {
			tr.Advance(st, t0.Add(time.Duration(ms)*time.Millisecond), 1000, 500)
			require.GreaterOrEqual(t, tr.Scale, parameter.MinScale)
			require.LessOrEqual(t, tr.Scale, parameter.MaxScale)
			require.LessOrEqual(t, tr.Rocket.Y, 500.0)
		}
	}
}

func TestTrajectory_AdvanceFormulas(t *testing.T) {
	var tr Trajectory
	tr.Reset(500)
	st := round.State{Status: round.StatusInProgress, Payout: 2, StartTime: t0}

	tr.Advance(st, t0.Add(3*time.Second), 1000, 500)

	assert.InDelta(t, 30, tr.Elapsed, 1e-9)
	assert.InDelta(t, -math.Atan2(10, 30)/10-math.Pi/6, tr.Angle, 1e-12)
	// target x = 10*30 = 300 from 55: +4.9; target y = 500-200 = 300 from 500: -4
	assert.InDelta(t, 55+245.0/50, tr.Rocket.X, 1e-9)
	assert.InDelta(t, 500-200.0/50, tr.Rocket.Y, 1e-9)
	// Scale from the pre-move position (55,500), 45 px from the origin
	assert.InDelta(t, 1-45.0/2000, tr.Scale, 1e-12)
}

func TestTrajectory_NeverMovesLeft(t *testing.T) {
	var tr Trajectory
	tr.Reset(500)
	tr.Rocket.X = 400
	st := round.State{Status: round.StatusInProgress, Payout: 1, StartTime: t0}

	tr.Advance(st, t0.Add(time.Second), 1000, 500)
	assert.Equal(t, 400.0, tr.Rocket.X)
}

func TestCamera_RatchetsPastThreshold(t *testing.T) {
	var c Camera

	c.Follow(vmath.V2(800, 300), 1000, 500)
	assert.Equal(t, vmath.Vec2{}, c.Offset)

	c.Follow(vmath.V2(900, 100), 1000, 500)
	assert.InDelta(t, -50, c.Offset.X, 1e-9)
	assert.InDelta(t, 75, c.Offset.Y, 1e-9)

	// Holds the last offset when the rocket is back inside the box
	c.Follow(vmath.V2(100, 400), 1000, 500)
	assert.InDelta(t, -50, c.Offset.X, 1e-9)

	c.Reset()
	assert.Equal(t, vmath.Vec2{}, c.Offset)
}

func TestStarField_BoundedPopulation(t *testing.T) {
	f := NewStarField(rand.New(rand.NewPCG(1, 2)))

	for i := 0; i < 1000; i++ {
		f.Spawn(vmath.V2(100, 100), 1000, 500)
		require.LessOrEqual(t, f.Len(), parameter.StarMaxCount)
		f.Step(i%2 == 0, nil)
	}
	assert.False(t, func() bool {
		for f.Len() < parameter.StarMaxCount {
			f.Spawn(vmath.Vec2{}, 10, 10)
		}
		return f.Spawn(vmath.Vec2{}, 10, 10)
	}())
}

func TestStarField_SpawnWithinBand(t *testing.T) {
	f := NewStarField(rand.New(rand.NewPCG(3, 4)))
	rocket := vmath.V2(300, 200)
	for f.Spawn(rocket, 1000, 500) {
	}

	for _, s := range f.Stars() {
		assert.GreaterOrEqual(t, s.Pos.X, rocket.X-1000)
		assert.Less(t, s.Pos.X, rocket.X+1000)
		assert.GreaterOrEqual(t, s.Pos.Y, rocket.Y-500)
		assert.Less(t, s.Pos.Y, rocket.Y+500)
		assert.GreaterOrEqual(t, s.Size, 0.0)
		assert.Less(t, s.Size, parameter.StarMaxSize)
		assert.GreaterOrEqual(t, s.Lifetime, 0)
		assert.Less(t, s.Lifetime, parameter.StarMaxLifetime)
	}
}

func TestStarField_LifetimeStrictlyDecreases(t *testing.T) {
	f := NewStarField(rand.New(rand.NewPCG(5, 6)))
	for f.Spawn(vmath.Vec2{}, 1000, 500) {
	}

	for tick := 0; tick < 50; tick++ {
		before := make(map[vmath.Vec2]int, f.Len())
		for _, s := range f.Stars() {
			before[s.Pos] = s.Lifetime
		}
		f.Step(false, nil)
		for _, s := range f.Stars() {
			prev, ok := before[s.Pos]
			require.True(t, ok)
			assert.Equal(t, prev-1, s.Lifetime)
		}
	}
}

func TestStarField_RemovalDoesNotSkip(t *testing.T) {
	f := NewStarField(rand.New(rand.NewPCG(1, 1)))
	for i, life := range []int{1, 1, 5, 1, 1, 7} {
		f.stars = append(f.stars, Star{Pos: vmath.V2(float64(i), 0), Lifetime: life})
	}

	var drawn []float64
	f.Step(true, func(s Star) { drawn = append(drawn, s.Pos.X) })

	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5}, drawn)
	require.Equal(t, 2, f.Len())
	assert.Equal(t, 4, f.Stars()[0].Lifetime)
	assert.Equal(t, 6, f.Stars()[1].Lifetime)
	assert.InDelta(t, 2+parameter.StarDriftX, f.Stars()[0].Pos.X, 1e-12)
	assert.InDelta(t, parameter.StarDriftY, f.Stars()[0].Pos.Y, 1e-12)
}

func TestParticleEffect_FrameTiming(t *testing.T) {
	p := NewExplosion(vmath.V2(10, 10), 100, t0)

	require.True(t, p.Step(t0))
	assert.Equal(t, 0, p.Frame)

	require.True(t, p.Step(t0.Add(500*time.Millisecond)))
	assert.Equal(t, 7, p.Frame)

	require.True(t, p.Step(t0.Add(999*time.Millisecond)))
	assert.Equal(t, 13, p.Frame)

	assert.False(t, p.Step(t0.Add(time.Second)))
	assert.False(t, p.Active)
	assert.Equal(t, 13, p.Frame)
	assert.True(t, p.Done())
}

func TestParticleEffect_LoopRestarts(t *testing.T) {
	p := NewExplosion(vmath.Vec2{}, 10, t0)
	p.Loop = true

	require.True(t, p.Step(t0.Add(1500*time.Millisecond)))
	assert.Equal(t, 0, p.Frame)
	assert.Equal(t, t0.Add(1500*time.Millisecond), p.StartedAt)
	assert.False(t, p.Done())
}

func TestParticleSet_RemovesFinished(t *testing.T) {
	var s ParticleSet
	s.Spawn(NewExplosion(vmath.V2(1, 2), 50, t0))
	s.Spawn(NewExplosion(vmath.V2(3, 4), 50, t0.Add(600*time.Millisecond)))
	sheet := image.Rect(0, 0, 32, 14*32)

	var sprites []render.ParticleSprite
	s.Step(t0.Add(700*time.Millisecond), sheet, func(p render.ParticleSprite) { sprites = append(sprites, p) })
	require.Len(t, sprites, 2)
	assert.Equal(t, image.Rect(0, 9*32, 32, 10*32), sprites[0].Src)
	assert.Equal(t, vmath.V2(1, 2), sprites[0].Center)
	assert.Equal(t, 50.0, sprites[0].Size)

	s.Step(t0.Add(1000*time.Millisecond), sheet, nil)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, vmath.V2(3, 4), s.Items()[0].Origin)

	s.Step(t0.Add(1600*time.Millisecond), sheet, nil)
	assert.Zero(t, s.Len())
}

func TestRuler_TimeAxisDensifies(t *testing.T) {
	r := NewRuler()
	var out render.RulerLayout

	r.Layout(&out, 600, 1, 1000, 500, 550)

	// rxn = 600/10/1 = 60, rxw = 16.67 < 70
	assert.Equal(t, 5.0, r.XDivisor)
	require.Len(t, out.TimeLabels, 61)
	assert.Equal(t, "0.0s", out.TimeLabels[0].Text)
	assert.Equal(t, "1.0s", out.TimeLabels[1].Text)
	assert.InDelta(t, 1000.0/60+parameter.RuleX, out.TimeLabels[1].Pos.X, 1e-9)
	assert.Equal(t, 530.0, out.TimeLabels[0].Pos.Y)

	// Next recompute uses the raised divisor
	r.Layout(&out, 600, 1, 1000, 500, 550)
	require.Len(t, out.TimeLabels, 13)
	assert.Equal(t, "5.0s", out.TimeLabels[1].Text)
	assert.Equal(t, 5.0, r.XDivisor)
}

func TestRuler_PayoutAxisStable(t *testing.T) {
	r := NewRuler()
	var out render.RulerLayout

	r.Layout(&out, 0, 3.0, 1000, 500, 550)

	// ryn = 3, ryw = 133.3 >= 40
	assert.Equal(t, 1.0, r.YDivisor)
	require.Len(t, out.PayoutLabels, 5)
	assert.Equal(t, "5.0x", out.PayoutLabels[0].Text)
	assert.Equal(t, "1.0x", out.PayoutLabels[4].Text)
	assert.InDelta(t, 500, out.PayoutLabels[4].Pos.Y, 1e-9)
	assert.InDelta(t, 500-400.0/3, out.PayoutLabels[3].Pos.Y, 1e-9)

	mx := parameter.RuleX + 1000*parameter.RulerYInsetRatio - parameter.RulerYInset
	assert.InDelta(t, mx-parameter.RulerLabelGap, out.PayoutLabels[0].Pos.X, 1e-9)
	require.Len(t, out.Marks, 10)
	assert.Equal(t, vmath.V2(mx, 500), out.Marks[8].From)
	assert.Equal(t, vmath.V2(mx+8, 500), out.Marks[8].To)
	assert.InDelta(t, mx+3, out.Marks[9].From.X, 1e-9)
}

func TestRuler_PayoutAxisDensifies(t *testing.T) {
	r := NewRuler()
	var out render.RulerLayout

	// ryn = 30, ryw = 13.3 < 40
	r.Layout(&out, 0, 30, 1000, 500, 550)
	assert.InDelta(t, 2.7, r.YDivisor, 1e-12)

	r.Reset()
	assert.Equal(t, NewRuler(), r)
}

func TestRuler_DegenerateInputsBounded(t *testing.T) {
	r := NewRuler()
	var out render.RulerLayout

	r.Layout(&out, math.Inf(1), math.NaN(), 1000, 500, 550)
	assert.LessOrEqual(t, len(out.TimeLabels), parameter.RulerMaxTicks+1)
	assert.LessOrEqual(t, len(out.PayoutLabels), parameter.RulerMaxTicks+2)

	r.Layout(&out, 1e12, 1e12, 1000, 500, 550)
	assert.LessOrEqual(t, len(out.TimeLabels), parameter.RulerMaxTicks+1)
}
