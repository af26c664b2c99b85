package engine

import (
	"image"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/crashx/parameter"
	"github.com/lixenwraith/crashx/render"
	"github.com/lixenwraith/crashx/round"
	"github.com/lixenwraith/crashx/status"
)

// Config holds engine tuning
type Config struct {
	TickInterval time.Duration
	// StatusBar is subtracted from the surface height to get the playfield height
	StatusBar float64
	// Overlay draws a metrics line at the bottom of each frame
	Overlay bool
	// Seed fixes the star field; zero picks a random seed
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		TickInterval: parameter.TickInterval,
		StatusBar:    parameter.StatusBarAllowance,
	}
}

// SpriteSource supplies raster resources; images may be nil until loaded
type SpriteSource interface {
	Sprites() render.Sprites
	Release()
}

type noSprites struct{}

func (noSprites) Sprites() render.Sprites { return render.Sprites{} }
func (noSprites) Release()                {}

// surfaceBinding is swapped atomically on Start/Attach so a resize never tears a tick
type surfaceBinding struct {
	surface       render.Surface
	width         float64
	height        float64
	surfaceHeight float64
}

// Option configures an Engine
type Option func(*Engine)

func WithTimeProvider(tp TimeProvider) Option {
	return func(e *Engine) { e.clock = tp }
}

func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

func WithRegistry(reg *status.Registry) Option {
	return func(e *Engine) { e.reg = reg }
}

func WithSprites(src SpriteSource) Option {
	return func(e *Engine) { e.sprites = src }
}

func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// overlayKeys are the metrics shown on the debug overlay
var overlayKeys = []string{
	"engine.ticks", "engine.tick_us", "engine.stars", "engine.particles", "feed.updates", "feed.errors",
}

// Engine runs the ascent simulation and renders it onto a bound surface
// Update and Attach are safe from any goroutine; model state is owned by the tick
type Engine struct {
	cfg      Config
	clock    TimeProvider
	log      zerolog.Logger
	sampled  zerolog.Logger
	reg      *status.Registry
	rng      *rand.Rand
	sprites  SpriteSource
	renderer *render.Renderer

	state   round.Store
	binding atomic.Pointer[surfaceBinding]

	lifecycle sync.Mutex
	sched     *ClockScheduler

	// Tick-owned model
	initialized bool
	lastStatus  round.Status
	animated    bool
	trajectory  Trajectory
	camera      Camera
	stars       *StarField
	particles   ParticleSet
	ruler       Ruler
	scene       render.Scene

	published atomic.Pointer[Snapshot]

	// Cached metric pointers
	statStars     *atomic.Int64
	statParticles *atomic.Int64
	statTickUs    *status.AtomicFloat
}

// New creates an engine; it draws nothing until a surface is attached and a round state arrives
func New(cfg Config, opts ...Option) *Engine {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = parameter.TickInterval
	}
	if cfg.StatusBar < 0 {
		cfg.StatusBar = 0
	}

	e := &Engine{
		cfg:      cfg,
		log:      zerolog.Nop(),
		sprites:  noSprites{},
		renderer: render.NewRenderer(),
		ruler:    NewRuler(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.clock == nil {
		e.clock = NewTimeProvider()
	}
	if e.reg == nil {
		e.reg = status.NewRegistry()
	}
	if e.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		e.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	e.log = e.log.With().Str("component", "engine").Logger()
	e.sampled = e.log.Sample(&zerolog.BurstSampler{Burst: 1, Period: time.Second})
	e.stars = NewStarField(e.rng)
	e.statStars = e.reg.Ints.Get("engine.stars")
	e.statParticles = e.reg.Ints.Get("engine.particles")
	e.statTickUs = e.reg.Floats.Get("engine.tick_us")
	return e
}

// Registry returns the metrics registry the engine writes to
func (e *Engine) Registry() *status.Registry { return e.reg }

// Attach binds the engine to a surface without starting the scheduler
// Re-invoke on resize; the next tick uses the new dimensions
func (e *Engine) Attach(s render.Surface) {
	if s == nil {
		e.binding.Store(nil)
		return
	}
	w, h := s.Size()
	e.binding.Store(&surfaceBinding{
		surface:       s,
		width:         float64(w),
		height:        max(float64(h)-e.cfg.StatusBar, 1),
		surfaceHeight: float64(h),
	})
	e.log.Debug().Int("width", w).Int("height", h).Msg("surface attached")
}

// Start binds the surface and starts the fixed-tick loop if it is not running
func (e *Engine) Start(s render.Surface) {
	e.Attach(s)

	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()
	if e.sched != nil {
		return
	}
	e.sched = NewClockScheduler(e.cfg.TickInterval, e.Tick, e.reg)
	e.sched.Start()
	e.log.Info().Dur("interval", e.cfg.TickInterval).Msg("engine started")
}

// Update stores the latest round state for the next tick
func (e *Engine) Update(st round.State) {
	e.state.Set(st)
}

// Stop halts the loop and releases the surface and sprites
// No tick runs after Stop returns
func (e *Engine) Stop() {
	e.lifecycle.Lock()
	sched := e.sched
	e.sched = nil
	e.lifecycle.Unlock()

	if sched != nil {
		sched.Stop()
	}
	e.binding.Store(nil)
	e.sprites.Release()
	e.log.Info().Msg("engine stopped")
}

// Snapshot returns the state published by the last tick
func (e *Engine) Snapshot() (Snapshot, bool) {
	s := e.published.Load()
	if s == nil {
		return Snapshot{}, false
	}
	return *s, true
}

// Tick runs one update and render pass
// Called by the scheduler; call directly only when no scheduler is running
func (e *Engine) Tick() {
	b := e.binding.Load()
	st, ok := e.state.Load()
	if b == nil || !ok {
		return
	}

	started := time.Now()
	now := e.clock.Now()

	if !e.initialized {
		e.reset(b.height)
		e.initialized = true
	}
	prev := e.lastStatus
	if st.Status != prev {
		e.log.Debug().
			Stringer("from", e.lastStatus).
			Stringer("to", st.Status).
			Float64("payout", st.Payout).
			Msg("round status changed")
		e.lastStatus = st.Status
	}

	e.update(prev, st, now, b)
	e.render(st, now, b)
	e.publish(st.Status)

	e.statStars.Store(int64(e.stars.Len()))
	e.statParticles.Store(int64(e.particles.Len()))
	e.statTickUs.Smooth(float64(time.Since(started).Microseconds()), 0.1)
}

func (e *Engine) reset(height float64) {
	e.trajectory.Reset(height)
	e.camera.Reset()
	e.particles.Clear()
	e.ruler.Reset()
	e.animated = false
}

// update advances the models; a round that starts straight after Over, with no
// reset status observed in between, still begins from the launch point
func (e *Engine) update(prev round.Status, st round.State, now time.Time, b *surfaceBinding) {
	if st.Status.Resets() || (prev == round.StatusOver && st.Status == round.StatusInProgress) {
		e.reset(b.height)
	}

	switch st.Status {
	case round.StatusInProgress:
		e.trajectory.Advance(st, now, b.width, b.height)
		e.camera.Follow(e.trajectory.Rocket, b.width, b.height)

	case round.StatusOver:
		e.trajectory.Freeze(st.Payout)
		if e.particles.Len() == 0 && !e.animated {
			e.animated = true
			size := render.RocketSize(b.width) * e.trajectory.Scale
			e.particles.Spawn(NewExplosion(e.trajectory.Rocket, size, now))
			e.log.Debug().Float64("payout", st.Payout).Msg("explosion spawned")
		}
	}

	e.stars.Spawn(e.trajectory.Rocket, b.width, b.height)
}

func (e *Engine) render(st round.State, now time.Time, b *surfaceBinding) {
	sc := &e.scene
	sc.Width = b.width
	sc.Height = b.height
	sc.SurfaceHeight = b.surfaceHeight
	sc.Status = st.Status
	sc.Payout = e.trajectory.Payout
	sc.Countdown = st.StartTime.Sub(now)
	sc.Rocket = e.trajectory.Rocket
	sc.Camera = e.camera.Offset
	sc.Scale = e.trajectory.Scale
	sc.Sprites = e.sprites.Sprites()

	sc.Stars = sc.Stars[:0]
	e.stars.Step(st.Status == round.StatusInProgress, func(s Star) {
		sc.Stars = append(sc.Stars, render.StarSprite{Pos: s.Pos, Size: s.Size})
	})

	var sheet image.Rectangle
	if sc.Sprites.Explosion != nil {
		sheet = sc.Sprites.Explosion.Bounds()
	}
	sc.Particles = sc.Particles[:0]
	e.particles.Step(now, sheet, func(p render.ParticleSprite) {
		sc.Particles = append(sc.Particles, p)
	})

	e.ruler.Layout(&sc.Ruler, e.trajectory.Elapsed, e.trajectory.Payout, b.width, b.height, b.surfaceHeight)

	sc.Overlay = ""
	if e.cfg.Overlay {
		sc.Overlay = e.reg.Summary(overlayKeys...)
	}

	e.renderer.Draw(b.surface, sc)
	if err := b.surface.Present(); err != nil {
		e.sampled.Warn().Err(err).Msg("present failed")
	}
}

func (e *Engine) publish(s round.Status) {
	e.published.Store(&Snapshot{
		Status:              s,
		Rocket:              e.trajectory.Rocket,
		Camera:              e.camera.Offset,
		Angle:               e.trajectory.Angle,
		Scale:               e.trajectory.Scale,
		ElapsedCentiseconds: e.trajectory.Elapsed,
		PayoutDisplay:       e.trajectory.Payout,
		RulerXDivisor:       e.ruler.XDivisor,
		RulerYDivisor:       e.ruler.YDivisor,
		Stars:               e.stars.Len(),
		Particles:           e.particles.Len(),
		Animated:            e.animated,
	})
}
