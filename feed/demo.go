package feed

import (
	"context"
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/crashx/parameter"
	"github.com/lixenwraith/crashx/round"
	"github.com/lixenwraith/crashx/status"
)

// DemoConfig shapes the generated rounds
type DemoConfig struct {
	Interval   time.Duration
	Idle       time.Duration
	Countdown  time.Duration
	Hold       time.Duration
	GrowthRate float64
	HouseEdge  float64
	MaxCrash   float64
	Seed       uint64
}

func DefaultDemoConfig(seed uint64) DemoConfig {
	return DemoConfig{
		Interval:   parameter.DemoInterval,
		Idle:       parameter.DemoIdle,
		Countdown:  parameter.DemoCountdown,
		Hold:       parameter.DemoHold,
		GrowthRate: parameter.DemoGrowthRate,
		HouseEdge:  parameter.DemoHouseEdge,
		MaxCrash:   parameter.DemoMaxCrash,
		Seed:       seed,
	}
}

// DemoSource plays an endless sequence of locally generated rounds
type DemoSource struct {
	cfg    DemoConfig
	rng    *rand.Rand
	now    func() time.Time
	in     ingest
	rounds atomic.Int64
}

func NewDemoSource(cfg DemoConfig, log zerolog.Logger, reg *status.Registry) *DemoSource {
	if cfg.Interval <= 0 {
		cfg.Interval = parameter.DemoInterval
	}
	if cfg.GrowthRate <= 0 {
		cfg.GrowthRate = parameter.DemoGrowthRate
	}
	if cfg.MaxCrash < 1 {
		cfg.MaxCrash = parameter.DemoMaxCrash
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &DemoSource{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: time.Now,
		in:  newIngest("demo", log, reg),
	}
}

// demoRound is one round's timeline, fixed at creation
type demoRound struct {
	begin   time.Time
	counted time.Time
	start   time.Time
	crashAt time.Time
	end     time.Time
	crash   float64
	rate    float64
}

// plan draws the next crash point and lays out the phases from begin
func (d *DemoSource) plan(begin time.Time) demoRound {
	crash := d.cfg.HouseEdge / (1 - d.rng.Float64())
	crash = math.Round(math.Min(math.Max(crash, 1), d.cfg.MaxCrash)*100) / 100

	counted := begin.Add(d.cfg.Idle)
	start := counted.Add(d.cfg.Countdown)
	flight := time.Duration(math.Log(crash) / d.cfg.GrowthRate * float64(time.Second))
	crashAt := start.Add(flight)
	return demoRound{
		begin:   begin,
		counted: counted,
		start:   start,
		crashAt: crashAt,
		end:     crashAt.Add(d.cfg.Hold),
		crash:   crash,
		rate:    d.cfg.GrowthRate,
	}
}

// At returns the snapshot for now; done is set once the round has played out
func (r demoRound) At(now time.Time) (st round.State, done bool) {
	switch {
	case now.Before(r.counted):
		return round.State{Status: round.StatusNotStarted, Payout: 1}, false
	case now.Before(r.start):
		return round.State{Status: round.StatusStarting, Payout: 1, StartTime: r.start}, false
	case now.Before(r.crashAt):
		t := now.Sub(r.start).Seconds()
		payout := math.Min(math.Exp(r.rate*t), r.crash)
		return round.State{Status: round.StatusInProgress, Payout: payout, StartTime: r.start}, false
	default:
		st = round.State{Status: round.StatusOver, Payout: r.crash, StartTime: r.start}
		return st, !now.Before(r.end)
	}
}

// Rounds returns how many rounds have been started
func (d *DemoSource) Rounds() int64 { return d.rounds.Load() }

func (d *DemoSource) Run(ctx context.Context, sink Sink) error {
	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	r := d.next(d.now())
	for {
		now := d.now()
		st, done := r.At(now)
		if done {
			r = d.next(now)
			st, _ = r.At(now)
		}
		_ = d.in.pushState(sink, st)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (d *DemoSource) next(now time.Time) demoRound {
	r := d.plan(now)
	n := d.rounds.Add(1)
	d.in.log.Debug().Int64("round", n).Float64("crash", r.crash).Msg("demo round planned")
	return r
}
