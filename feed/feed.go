// Package feed delivers round snapshots from an external source into the engine
package feed

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/crashx/parameter"
	"github.com/lixenwraith/crashx/round"
	"github.com/lixenwraith/crashx/status"
)

// Sink receives validated round snapshots; engine.Engine satisfies it
type Sink interface {
	Update(round.State)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(round.State)

func (f SinkFunc) Update(st round.State) { f(st) }

// Source pushes snapshots into a sink until ctx is done
// Run returns nil on cancellation and an error only when the source cannot continue
type Source interface {
	Run(ctx context.Context, sink Sink) error
}

// Kind names a source implementation in configuration
type Kind string

const (
	KindNone      Kind = "none"
	KindDemo      Kind = "demo"
	KindWebSocket Kind = "websocket"
	KindRedis     Kind = "redis"
	KindHTTP      Kind = "http"
)

var ErrUnknownKind = errors.New("unknown feed kind")

// Config selects and parameterizes one source
type Config struct {
	Kind         Kind
	WebSocketURL string
	RedisURL     string
	RedisChannel string
	HTTPAddr     string
	Seed         uint64
}

func DefaultConfig() Config {
	return Config{
		Kind:         KindDemo,
		RedisChannel: parameter.FeedRedisChannel,
		HTTPAddr:     parameter.FeedHTTPAddr,
	}
}

// New builds the source named by cfg.Kind; KindNone yields a source that only waits
func New(cfg Config, log zerolog.Logger, reg *status.Registry) (Source, error) {
	if reg == nil {
		reg = status.NewRegistry()
	}
	switch cfg.Kind {
	case KindNone, "":
		return idle{}, nil
	case KindDemo:
		return NewDemoSource(DefaultDemoConfig(cfg.Seed), log, reg), nil
	case KindWebSocket:
		if cfg.WebSocketURL == "" {
			return nil, fmt.Errorf("websocket feed: url required")
		}
		return NewWebSocketSource(cfg.WebSocketURL, log, reg), nil
	case KindRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis feed: url required")
		}
		return NewRedisSource(cfg.RedisURL, cfg.RedisChannel, log, reg), nil
	case KindHTTP:
		return NewHTTPSource(cfg.HTTPAddr, log, reg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}

type idle struct{}

func (idle) Run(ctx context.Context, _ Sink) error {
	<-ctx.Done()
	return nil
}

// ingest validates inbound snapshots and counts them
type ingest struct {
	log     zerolog.Logger
	sampled zerolog.Logger
	updates *atomic.Int64
	errors  *atomic.Int64
}

func newIngest(source string, log zerolog.Logger, reg *status.Registry) ingest {
	log = log.With().Str("component", "feed").Str("source", source).Logger()
	return ingest{
		log:     log,
		sampled: log.Sample(&zerolog.BurstSampler{Burst: 5, Period: 10 * time.Second}),
		updates: reg.Ints.Get("feed.updates"),
		errors:  reg.Ints.Get("feed.errors"),
	}
}

// push decodes one wire message; malformed input is counted and dropped
func (in *ingest) push(sink Sink, data []byte) error {
	st, err := round.Decode(data)
	if err != nil {
		in.errors.Add(1)
		in.sampled.Warn().Err(err).Int("bytes", len(data)).Msg("dropped round snapshot")
		return err
	}
	sink.Update(st)
	in.updates.Add(1)
	return nil
}

func (in *ingest) pushState(sink Sink, st round.State) error {
	if err := st.Validate(); err != nil {
		in.errors.Add(1)
		in.sampled.Warn().Err(err).Msg("dropped round snapshot")
		return err
	}
	sink.Update(st)
	in.updates.Add(1)
	return nil
}
