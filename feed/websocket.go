package feed

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/crashx/parameter"
	"github.com/lixenwraith/crashx/status"
)

// WebSocketSource reads one JSON round snapshot per text message
// Failed dials and dropped connections are redialled with capped exponential backoff until ctx ends
// The delay returns to its minimum only after a connection delivers a message
type WebSocketSource struct {
	url        string
	dialer     *ws.Dialer
	minBackoff time.Duration
	maxBackoff time.Duration
	in         ingest

	reconnects *atomic.Int64
}

func NewWebSocketSource(rawURL string, log zerolog.Logger, reg *status.Registry) *WebSocketSource {
	return &WebSocketSource{
		url:        rawURL,
		dialer:     &ws.Dialer{HandshakeTimeout: 10 * time.Second},
		minBackoff: parameter.FeedReconnectMin,
		maxBackoff: parameter.FeedReconnectMax,
		in:         newIngest("websocket", log, reg),
		reconnects: reg.Ints.Get("feed.reconnects"),
	}
}

func (s *WebSocketSource) Run(ctx context.Context, sink Sink) error {
	u, err := url.Parse(s.url)
	if err != nil {
		return fmt.Errorf("invalid websocket URL: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("invalid websocket URL scheme %q", u.Scheme)
	}

	backoff := s.minBackoff
	for attempt := 1; ; attempt++ {
		conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.in.log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", backoff).Msg("websocket dial failed")
		} else {
			s.in.log.Info().Str("url", s.url).Int("attempt", attempt).Msg("websocket connected")

			delivered, err := s.readLoop(ctx, conn, sink)
			if ctx.Err() != nil {
				return nil
			}
			// Only a connection that carried data proves the peer healthy
			if delivered {
				backoff = s.minBackoff
				attempt = 0
			}
			s.in.log.Warn().Err(err).Dur("backoff", backoff).Msg("websocket read error, reconnecting")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, s.maxBackoff)
		s.reconnects.Add(1)
	}
}

// readLoop consumes messages until the connection fails or ctx closes it
// delivered reports whether at least one data message arrived
func (s *WebSocketSource) readLoop(ctx context.Context, conn *ws.Conn, sink Sink) (delivered bool, err error) {
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer conn.Close()

	conn.SetReadLimit(parameter.FeedReadLimit)
	for {
		kind, message, err := conn.ReadMessage()
		if err != nil {
			return delivered, err
		}
		if kind != ws.TextMessage && kind != ws.BinaryMessage {
			continue
		}
		delivered = true
		_ = s.in.push(sink, message)
	}
}
