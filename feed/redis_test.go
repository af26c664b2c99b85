package feed

import (
	"context"
	"net"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/crashx/round"
	"github.com/lixenwraith/crashx/status"
)

func TestRedis_InvalidURL(t *testing.T) {
	src := NewRedisSource("postgres://nope", "c", zerolog.Nop(), status.NewRegistry())
	err := src.Run(context.Background(), SinkFunc(func(round.State) {}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis url")
}

func TestRedis_PingFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	src := NewRedisSource("redis://"+addr+"/0?max_retries=-1", "c", zerolog.Nop(), status.NewRegistry())
	err = src.Run(context.Background(), SinkFunc(func(round.State) {}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping")
}

func TestRedis_CancelledContextIsClean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewRedisSource("redis://127.0.0.1:1/0", "c", zerolog.Nop(), status.NewRegistry())
	assert.NoError(t, src.Run(ctx, SinkFunc(func(round.State) {})))
}
