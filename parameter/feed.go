package parameter

import "time"

// Feed Transport
const (
	// FeedReconnectMin is the first websocket redial delay, doubled per failure
	FeedReconnectMin = 500 * time.Millisecond

	// FeedReconnectMax caps the websocket redial delay
	FeedReconnectMax = 30 * time.Second

	// FeedReadLimit bounds one inbound round snapshot message in bytes
	FeedReadLimit = 64 << 10

	// FeedShutdownTimeout bounds the HTTP feed graceful shutdown
	FeedShutdownTimeout = 5 * time.Second

	// FeedRedisChannel is the default pub/sub channel carrying round snapshots
	FeedRedisChannel = "crash:round"

	// FeedHTTPAddr is the default listen address of the push endpoint
	FeedHTTPAddr = "127.0.0.1:8088"
)

// Demo Round Generator
const (
	// DemoInterval is the snapshot push cadence of the demo feed
	DemoInterval = 100 * time.Millisecond

	// DemoIdle is how long a demo round waits in NotStarted
	DemoIdle = 2 * time.Second

	// DemoCountdown is the Starting phase length before launch
	DemoCountdown = 5 * time.Second

	// DemoHold is how long the crashed payout stays on screen
	DemoHold = 3 * time.Second

	// DemoGrowthRate is the payout exponent per second: payout = e^(rate*t)
	DemoGrowthRate = 0.08

	// DemoHouseEdge scales the crash point draw: crash = edge/(1-u)
	DemoHouseEdge = 0.97

	// DemoMaxCrash caps a single demo round
	DemoMaxCrash = 50.0
)
