// Package config loads settings from defaults, an optional file, .env and CRASHX_ environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/lixenwraith/crashx/asset"
	"github.com/lixenwraith/crashx/engine"
	"github.com/lixenwraith/crashx/feed"
	"github.com/lixenwraith/crashx/parameter"
)

const EnvPrefix = "CRASHX"

type LogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"`
	Dir     string `mapstructure:"dir"`
}

type EngineConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
	StatusBar    float64       `mapstructure:"status_bar"`
	Seed         uint64        `mapstructure:"seed"`
}

type RenderConfig struct {
	CellWidth   int    `mapstructure:"cell_width"`
	CellHeight  int    `mapstructure:"cell_height"`
	RecordDir   string `mapstructure:"record_dir"`
	RecordEvery int    `mapstructure:"record_every"`
	// RecordWidth and RecordHeight size the headless canvas
	RecordWidth  int `mapstructure:"record_width"`
	RecordHeight int `mapstructure:"record_height"`
}

type AssetsConfig struct {
	Dir       string `mapstructure:"dir"`
	Rocket    string `mapstructure:"rocket"`
	Star      string `mapstructure:"star"`
	Explosion string `mapstructure:"explosion"`
	Fallback  bool   `mapstructure:"fallback"`
}

type FeedConfig struct {
	Kind      string `mapstructure:"kind"`
	WebSocket struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"websocket"`
	Redis struct {
		URL     string `mapstructure:"url"`
		Channel string `mapstructure:"channel"`
	} `mapstructure:"redis"`
	HTTP struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"http"`
}

type DebugConfig struct {
	Overlay bool `mapstructure:"overlay"`
}

// Config is the full application configuration
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Engine EngineConfig `mapstructure:"engine"`
	Render RenderConfig `mapstructure:"render"`
	Assets AssetsConfig `mapstructure:"assets"`
	Feed   FeedConfig   `mapstructure:"feed"`
	Debug  DebugConfig  `mapstructure:"debug"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.enabled", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", parameter.LogDir)

	v.SetDefault("engine.tick_interval", parameter.TickInterval)
	v.SetDefault("engine.status_bar", parameter.StatusBarAllowance)
	v.SetDefault("engine.seed", 0)

	v.SetDefault("render.cell_width", parameter.CellWidth)
	v.SetDefault("render.cell_height", parameter.CellHeight)
	v.SetDefault("render.record_dir", "")
	v.SetDefault("render.record_every", parameter.RecordEvery)
	v.SetDefault("render.record_width", 1000)
	v.SetDefault("render.record_height", 550)

	v.SetDefault("assets.dir", parameter.AssetDir)
	v.SetDefault("assets.rocket", parameter.AssetRocketFile)
	v.SetDefault("assets.star", parameter.AssetStarFile)
	v.SetDefault("assets.explosion", parameter.AssetExplosionFile)
	v.SetDefault("assets.fallback", true)

	v.SetDefault("feed.kind", string(feed.KindDemo))
	v.SetDefault("feed.websocket.url", "")
	v.SetDefault("feed.redis.url", "")
	v.SetDefault("feed.redis.channel", parameter.FeedRedisChannel)
	v.SetDefault("feed.http.addr", parameter.FeedHTTPAddr)

	v.SetDefault("debug.overlay", false)
}

// Load builds the configuration; path may be empty to skip the config file
// A .env file in the working directory is applied to the environment first, without overriding set variables
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Engine.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("engine.tick_interval must be positive, got %v", c.Engine.TickInterval))
	}
	if c.Engine.StatusBar < 0 {
		errs = append(errs, fmt.Errorf("engine.status_bar must not be negative, got %v", c.Engine.StatusBar))
	}
	if c.Render.CellWidth < 1 || c.Render.CellHeight < 2 {
		errs = append(errs, fmt.Errorf("render cell must be at least 1x2, got %dx%d", c.Render.CellWidth, c.Render.CellHeight))
	}
	if c.Render.RecordEvery < 1 {
		errs = append(errs, fmt.Errorf("render.record_every must be at least 1, got %d", c.Render.RecordEvery))
	}
	if c.Render.RecordWidth < 1 || c.Render.RecordHeight < 1 {
		errs = append(errs, fmt.Errorf("render record size must be positive, got %dx%d", c.Render.RecordWidth, c.Render.RecordHeight))
	}
	if _, err := feed.New(c.FeedConfig(), zerolog.Nop(), nil); err != nil {
		errs = append(errs, fmt.Errorf("feed: %w", err))
	}
	return errors.Join(errs...)
}

// LogLevel returns the parsed log level, info when unparseable
func (c *Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		TickInterval: c.Engine.TickInterval,
		StatusBar:    c.Engine.StatusBar,
		Overlay:      c.Debug.Overlay,
		Seed:         c.Engine.Seed,
	}
}

func (c *Config) AssetConfig() asset.Config {
	return asset.Config{
		Dir:       c.Assets.Dir,
		Rocket:    c.Assets.Rocket,
		Star:      c.Assets.Star,
		Explosion: c.Assets.Explosion,
		Fallback:  c.Assets.Fallback,
	}
}

func (c *Config) FeedConfig() feed.Config {
	return feed.Config{
		Kind:         feed.Kind(strings.ToLower(c.Feed.Kind)),
		WebSocketURL: c.Feed.WebSocket.URL,
		RedisURL:     c.Feed.Redis.URL,
		RedisChannel: c.Feed.Redis.Channel,
		HTTPAddr:     c.Feed.HTTP.Addr,
		Seed:         c.Engine.Seed,
	}
}
