package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/crashx/asset"
	"github.com/lixenwraith/crashx/config"
	"github.com/lixenwraith/crashx/core"
	"github.com/lixenwraith/crashx/engine"
	"github.com/lixenwraith/crashx/feed"
	"github.com/lixenwraith/crashx/render"
	"github.com/lixenwraith/crashx/status"
	"github.com/lixenwraith/crashx/terminal"
)

var (
	configFlag = flag.String("config", "", "Config file (yaml, json, toml)")
	debugFlag  = flag.Bool("debug", false, "Write debug logs to logs/crashx.log")
	feedFlag   = flag.String("feed", "", "Round feed: demo, websocket, redis, http, none")
	recordFlag = flag.String("record", "", "Render PNG frames into this directory instead of the terminal")
	framesFlag = flag.Int("frames", 0, "Stop recording after this many ticks (0 runs until interrupted)")
)

func main() {
	// Panic Recovery: terminal is restored by the crash handler
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Log.Enabled = true
		cfg.Log.Level = "debug"
	}
	if *feedFlag != "" {
		cfg.Feed.Kind = *feedFlag
	}
	if *recordFlag != "" {
		cfg.Render.RecordDir = *recordFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	logger, logFile := setupLogging(cfg.Log.Enabled, cfg.Log.Dir, cfg.LogLevel())
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("exit with error")
		fmt.Fprintf(os.Stderr, "crashx: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := status.NewRegistry()
	src, err := feed.New(cfg.FeedConfig(), logger, reg)
	if err != nil {
		return err
	}

	sprites := asset.Load(cfg.AssetConfig(), logger)
	eng := engine.New(cfg.EngineConfig(),
		engine.WithLogger(logger),
		engine.WithRegistry(reg),
		engine.WithSprites(sprites),
	)
	defer eng.Stop()

	feedDone := make(chan error, 1)
	core.Go(func() {
		feedDone <- src.Run(ctx, eng)
	})

	if cfg.Render.RecordDir != "" {
		err = runHeadless(ctx, cfg, eng, logger, *framesFlag)
	} else {
		var term terminal.Terminal
		term, err = terminal.New()
		if err != nil {
			return err
		}
		err = runTerminal(ctx, term, cfg, eng)
	}

	stop()
	select {
	case ferr := <-feedDone:
		if ferr != nil {
			logger.Error().Err(ferr).Msg("feed stopped")
		}
	case <-time.After(time.Second):
		logger.Warn().Msg("feed did not stop in time")
	}
	return err
}

// runTerminal draws into the terminal until quit, ctx end or terminal close
// Every resize rebinds a fresh canvas sized to the new cell grid
func runTerminal(ctx context.Context, term terminal.Terminal, cfg *config.Config, eng *engine.Engine) error {
	if err := term.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer term.Fini()
	core.SetCrashTerminal(term)
	defer core.SetCrashTerminal(nil)
	// Ticks present to the terminal, so they stop before it is finalized
	defer eng.Stop()

	pres := render.NewTerminalPresenter(term, cfg.Render.CellWidth, cfg.Render.CellHeight)
	attach := func() {
		w, h := pres.CanvasSize()
		eng.Start(render.NewCanvas(w, h, pres))
	}
	attach()

	events := make(chan terminal.Event, 16)
	core.Go(func() {
		for {
			ev := term.PollEvent()
			if ev.Type == terminal.EventClosed {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Type {
			case terminal.EventResize:
				term.Sync()
				attach()
			case terminal.EventKey:
				if isQuit(ev) {
					return nil
				}
			}
		}
	}
}

func isQuit(ev terminal.Event) bool {
	switch ev.Key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune == 'q' || ev.Rune == 'Q'
	}
	return false
}

// runHeadless records PNG frames; frames > 0 ticks exactly that many times
func runHeadless(ctx context.Context, cfg *config.Config, eng *engine.Engine, logger zerolog.Logger, frames int) error {
	pres, err := render.NewPNGPresenter(cfg.Render.RecordDir, cfg.Render.RecordEvery)
	if err != nil {
		return err
	}
	canvas := render.NewCanvas(cfg.Render.RecordWidth, cfg.Render.RecordHeight, pres)

	if frames <= 0 {
		eng.Start(canvas)
		<-ctx.Done()
		eng.Stop()
	} else {
		eng.Attach(canvas)
		ticker := time.NewTicker(cfg.Engine.TickInterval)
		defer ticker.Stop()
	loop:
		for i := 0; i < frames; i++ {
			select {
			case <-ctx.Done():
				break loop
			case <-ticker.C:
				eng.Tick()
			}
		}
	}

	logger.Info().Uint64("saved", pres.Saved()).Str("dir", cfg.Render.RecordDir).Msg("recording finished")
	return nil
}
