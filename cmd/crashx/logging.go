package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/crashx/parameter"
)

// maxLogSize triggers rotation of the previous session's log on startup
const maxLogSize = 10 << 20

// setupLogging returns a JSON file logger under dir, or a no-op logger when disabled
// The terminal is owned by the view, so stdlib log and gin output never reach stdout or stderr
func setupLogging(enabled bool, dir string, level zerolog.Level) (zerolog.Logger, *os.File) {
	if !enabled {
		log.SetOutput(io.Discard)
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		return zerolog.Nop(), nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil
	}

	path := filepath.Join(dir, parameter.LogFile)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("crashx-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(path, rotated)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return zerolog.Nop(), nil
	}

	log.SetOutput(f)
	gin.DefaultWriter = f
	gin.DefaultErrorWriter = f

	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	logger.Info().Str("level", level.String()).Msg("logging started")
	return logger, f
}
