package asset

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/crashx/core"
	"github.com/lixenwraith/crashx/parameter"
	"github.com/lixenwraith/crashx/render"
)

// Config locates the sprite files
type Config struct {
	Dir       string
	Rocket    string
	Star      string
	Explosion string
	// Fallback substitutes generated sprites for files that fail to load
	Fallback bool
}

func DefaultConfig() Config {
	return Config{
		Dir:       parameter.AssetDir,
		Rocket:    parameter.AssetRocketFile,
		Star:      parameter.AssetStarFile,
		Explosion: parameter.AssetExplosionFile,
		Fallback:  true,
	}
}

// Set is the rocket, star and explosion sheet trio
type Set struct {
	Rocket    *Image
	Star      *Image
	Explosion *Image
}

// Load starts decoding all three sprites in the background and returns immediately
func Load(cfg Config, log zerolog.Logger) *Set {
	log = log.With().Str("component", "asset").Logger()
	s := &Set{
		Rocket:    newImage(cfg.Rocket),
		Star:      newImage(cfg.Star),
		Explosion: newImage(cfg.Explosion),
	}

	fallbacks := map[*Image]func() image.Image{
		s.Rocket:    func() image.Image { return RocketSprite(parameter.FallbackSpriteSize) },
		s.Star:      func() image.Image { return StarSprite(parameter.FallbackStarSize) },
		s.Explosion: func() image.Image { return ExplosionSheet(parameter.FallbackSpriteSize, parameter.ExplosionFrameCount) },
	}

	for img, generate := range fallbacks {
		core.Go(func() {
			path := filepath.Join(cfg.Dir, img.name)
			decoded, err := decodeFile(path)
			switch {
			case err == nil:
				log.Debug().Str("path", path).Stringer("bounds", decoded.Bounds()).Msg("sprite loaded")
				img.finish(decoded, nil)
			case cfg.Fallback:
				log.Warn().Err(err).Str("path", path).Msg("sprite missing, using generated fallback")
				img.finish(generate(), nil)
			default:
				log.Error().Err(err).Str("path", path).Msg("sprite load failed")
				img.finish(nil, err)
			}
		})
	}
	return s
}

// Procedural returns a ready set of generated sprites
func Procedural() *Set {
	s := &Set{
		Rocket:    newImage("rocket"),
		Star:      newImage("star"),
		Explosion: newImage("explosion"),
	}
	s.Rocket.finish(RocketSprite(parameter.FallbackSpriteSize), nil)
	s.Star.finish(StarSprite(parameter.FallbackStarSize), nil)
	s.Explosion.finish(ExplosionSheet(parameter.FallbackSpriteSize, parameter.ExplosionFrameCount), nil)
	return s
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sprite: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode sprite %s: %w", path, err)
	}
	return img, nil
}

// Sprites returns whatever is decoded so far
func (s *Set) Sprites() render.Sprites {
	return render.Sprites{
		Rocket:    s.Rocket.Image(),
		Star:      s.Star.Image(),
		Explosion: s.Explosion.Image(),
	}
}

// Release drops all decoded pixels
func (s *Set) Release() {
	s.Rocket.Release()
	s.Star.Release()
	s.Explosion.Release()
}

// Wait blocks until all loads finish, joining their errors
func (s *Set) Wait(ctx context.Context) error {
	return errors.Join(
		s.Rocket.Wait(ctx),
		s.Star.Wait(ctx),
		s.Explosion.Wait(ctx),
	)
}
