package parameter

// Sprite Files
const (
	AssetDir           = "assets/image"
	AssetRocketFile    = "crash.png"
	AssetStarFile      = "star.png"
	AssetExplosionFile = "explosion.png"
)

// Procedural Fallback Sprites
const (
	// FallbackSpriteSize is the side of the generated rocket and of each explosion frame
	FallbackSpriteSize = 64

	// FallbackStarSize is the side of the generated star
	FallbackStarSize = 16
)
