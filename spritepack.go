package spritepack

import "log"

// Size is an output canvas size in whole pixels. Immutable once resolved:
// every stage after size resolution receives the same value.
type Size struct {
	Width, Height int
}

// FrameSize is an explicit, possibly fractional output size as authored.
// Dimensions are floored during resolution; see ResolveSize.
type FrameSize struct {
	Width, Height float64
}

// Threshold bounds for the per-pixel change metric.
const (
	MinThreshold = 0
	MaxThreshold = 20
)

// Tile size bounds and default for the delta grid.
const (
	MinTileSize     = 8
	MaxTileSize     = 128
	DefaultTileSize = 32
)

// clampThreshold clamps t to [MinThreshold, MaxThreshold].
func clampThreshold(t int) int {
	if t < MinThreshold {
		return MinThreshold
	}
	if t > MaxThreshold {
		return MaxThreshold
	}
	return t
}

// clampTileSize clamps ts to [MinTileSize, MaxTileSize], with 0 meaning
// DefaultTileSize.
func clampTileSize(ts int) int {
	if ts == 0 {
		return DefaultTileSize
	}
	if ts < MinTileSize {
		return MinTileSize
	}
	if ts > MaxTileSize {
		return MaxTileSize
	}
	return ts
}

// global debug flag (no sync — the pipeline is single-threaded)
var globalDebug bool

// SetDebug enables or disables diagnostic logging to stderr.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

func debugf(format string, args ...any) {
	if globalDebug {
		log.Printf("spritepack: "+format, args...)
	}
}
