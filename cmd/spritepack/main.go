// Command spritepack exports a delta-compressed sprite package from a
// TOML manifest describing per-track PNG frame sequences.
//
// Usage:
//
//	spritepack -config anim.toml -o anim.zip [-v]
//
// Manifest format:
//
//	fps = 12
//	threshold = 4          # optional, per-pixel change tolerance [0,20]
//	tile_size = 32         # optional, delta grid cell size [8,128]
//	format = "png"         # or "webp"
//	quality = 85           # webp quality [1,100]
//	target = "canvas"      # playback target id
//	guide = true           # bundle GUIDE.md
//	width = 128            # optional explicit output size
//	height = 128
//
//	[[track]]
//	loop = true
//	hidden = false
//	frames = ["walk/0.png", "walk/1.png", ""]   # "" is an empty cell
//	disabled = [1]                              # cell indices to skip
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/artkit/spritepack"
)

type manifest struct {
	FPS       float64         `toml:"fps"`
	Threshold int             `toml:"threshold"`
	TileSize  int             `toml:"tile_size"`
	Format    string          `toml:"format"`
	Quality   float64         `toml:"quality"`
	Target    string          `toml:"target"`
	Guide     bool            `toml:"guide"`
	Width     float64         `toml:"width"`
	Height    float64         `toml:"height"`
	Tracks    []trackManifest `toml:"track"`
}

type trackManifest struct {
	Hidden   bool     `toml:"hidden"`
	Loop     bool     `toml:"loop"`
	Frames   []string `toml:"frames"`
	Disabled []int    `toml:"disabled"`
}

func main() {
	configPath := flag.String("config", "", "path to the TOML manifest (required)")
	outPath := flag.String("o", "sprite.zip", "output archive path")
	verbose := flag.Bool("v", false, "print per-stage progress")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("spritepack: ")

	if *configPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	var m manifest
	if _, err := toml.DecodeFile(*configPath, &m); err != nil {
		log.Fatalf("load manifest: %v", err)
	}

	timeline, err := buildTimeline(&m, filepath.Dir(*configPath))
	if err != nil {
		log.Fatal(err)
	}

	opts := spritepack.Options{
		Threshold: m.Threshold,
		TileSize:  m.TileSize,
		Quality:   float32(m.Quality),
		Target:    m.Target,
		Guide:     m.Guide,
	}
	switch m.Format {
	case "", "png":
		opts.Format = spritepack.FormatPNG
	case "webp":
		opts.Format = spritepack.FormatWebP
	default:
		log.Fatalf("unknown format %q (want png or webp)", m.Format)
	}
	if m.Width > 0 || m.Height > 0 {
		opts.FrameSize = &spritepack.FrameSize{Width: m.Width, Height: m.Height}
	}
	if *verbose {
		opts.Progress = func(stage string, percent float64, detail string) bool {
			if detail != "" {
				detail = " (" + detail + ")"
			}
			fmt.Fprintf(os.Stderr, "  %-10s %5.1f%%%s\n", stage, percent, detail)
			return true
		}
	}

	res, err := spritepack.Export(spritepack.FlatCompositor{}, timeline, opts)
	if err != nil {
		log.Fatal(err)
	}
	if res == nil {
		log.Println("nothing to export: no visible frames or unresolvable size")
		return
	}

	if err := spritepack.SavePackage(*outPath, res); err != nil {
		log.Fatal(err)
	}

	atlasNote := "no delta atlas"
	if res.Atlas != nil {
		atlasNote = fmt.Sprintf("atlas %dx%d", res.Atlas.Width, res.Atlas.Height)
	}
	log.Printf("wrote %s: %d frames, %dx%d, %d patches, %s",
		*outPath, len(res.Frames), res.Size.Width, res.Size.Height, res.PatchCount, atlasNote)
}

// buildTimeline loads every referenced raster and assembles the track
// model. Frame paths are resolved relative to the manifest's directory.
func buildTimeline(m *manifest, baseDir string) (*spritepack.Timeline, error) {
	if len(m.Tracks) == 0 {
		return nil, fmt.Errorf("manifest has no [[track]] entries")
	}
	t := &spritepack.Timeline{FPS: m.FPS}
	for ti, tm := range m.Tracks {
		track := spritepack.Track{Visible: !tm.Hidden, Loop: tm.Loop}
		for _, path := range tm.Frames {
			var cell spritepack.Cell
			if path != "" {
				frame, err := loadFrame(filepath.Join(baseDir, path))
				if err != nil {
					return nil, fmt.Errorf("track %d: %w", ti, err)
				}
				cell.Image = frame
			}
			track.Cells = append(track.Cells, cell)
		}
		for _, di := range tm.Disabled {
			if di >= 0 && di < len(track.Cells) {
				track.Cells[di].Disabled = true
			}
		}
		t.Tracks = append(t.Tracks, track)
	}
	return t, nil
}

func loadFrame(path string) (*spritepack.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return spritepack.FrameFromImage(img), nil
}
