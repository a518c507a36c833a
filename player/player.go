// Package player replays spritepack archives on Ebitengine.
//
// A Player decodes the package's base and delta atlas rasters once, then
// reconstructs frames per the playback contract: redraw the base, blit
// each patch's atlas cell onto the canvas. Frames are composed into an
// internal offscreen canvas so patch blits can use copy blending without
// disturbing whatever is behind the sprite.
package player

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/png"
	"io"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/webp"

	"github.com/artkit/spritepack"
)

// Player steps through and draws one loaded sprite package.
type Player struct {
	meta   *spritepack.Metadata
	base   *ebiten.Image
	atlas  *ebiten.Image // nil when the package has no delta atlas
	canvas *ebiten.Image

	frame   int
	elapsed float64
	dirty   bool

	// Loop restarts playback after the last frame. Default true.
	Loop bool
}

// Load opens a package archive from disk.
func Load(path string) (*Player, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("player: open %s: %w", path, err)
	}
	defer zr.Close()
	return load(&zr.Reader)
}

// LoadBytes reads a package archive from memory.
func LoadBytes(data []byte) (*Player, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("player: read archive: %w", err)
	}
	return load(zr)
}

func load(zr *zip.Reader) (*Player, error) {
	raw, err := readEntry(zr, "metadata.json")
	if err != nil {
		return nil, err
	}
	var meta spritepack.Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("player: parse metadata.json: %w", err)
	}
	if meta.Meta.Format != spritepack.FormatTag {
		return nil, fmt.Errorf("player: unexpected format tag %q", meta.Meta.Format)
	}
	if len(meta.Frames) == 0 {
		return nil, fmt.Errorf("player: package has no frames")
	}

	p := &Player{meta: &meta, dirty: true, Loop: true}

	if p.base, err = readImage(zr, meta.Base.File); err != nil {
		return nil, err
	}
	if meta.Delta != nil {
		if p.atlas, err = readImage(zr, meta.Delta.File); err != nil {
			return nil, err
		}
	}
	p.canvas = ebiten.NewImage(meta.Meta.SourceSize.W, meta.Meta.SourceSize.H)
	return p, nil
}

func readEntry(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("player: archive entry %s: %w", name, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("player: read %s: %w", name, err)
	}
	return data, nil
}

func readImage(zr *zip.Reader, name string) (*ebiten.Image, error) {
	data, err := readEntry(zr, name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("player: decode %s: %w", name, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// Metadata returns the package's playback metadata.
func (p *Player) Metadata() *spritepack.Metadata { return p.meta }

// FrameCount returns the number of frames in the package.
func (p *Player) FrameCount() int { return len(p.meta.Frames) }

// Frame returns the current frame index.
func (p *Player) Frame() int { return p.frame }

// Size returns the animation canvas size in pixels.
func (p *Player) Size() (w, h int) {
	return p.meta.Meta.SourceSize.W, p.meta.Meta.SourceSize.H
}

// SetFrame jumps to the given frame, clamped to the valid range.
func (p *Player) SetFrame(i int) {
	if i < 0 {
		i = 0
	}
	if max := len(p.meta.Frames) - 1; i > max {
		i = max
	}
	if i != p.frame {
		p.frame = i
		p.dirty = true
	}
	p.elapsed = 0
}

// Update advances playback by dt seconds at the package's fps.
func (p *Player) Update(dt float64) {
	fps := p.meta.Meta.FPS
	if fps <= 0 || len(p.meta.Frames) < 2 {
		return
	}
	p.elapsed += dt
	frameDur := 1.0 / fps
	for p.elapsed >= frameDur {
		p.elapsed -= frameDur
		next := p.frame + 1
		if next >= len(p.meta.Frames) {
			if !p.Loop {
				p.elapsed = 0
				return
			}
			next = 0
		}
		p.frame = next
		p.dirty = true
	}
}

// Draw renders the current frame onto screen. A nil opts draws at the
// origin.
func (p *Player) Draw(screen *ebiten.Image, opts *ebiten.DrawImageOptions) {
	p.compose()
	if opts == nil {
		opts = &ebiten.DrawImageOptions{}
	}
	screen.DrawImage(p.canvas, opts)
}

// compose rebuilds the internal canvas for the current frame: the base
// raster in full, then every patch blitted with copy blending. Patch
// tiles carry the frame's actual pixels for their whole rect, so a copy
// reproduces the frame exactly where source-over would mis-blend
// semi-transparent dynamic pixels against the base.
func (p *Player) compose() {
	if !p.dirty {
		return
	}
	p.dirty = false

	p.canvas.Clear()
	p.canvas.DrawImage(p.base, nil)

	if p.atlas == nil {
		return
	}
	fi := p.meta.Frames[p.frame]
	columns := p.meta.Delta.Atlas.Columns
	tile := p.meta.Delta.TileSize
	for _, patch := range fi.Patches {
		cx := (patch.AtlasIndex % columns) * tile
		cy := (patch.AtlasIndex / columns) * tile
		src := p.atlas.SubImage(image.Rect(cx, cy, cx+patch.W, cy+patch.H)).(*ebiten.Image)

		op := &ebiten.DrawImageOptions{}
		op.Blend = ebiten.BlendCopy
		op.GeoM.Translate(float64(patch.X), float64(patch.Y))
		p.canvas.DrawImage(src, op)
	}
}
