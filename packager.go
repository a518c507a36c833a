package spritepack

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/chai2010/webp"
)

// DefaultQuality is the WebP encoder quality used when Options.Quality
// is zero.
const DefaultQuality = 90

// clampQuality clamps q to the encoder's [1, 100] range, with 0 meaning
// DefaultQuality.
func clampQuality(q float32) float32 {
	if q == 0 {
		return DefaultQuality
	}
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}

// WritePackage encodes the result's rasters, serializes the metadata, and
// bundles everything into a zip archive written to w. Archive contents:
// the base raster file, the delta atlas raster file (present iff the
// metadata's delta descriptor is non-null), metadata.json, and GUIDE.md
// when the export requested one.
func WritePackage(w io.Writer, res *Result) error {
	zw := zip.NewWriter(w)

	if err := writeRaster(zw, res.Metadata.Base.File, res.Base, res.format, res.quality); err != nil {
		return err
	}
	if res.Atlas != nil {
		if err := writeRaster(zw, res.Metadata.Delta.File, res.Atlas, res.format, res.quality); err != nil {
			return err
		}
	}

	mf, err := zw.Create("metadata.json")
	if err != nil {
		return fmt.Errorf("spritepack: create metadata.json: %w", err)
	}
	enc := json.NewEncoder(mf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Metadata); err != nil {
		return fmt.Errorf("spritepack: encode metadata.json: %w", err)
	}

	if res.guide {
		gf, err := zw.Create("GUIDE.md")
		if err != nil {
			return fmt.Errorf("spritepack: create GUIDE.md: %w", err)
		}
		if _, err := io.WriteString(gf, guideText(res.Metadata)); err != nil {
			return fmt.Errorf("spritepack: write GUIDE.md: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("spritepack: finalize archive: %w", err)
	}
	return nil
}

// SavePackage writes the package archive to a file.
func SavePackage(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("spritepack: create %s: %w", path, err)
	}
	if err := WritePackage(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeRaster encodes a frame into the archive under the given name.
func writeRaster(zw *zip.Writer, name string, frame *Frame, format ImageFormat, quality float32) error {
	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("spritepack: create %s: %w", name, err)
	}
	img := frame.Image()
	switch format {
	case FormatWebP:
		err = webp.Encode(fw, img, &webp.Options{Quality: quality})
	default:
		err = png.Encode(fw, img)
	}
	if err != nil {
		return fmt.Errorf("spritepack: encode %s: %w", name, err)
	}
	return nil
}

// guideText renders the human-readable playback guide bundled into the
// archive next to metadata.json.
func guideText(md *Metadata) string {
	s := "# Sprite package playback\n\n" +
		fmt.Sprintf("This package holds a %d-frame animation at %g fps on a %dx%d canvas.\n\n",
			md.Meta.FrameCount, md.Meta.FPS, md.Meta.SourceSize.W, md.Meta.SourceSize.H) +
		fmt.Sprintf("Every frame starts from `%s` redrawn in full (patches are not\ncumulative).\n", md.Base.File)
	if md.Delta == nil {
		s += "\nNo frame differs from the base image, so there is no delta atlas:\nloop the base image at the indicated fps.\n"
		return s
	}
	s += fmt.Sprintf("\nFor frame `index`, apply each patch in `frames[index].patches`: blit\n"+
		"the %dpx atlas cell of `%s` at column `atlasIndex %% %d` and row\n"+
		"`atlasIndex / %d` (cell origin times tileSize, sub-rect w*h) onto\n"+
		"`(x, y)` of the canvas.\n",
		md.Delta.TileSize, md.Delta.File, md.Delta.Atlas.Columns, md.Delta.Atlas.Columns)
	return s
}
