package spritepack

import "fmt"

// ImageFormat selects the raster encoding for packaged images.
type ImageFormat uint8

const (
	FormatPNG  ImageFormat = iota // lossless, stdlib encoder
	FormatWebP                    // lossy, quality-controlled
)

// Ext returns the file extension (without dot) for the format.
func (f ImageFormat) Ext() string {
	if f == FormatWebP {
		return "webp"
	}
	return "png"
}

// Options configures one export run. The zero value is usable: automatic
// output size, threshold 0, default tile size, PNG output.
type Options struct {
	// Threshold is the per-pixel change tolerance, clamped to [0, 20].
	// A pixel differing from its baseline by exactly Threshold is still
	// static; Threshold+1 flips it.
	Threshold int

	// TileSize is the delta grid cell size, clamped to [8, 128].
	// Zero selects the default of 32.
	TileSize int

	// FrameSize forces an explicit output size (floored). Nil resolves
	// the size by probing every candidate's natural bounds.
	FrameSize *FrameSize

	// Format and Quality control raster encoding during packaging.
	// Quality applies to FormatWebP only and is clamped to the encoder's
	// [1, 100] range; zero selects the default of 90.
	Format  ImageFormat
	Quality float32

	// Target is the playback target id recorded in the metadata,
	// e.g. "canvas" or "engine". Defaults to "generic".
	Target string

	// Guide includes a generated GUIDE.md in the archive.
	Guide bool

	// Progress, when non-nil, receives stage/percent callbacks between
	// per-frame steps. Returning false stops the run.
	Progress ProgressFunc
}

// Result holds everything the packager consumes: the rasters, the
// playback metadata, and the measurable compression outcome. All values
// are computed fresh per Export call; nothing persists across runs.
type Result struct {
	Size       Size
	Base       *Frame
	Atlas      *Frame // nil when PatchCount == 0 (delta is null)
	Metadata   *Metadata
	Frames     []FramePatches
	PatchCount int

	format  ImageFormat
	quality float32
	guide   bool
}

// Export runs the full delta-compression pipeline over the timeline:
// candidate selection, output size resolution, static region analysis,
// base image generation, tile delta encoding, atlas packing, and
// metadata assembly. The run is synchronous and single-threaded; each
// frame is composited one at a time, bounding peak memory to a few
// rasters.
//
// A timeline with no exportable frames, or whose output size cannot be
// resolved, aborts the run with (nil, nil): no package, but not an
// error. A stop requested through Options.Progress returns (nil, nil)
// as well. Individual frames that fail to composite are absorbed per
// stage and never fail the run.
func Export(comp Compositor, t *Timeline, opts Options) (*Result, error) {
	if comp == nil {
		return nil, fmt.Errorf("spritepack: nil compositor")
	}
	if t == nil {
		return nil, fmt.Errorf("spritepack: nil timeline")
	}

	threshold := clampThreshold(opts.Threshold)
	tileSize := clampTileSize(opts.TileSize)
	target := opts.Target
	if target == "" {
		target = "generic"
	}
	rep := &progressReporter{fn: opts.Progress}

	candidates := Candidates(t)
	debugf("export: %d candidate frames, threshold=%d tile=%d", len(candidates), threshold, tileSize)
	if len(candidates) == 0 {
		return nil, nil
	}
	if !rep.report(StageCandidates, stageSizeStart, fmt.Sprintf("%d frames", len(candidates))) {
		return nil, nil
	}

	size, frames, ok := resolveSize(comp, t, candidates, opts.FrameSize, rep)
	if !ok {
		return nil, nil
	}
	debugf("export: resolved size %dx%d over %d frames", size.Width, size.Height, len(frames))

	analysis, ok := analyzeStaticRegions(comp, t, frames, size, threshold, rep)
	if !ok {
		return nil, nil
	}

	base := buildBaseImage(analysis.reference, analysis.mask)
	if !rep.report(StageBase, stageBaseEnd, "") {
		return nil, nil
	}

	patches, patchCount, ok := encodeDeltas(comp, t, analysis.frames, size, analysis.reference, analysis.mask, threshold, tileSize, rep)
	if !ok {
		return nil, nil
	}
	debugf("export: %d patches across %d frames", patchCount, len(patches))

	var atlas *Frame
	if patchCount > 0 {
		atlas, ok = packAtlas(comp, t, analysis.frames, size, patches, patchCount, tileSize, rep)
		if !ok {
			return nil, nil
		}
	}
	if !rep.report(StageAtlas, stageAtlasEnd, "") {
		return nil, nil
	}

	baseFile := "base." + opts.Format.Ext()
	deltaFile := "delta." + opts.Format.Ext()
	md := assembleMetadata(t.FPS, target, size, baseFile, deltaFile, tileSize, patches, patchCount)
	rep.report(StageMetadata, stageMetadataEnd, "")

	return &Result{
		Size:       size,
		Base:       base,
		Atlas:      atlas,
		Metadata:   md,
		Frames:     patches,
		PatchCount: patchCount,
		format:     opts.Format,
		quality:    clampQuality(opts.Quality),
		guide:      opts.Guide,
	}, nil
}
