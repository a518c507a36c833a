package spritepack

// FormatTag and SchemaVersion identify the playback metadata schema.
const (
	FormatTag     = "artkit-optimized-sprite"
	SchemaVersion = "1.0"
)

// Metadata is the declarative playback contract serialized to
// metadata.json. Field order matches the published schema.
type Metadata struct {
	Meta   MetaInfo    `json:"meta"`
	Base   BaseInfo    `json:"base"`
	Delta  *DeltaInfo  `json:"delta"` // nil (JSON null) when no frame produced a patch
	Frames []FrameInfo `json:"frames"`
}

// MetaInfo describes the animation as a whole.
type MetaInfo struct {
	Format     string   `json:"format"`
	Version    string   `json:"version"`
	FPS        float64  `json:"fps"`
	SourceSize SizeInfo `json:"sourceSize"`
	FrameCount int      `json:"frameCount"`
	Target     string   `json:"target"`
}

// SizeInfo is a width/height pair in the schema's short form.
type SizeInfo struct {
	W int `json:"w"`
	H int `json:"h"`
}

// BaseInfo describes the static background raster file.
type BaseInfo struct {
	File string   `json:"file"`
	Size SizeInfo `json:"size"`
}

// DeltaInfo describes the delta atlas raster file and its cell grid.
type DeltaInfo struct {
	File     string    `json:"file"`
	TileSize int       `json:"tileSize"`
	Atlas    AtlasInfo `json:"atlas"`
}

// AtlasInfo is the atlas cell grid geometry.
type AtlasInfo struct {
	Columns    int `json:"columns"`
	Rows       int `json:"rows"`
	PatchCount int `json:"patchCount"`
}

// FrameInfo lists one frame's patches. Index is the 0-based position in
// the exported frame sequence; callers needing the original timeline
// index mapping must retain it themselves.
type FrameInfo struct {
	Index   int         `json:"index"`
	Patches []PatchInfo `json:"patches"`
}

// PatchInfo is one patch in schema form. The atlas cell is derived at
// playback time: column = atlasIndex % columns, row = atlasIndex / columns.
type PatchInfo struct {
	AtlasIndex int `json:"atlasIndex"`
	X          int `json:"x"`
	Y          int `json:"y"`
	W          int `json:"w"`
	H          int `json:"h"`
}

// assembleMetadata aggregates the pipeline outputs into the playback
// schema. Pure aggregation, no recomputation: patch geometry arrives
// exactly as the encoder emitted it.
func assembleMetadata(fps float64, target string, size Size, baseFile, deltaFile string, tileSize int, patches []FramePatches, patchCount int) *Metadata {
	md := &Metadata{
		Meta: MetaInfo{
			Format:     FormatTag,
			Version:    SchemaVersion,
			FPS:        fps,
			SourceSize: SizeInfo{W: size.Width, H: size.Height},
			FrameCount: len(patches),
			Target:     target,
		},
		Base: BaseInfo{
			File: baseFile,
			Size: SizeInfo{W: size.Width, H: size.Height},
		},
		Frames: make([]FrameInfo, 0, len(patches)),
	}

	if patchCount > 0 {
		columns, rows := atlasGrid(patchCount)
		md.Delta = &DeltaInfo{
			File:     deltaFile,
			TileSize: tileSize,
			Atlas:    AtlasInfo{Columns: columns, Rows: rows, PatchCount: patchCount},
		}
	}

	for _, fp := range patches {
		fi := FrameInfo{Index: fp.Frame, Patches: make([]PatchInfo, 0, len(fp.Patches))}
		for _, p := range fp.Patches {
			fi.Patches = append(fi.Patches, PatchInfo{
				AtlasIndex: p.AtlasIndex,
				X:          p.X, Y: p.Y, W: p.W, H: p.H,
			})
		}
		md.Frames = append(md.Frames, fi)
	}
	return md
}
