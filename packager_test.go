package spritepack

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"strings"
	"testing"
)

func exportMovingBox(t *testing.T, opts Options) *Result {
	t.Helper()
	res, err := Export(FlatCompositor{}, movingBoxTimeline(), opts)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res == nil {
		t.Fatal("expected a result")
	}
	return res
}

func archiveEntries(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	entries := make(map[string][]byte)
	for _, f := range zr.File {
		r, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		raw, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		entries[f.Name] = raw
	}
	return entries
}

func TestWritePackage_Contents(t *testing.T) {
	res := exportMovingBox(t, Options{TileSize: 16})

	var buf bytes.Buffer
	if err := WritePackage(&buf, res); err != nil {
		t.Fatalf("WritePackage: %v", err)
	}
	entries := archiveEntries(t, buf.Bytes())

	for _, name := range []string{"base.png", "delta.png", "metadata.json"} {
		if _, ok := entries[name]; !ok {
			t.Errorf("archive missing %s (has %v)", name, keys(entries))
		}
	}
	if _, ok := entries["GUIDE.md"]; ok {
		t.Error("GUIDE.md present without Options.Guide")
	}

	var md Metadata
	if err := json.Unmarshal(entries["metadata.json"], &md); err != nil {
		t.Fatalf("parse metadata.json: %v", err)
	}
	if md.Meta.Format != FormatTag || md.Meta.Version != SchemaVersion {
		t.Errorf("meta = %+v, want format tag and version", md.Meta)
	}
	if md.Base.File != "base.png" || md.Delta == nil || md.Delta.File != "delta.png" {
		t.Errorf("file descriptors = %+v / %+v", md.Base, md.Delta)
	}
}

func TestWritePackage_BaseRasterRoundTrips(t *testing.T) {
	res := exportMovingBox(t, Options{TileSize: 16})

	var buf bytes.Buffer
	if err := WritePackage(&buf, res); err != nil {
		t.Fatalf("WritePackage: %v", err)
	}
	entries := archiveEntries(t, buf.Bytes())

	img, err := png.Decode(bytes.NewReader(entries["base.png"]))
	if err != nil {
		t.Fatalf("decode base.png: %v", err)
	}
	back := FrameFromImage(img)
	if back.Width != res.Base.Width || back.Height != res.Base.Height {
		t.Fatalf("decoded base = %dx%d, want %dx%d", back.Width, back.Height, res.Base.Width, res.Base.Height)
	}
	if !bytes.Equal(back.Pix, res.Base.Pix) {
		t.Error("PNG base raster should round-trip losslessly")
	}
}

func TestWritePackage_NullDeltaOmitsAtlasFile(t *testing.T) {
	comp := newStubCompositor()
	comp.frames[0] = solidFrame(4, 4, 50, 50, 50, 255)
	comp.frames[1] = solidFrame(4, 4, 50, 50, 50, 255)

	res, err := Export(comp, stubTimeline(2), Options{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var buf bytes.Buffer
	if err := WritePackage(&buf, res); err != nil {
		t.Fatalf("WritePackage: %v", err)
	}
	entries := archiveEntries(t, buf.Bytes())

	if _, ok := entries["delta.png"]; ok {
		t.Error("degenerate delta must omit the atlas file")
	}
	if !bytes.Contains(entries["metadata.json"], []byte(`"delta": null`)) {
		t.Error("metadata.json should carry a null delta")
	}
}

func TestWritePackage_GuideIncluded(t *testing.T) {
	res := exportMovingBox(t, Options{TileSize: 16, Guide: true})

	var buf bytes.Buffer
	if err := WritePackage(&buf, res); err != nil {
		t.Fatalf("WritePackage: %v", err)
	}
	entries := archiveEntries(t, buf.Bytes())

	guide, ok := entries["GUIDE.md"]
	if !ok {
		t.Fatal("GUIDE.md missing")
	}
	text := string(guide)
	if !strings.Contains(text, "12 fps") || !strings.Contains(text, "delta.png") {
		t.Errorf("guide text lacks playback details:\n%s", text)
	}
}

func TestWritePackage_WebP(t *testing.T) {
	res := exportMovingBox(t, Options{TileSize: 16, Format: FormatWebP, Quality: 80})

	var buf bytes.Buffer
	if err := WritePackage(&buf, res); err != nil {
		t.Fatalf("WritePackage: %v", err)
	}
	entries := archiveEntries(t, buf.Bytes())

	if _, ok := entries["base.webp"]; !ok {
		t.Errorf("archive missing base.webp (has %v)", keys(entries))
	}
	if _, ok := entries["delta.webp"]; !ok {
		t.Error("archive missing delta.webp")
	}
	// RIFF container magic.
	if !bytes.HasPrefix(entries["base.webp"], []byte("RIFF")) {
		t.Error("base.webp is not a RIFF/WebP stream")
	}
}

func TestSavePackage_File(t *testing.T) {
	res := exportMovingBox(t, Options{TileSize: 16})

	path := t.TempDir() + "/sprite.zip"
	if err := SavePackage(path, res); err != nil {
		t.Fatalf("SavePackage: %v", err)
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("reopen archive: %v", err)
	}
	defer zr.Close()
	if len(zr.File) < 3 {
		t.Errorf("archive has %d entries, want at least base, delta, metadata", len(zr.File))
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
