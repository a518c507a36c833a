package spritepack

// ProgressFunc receives pipeline progress: the stage name, a percentage
// that is monotonically non-decreasing within one run, and an optional
// human-readable detail. It fires synchronously between per-frame steps
// on the caller's goroutine. Returning false stops the run cooperatively:
// no artifacts are produced and no external state has been touched.
type ProgressFunc func(stage string, percent float64, detail string) bool

// Pipeline stage names as reported to ProgressFunc.
const (
	StageCandidates = "candidates"
	StageSize       = "size"
	StageAnalyze    = "analyze"
	StageBase       = "base"
	StageEncode     = "encode"
	StageAtlas      = "atlas"
	StageMetadata   = "metadata"
)

// Percent spans per stage. Probing and analysis dominate wall time since
// they composite every frame; encoding composites every frame again.
const (
	stageSizeStart   = 5.0
	stageSizeEnd     = 25.0
	stageAnalyzeEnd  = 55.0
	stageBaseEnd     = 60.0
	stageEncodeEnd   = 85.0
	stageAtlasEnd    = 95.0
	stageMetadataEnd = 100.0
)

// progressReporter enforces monotonicity and tolerates a nil callback.
type progressReporter struct {
	fn   ProgressFunc
	last float64
}

// report fires the callback at the given percent, clamped so it never
// moves backwards. Returns false when the caller requested a stop.
func (r *progressReporter) report(stage string, percent float64, detail string) bool {
	if percent < r.last {
		percent = r.last
	}
	r.last = percent
	if r.fn == nil {
		return true
	}
	return r.fn(stage, percent, detail)
}

// step reports progress for item done of total within [from, to].
func (r *progressReporter) step(stage string, from, to float64, done, total int, detail string) bool {
	pct := to
	if total > 0 {
		pct = from + (to-from)*float64(done)/float64(total)
	}
	return r.report(stage, pct, detail)
}
