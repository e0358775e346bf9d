package classify

// Track is one remuxed video file from a single disc, before classification.
// Duration and size are weak signals and either may be unavailable; the
// boolean flags must be checked before the numeric fields are compared.
type Track struct {
	Path        string
	Position    int // 1-based enumeration order on the disc
	Duration    float64
	HasDuration bool
	Size        int64
	HasSize     bool
}

// tiny reports whether the track's size is known and below the tiny-file
// floor. Unknown sizes are never tiny.
func (t Track) tiny(tinyBytes int64) bool {
	return t.HasSize && t.Size < tinyBytes
}
