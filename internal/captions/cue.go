package captions

// Cue is a single caption unit in canonical form. Invariants: start is
// non-negative, end >= start, and text is non-empty after trimming.
type Cue struct {
	Start float64
	End   float64
	Text  string
}
