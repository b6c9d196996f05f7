package outline

// Config holds the tunable parameters of the outline extraction pipeline.
// A zero value is not usable; start from DefaultConfig and override fields
// as needed. Every component receives the same Config so a single document
// is processed with one consistent set of thresholds.
type Config struct {
	// MinHeadingLength is the minimum trimmed text length (in runes) for a
	// heading candidate. Inclusive.
	MinHeadingLength int

	// MaxHeadingLength is the maximum trimmed text length (in runes) for a
	// heading candidate. Inclusive.
	MaxHeadingLength int

	// HeadingSizeThreshold is the multiplier applied to the body text size
	// to obtain the minimum candidate font size. A value of 1.10 means a
	// heading must be at least 10% larger than body text.
	HeadingSizeThreshold float64

	// MarginBandFraction is the fraction of the page height at the top and
	// bottom treated as header/footer territory. Fragments inside these
	// bands are excluded from heading detection unless they carry the
	// largest font size on their page.
	MarginBandFraction float64

	// WordGapFactor scales the font size to obtain the maximum horizontal
	// gap between two fragments still considered part of the same word run.
	WordGapFactor float64
}

// MaxLevels is the depth of the emitted hierarchy. Size buckets beyond the
// third-largest fold into the deepest level.
const MaxLevels = 3

// DefaultConfig returns the pipeline configuration with default thresholds
func DefaultConfig() Config {
	return Config{
		MinHeadingLength:     3,
		MaxHeadingLength:     200,
		HeadingSizeThreshold: 1.10,
		MarginBandFraction:   0.08,
		WordGapFactor:        1.0,
	}
}
