package outline

import (
	"math"
	"sort"
	"unicode/utf8"
)

// sizeBucketWidth groups font sizes within half a point into one bucket so
// that sub-point rendering jitter does not split a logical size.
const sizeBucketWidth = 0.5

// FontProfile describes the document-wide font size landscape: the dominant
// body text size, the distinct set of larger candidate sizes, and the raw
// character-weighted histogram the two were derived from. Computed once per
// document and read-only afterward.
type FontProfile struct {
	// BodySize is the bucketed font size carrying the largest share of the
	// document's characters.
	BodySize float64

	// CandidateSizes lists the bucketed sizes eligible to produce headings,
	// sorted descending. Always strictly greater than BodySize. Empty when
	// the document is flat (fewer than two distinct sizes).
	CandidateSizes []float64

	// SizeHistogram maps each bucketed size to its total character count.
	SizeHistogram map[float64]int
}

// IsFlat reports whether the document offers no size contrast to classify
// headings from.
func (p *FontProfile) IsFlat() bool {
	return len(p.CandidateSizes) == 0
}

// CandidateBucket maps a fragment's font size onto one of the candidate
// size buckets. The second return value is false when the size does not
// qualify as a heading size.
func (p *FontProfile) CandidateBucket(size float64) (float64, bool) {
	bucket := bucketSize(size)
	for _, candidate := range p.CandidateSizes {
		if bucket == candidate {
			return candidate, true
		}
	}
	return 0, false
}

// Profiler computes the FontProfile for a document
type Profiler struct {
	config Config
}

// NewProfiler creates a new font profiler
func NewProfiler(config Config) *Profiler {
	return &Profiler{config: config}
}

// Profile builds the character-weighted font size histogram and derives the
// body size and the candidate heading sizes. Weighting by character count
// rather than fragment count keeps a handful of long body paragraphs from
// being outvoted by many short decorated fragments.
func (pr *Profiler) Profile(fragments []Fragment) *FontProfile {
	histogram := make(map[float64]int)

	for _, frag := range fragments {
		if frag.FontSize <= 0 {
			continue
		}
		histogram[bucketSize(frag.FontSize)] += utf8.RuneCountInString(frag.Text)
	}

	profile := &FontProfile{SizeHistogram: histogram}
	if len(histogram) == 0 {
		return profile
	}

	profile.BodySize = dominantSize(histogram)

	// A document with a single size has no contrast; leave CandidateSizes
	// empty so no headings are produced.
	if len(histogram) < 2 {
		return profile
	}

	minCandidate := profile.BodySize * pr.config.HeadingSizeThreshold
	for size := range histogram {
		if size > profile.BodySize && size >= minCandidate {
			profile.CandidateSizes = append(profile.CandidateSizes, size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(profile.CandidateSizes)))

	return profile
}

// dominantSize returns the histogram bucket with the highest character
// count. Ties resolve to the smaller size since prose runs smaller than
// display text.
func dominantSize(histogram map[float64]int) float64 {
	var best float64
	bestCount := -1
	for size, count := range histogram {
		if count > bestCount || (count == bestCount && size < best) {
			best = size
			bestCount = count
		}
	}
	return best
}

// bucketSize snaps a font size onto the half-point grid
func bucketSize(size float64) float64 {
	return math.Round(size/sizeBucketWidth) * sizeBucketWidth
}
