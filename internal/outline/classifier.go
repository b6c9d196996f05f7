package outline

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// HeadingCandidate pairs a fragment with its heading score and the rank of
// its size bucket among the document's candidate sizes (0 = largest).
// Transient: candidates exist only between classification and level
// assignment.
type HeadingCandidate struct {
	Fragment Fragment
	Score    float64
	SizeRank int
	Bucket   float64
}

// Scoring weights. The score never overrides size bucketing; it only breaks
// ties between candidates that share a bucket.
const (
	sizeRatioWeight   = 0.4
	boldBonusValue    = 0.3
	italicBonusValue  = 0.1
	numberingBonus    = 0.2
	allCapsBonusValue = 0.1
)

// centerTolerance is the maximum distance in points between a fragment's
// midpoint and the page midline for the fragment to count as centered.
const centerTolerance = 20.0

var (
	numberedPattern = regexp.MustCompile(`^\d+(\.\d+)*\.?\s`)
	sectionPattern  = regexp.MustCompile(`(?i)^(chapter|section|appendix|part)\b`)
)

// Classifier decides which fragments qualify as heading candidates
type Classifier struct {
	config Config
}

// NewClassifier creates a new heading classifier
func NewClassifier(config Config) *Classifier {
	return &Classifier{config: config}
}

// Classify scores every fragment against the font profile and returns the
// surviving heading candidates in input order. An empty result is a valid
// outcome, not an error. Fragments consumed by the title are excluded so
// the document title never re-enters the outline as a heading, even when a
// wrapped title joined several lines whose individual text differs from
// the full title string.
func (c *Classifier) Classify(fragments []Fragment, profile *FontProfile, pages map[int]PageSize, titleFragments []Fragment) []HeadingCandidate {
	if profile.IsFlat() {
		return nil
	}

	titleKeys := make(map[string]bool, len(titleFragments))
	for _, frag := range titleFragments {
		titleKeys[fragmentKey(frag)] = true
	}

	pageMax := maxSizePerPage(fragments)
	leftMargin, haveMargin := bodyLeftMargin(fragments, profile)

	var candidates []HeadingCandidate
	for _, frag := range fragments {
		bucket, ok := profile.CandidateBucket(frag.FontSize)
		if !ok {
			continue
		}

		text := strings.TrimSpace(frag.Text)
		length := utf8.RuneCountInString(text)
		if length < c.config.MinHeadingLength || length > c.config.MaxHeadingLength {
			continue
		}

		if titleKeys[fragmentKey(frag)] {
			continue
		}

		page := pages[frag.Page]
		if c.inMarginBand(frag, page) && bucketSize(frag.FontSize) != pageMax[frag.Page] {
			continue
		}

		if !c.alignmentAllowed(frag, page, leftMargin, haveMargin) {
			continue
		}

		candidates = append(candidates, HeadingCandidate{
			Fragment: frag,
			Score:    c.Score(frag, profile),
			SizeRank: sizeRank(bucket, profile.CandidateSizes),
			Bucket:   bucket,
		})
	}

	return candidates
}

// Score computes the heading confidence for a fragment as a weighted sum of
// independent signals. Pure: no state beyond the fragment and the profile.
func (c *Classifier) Score(frag Fragment, profile *FontProfile) float64 {
	score := sizeRatioScore(frag.FontSize, profile.BodySize)
	score += boldBonus(frag)
	score += italicBonus(frag)
	score += patternBonus(frag.Text)
	score += allCapsBonus(frag.Text)
	return math.Min(score, 1.0)
}

// sizeRatioScore rewards fragments whose size exceeds the body size, capped
// at one full body-size of excess.
func sizeRatioScore(size, bodySize float64) float64 {
	if bodySize <= 0 {
		return 0
	}
	ratio := size/bodySize - 1.0
	return math.Min(ratio, 1.0) * sizeRatioWeight
}

// boldBonus rewards bold fragments
func boldBonus(frag Fragment) float64 {
	if frag.IsBold {
		return boldBonusValue
	}
	return 0
}

// italicBonus rewards italic fragments with a small bonus
func italicBonus(frag Fragment) float64 {
	if frag.IsItalic {
		return italicBonusValue
	}
	return 0
}

// patternBonus rewards text that opens like a numbered or named section,
// such as "1.", "2.3" or "Chapter".
func patternBonus(text string) float64 {
	text = strings.TrimSpace(text)
	if numberedPattern.MatchString(text) || sectionPattern.MatchString(text) {
		return numberingBonus
	}
	return 0
}

// allCapsBonus rewards short fully-uppercase text, a common heading style
func allCapsBonus(text string) float64 {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > 40 {
		return 0
	}

	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return 0
			}
		}
	}
	if !hasLetter {
		return 0
	}
	return allCapsBonusValue
}

// inMarginBand reports whether a fragment sits in the top or bottom margin
// band of its page. With an unknown page height the check is disabled and
// the fragment is kept.
func (c *Classifier) inMarginBand(frag Fragment, page PageSize) bool {
	if page.Height <= 0 {
		return false
	}
	band := page.Height * c.config.MarginBandFraction
	return frag.Y < band || frag.Y > page.Height-band
}

// alignmentAllowed accepts fragments that are left-aligned near the body
// text margin or centered on the page. Isolated right-aligned text is
// rejected. Without a known page width or body margin the check degrades
// to accepting everything.
func (c *Classifier) alignmentAllowed(frag Fragment, page PageSize, leftMargin float64, haveMargin bool) bool {
	if page.Width <= 0 {
		return true
	}

	center := frag.X + frag.Width/2
	if math.Abs(center-page.Width/2) <= centerTolerance {
		return true
	}

	if !haveMargin {
		// No body text to anchor the margin; fall back to rejecting only
		// text that hugs the right edge.
		return frag.X < page.Width*0.6
	}

	// Left-aligned or indented consistently with body text. The tolerance
	// allows one level of indentation relative to the body margin.
	return frag.X >= leftMargin-2 && frag.X <= leftMargin+page.Width*0.15
}

// maxSizePerPage returns the largest bucketed font size seen on each page
func maxSizePerPage(fragments []Fragment) map[int]float64 {
	pageMax := make(map[int]float64)
	for _, frag := range fragments {
		bucket := bucketSize(frag.FontSize)
		if bucket > pageMax[frag.Page] {
			pageMax[frag.Page] = bucket
		}
	}
	return pageMax
}

// bodyLeftMargin estimates the left margin of body text as the most common
// rounded X position among body-size fragments. The second return value is
// false when the document has no body-size fragments to measure.
func bodyLeftMargin(fragments []Fragment, profile *FontProfile) (float64, bool) {
	counts := make(map[float64]int)
	for _, frag := range fragments {
		if bucketSize(frag.FontSize) != profile.BodySize {
			continue
		}
		counts[math.Round(frag.X)]++
	}
	if len(counts) == 0 {
		return 0, false
	}

	var margin float64
	best := -1
	for x, count := range counts {
		if count > best || (count == best && x < margin) {
			margin = x
			best = count
		}
	}
	return margin, true
}

// sizeRank returns the index of a bucket within the descending candidate
// size list
func sizeRank(bucket float64, candidates []float64) int {
	for i, size := range candidates {
		if size == bucket {
			return i
		}
	}
	return len(candidates)
}
