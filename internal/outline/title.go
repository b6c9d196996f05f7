package outline

import (
	"sort"
	"strings"
)

// titleLineGapFactor bounds the vertical gap, in multiples of the font
// size, between two lines still considered part of the same multi-line
// title.
const titleLineGapFactor = 1.8

// maxTitleLines caps how many consecutive lines merge into the title, so a
// first page of uniform text doesn't all collapse into one giant title.
const maxTitleLines = 3

// TitleExtractor selects the document title from the first page using the
// largest-font heuristic.
type TitleExtractor struct {
	config Config
}

// NewTitleExtractor creates a new title extractor
func NewTitleExtractor(config Config) *TitleExtractor {
	return &TitleExtractor{config: config}
}

// Extract returns the document title and the fragments it was assembled
// from, or an empty string when the first page offers no usable candidate.
// It never fails: an empty title is the defined degraded outcome. The
// consumed fragments let the classifier keep every title line out of the
// outline, including wrapped titles whose individual lines differ from the
// joined string.
//
// Candidates are the page-1 fragments carrying the page's largest font
// size, preferring those outside the header/footer margin bands. When every
// candidate sits inside a band the bands are ignored, since a legitimate
// title may be placed near the top edge. Consecutive candidate lines merge
// into one string to handle titles that wrap.
func (t *TitleExtractor) Extract(fragments []Fragment, page PageSize) (string, []Fragment) {
	var firstPage []Fragment
	for _, frag := range fragments {
		if frag.Page == 1 && strings.TrimSpace(frag.Text) != "" {
			firstPage = append(firstPage, frag)
		}
	}
	if len(firstPage) == 0 {
		return "", nil
	}

	maxBucket := 0.0
	for _, frag := range firstPage {
		if b := bucketSize(frag.FontSize); b > maxBucket {
			maxBucket = b
		}
	}

	var candidates []Fragment
	for _, frag := range firstPage {
		if bucketSize(frag.FontSize) == maxBucket && !t.inMarginBand(frag, page) {
			candidates = append(candidates, frag)
		}
	}
	if len(candidates) == 0 {
		for _, frag := range firstPage {
			if bucketSize(frag.FontSize) == maxBucket {
				candidates = append(candidates, frag)
			}
		}
	}
	if len(candidates) == 0 {
		return "", nil
	}

	// Top-to-bottom, left-to-right.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Y != candidates[j].Y {
			return candidates[i].Y > candidates[j].Y
		}
		return candidates[i].X < candidates[j].X
	})

	parts := []string{strings.TrimSpace(candidates[0].Text)}
	used := []Fragment{candidates[0]}
	prev := candidates[0]
	for _, frag := range candidates[1:] {
		if len(parts) >= maxTitleLines {
			break
		}
		gap := prev.Y - frag.Y
		if gap > frag.FontSize*titleLineGapFactor {
			break
		}
		parts = append(parts, strings.TrimSpace(frag.Text))
		used = append(used, frag)
		prev = frag
	}

	return strings.Join(parts, " "), used
}

// inMarginBand mirrors the classifier's margin test. Disabled when the page
// height is unknown.
func (t *TitleExtractor) inMarginBand(frag Fragment, page PageSize) bool {
	if page.Height <= 0 {
		return false
	}
	band := page.Height * t.config.MarginBandFraction
	return frag.Y < band || frag.Y > page.Height-band
}
