package outline

import (
	"math"
	"strings"
)

// Fragment represents a contiguous run of text on a page with uniform font
// metadata and a bounding position. Coordinates use the PDF convention:
// origin at the bottom-left corner, Y increasing toward the top of the page.
type Fragment struct {
	Text     string
	Page     int
	FontSize float64
	FontName string
	IsBold   bool
	IsItalic bool
	X        float64
	Y        float64
	Width    float64
	Height   float64
}

// PageSize holds the dimensions of a single page in points. A zero Height
// means the parser could not determine the page size; margin filtering is
// disabled for such pages.
type PageSize struct {
	Width  float64
	Height float64
}

// Collector normalizes the raw fragment stream produced by the PDF parser
// into line-level fragments: adjacent fragments on the same visual line are
// merged and whitespace-only fragments are dropped.
type Collector struct {
	config Config
}

// NewCollector creates a new fragment collector
func NewCollector(config Config) *Collector {
	return &Collector{config: config}
}

// Collect merges raw fragments into line-level fragments. The input is
// expected in extraction order, page by page. The transformation is pure:
// the input slice is never modified.
func (c *Collector) Collect(raw []Fragment) []Fragment {
	var collected []Fragment

	for _, frag := range raw {
		if strings.TrimSpace(frag.Text) == "" {
			continue
		}

		if len(collected) > 0 {
			last := &collected[len(collected)-1]
			if c.sameLine(*last, frag) {
				c.mergeInto(last, frag)
				continue
			}
		}

		frag.Text = strings.TrimSpace(frag.Text)
		collected = append(collected, frag)
	}

	return collected
}

// sameLine reports whether next continues the visual line started by prev.
// Fragments belong to the same line when they sit on the same page, their
// baselines differ by less than half the smaller font size, and the
// horizontal gap between them stays below the word-spacing threshold.
func (c *Collector) sameLine(prev, next Fragment) bool {
	if prev.Page != next.Page {
		return false
	}
	if prev.FontSize != next.FontSize || prev.FontName != next.FontName {
		return false
	}

	smaller := math.Min(prev.FontSize, next.FontSize)
	if smaller <= 0 {
		return false
	}
	if math.Abs(prev.Y-next.Y) >= smaller/2 {
		return false
	}

	gap := next.X - (prev.X + prev.Width)
	return gap >= -1.0 && gap <= smaller*c.config.WordGapFactor
}

// mergeInto appends next's text to dst with a single separating space and
// extends the bounding box to cover both fragments.
func (c *Collector) mergeInto(dst *Fragment, next Fragment) {
	text := strings.TrimSpace(next.Text)
	if text != "" {
		if dst.Text != "" {
			dst.Text += " "
		}
		dst.Text += text
	}

	right := math.Max(dst.X+dst.Width, next.X+next.Width)
	dst.Width = right - dst.X
	dst.Height = math.Max(dst.Height, next.Height)
}
