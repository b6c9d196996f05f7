package outline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func body(text string, page int, y float64) Fragment {
	return Fragment{Text: text, Page: page, FontSize: 11, X: 72, Y: y, Width: 468}
}

func TestExtract_ReportWithTitleAndHeadings(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())
	pages := map[int]PageSize{
		1: {Width: 612, Height: 792},
		2: {Width: 612, Height: 792},
	}
	fragments := []Fragment{
		{Text: "Annual Report 2024", Page: 1, FontSize: 24, X: 206, Y: 700, Width: 200},
		{Text: "Section 1: Overview", Page: 1, FontSize: 18, IsBold: true, X: 72, Y: 600, Width: 160},
		body(strings.Repeat("overview body ", 20), 1, 560),
		body(strings.Repeat("overview body ", 20), 1, 540),
		{Text: "1.1 Background", Page: 2, FontSize: 14, IsBold: true, X: 72, Y: 700, Width: 110},
		body(strings.Repeat("background body ", 20), 2, 660),
	}

	record, profile := extractor.Extract(fragments, pages)

	assert.Equal(t, "Annual Report 2024", record.Title)
	assert.False(t, profile.IsFlat())
	require.Len(t, record.Outline, 2)

	assert.Equal(t, OutlineEntry{Level: LevelH1, Text: "Section 1: Overview", Page: 1}, record.Outline[0])
	assert.Equal(t, OutlineEntry{Level: LevelH2, Text: "1.1 Background", Page: 2}, record.Outline[1])
}

func TestExtract_RepeatedHeaderStaysOut(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())
	pages := map[int]PageSize{
		1: {Width: 612, Height: 792},
		2: {Width: 612, Height: 792},
	}
	fragments := []Fragment{
		{Text: "ACME Corp Internal", Page: 1, FontSize: 14, X: 72, Y: 785, Width: 130},
		{Text: "Policy Manual", Page: 1, FontSize: 20, X: 72, Y: 650, Width: 140},
		body(strings.Repeat("policy body ", 20), 1, 560),
		{Text: "ACME Corp Internal", Page: 2, FontSize: 14, X: 72, Y: 785, Width: 130},
		{Text: "Results", Page: 2, FontSize: 16, X: 72, Y: 700, Width: 60},
		body(strings.Repeat("results body ", 20), 2, 660),
	}

	record, _ := extractor.Extract(fragments, pages)

	assert.Equal(t, "Policy Manual", record.Title)
	require.Len(t, record.Outline, 1)
	assert.Equal(t, OutlineEntry{Level: LevelH1, Text: "Results", Page: 2}, record.Outline[0])
}

func TestExtract_WrappedTitleNeverEntersOutline(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())
	pages := map[int]PageSize{1: {Width: 612, Height: 792}}
	fragments := []Fragment{
		{Text: "A Very Long Report", Page: 1, FontSize: 24, X: 100, Y: 700, Width: 180},
		{Text: "About Nothing", Page: 1, FontSize: 24, X: 100, Y: 670, Width: 130},
		{Text: "Section One", Page: 1, FontSize: 16, X: 72, Y: 600, Width: 90},
		body(strings.Repeat("section body ", 20), 1, 560),
	}

	record, _ := extractor.Extract(fragments, pages)

	assert.Equal(t, "A Very Long Report About Nothing", record.Title)
	require.Len(t, record.Outline, 1)
	assert.Equal(t, OutlineEntry{Level: LevelH1, Text: "Section One", Page: 1}, record.Outline[0])
}

func TestExtract_FlatDocument(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())
	pages := map[int]PageSize{1: {Width: 612, Height: 792}}
	fragments := []Fragment{
		{Text: "everything is", Page: 1, FontSize: 12, X: 72, Y: 700, Width: 100},
		{Text: "the same size", Page: 1, FontSize: 12, X: 72, Y: 650, Width: 100},
	}

	record, profile := extractor.Extract(fragments, pages)

	assert.True(t, profile.IsFlat())
	require.NotNil(t, record.Outline)
	assert.Empty(t, record.Outline)
}

func TestExtract_OutlineNeverNil(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())

	record, _ := extractor.Extract(nil, map[int]PageSize{})
	require.NotNil(t, record)
	assert.NotNil(t, record.Outline)
	assert.Empty(t, record.Title)
}

func TestExtract_ReadingOrderAcrossPages(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())
	pages := map[int]PageSize{
		1: {Width: 612, Height: 792},
		2: {Width: 612, Height: 792},
		3: {Width: 612, Height: 792},
	}
	fragments := []Fragment{
		{Text: "Ordering Test Document", Page: 1, FontSize: 24, X: 206, Y: 750, Width: 200},
		body(strings.Repeat("filler body ", 20), 1, 400),
		{Text: "Gamma Section", Page: 3, FontSize: 16, X: 72, Y: 700, Width: 110},
		{Text: "Alpha Section", Page: 1, FontSize: 16, X: 72, Y: 700, Width: 110},
		{Text: "Beta Lower", Page: 2, FontSize: 16, X: 72, Y: 300, Width: 90},
		{Text: "Beta Upper", Page: 2, FontSize: 16, X: 72, Y: 700, Width: 90},
	}

	record, _ := extractor.Extract(fragments, pages)

	require.Len(t, record.Outline, 4)
	texts := make([]string, 0, len(record.Outline))
	for _, entry := range record.Outline {
		texts = append(texts, entry.Text)
	}
	assert.Equal(t, []string{"Alpha Section", "Beta Upper", "Beta Lower", "Gamma Section"}, texts)
}
