package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(text string, page int, size, y float64) HeadingCandidate {
	return HeadingCandidate{
		Fragment: Fragment{Text: text, Page: page, FontSize: size, Y: y},
		Bucket:   bucketSize(size),
	}
}

func TestLevelForRank(t *testing.T) {
	assert.Equal(t, LevelH1, levelForRank(0))
	assert.Equal(t, LevelH2, levelForRank(1))
	assert.Equal(t, LevelH3, levelForRank(2))
	assert.Equal(t, LevelH3, levelForRank(5))
}

func TestAssign_LargestBucketBecomesH1(t *testing.T) {
	assigner := NewAssigner()
	entries := assigner.Assign([]HeadingCandidate{
		candidate("Introduction", 1, 18, 700),
		candidate("Background", 1, 14, 600),
		candidate("Details", 1, 12.5, 500),
	})

	require.Len(t, entries, 3)
	assert.Equal(t, LevelH1, entries[0].Level)
	assert.Equal(t, LevelH2, entries[1].Level)
	assert.Equal(t, LevelH3, entries[2].Level)
}

func TestAssign_ExtraBucketsFoldIntoH3(t *testing.T) {
	assigner := NewAssigner()
	entries := assigner.Assign([]HeadingCandidate{
		candidate("One", 1, 24, 700),
		candidate("Two", 1, 20, 600),
		candidate("Three", 1, 16, 500),
		candidate("Four", 1, 14, 400),
		candidate("Five", 1, 12.5, 300),
	})

	require.Len(t, entries, 5)
	assert.Equal(t, LevelH1, entries[0].Level)
	assert.Equal(t, LevelH2, entries[1].Level)
	assert.Equal(t, LevelH3, entries[2].Level)
	assert.Equal(t, LevelH3, entries[3].Level)
	assert.Equal(t, LevelH3, entries[4].Level)
}

func TestAssign_SingleBucketIsH1(t *testing.T) {
	assigner := NewAssigner()
	entries := assigner.Assign([]HeadingCandidate{
		candidate("Only Section", 1, 16, 700),
		candidate("Another Section", 2, 16, 700),
	})

	require.Len(t, entries, 2)
	assert.Equal(t, LevelH1, entries[0].Level)
	assert.Equal(t, LevelH1, entries[1].Level)
}

func TestAssign_RanksFromSurvivingBucketsOnly(t *testing.T) {
	// The 18pt bucket is the largest that survived classification, so it
	// takes H1 even though larger text existed in the document.
	assigner := NewAssigner()
	entries := assigner.Assign([]HeadingCandidate{
		candidate("Section 1: Overview", 1, 18, 600),
		candidate("1.1 Background", 2, 14, 700),
	})

	require.Len(t, entries, 2)
	assert.Equal(t, LevelH1, entries[0].Level)
	assert.Equal(t, LevelH2, entries[1].Level)
}

func TestAssign_ReadingOrder(t *testing.T) {
	// Input deliberately shuffled: output must be page ascending, then top
	// to bottom within a page (Y descending).
	assigner := NewAssigner()
	entries := assigner.Assign([]HeadingCandidate{
		candidate("Page Two Lower", 2, 16, 300),
		candidate("Page One", 1, 16, 500),
		candidate("Page Two Upper", 2, 16, 700),
	})

	require.Len(t, entries, 3)
	assert.Equal(t, "Page One", entries[0].Text)
	assert.Equal(t, "Page Two Upper", entries[1].Text)
	assert.Equal(t, "Page Two Lower", entries[2].Text)
	assert.Equal(t, 1, entries[0].Page)
	assert.Equal(t, 2, entries[1].Page)
}

func TestAssign_DeduplicatesOverlappingExtractions(t *testing.T) {
	assigner := NewAssigner()
	entries := assigner.Assign([]HeadingCandidate{
		candidate("Results", 3, 16, 650),
		candidate("results ", 3, 16, 650.3),
		candidate("Results", 4, 16, 650),
	})

	require.Len(t, entries, 2)
	assert.Equal(t, "Results", entries[0].Text)
	assert.Equal(t, 3, entries[0].Page)
	assert.Equal(t, 4, entries[1].Page)
}

func TestAssign_TrimsEntryText(t *testing.T) {
	assigner := NewAssigner()
	entries := assigner.Assign([]HeadingCandidate{
		candidate("  Padded Heading  ", 1, 16, 700),
	})

	require.Len(t, entries, 1)
	assert.Equal(t, "Padded Heading", entries[0].Text)
}

func TestAssign_Empty(t *testing.T) {
	assigner := NewAssigner()
	assert.Nil(t, assigner.Assign(nil))
	assert.Nil(t, assigner.Assign([]HeadingCandidate{}))
}
