package outline

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Level is the hierarchical depth of an outline entry
type Level string

const (
	LevelH1 Level = "H1"
	LevelH2 Level = "H2"
	LevelH3 Level = "H3"
)

// levelForRank maps the rank of a size bucket (0 = largest) to a level.
// Ranks beyond the hierarchy depth fold into the deepest level.
func levelForRank(rank int) Level {
	switch {
	case rank <= 0:
		return LevelH1
	case rank == 1:
		return LevelH2
	default:
		return LevelH3
	}
}

// OutlineEntry is one detected heading in the final outline. Field order
// matches the output schema contract.
type OutlineEntry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Assigner maps heading candidates onto the H1–H3 scale and produces the
// ordered outline.
type Assigner struct{}

// NewAssigner creates a new level assigner
func NewAssigner() *Assigner {
	return &Assigner{}
}

// Assign ranks the distinct size buckets present among the candidates,
// maps the largest to H1 and down from there, deduplicates overlapping
// extractions, and emits entries in reading order: page ascending, then
// top-to-bottom within the page. The reading-order sort is independent of
// the size ranking used for level assignment.
func (a *Assigner) Assign(candidates []HeadingCandidate) []OutlineEntry {
	if len(candidates) == 0 {
		return nil
	}

	rankOf := bucketRanks(candidates)
	deduped := dedupe(candidates)

	sort.SliceStable(deduped, func(i, j int) bool {
		fi, fj := deduped[i].Fragment, deduped[j].Fragment
		if fi.Page != fj.Page {
			return fi.Page < fj.Page
		}
		if fi.Y != fj.Y {
			// Bottom-left origin: larger Y is higher on the page.
			return fi.Y > fj.Y
		}
		return fi.X < fj.X
	})

	entries := make([]OutlineEntry, 0, len(deduped))
	for _, cand := range deduped {
		entries = append(entries, OutlineEntry{
			Level: levelForRank(rankOf[cand.Bucket]),
			Text:  strings.TrimSpace(cand.Fragment.Text),
			Page:  cand.Fragment.Page,
		})
	}

	return entries
}

// bucketRanks ranks the distinct size buckets present among candidates in
// descending size order. Only buckets that actually survived classification
// participate, so an oversized title that was filtered out never consumes
// the H1 slot.
func bucketRanks(candidates []HeadingCandidate) map[float64]int {
	seen := make(map[float64]bool)
	var buckets []float64
	for _, cand := range candidates {
		if !seen[cand.Bucket] {
			seen[cand.Bucket] = true
			buckets = append(buckets, cand.Bucket)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(buckets)))

	ranks := make(map[float64]int, len(buckets))
	for i, bucket := range buckets {
		ranks[bucket] = i
	}
	return ranks
}

// fragmentKey identifies a fragment by page, vertical position and
// normalized text. Two fragments sharing a key are the same piece of text
// on the page as far as the outline is concerned.
func fragmentKey(frag Fragment) string {
	return fmt.Sprintf("%d|%.0f|%s",
		frag.Page,
		math.Round(frag.Y),
		strings.ToLower(strings.TrimSpace(frag.Text)))
}

// dedupe removes duplicate fragments produced by overlapping extraction:
// same page, same vertical position, same text. Within a duplicate group
// the first occurrence in document order wins.
func dedupe(candidates []HeadingCandidate) []HeadingCandidate {
	seen := make(map[string]bool, len(candidates))
	result := make([]HeadingCandidate, 0, len(candidates))

	for _, cand := range candidates {
		key := fragmentKey(cand.Fragment)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, cand)
	}

	return result
}
