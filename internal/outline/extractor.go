package outline

// OutputRecord is the final result for one document. Field order matches
// the output schema contract; Outline is never nil so an outline-free
// document serializes as an empty array.
type OutputRecord struct {
	Title   string         `json:"title"`
	Outline []OutlineEntry `json:"outline"`
}

// Extractor runs the full outline pipeline for a single document:
// collection, font profiling, title extraction, heading classification and
// level assignment. Extractors carry no per-document state and are safe to
// share across goroutines.
type Extractor struct {
	collector  *Collector
	profiler   *Profiler
	classifier *Classifier
	assigner   *Assigner
	titles     *TitleExtractor
}

// NewExtractor creates an extractor with the given pipeline configuration
func NewExtractor(config Config) *Extractor {
	return &Extractor{
		collector:  NewCollector(config),
		profiler:   NewProfiler(config),
		classifier: NewClassifier(config),
		assigner:   NewAssigner(),
		titles:     NewTitleExtractor(config),
	}
}

// Extract produces the output record for one document from its raw
// fragment stream and per-page dimensions. The returned profile lets the
// caller distinguish a flat document (no size contrast, empty outline by
// construction) from a document that simply has no headings.
func (e *Extractor) Extract(raw []Fragment, pages map[int]PageSize) (*OutputRecord, *FontProfile) {
	fragments := e.collector.Collect(raw)
	profile := e.profiler.Profile(fragments)
	title, titleFragments := e.titles.Extract(fragments, pages[1])

	candidates := e.classifier.Classify(fragments, profile, pages, titleFragments)
	entries := e.assigner.Assign(candidates)
	if entries == nil {
		entries = []OutlineEntry{}
	}

	return &OutputRecord{Title: title, Outline: entries}, profile
}
