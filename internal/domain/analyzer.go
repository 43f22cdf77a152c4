package domain

// AnalysisResult is the structured triage of one report. It is built fresh
// per call and never shared.
type AnalysisResult struct {
	EventType EventType `json:"event_type"`
	Priority  Priority  `json:"priority"`
	Units     []Unit    `json:"units"`
	Location
}

// PrimaryUnit is the lead responder, Units[0].
func (r AnalysisResult) PrimaryUnit() Unit {
	if len(r.Units) == 0 {
		return DefaultUnit
	}
	return r.Units[0]
}

// Analyzer composes location extraction, event and priority classification
// and unit assignment. It holds only immutable tables and is safe for
// concurrent use.
type Analyzer struct {
	location      *LocationExtractor
	events        *EventClassifier
	priorities    *PriorityClassifier
	units         *UnitAssignor
	fingerprinter Fingerprinter
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithFingerprinter replaces the default hashing fingerprinter. Passing nil
// disables fingerprints.
func WithFingerprinter(f Fingerprinter) AnalyzerOption {
	return func(a *Analyzer) {
		if f == nil {
			f = noopFingerprinter{}
		}
		a.fingerprinter = f
	}
}

// WithLandmarks overrides the landmark table and district list.
func WithLandmarks(lms []Landmark, dists []string) AnalyzerOption {
	return func(a *Analyzer) {
		a.location = NewLocationExtractor(lms, dists)
	}
}

// NewAnalyzer builds an Analyzer over the built-in Istanbul tables.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		location:      NewLocationExtractor(landmarks, districts),
		events:        NewEventClassifier(eventRules),
		priorities:    NewPriorityClassifier(priorityRules, LowestTier),
		units:         NewUnitAssignor(unitAssignments, DefaultUnit),
		fingerprinter: NewHashingFingerprinter(DefaultFingerprintDimensions),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze triages text. It is total: any input, including "", yields a
// valid result.
func (a *Analyzer) Analyze(text string) AnalysisResult {
	folded := Fold(text)
	event := a.events.classifyFolded(folded)
	return AnalysisResult{
		EventType: event,
		Priority:  a.priorities.classifyFolded(folded),
		Units:     a.units.Assign(event),
		Location:  a.location.extract(text, folded),
	}
}

// Fingerprint returns the text's similarity vector.
func (a *Analyzer) Fingerprint(text string) []float32 {
	return a.fingerprinter.Fingerprint(text)
}
