package dialect

import "tci/internal/source"

// Hint is one small piece of evidence pointing at a particular language.
// It is not a diagnostic by itself; hints are aggregated and classified
// before anything is shown to the user.
type Hint struct {
	Kind   Kind
	Score  int
	Reason string
	Span   source.Span
}

// Evidence aggregates per-file hints collected during tokenization.
type Evidence struct {
	hints []Hint
}

// NewEvidence creates an empty evidence container.
func NewEvidence() *Evidence {
	return &Evidence{
		hints: make([]Hint, 0, 16),
	}
}

// Add appends a hint. Safe on a nil receiver, so collection points do not
// have to care whether detection is enabled.
func (e *Evidence) Add(h Hint) {
	if e == nil {
		return
	}
	e.hints = append(e.hints, h)
}

// Hints returns the collected hints.
func (e *Evidence) Hints() []Hint {
	if e == nil {
		return nil
	}
	return e.hints
}
