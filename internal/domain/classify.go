package domain

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// EventClassifier scores text against per-category keyword sets in a single
// Aho-Corasick pass.
type EventClassifier struct {
	matcher  *ahocorasick.Matcher
	rules    []KeywordRule[EventType]
	keywords []string // automaton dictionary, unique folded keywords
	kwRules  [][]int  // keyword index -> rule indexes, one entry per occurrence
}

// NewEventClassifier builds the automaton over every rule's keywords. Rules
// are kept in the given order, which is the tie-break order.
func NewEventClassifier(rules []KeywordRule[EventType]) *EventClassifier {
	c := &EventClassifier{rules: rules}
	index := make(map[string]int)

	for ri, rule := range rules {
		for _, kw := range rule.Keywords {
			folded := Fold(kw)
			if folded == "" {
				continue
			}
			ki, ok := index[folded]
			if !ok {
				ki = len(c.keywords)
				index[folded] = ki
				c.keywords = append(c.keywords, folded)
				c.kwRules = append(c.kwRules, nil)
			}
			c.kwRules[ki] = append(c.kwRules[ki], ri)
		}
	}

	if len(c.keywords) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(c.keywords)
	}
	return c
}

// Classify returns the category with the most distinct keyword hits. Ties go
// to the category listed first; no hits at all yields EventOther.
func (c *EventClassifier) Classify(text string) EventType {
	return c.classifyFolded(Fold(text))
}

func (c *EventClassifier) classifyFolded(folded string) EventType {
	if c.matcher == nil || folded == "" {
		return EventOther
	}

	scores := make([]int, len(c.rules))
	seen := make([]bool, len(c.keywords))
	for _, ki := range c.matcher.MatchThreadSafe([]byte(folded)) {
		if ki < 0 || ki >= len(c.kwRules) || seen[ki] {
			continue
		}
		seen[ki] = true
		for _, ri := range c.kwRules[ki] {
			scores[ri]++
		}
	}

	best, bestScore := EventOther, 0
	for ri, score := range scores {
		if score > bestScore {
			best, bestScore = c.rules[ri].Category, score
		}
	}
	return best
}

// PriorityClassifier walks tiers in severity order and stops at the first
// keyword found. It never compares counts across tiers.
type PriorityClassifier struct {
	rules    []KeywordRule[Priority]
	fallback Priority
}

// NewPriorityClassifier expects rules ordered most severe first.
func NewPriorityClassifier(rules []KeywordRule[Priority], fallback Priority) *PriorityClassifier {
	folded := make([]KeywordRule[Priority], len(rules))
	for i, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if f := Fold(kw); f != "" {
				kws = append(kws, f)
			}
		}
		folded[i] = KeywordRule[Priority]{Category: r.Category, Keywords: kws}
	}
	return &PriorityClassifier{rules: folded, fallback: fallback}
}

func (c *PriorityClassifier) Classify(text string) Priority {
	return c.classifyFolded(Fold(text))
}

func (c *PriorityClassifier) classifyFolded(folded string) Priority {
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(folded, kw) {
				return rule.Category
			}
		}
	}
	return c.fallback
}

// UnitAssignor maps an event type to its ordered responder list.
type UnitAssignor struct {
	assignments map[EventType][]Unit
	fallback    Unit
}

func NewUnitAssignor(assignments map[EventType][]Unit, fallback Unit) *UnitAssignor {
	return &UnitAssignor{assignments: assignments, fallback: fallback}
}

// Assign returns a fresh, non-empty slice; index 0 is the primary unit.
func (a *UnitAssignor) Assign(event EventType) []Unit {
	units, ok := a.assignments[event]
	if !ok || len(units) == 0 {
		return []Unit{a.fallback}
	}
	return append([]Unit(nil), units...)
}
