// Package dataset generates labeled synthetic emergency reports and scores
// the analyzer against labeled data.
package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
)

// DefaultSeed makes generated datasets reproducible across runs.
const DefaultSeed uint64 = 42

// jitter is the maximum coordinate offset, in degrees, from a district
// centroid.
const jitter = 0.02

// Record is one labeled report.
type Record struct {
	Text         string
	EventType    domain.EventType
	Priority     domain.Priority
	Unit         domain.Unit
	District     string
	Neighborhood string
	Lat          float64
	Lon          float64
}

// Generator produces labeled reports from fixed templates. It is not safe
// for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator seeds a generator. Equal seeds yield equal datasets.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Generate returns n records.
func (g *Generator) Generate(n int) []Record {
	out := make([]Record, 0, max(n, 0))
	for range n {
		out = append(out, g.next())
	}
	return out
}

func (g *Generator) next() Record {
	tpl := eventTemplates[g.rng.IntN(len(eventTemplates))]
	area := neighborhoods[g.rng.IntN(len(neighborhoods))]
	neighborhood := pick(g.rng, area.names)

	location := fmt.Sprintf("%s %s Mahallesi %s %s yakınlarında",
		area.district, neighborhood, pick(g.rng, avenues), pick(g.rng, streets))
	text := strings.ReplaceAll(pick(g.rng, tpl.templates), "{konum}", location)

	center, _ := domain.DistrictCentroid(area.district)
	return Record{
		Text:         text,
		EventType:    tpl.event,
		Priority:     g.priority(tpl.priority),
		Unit:         pick(g.rng, tpl.units),
		District:     area.district,
		Neighborhood: neighborhood,
		Lat:          round6(center.Lat + g.offset()),
		Lon:          round6(center.Lon + g.offset()),
	}
}

func (g *Generator) priority(weights []weightedPriority) domain.Priority {
	var total float64
	for _, w := range weights {
		total += w.weight
	}
	x := g.rng.Float64() * total
	for _, w := range weights {
		if x < w.weight {
			return w.priority
		}
		x -= w.weight
	}
	return weights[len(weights)-1].priority
}

func (g *Generator) offset() float64 {
	return (g.rng.Float64()*2 - 1) * jitter
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
