package mapping

// Scorer computes a similarity in [0, 1] between two header labels.
type Scorer interface {
	Score(a, b string) float64
}

// EditDistanceScorer scores headers with the bigram edit-distance similarity.
// It is the default; it needs no model data and is fully deterministic.
type EditDistanceScorer struct{}

// Score implements Scorer.
func (EditDistanceScorer) Score(a, b string) float64 {
	return StrSim(a, b)
}

// Match is one aligned header pair. Template or Source is nil when the other
// side had no counterpart, which happens whenever the header lists differ in
// length.
type Match struct {
	Template *string
	Source   *string
	Score    float64
}

// Pair aligns a template header list with a source header list.
type Pair struct {
	template []string
	source   []string
	scorer   Scorer
}

// NewPair builds a Pair. Empty header labels are replaced with "empty" so
// every label scores like a real word. The scorer defaults to
// EditDistanceScorer when nil.
func NewPair(template, source []string, scorer Scorer) *Pair {
	if scorer == nil {
		scorer = EditDistanceScorer{}
	}
	return &Pair{
		template: fillEmpty(template),
		source:   fillEmpty(source),
		scorer:   scorer,
	}
}

func fillEmpty(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		if item == "" {
			item = "empty"
		}
		out[i] = item
	}
	return out
}

// Mapping computes the optimal one-to-one assignment between the two header
// lists and returns one Match per assignment, in template order first and
// then the leftover source headers.
//
// The score matrix is padded to a square with zero-similarity cells, so a
// longer list leaves its extra headers paired against nothing.
func (p *Pair) Mapping() []Match {
	dim := max(len(p.template), len(p.source))
	if dim == 0 {
		return nil
	}

	// Similarities negated into costs for the minimizing solver.
	cost := make([][]float64, dim)
	for i := range cost {
		cost[i] = make([]float64, dim)
		for j := range cost[i] {
			if i < len(p.template) && j < len(p.source) {
				cost[i][j] = -p.scorer.Score(p.template[i], p.source[j])
			}
		}
	}

	colOf := assign(cost)
	results := make([]Match, 0, dim)
	for i := 0; i < dim; i++ {
		j := colOf[i]
		m := Match{Score: -cost[i][j]}
		if i < len(p.template) {
			m.Template = &p.template[i]
		}
		if j < len(p.source) {
			m.Source = &p.source[j]
		}
		results = append(results, m)
	}
	return results
}

// MappingExact aligns headers by exact string equality only. Each source
// header can satisfy at most one template header; scores are 1 or 0.
func (p *Pair) MappingExact() []Match {
	remaining := make([]string, len(p.source))
	copy(remaining, p.source)

	var results []Match
	for i := range p.template {
		item := p.template[i]
		found := -1
		for k, r := range remaining {
			if r == item {
				found = k
				break
			}
		}
		if found >= 0 {
			remaining = append(remaining[:found], remaining[found+1:]...)
			results = append(results, Match{Template: &p.template[i], Source: &item, Score: 1})
		} else {
			results = append(results, Match{Template: &p.template[i], Score: 0})
		}
	}
	for k := range remaining {
		results = append(results, Match{Source: &remaining[k], Score: 0})
	}
	return results
}
