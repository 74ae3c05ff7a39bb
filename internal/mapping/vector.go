package mapping

import "math"

// Embedder turns a header label into a dense vector. Implementations wrap
// an external embedding model; the engine treats the model as a black box.
type Embedder interface {
	Embed(label string) ([]float64, error)
}

// VectorScorer scores header pairs by the cosine similarity of their
// embeddings, clamped to [0, 1]. A label the embedder cannot encode scores
// 0 against everything, so it ends up unmatched instead of failing the
// whole mapping. Vectors are cached per label.
type VectorScorer struct {
	embedder Embedder
	cache    map[string][]float64
}

// NewVectorScorer builds a VectorScorer over an embedding backend.
func NewVectorScorer(embedder Embedder) *VectorScorer {
	return &VectorScorer{
		embedder: embedder,
		cache:    make(map[string][]float64),
	}
}

// Score implements Scorer.
func (s *VectorScorer) Score(a, b string) float64 {
	va := s.vector(a)
	vb := s.vector(b)
	if len(va) == 0 || len(va) != len(vb) {
		return 0
	}

	var dot, norm1, norm2 float64
	for i := range va {
		dot += va[i] * vb[i]
		norm1 += va[i] * va[i]
		norm2 += vb[i] * vb[i]
	}
	if norm1 == 0 || norm2 == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(norm1) * math.Sqrt(norm2))
	switch {
	case sim < 0:
		return 0
	case sim > 1:
		return 1
	}
	return sim
}

func (s *VectorScorer) vector(label string) []float64 {
	if v, ok := s.cache[label]; ok {
		return v
	}
	v, err := s.embedder.Embed(label)
	if err != nil {
		v = nil
	}
	s.cache[label] = v
	return v
}
