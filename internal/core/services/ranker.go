package services

import (
	"math"
	"sort"

	"github.com/custodia-labs/meow/internal/core/domain"
)

// Cosine returns the cosine similarity of a and b.
// Vectors of different length, and undefined results from zero vectors,
// score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	score := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return score
}

// Rank scores every record against query and sorts descending by score.
// Records with equal scores keep their input order.
func Rank(query []float32, records []domain.EmbeddingRecord) []domain.ScoredPath {
	ranked := make([]domain.ScoredPath, len(records))
	for i := range records {
		ranked[i] = domain.ScoredPath{
			Path:  records[i].Path,
			Score: Cosine(query, records[i].Vector),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// TopK returns at most k leading entries of a ranking.
func TopK(ranked []domain.ScoredPath, k int) []domain.ScoredPath {
	if k < 0 || len(ranked) <= k {
		return ranked
	}
	return ranked[:k]
}
