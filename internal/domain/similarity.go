package domain

import (
	"fmt"
	"math"
	"sort"
)

// CosineSimilarity computes the cosine similarity between two vectors.
// It fails on mismatched dimensions and zero-norm vectors rather than
// returning a silently wrong score.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("cannot compare empty vectors")
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimensions differ: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero-norm vector")
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// RankBySimilarity scores candidates against a query embedding and returns
// the top k, descending by similarity. Candidates without a stored embedding
// are skipped. A similarity failure for one candidate never aborts the batch:
// that candidate keeps a zero score and ranks last. The second return value
// counts such failures so callers can log them.
func RankBySimilarity(query []float32, candidates []Article, k int) ([]ScoredArticle, int) {
	failed := 0
	scored := make([]ScoredArticle, 0, len(candidates))
	for _, art := range candidates {
		if !art.HasEmbedding() {
			continue
		}
		sim, err := CosineSimilarity(query, art.Embedding.Slice())
		if err != nil {
			sim = 0
			failed++
		}
		scored = append(scored, ScoredArticle{Article: art, Score: sim})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored, failed
}
