package recommender

import (
	"sort"

	"swisstination/domain"
)

// pseudoUserVector builds a synthetic user representation from declared
// category preferences: the component-wise mean of the latent vectors of all
// model-known snapshot items in those categories. Returns false for an empty
// category set or when no item in the categories is known to the model, in
// which case no pseudo-user is representable and the caller should fall
// through.
func pseudoUserVector(m *ModelArtifact, categoryIDs []int64) ([]float64, bool) {
	if len(categoryIDs) == 0 {
		return nil, false
	}

	var vecs [][]float64
	for _, ref := range m.Snapshot(categoryIDs) {
		if qi, ok := m.ItemFactors(ref.ID); ok {
			vecs = append(vecs, qi)
		}
	}

	if len(vecs) == 0 {
		return nil, false
	}

	return meanVectors(vecs), true
}

// scorePseudoUser ranks candidates against a pseudo-user vector using only
// item-side model parameters: global mean + item bias + qi·vec. A new user's
// bias is zero by definition.
func scorePseudoUser(m *ModelArtifact, vec []float64, candidates []string, exclude map[string]struct{}) []domain.ScoredDestination {
	scored := make([]domain.ScoredDestination, 0, len(candidates))

	for _, id := range candidates {
		if _, skip := exclude[id]; skip {
			continue
		}

		qi, ok := m.ItemFactors(id)
		if !ok {
			continue
		}
		bi, _ := m.ItemBias(id)

		scored = append(scored, domain.ScoredDestination{
			DestinationID: id,
			Score:         m.GlobalMean + bi + dot(qi, vec),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
