package recommender

import (
	"sort"

	"swisstination/domain"
)

// scoreKnownUser ranks candidates for a user with enough rating history,
// using the trained model directly. Already-rated and model-unknown items
// are skipped, never errored. Pure given its inputs.
func scoreKnownUser(m *ModelArtifact, userID string, candidates []string, rated map[string]struct{}) []domain.ScoredDestination {
	scored := make([]domain.ScoredDestination, 0, len(candidates))

	for _, id := range candidates {
		if _, taken := rated[id]; taken {
			continue
		}
		if !m.KnownItem(id) {
			continue
		}

		scored = append(scored, domain.ScoredDestination{
			DestinationID: id,
			Score:         m.Predict(userID, id),
		})
	}

	// stable: ties keep candidate order
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
