package recommender

import (
	"sort"

	"swisstination/domain"
)

const (
	fallbackBaseScore   = 10.0
	fallbackDecayStep   = 0.05
	fallbackDecayCutoff = 200
	fallbackFloorScore  = 1.0
)

// fallbackRank assigns a deterministic, model-independent score that decays
// by candidate position (primary-key order from the live source, snapshot
// order otherwise) and floors beyond the cutoff. The decay dips below the
// floor near the cutoff, so a final stable descending sort keeps the output
// non-increasing. Never fails; an empty candidate set yields an empty
// result.
func fallbackRank(candidates []string) []domain.ScoredDestination {
	scored := make([]domain.ScoredDestination, 0, len(candidates))

	for i, id := range candidates {
		score := fallbackFloorScore
		if i < fallbackDecayCutoff {
			score = fallbackBaseScore - float64(i)*fallbackDecayStep
		}
		scored = append(scored, domain.ScoredDestination{
			DestinationID: id,
			Score:         score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
