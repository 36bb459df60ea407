package recommender

import (
	"swisstination/domain"
)

// ModelArtifact is the trained latent-factor model exported by the offline
// training job, together with the item-catalog snapshot frozen at training
// time. Loaded once at startup and read-only afterwards, so concurrent
// requests may share it without locking.
type ModelArtifact struct {
	Version    string
	Factors    int
	GlobalMean float64
	RatingMin  float64
	RatingMax  float64

	// latent factors and biases, indexed by inner id
	bu []float64
	bi []float64
	pu [][]float64
	qi [][]float64

	// raw id -> inner id
	userIndex map[string]int
	itemIndex map[string]int

	// (destination_id, category_id) pairs in training order
	snapshot []domain.DestinationRef
}

// KnownItem reports whether the item was seen at training time.
func (m *ModelArtifact) KnownItem(rawID string) bool {
	_, ok := m.itemIndex[rawID]
	return ok
}

// ItemFactors returns the latent vector of a known item.
func (m *ModelArtifact) ItemFactors(rawID string) ([]float64, bool) {
	ii, ok := m.itemIndex[rawID]
	if !ok {
		return nil, false
	}
	return m.qi[ii], true
}

// ItemBias returns the bias term of a known item.
func (m *ModelArtifact) ItemBias(rawID string) (float64, bool) {
	ii, ok := m.itemIndex[rawID]
	if !ok {
		return 0, false
	}
	return m.bi[ii], true
}

// Predict estimates the rating a user would give an item:
// global mean + user bias + item bias + pu·qi, clamped to the training
// rating scale. Unknown users or items contribute nothing beyond the mean.
func (m *ModelArtifact) Predict(userID, itemID string) float64 {
	est := m.GlobalMean

	ui, knownUser := m.userIndex[userID]
	ii, knownItem := m.itemIndex[itemID]

	if knownUser {
		est += m.bu[ui]
	}
	if knownItem {
		est += m.bi[ii]
	}
	if knownUser && knownItem {
		est += dot(m.pu[ui], m.qi[ii])
	}

	if est < m.RatingMin {
		est = m.RatingMin
	}
	if est > m.RatingMax {
		est = m.RatingMax
	}

	return est
}

// Snapshot returns the frozen item catalog in training order, optionally
// restricted to the given categories.
func (m *ModelArtifact) Snapshot(categoryIDs []int64) []domain.DestinationRef {
	if len(categoryIDs) == 0 {
		return m.snapshot
	}

	allowed := make(map[int64]struct{}, len(categoryIDs))
	for _, cid := range categoryIDs {
		allowed[cid] = struct{}{}
	}

	refs := make([]domain.DestinationRef, 0, len(m.snapshot))
	for _, ref := range m.snapshot {
		if _, ok := allowed[ref.CategoryID]; ok {
			refs = append(refs, ref)
		}
	}

	return refs
}
