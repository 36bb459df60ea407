package recommender

import (
	"encoding/json"
	"fmt"
	"os"

	"swisstination/domain"
)

// artifactPayload is the on-disk JSON schema written by the offline training
// job. Raw ids are strings; inner ids are positions in the id slices.
type artifactPayload struct {
	Version    string  `json:"version"`
	Factors    int     `json:"factors"`
	GlobalMean float64 `json:"global_mean"`
	RatingMin  float64 `json:"rating_min"`
	RatingMax  float64 `json:"rating_max"`

	UserIDs []string    `json:"user_ids"`
	ItemIDs []string    `json:"item_ids"`
	BU      []float64   `json:"bu"`
	BI      []float64   `json:"bi"`
	PU      [][]float64 `json:"pu"`
	QI      [][]float64 `json:"qi"`

	Items []snapshotItem `json:"items"`
}

type snapshotItem struct {
	DestinationID string `json:"destination_id"`
	CategoryID    int64  `json:"category_id"`
}

// LoadArtifact reads and validates the trained model artifact. Callers are
// expected to treat any error as "model unavailable" and keep serving via
// the fallback ranker rather than failing startup.
func LoadArtifact(path string) (*ModelArtifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var payload artifactPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}

	if err := validatePayload(&payload); err != nil {
		return nil, fmt.Errorf("invalid model artifact: %w", err)
	}

	m := &ModelArtifact{
		Version:    payload.Version,
		Factors:    payload.Factors,
		GlobalMean: payload.GlobalMean,
		RatingMin:  payload.RatingMin,
		RatingMax:  payload.RatingMax,
		bu:         payload.BU,
		bi:         payload.BI,
		pu:         payload.PU,
		qi:         payload.QI,
		userIndex:  make(map[string]int, len(payload.UserIDs)),
		itemIndex:  make(map[string]int, len(payload.ItemIDs)),
		snapshot:   make([]domain.DestinationRef, 0, len(payload.Items)),
	}

	for i, uid := range payload.UserIDs {
		m.userIndex[uid] = i
	}
	for i, iid := range payload.ItemIDs {
		m.itemIndex[iid] = i
	}
	for _, item := range payload.Items {
		m.snapshot = append(m.snapshot, domain.DestinationRef{
			ID:         item.DestinationID,
			CategoryID: item.CategoryID,
		})
	}

	return m, nil
}

func validatePayload(p *artifactPayload) error {
	if p.Factors <= 0 {
		return fmt.Errorf("factors must be positive, got %d", p.Factors)
	}
	if p.RatingMax <= p.RatingMin {
		return fmt.Errorf("rating scale [%v, %v] is empty", p.RatingMin, p.RatingMax)
	}
	if len(p.BU) != len(p.UserIDs) || len(p.PU) != len(p.UserIDs) {
		return fmt.Errorf("user factor count mismatch: %d ids, %d biases, %d vectors",
			len(p.UserIDs), len(p.BU), len(p.PU))
	}
	if len(p.BI) != len(p.ItemIDs) || len(p.QI) != len(p.ItemIDs) {
		return fmt.Errorf("item factor count mismatch: %d ids, %d biases, %d vectors",
			len(p.ItemIDs), len(p.BI), len(p.QI))
	}
	for i, vec := range p.PU {
		if len(vec) != p.Factors {
			return fmt.Errorf("user vector %d has dimension %d, want %d", i, len(vec), p.Factors)
		}
	}
	for i, vec := range p.QI {
		if len(vec) != p.Factors {
			return fmt.Errorf("item vector %d has dimension %d, want %d", i, len(vec), p.Factors)
		}
	}

	return nil
}
