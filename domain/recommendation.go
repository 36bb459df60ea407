package domain

// ScoredDestination is a single ranked recommendation produced by the engine.
type ScoredDestination struct {
	DestinationID string  `json:"destination_id"`
	Score         float64 `json:"score"`
}
