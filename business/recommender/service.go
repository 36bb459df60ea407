package recommender

import (
	"context"
	"errors"
	"fmt"

	"swisstination/domain"
	"swisstination/pkg/logger"
)

// Strategy identifies which scoring path produced a result.
type Strategy string

const (
	StrategyKnownUser Strategy = "known-user"
	StrategyColdStart Strategy = "cold-start"
	StrategyFallback  Strategy = "fallback"
)

const (
	// defaultLimit is used when the caller does not specify a count.
	defaultLimit = 10

	// ReturnAllThreshold: a requested count at or above this means
	// "return every available candidate".
	ReturnAllThreshold = 1000

	// DefaultMinInteractions is the rating-history size at which a user
	// switches from cold-start to personalized scoring.
	DefaultMinInteractions = 3
)

// ---- Collaborator interfaces ----

// CatalogSource lists the current recommendable destinations, optionally
// restricted to categories, in a stable order (primary key).
type CatalogSource interface {
	FindRefs(ctx context.Context, categoryIDs []int64) ([]domain.DestinationRef, error)
}

// InteractionSource exposes a user's rating history: which destinations they
// rated and how many interactions they have.
type InteractionSource interface {
	RatedDestinationIDs(ctx context.Context, userID string) (map[string]struct{}, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// ---- Service ----

// Service is the recommendation-decision engine: it selects a scoring
// strategy per request and delegates to the known-user scorer, the
// cold-start scorer, or the fallback ranker. The model artifact is read-only
// after construction, so the service is safe for concurrent use.
type Service struct {
	artifact        *ModelArtifact // nil when the artifact failed to load
	catalog         CatalogSource
	interactions    InteractionSource
	minInteractions int64
}

func NewService(artifact *ModelArtifact, catalog CatalogSource, interactions InteractionSource) *Service {
	return &Service{
		artifact:        artifact,
		catalog:         catalog,
		interactions:    interactions,
		minInteractions: DefaultMinInteractions,
	}
}

// SetMinInteractions overrides the rating-history threshold for personalized
// scoring. Call during wiring, before the service starts taking requests.
func (s *Service) SetMinInteractions(n int64) {
	if n > 0 {
		s.minInteractions = n
	}
}

// ModelAvailable reports whether the trained artifact was loaded.
func (s *Service) ModelAvailable() bool {
	return s.artifact != nil
}

// Recommend returns up to limit ranked destinations for the given user
// and/or declared category preferences, plus the strategy that produced
// them. userID may be empty (anonymous / forced cold start), categoryIDs may
// be nil. limit == 0 means the default count; limit >= ReturnAllThreshold
// means "all available". Data unavailability is never an error: the engine
// degrades through cold-start and fallback instead.
func (s *Service) Recommend(ctx context.Context, userID string, categoryIDs []int64, limit int) (Strategy, []domain.ScoredDestination, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, fmt.Errorf("context error: %w", err)
	}

	if limit < 0 {
		return "", nil, errors.New("requested count must not be negative")
	}
	if limit == 0 {
		limit = defaultLimit
	}
	for _, cid := range categoryIDs {
		if cid <= 0 {
			return "", nil, fmt.Errorf("invalid category id: %d", cid)
		}
	}

	// 1) no model: deterministic fallback for every request
	if s.artifact == nil {
		scored := fallbackRank(s.candidates(ctx, categoryIDs))
		recommendationsServedTotal.WithLabelValues(string(StrategyFallback)).Inc()
		return StrategyFallback, truncate(scored, limit), nil
	}

	// 2) enough history: personalized scoring via the trained model
	if userID != "" && s.interactionCount(ctx, userID) >= s.minInteractions {
		rated := s.ratedItems(ctx, userID)
		scored := scoreKnownUser(s.artifact, userID, s.candidates(ctx, categoryIDs), rated)
		if len(scored) > 0 {
			recommendationsServedTotal.WithLabelValues(string(StrategyKnownUser)).Inc()
			return StrategyKnownUser, truncate(scored, limit), nil
		}
		logger.Debug("known-user scoring yielded no items, falling through", "user_id", userID)
	}

	// 3) cold start from declared category preferences
	if len(categoryIDs) > 0 {
		if vec, ok := pseudoUserVector(s.artifact, categoryIDs); ok {
			scored := scorePseudoUser(s.artifact, vec, s.candidates(ctx, categoryIDs), nil)
			if len(scored) > 0 {
				recommendationsServedTotal.WithLabelValues(string(StrategyColdStart)).Inc()
				return StrategyColdStart, truncate(scored, limit), nil
			}
		}
	}

	// 4) popularity fallback
	scored := fallbackRank(s.candidates(ctx, categoryIDs))
	recommendationsServedTotal.WithLabelValues(string(StrategyFallback)).Inc()
	return StrategyFallback, truncate(scored, limit), nil
}

// interactionCount tolerates interaction-source failures: an unreachable
// source counts as zero history, pushing the request toward cold start.
func (s *Service) interactionCount(ctx context.Context, userID string) int64 {
	if s.interactions == nil {
		return 0
	}

	count, err := s.interactions.CountByUser(ctx, userID)
	if err != nil {
		logger.Warn("interaction count unavailable", "user_id", userID, "error", err)
		return 0
	}

	return count
}

// ratedItems tolerates failures the same way: nothing gets excluded.
func (s *Service) ratedItems(ctx context.Context, userID string) map[string]struct{} {
	if s.interactions == nil {
		return nil
	}

	rated, err := s.interactions.RatedDestinationIDs(ctx, userID)
	if err != nil {
		logger.Warn("rated items unavailable", "user_id", userID, "error", err)
		return nil
	}

	return rated
}

func truncate(scored []domain.ScoredDestination, limit int) []domain.ScoredDestination {
	if limit >= ReturnAllThreshold || len(scored) <= limit {
		return scored
	}
	return scored[:limit]
}
