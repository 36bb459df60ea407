package recommender

import (
	"context"

	"swisstination/pkg/logger"
)

// candidates resolves the current universe of recommendable destination ids,
// optionally restricted to a category set. The live catalog is preferred;
// any failure (including "not configured") falls back to the item snapshot
// frozen inside the model artifact. Never returns an error: with neither
// source available the candidate set is simply empty.
func (s *Service) candidates(ctx context.Context, categoryIDs []int64) []string {
	if s.catalog != nil {
		refs, err := s.catalog.FindRefs(ctx, categoryIDs)
		if err == nil {
			ids := make([]string, 0, len(refs))
			for _, ref := range refs {
				ids = append(ids, ref.ID)
			}
			return ids
		}
		logger.Warn("live catalog unavailable, using model snapshot", "error", err)
	}

	if s.artifact == nil {
		return nil
	}

	refs := s.artifact.Snapshot(categoryIDs)
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}

	return ids
}
