package review

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"swisstination/domain"
)

type fakeReviewRepo struct {
	existing map[string]domain.Review // key userID:destID
	created  []domain.Review
	updated  []domain.Review
}

func key(userID string, destinationID uint64) string {
	return fmt.Sprintf("%s:%d", userID, destinationID)
}

func (f *fakeReviewRepo) FindByUserAndDestination(ctx context.Context, userID string, destinationID uint64) (domain.Review, error) {
	if r, ok := f.existing[key(userID, destinationID)]; ok {
		return r, nil
	}
	return domain.Review{}, errors.New("record not found")
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	review.ID = uint64(len(f.created) + 1)
	f.created = append(f.created, *review)
	return nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	f.updated = append(f.updated, *review)
	return nil
}

func (f *fakeReviewRepo) FindByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range f.existing {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeDestChecker struct {
	known map[uint64]bool
}

func (f *fakeDestChecker) Exists(ctx context.Context, destinationID uint64) (bool, error) {
	return f.known[destinationID], nil
}

func TestSubmitReview_Create(t *testing.T) {
	repo := &fakeReviewRepo{existing: map[string]domain.Review{}}
	svc := NewReviewService(repo, &fakeDestChecker{known: map[uint64]bool{7: true}})

	review, wasUpdate, err := svc.SubmitReview(context.Background(), &domain.Review{
		UserID:        "u1",
		DestinationID: 7,
		Rating:        4,
		Review:        "great views",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wasUpdate {
		t.Fatal("expected a create, got an update")
	}
	if review.ID == 0 {
		t.Error("stored review has no id")
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d reviews, want 1", len(repo.created))
	}
}

func TestSubmitReview_UpdateExisting(t *testing.T) {
	repo := &fakeReviewRepo{existing: map[string]domain.Review{
		key("u1", 7): {ID: 3, UserID: "u1", DestinationID: 7, Rating: 2, Review: "meh"},
	}}
	svc := NewReviewService(repo, &fakeDestChecker{known: map[uint64]bool{7: true}})

	review, wasUpdate, err := svc.SubmitReview(context.Background(), &domain.Review{
		UserID:        "u1",
		DestinationID: 7,
		Rating:        5,
		Review:        "changed my mind",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !wasUpdate {
		t.Fatal("expected an update")
	}
	if review.ID != 3 || review.Rating != 5 {
		t.Errorf("updated review = %+v", review)
	}
	if len(repo.created) != 0 {
		t.Error("update should not create a new row")
	}
}

func TestSubmitReview_InvalidRating(t *testing.T) {
	svc := NewReviewService(&fakeReviewRepo{}, &fakeDestChecker{})

	for _, rating := range []int{0, 6, -1} {
		_, _, err := svc.SubmitReview(context.Background(), &domain.Review{
			UserID: "u1", DestinationID: 7, Rating: rating,
		})
		if err == nil {
			t.Errorf("rating %d: expected error", rating)
		}
	}
}

func TestSubmitReview_UnknownDestination(t *testing.T) {
	svc := NewReviewService(&fakeReviewRepo{}, &fakeDestChecker{known: map[uint64]bool{}})

	_, _, err := svc.SubmitReview(context.Background(), &domain.Review{
		UserID: "u1", DestinationID: 404, Rating: 3,
	})
	if err == nil {
		t.Fatal("expected error for unknown destination")
	}
}
