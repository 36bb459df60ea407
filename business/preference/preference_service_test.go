package preference

import (
	"context"
	"testing"

	"swisstination/domain"
)

type fakePreferenceRepo struct {
	stored map[string][]domain.Preference
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{stored: make(map[string][]domain.Preference)}
}

func (f *fakePreferenceRepo) ReplaceForUser(ctx context.Context, userID string, preferences []domain.Preference) error {
	f.stored[userID] = preferences
	return nil
}

func (f *fakePreferenceRepo) FindByUser(ctx context.Context, userID string) ([]domain.Preference, error) {
	return f.stored[userID], nil
}

func (f *fakePreferenceRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	return int64(len(f.stored[userID])), nil
}

func TestSavePreferences_ReplacesSet(t *testing.T) {
	repo := newFakePreferenceRepo()
	svc := NewPreferenceService(repo)

	saved, err := svc.SavePreferences(context.Background(), "u1", []domain.Preference{
		{CategoryID: 1},
		{CategoryID: 3, Weight: 0.5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != 2 {
		t.Fatalf("saved = %d, want 2", saved)
	}

	stored := repo.stored["u1"]
	if stored[0].Weight != 1.0 {
		t.Errorf("missing weight should default to 1.0, got %v", stored[0].Weight)
	}
	if stored[1].Weight != 0.5 {
		t.Errorf("explicit weight overwritten: %v", stored[1].Weight)
	}
	if stored[0].UserID != "u1" {
		t.Errorf("user id not stamped: %q", stored[0].UserID)
	}
}

func TestSavePreferences_Validation(t *testing.T) {
	svc := NewPreferenceService(newFakePreferenceRepo())

	if _, err := svc.SavePreferences(context.Background(), "u1", nil); err == nil {
		t.Error("expected error for empty preferences")
	}
	if _, err := svc.SavePreferences(context.Background(), "u1", []domain.Preference{{CategoryID: 0}}); err == nil {
		t.Error("expected error for non-positive category id")
	}
}

func TestPreferenceStatus(t *testing.T) {
	repo := newFakePreferenceRepo()
	repo.stored["u1"] = []domain.Preference{{CategoryID: 2, Weight: 1}}
	svc := NewPreferenceService(repo)

	has, count, err := svc.PreferenceStatus(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !has || count != 1 {
		t.Errorf("status = (%v, %d), want (true, 1)", has, count)
	}

	has, count, err = svc.PreferenceStatus(context.Background(), "u2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if has || count != 0 {
		t.Errorf("status = (%v, %d), want (false, 0)", has, count)
	}
}

func TestCategoryIDs(t *testing.T) {
	repo := newFakePreferenceRepo()
	repo.stored["u1"] = []domain.Preference{
		{CategoryID: 4, Weight: 1},
		{CategoryID: 2, Weight: 1},
	}
	svc := NewPreferenceService(repo)

	ids, err := svc.CategoryIDs(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != 4 || ids[1] != 2 {
		t.Fatalf("ids = %v, want [4 2]", ids)
	}

	ids, err = svc.CategoryIDs(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids != nil {
		t.Fatalf("ids = %v, want nil for a user without preferences", ids)
	}
}
