package recommender

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"swisstination/domain"
)

// fakes for the collaborator interfaces

type fakeCatalog struct {
	refs []domain.DestinationRef
	err  error
}

func (f *fakeCatalog) FindRefs(ctx context.Context, categoryIDs []int64) ([]domain.DestinationRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(categoryIDs) == 0 {
		return f.refs, nil
	}
	allowed := make(map[int64]struct{}, len(categoryIDs))
	for _, cid := range categoryIDs {
		allowed[cid] = struct{}{}
	}
	var out []domain.DestinationRef
	for _, ref := range f.refs {
		if _, ok := allowed[ref.CategoryID]; ok {
			out = append(out, ref)
		}
	}
	return out, nil
}

type fakeInteractions struct {
	count int64
	rated map[string]struct{}
	err   error
}

func (f *fakeInteractions) RatedDestinationIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rated, nil
}

func (f *fakeInteractions) CountByUser(ctx context.Context, userID string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}

// testArtifact builds a small two-factor model:
//
//	user "alice": bu=0.5, pu=[1,0]
//	items "1" (cat 1), "2" (cat 2), "3" (cat 1)
func testArtifact() *ModelArtifact {
	return &ModelArtifact{
		Version:    "test",
		Factors:    2,
		GlobalMean: 3.0,
		RatingMin:  1.0,
		RatingMax:  5.0,
		bu:         []float64{0.5},
		bi:         []float64{0.2, -0.1, 0.0},
		pu:         [][]float64{{1, 0}},
		qi:         [][]float64{{1, 0}, {0, 1}, {0.5, 0.5}},
		userIndex:  map[string]int{"alice": 0},
		itemIndex:  map[string]int{"1": 0, "2": 1, "3": 2},
		snapshot: []domain.DestinationRef{
			{ID: "1", CategoryID: 1},
			{ID: "2", CategoryID: 2},
			{ID: "3", CategoryID: 1},
		},
	}
}

func testRefs() []domain.DestinationRef {
	return []domain.DestinationRef{
		{ID: "1", CategoryID: 1},
		{ID: "2", CategoryID: 2},
		{ID: "3", CategoryID: 1},
	}
}

func TestRecommend_KnownUserStrategy(t *testing.T) {
	svc := NewService(testArtifact(), &fakeCatalog{refs: testRefs()}, &fakeInteractions{count: 5})

	strategy, scored, err := svc.Recommend(context.Background(), "alice", nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != StrategyKnownUser {
		t.Fatalf("strategy = %q, want %q", strategy, StrategyKnownUser)
	}

	// predictions: item 1 = 4.7, item 3 = 4.0, item 2 = 3.4
	wantOrder := []string{"1", "3", "2"}
	if len(scored) != len(wantOrder) {
		t.Fatalf("got %d items, want %d", len(scored), len(wantOrder))
	}
	for i, want := range wantOrder {
		if scored[i].DestinationID != want {
			t.Errorf("position %d = %q, want %q", i, scored[i].DestinationID, want)
		}
	}
	if scored[0].Score != 4.7 {
		t.Errorf("top score = %v, want 4.7", scored[0].Score)
	}
}

func TestRecommend_KnownUserExcludesRated(t *testing.T) {
	interactions := &fakeInteractions{
		count: 3,
		rated: map[string]struct{}{"1": {}},
	}
	svc := NewService(testArtifact(), &fakeCatalog{refs: testRefs()}, interactions)

	_, scored, err := svc.Recommend(context.Background(), "alice", nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, sd := range scored {
		if sd.DestinationID == "1" {
			t.Fatal("already-rated destination appeared in results")
		}
	}
}

func TestRecommend_ColdStartWhenHistoryTooShort(t *testing.T) {
	svc := NewService(testArtifact(), &fakeCatalog{refs: testRefs()}, &fakeInteractions{count: 2})

	strategy, scored, err := svc.Recommend(context.Background(), "alice", []int64{1}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != StrategyColdStart {
		t.Fatalf("strategy = %q, want %q", strategy, StrategyColdStart)
	}

	// candidates restricted to category 1: items 1 and 3
	if len(scored) != 2 {
		t.Fatalf("got %d items, want 2", len(scored))
	}
	// pseudo vector = mean(qi1, qi3) = [0.75, 0.25]
	// item 1 = 3 + 0.2 + 0.75 = 3.95, item 3 = 3 + 0 + 0.5 = 3.5
	if scored[0].DestinationID != "1" || scored[1].DestinationID != "3" {
		t.Errorf("order = [%s, %s], want [1, 3]", scored[0].DestinationID, scored[1].DestinationID)
	}
	if scored[0].Score != 3.95 {
		t.Errorf("top score = %v, want 3.95", scored[0].Score)
	}
}

func TestRecommend_AnonymousColdStart(t *testing.T) {
	svc := NewService(testArtifact(), &fakeCatalog{refs: testRefs()}, &fakeInteractions{})

	strategy, scored, err := svc.Recommend(context.Background(), "", []int64{1, 2}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != StrategyColdStart {
		t.Fatalf("strategy = %q, want %q", strategy, StrategyColdStart)
	}
	if len(scored) != 3 {
		t.Fatalf("got %d items, want 3", len(scored))
	}
}

func TestRecommend_FallbackWithoutModel(t *testing.T) {
	svc := NewService(nil, &fakeCatalog{refs: testRefs()}, &fakeInteractions{count: 100})

	strategy, scored, err := svc.Recommend(context.Background(), "alice", nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != StrategyFallback {
		t.Fatalf("strategy = %q, want %q", strategy, StrategyFallback)
	}
	if len(scored) != 3 {
		t.Fatalf("got %d items, want 3", len(scored))
	}
	if scored[0].Score != 10.0 || scored[1].Score != 9.95 {
		t.Errorf("scores = [%v, %v], want [10, 9.95]", scored[0].Score, scored[1].Score)
	}
}

func TestRecommend_FallbackWithoutPreferencesOrHistory(t *testing.T) {
	svc := NewService(testArtifact(), &fakeCatalog{refs: testRefs()}, &fakeInteractions{count: 0})

	strategy, _, err := svc.Recommend(context.Background(), "alice", nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != StrategyFallback {
		t.Fatalf("strategy = %q, want %q", strategy, StrategyFallback)
	}
}

func TestRecommend_KnownUserEmptyFallsThrough(t *testing.T) {
	// a heavy rater who has covered every model-known candidate yields an
	// empty known-user result and falls to the next branch
	interactions := &fakeInteractions{
		count: 10,
		rated: map[string]struct{}{"1": {}, "2": {}, "3": {}},
	}

	svc := NewService(testArtifact(), &fakeCatalog{refs: testRefs()}, interactions)
	strategy, scored, err := svc.Recommend(context.Background(), "alice", []int64{1}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != StrategyColdStart {
		t.Fatalf("strategy = %q, want %q after empty known-user result", strategy, StrategyColdStart)
	}
	if len(scored) == 0 {
		t.Fatal("cold-start branch returned no items")
	}

	// without declared categories the same user lands on the fallback
	svc = NewService(testArtifact(), &fakeCatalog{refs: testRefs()}, interactions)
	strategy, _, err = svc.Recommend(context.Background(), "alice", nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != StrategyFallback {
		t.Fatalf("strategy = %q, want %q after empty known-user result", strategy, StrategyFallback)
	}
}

func TestRecommend_ColdStartFallsThroughOnUnknownCategories(t *testing.T) {
	// category 99 has no snapshot items, so no pseudo-user is representable
	svc := NewService(testArtifact(), &fakeCatalog{refs: testRefs()}, &fakeInteractions{count: 0})

	strategy, _, err := svc.Recommend(context.Background(), "", []int64{99}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != StrategyFallback {
		t.Fatalf("strategy = %q, want %q", strategy, StrategyFallback)
	}
}

func TestRecommend_InteractionFailureDegradesToColdStart(t *testing.T) {
	interactions := &fakeInteractions{err: errors.New("connection refused")}
	svc := NewService(testArtifact(), &fakeCatalog{refs: testRefs()}, interactions)

	strategy, _, err := svc.Recommend(context.Background(), "alice", []int64{1}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != StrategyColdStart {
		t.Fatalf("strategy = %q, want %q", strategy, StrategyColdStart)
	}
}

func TestRecommend_CatalogFailureUsesSnapshot(t *testing.T) {
	svc := NewService(testArtifact(), &fakeCatalog{err: errors.New("db down")}, &fakeInteractions{count: 5})

	strategy, scored, err := svc.Recommend(context.Background(), "alice", nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != StrategyKnownUser {
		t.Fatalf("strategy = %q, want %q", strategy, StrategyKnownUser)
	}
	if len(scored) != 3 {
		t.Fatalf("got %d items from snapshot, want 3", len(scored))
	}
}

func TestRecommend_NoModelNoCatalog(t *testing.T) {
	svc := NewService(nil, &fakeCatalog{err: errors.New("db down")}, &fakeInteractions{})

	strategy, scored, err := svc.Recommend(context.Background(), "", nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != StrategyFallback {
		t.Fatalf("strategy = %q, want %q", strategy, StrategyFallback)
	}
	if len(scored) != 0 {
		t.Fatalf("got %d items, want 0", len(scored))
	}
}

func TestRecommend_Truncation(t *testing.T) {
	svc := NewService(testArtifact(), &fakeCatalog{refs: testRefs()}, &fakeInteractions{count: 5})

	_, scored, err := svc.Recommend(context.Background(), "alice", nil, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scored) != 2 {
		t.Fatalf("got %d items, want 2", len(scored))
	}
}

func TestRecommend_DefaultLimit(t *testing.T) {
	refs := make([]domain.DestinationRef, 0, 30)
	for i := 1; i <= 30; i++ {
		refs = append(refs, domain.DestinationRef{ID: fmt.Sprintf("%d", i), CategoryID: 1})
	}
	svc := NewService(nil, &fakeCatalog{refs: refs}, nil)

	_, scored, err := svc.Recommend(context.Background(), "", nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scored) != 10 {
		t.Fatalf("got %d items with limit 0, want the default 10", len(scored))
	}
}

func TestRecommend_ReturnAllThreshold(t *testing.T) {
	refs := make([]domain.DestinationRef, 0, 250)
	for i := 1; i <= 250; i++ {
		refs = append(refs, domain.DestinationRef{ID: fmt.Sprintf("%d", i), CategoryID: 1})
	}
	svc := NewService(nil, &fakeCatalog{refs: refs}, nil)

	_, scored, err := svc.Recommend(context.Background(), "", nil, ReturnAllThreshold)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scored) != 250 {
		t.Fatalf("got %d items, want all 250", len(scored))
	}

	seen := make(map[string]struct{}, len(scored))
	for _, sd := range scored {
		if _, dup := seen[sd.DestinationID]; dup {
			t.Fatalf("duplicate destination %s in results", sd.DestinationID)
		}
		seen[sd.DestinationID] = struct{}{}
	}
}

func TestRecommend_NegativeLimit(t *testing.T) {
	svc := NewService(testArtifact(), &fakeCatalog{refs: testRefs()}, &fakeInteractions{})

	_, _, err := svc.Recommend(context.Background(), "alice", nil, -1)
	if err == nil {
		t.Fatal("expected error for negative limit")
	}
}

func TestRecommend_InvalidCategoryID(t *testing.T) {
	svc := NewService(testArtifact(), &fakeCatalog{refs: testRefs()}, &fakeInteractions{})

	_, _, err := svc.Recommend(context.Background(), "alice", []int64{1, 0}, 10)
	if err == nil {
		t.Fatal("expected error for non-positive category id")
	}
	_, _, err = svc.Recommend(context.Background(), "alice", []int64{-4}, 10)
	if err == nil {
		t.Fatal("expected error for negative category id")
	}
}

func TestRecommend_CancelledContext(t *testing.T) {
	svc := NewService(testArtifact(), &fakeCatalog{refs: testRefs()}, &fakeInteractions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := svc.Recommend(ctx, "alice", nil, 10)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	svc := NewService(testArtifact(), &fakeCatalog{refs: testRefs()}, &fakeInteractions{count: 5})

	_, first, err := svc.Recommend(context.Background(), "alice", nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 5; i++ {
		_, again, err := svc.Recommend(context.Background(), "alice", nil, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: length %d, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: position %d = %+v, want %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestRecommend_CustomThreshold(t *testing.T) {
	svc := NewService(testArtifact(), &fakeCatalog{refs: testRefs()}, &fakeInteractions{count: 4})
	svc.SetMinInteractions(5)

	strategy, _, err := svc.Recommend(context.Background(), "alice", []int64{1}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != StrategyColdStart {
		t.Fatalf("strategy = %q, want %q below the raised threshold", strategy, StrategyColdStart)
	}

	svc.SetMinInteractions(4)
	strategy, _, err = svc.Recommend(context.Background(), "alice", []int64{1}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != StrategyKnownUser {
		t.Fatalf("strategy = %q, want %q at the threshold", strategy, StrategyKnownUser)
	}
}

func TestModelAvailable(t *testing.T) {
	if NewService(nil, nil, nil).ModelAvailable() {
		t.Error("ModelAvailable() = true with nil artifact")
	}
	if !NewService(testArtifact(), nil, nil).ModelAvailable() {
		t.Error("ModelAvailable() = false with loaded artifact")
	}
}
