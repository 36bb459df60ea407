package recommender

import (
	"os"
	"path/filepath"
	"testing"
)

const validArtifactJSON = `{
	"version": "2026-01-15",
	"factors": 2,
	"global_mean": 3.4,
	"rating_min": 1,
	"rating_max": 5,
	"user_ids": ["u1", "u2"],
	"item_ids": ["10", "11", "12"],
	"bu": [0.1, -0.2],
	"bi": [0.3, 0.0, -0.1],
	"pu": [[0.5, 0.5], [-0.5, 0.5]],
	"qi": [[1, 0], [0, 1], [0.5, 0.5]],
	"items": [
		{"destination_id": "10", "category_id": 1},
		{"destination_id": "11", "category_id": 2},
		{"destination_id": "12", "category_id": 1}
	]
}`

func writeArtifact(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func TestLoadArtifact_Valid(t *testing.T) {
	m, err := LoadArtifact(writeArtifact(t, validArtifactJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Version != "2026-01-15" {
		t.Errorf("Version = %q", m.Version)
	}
	if m.Factors != 2 || m.GlobalMean != 3.4 {
		t.Errorf("Factors = %d, GlobalMean = %v", m.Factors, m.GlobalMean)
	}
	if !m.KnownItem("11") {
		t.Error("item 11 should be known")
	}
	if m.KnownItem("99") {
		t.Error("item 99 should be unknown")
	}
	if len(m.Snapshot(nil)) != 3 {
		t.Errorf("snapshot size = %d, want 3", len(m.Snapshot(nil)))
	}

	bi, ok := m.ItemBias("10")
	if !ok || bi != 0.3 {
		t.Errorf("ItemBias(10) = %v, %v", bi, ok)
	}
}

func TestLoadArtifact_MissingFile(t *testing.T) {
	_, err := LoadArtifact(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadArtifact_CorruptJSON(t *testing.T) {
	_, err := LoadArtifact(writeArtifact(t, "{not json"))
	if err == nil {
		t.Fatal("expected error for corrupt payload")
	}
}

func TestLoadArtifact_Invalid(t *testing.T) {
	cases := []struct {
		name     string
		contents string
	}{
		{
			"zero factors",
			`{"factors": 0, "rating_min": 1, "rating_max": 5}`,
		},
		{
			"empty rating scale",
			`{"factors": 2, "rating_min": 5, "rating_max": 5}`,
		},
		{
			"user bias count mismatch",
			`{"factors": 1, "rating_min": 1, "rating_max": 5,
			  "user_ids": ["u1"], "bu": [], "pu": [[0.1]],
			  "item_ids": [], "bi": [], "qi": []}`,
		},
		{
			"item vector dimension mismatch",
			`{"factors": 2, "rating_min": 1, "rating_max": 5,
			  "user_ids": [], "bu": [], "pu": [],
			  "item_ids": ["10"], "bi": [0.1], "qi": [[0.5]]}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadArtifact(writeArtifact(t, tc.contents)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
