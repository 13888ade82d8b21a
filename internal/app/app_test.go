package app

import (
	"context"
	"testing"
	"time"

	"dsadojo/internal/curriculum"
	"dsadojo/internal/progress"
)

func testCatalog() curriculum.Catalog {
	return curriculum.Catalog{
		Kind:          "catalog",
		SchemaVersion: 1,
		CatalogID:     "test",
		Name:          "Test Roadmap",
		Topics: []curriculum.Topic{
			{
				ID: "arrays", Title: "Arrays", Tier: curriculum.TierFoundation,
				EstimatedHours: 6, Difficulty: "beginner", Points: 100,
				Problems: []curriculum.PracticeProblem{
					{Title: "Two Sum", Difficulty: "easy", Points: 10},
					{Title: "Rotate Array", Difficulty: "medium", Points: 25},
				},
				Subtopics: []curriculum.Topic{
					{ID: "two-pointers", Title: "Two Pointers", Tier: curriculum.TierFoundation, Points: 50},
				},
			},
			{
				ID: "strings", Title: "Strings", Tier: curriculum.TierFoundation,
				EstimatedHours: 4, Difficulty: "beginner", Points: 100,
			},
			{
				ID: "linked-lists", Title: "Linked Lists", Tier: curriculum.TierLinear,
				EstimatedHours: 5, Difficulty: "intermediate", Points: 100,
				Prerequisites: []string{"arrays"},
			},
		},
	}
}

func testApp(t *testing.T) *App {
	t.Helper()
	tracker := progress.NewTracker(context.Background(), progress.TrackerOptions{
		Now: func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) },
	})
	return &App{
		cfg:     DefaultConfig(),
		tracker: tracker,
		catalog: testCatalog(),
	}
}

func TestRoadmapStateLocksAndRecommends(t *testing.T) {
	a := testApp(t)
	rs := a.roadmapState()

	if rs.CatalogName != "Test Roadmap" {
		t.Fatalf("unexpected catalog name %q", rs.CatalogName)
	}
	if len(rs.Tiers) != 2 {
		t.Fatalf("expected 2 populated tiers, got %d", len(rs.Tiers))
	}
	foundation := rs.Tiers[0]
	if !foundation.Unlocked {
		t.Fatalf("foundation tier must start unlocked")
	}
	linear := rs.Tiers[1]
	if linear.Unlocked {
		t.Fatalf("linear tier must be locked until foundation is complete")
	}
	if linear.Topics[0].Unlocked {
		t.Fatalf("linked-lists must be locked behind arrays")
	}

	found := false
	for _, id := range rs.Recommended {
		if id == "arrays" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected arrays among recommendations, got %v", rs.Recommended)
	}
}

func TestRoadmapStateReflectsCompletion(t *testing.T) {
	a := testApp(t)
	a.tracker.ToggleTopic(context.Background(), "arrays")
	a.tracker.ToggleProblem(context.Background(), curriculum.ProblemKey("arrays", "Two Sum"), 10)

	rs := a.roadmapState()
	arrays := rs.Tiers[0].Topics[0]
	if !arrays.Completed {
		t.Fatalf("expected arrays completed")
	}
	if arrays.ProblemsDone != 1 || arrays.ProblemsTotal != 2 {
		t.Fatalf("expected 1/2 problems, got %d/%d", arrays.ProblemsDone, arrays.ProblemsTotal)
	}
	if rs.Header.TotalPoints != 160 {
		t.Fatalf("expected 160 points (topic+problem+first achievement), got %d", rs.Header.TotalPoints)
	}

	linear := rs.Tiers[1]
	if !linear.Topics[0].Unlocked {
		t.Fatalf("linked-lists should unlock once arrays is complete")
	}
}

func TestDetailStateSubtopicGate(t *testing.T) {
	a := testApp(t)
	topic, _ := a.catalog.FindTopic("arrays")

	ds := a.detailState(topic)
	if len(ds.Subtopics) != 1 || ds.Subtopics[0].Unlocked {
		t.Fatalf("subtopic must stay locked until the parent topic is complete")
	}

	a.tracker.ToggleTopic(context.Background(), "arrays")
	ds = a.detailState(topic)
	if !ds.Subtopics[0].Unlocked {
		t.Fatalf("subtopic should unlock with the parent topic complete")
	}
	if ds.Problems[1].Points != 25 {
		t.Fatalf("expected medium problem worth 25, got %d", ds.Problems[1].Points)
	}
}

func TestStatsStateTotals(t *testing.T) {
	a := testApp(t)
	a.tracker.ToggleTopic(context.Background(), "arrays")

	ss := a.statsState()
	if ss.CompletedTopics != 1 || ss.TotalTopics != 3 {
		t.Fatalf("expected 1/3 topics, got %d/%d", ss.CompletedTopics, ss.TotalTopics)
	}
	if ss.HoursDone != 6 {
		t.Fatalf("expected 6 hours done, got %v", ss.HoursDone)
	}
	if ss.PointsIntoLevel != 150 {
		t.Fatalf("expected 150 points into level, got %d", ss.PointsIntoLevel)
	}
	if len(ss.Achievements) != 1 || ss.Achievements[0].ID != "first-topic" {
		t.Fatalf("expected first-topic achievement row, got %#v", ss.Achievements)
	}
	if len(ss.Tiers) != 2 {
		t.Fatalf("expected tiers with topics only, got %d", len(ss.Tiers))
	}
}

func TestConfigValidateDefaults(t *testing.T) {
	cfg := Config{DataDir: t.TempDir()}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.UI.StyleVariant != "roadmap_dark" || cfg.UI.MotionLevel != "full" {
		t.Fatalf("unexpected UI defaults: %#v", cfg.UI)
	}
	if cfg.CatalogDir != "catalog" {
		t.Fatalf("unexpected catalog dir %q", cfg.CatalogDir)
	}
}

func TestConfigValidateRejectsUnknownVariant(t *testing.T) {
	cfg := Config{DataDir: t.TempDir(), UI: UIConfig{StyleVariant: "vaporwave"}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown style variant")
	}
}
