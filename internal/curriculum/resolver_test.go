package curriculum

import "testing"

func set(ids ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func resolverCatalog() Catalog {
	return Catalog{
		Kind: CatalogKind, SchemaVersion: 1, CatalogID: "test", Name: "Test",
		Topics: []Topic{
			{ID: "arrays", Title: "Arrays", Tier: TierFoundation, EstimatedHours: 6,
				Subtopics: []Topic{
					{ID: "two-pointers", Title: "Two Pointers", EstimatedHours: 2},
					{ID: "sliding-window", Title: "Sliding Window", EstimatedHours: 2, Prerequisites: []string{"two-pointers"}},
				}},
			{ID: "strings", Title: "Strings", Tier: TierFoundation, EstimatedHours: 4},
			{ID: "linked-lists", Title: "Linked Lists", Tier: TierLinear, EstimatedHours: 5, Prerequisites: []string{"arrays"}},
			{ID: "trees", Title: "Trees", Tier: TierNonLinear, EstimatedHours: 8, Prerequisites: []string{"linked-lists"}},
		},
	}
}

func TestTopicWithNoPrereqsIsUnlocked(t *testing.T) {
	c := resolverCatalog()
	topic, _ := c.FindTopic("arrays")
	if !IsTopicUnlocked(topic, set()) {
		t.Fatalf("prereq-free topic must be unlocked from the start")
	}
}

func TestTopicUnlocksOnlyWhenAllPrereqsComplete(t *testing.T) {
	c := resolverCatalog()
	topic, _ := c.FindTopic("linked-lists")
	if IsTopicUnlocked(topic, set()) {
		t.Fatalf("expected locked with no completions")
	}
	if !IsTopicUnlocked(topic, set("arrays")) {
		t.Fatalf("expected unlocked once arrays completes")
	}
}

func TestSubtopicNeedsParentAndSiblingPrereqs(t *testing.T) {
	c := resolverCatalog()
	parent, _ := c.FindTopic("arrays")
	_, sliding, ok := c.FindSubtopic("sliding-window")
	if !ok {
		t.Fatalf("subtopic lookup failed")
	}

	if IsSubtopicUnlocked(parent, sliding, set(), set()) {
		t.Fatalf("expected locked without parent completion")
	}
	if IsSubtopicUnlocked(parent, sliding, set("arrays"), set()) {
		t.Fatalf("expected locked without sibling prereq")
	}
	if !IsSubtopicUnlocked(parent, sliding, set("arrays"), set("two-pointers")) {
		t.Fatalf("expected unlocked with parent and sibling complete")
	}
}

func TestSubtopicPrereqSatisfiedByCompletedTopics(t *testing.T) {
	c := resolverCatalog()
	parent, _ := c.FindTopic("arrays")
	sub := parent.Subtopics[1]
	sub.Prerequisites = []string{"arrays"}
	if !IsSubtopicUnlocked(parent, sub, set("arrays"), set()) {
		t.Fatalf("a prereq naming the parent topic counts as satisfied")
	}
}

func TestNextRecommendedSkipsCompletedAndLocked(t *testing.T) {
	c := resolverCatalog()
	rec := c.NextRecommended(set("arrays"))

	for _, id := range rec {
		if id == "arrays" {
			t.Fatalf("completed topic must not be recommended")
		}
		if id == "trees" {
			t.Fatalf("locked topic must not be recommended")
		}
	}
	found := map[string]bool{}
	for _, id := range rec {
		found[id] = true
	}
	if !found["strings"] || !found["linked-lists"] {
		t.Fatalf("expected strings and linked-lists, got %v", rec)
	}
}

func TestTierProgressPercentAndUnlockChain(t *testing.T) {
	c := resolverCatalog()
	tiers := c.TierProgress(set("arrays"))

	byTier := map[string]TierProgress{}
	for _, tp := range tiers {
		byTier[tp.Tier] = tp
	}

	f := byTier[TierFoundation]
	if !f.Unlocked || f.Percentage != 50 || f.CompletedTopics != 1 || f.TotalTopics != 2 {
		t.Fatalf("unexpected foundation progress: %+v", f)
	}
	if byTier[TierLinear].Unlocked {
		t.Fatalf("linear must stay locked until foundation completes")
	}

	tiers = c.TierProgress(set("arrays", "strings"))
	byTier = map[string]TierProgress{}
	for _, tp := range tiers {
		byTier[tp.Tier] = tp
	}
	if !byTier[TierLinear].Unlocked {
		t.Fatalf("linear should unlock after full foundation")
	}
	if byTier[TierNonLinear].Unlocked {
		t.Fatalf("non-linear requires the linear tier complete")
	}
}

func TestTierProgressEmptyTierReportsZeroPercent(t *testing.T) {
	c := resolverCatalog()
	tiers := c.TierProgress(set())
	for _, tp := range tiers {
		if tp.TotalTopics == 0 && tp.Percentage != 0 {
			t.Fatalf("empty tier %q must report 0%%, got %d", tp.Tier, tp.Percentage)
		}
	}
}

func TestTierProgressRoundsPercentage(t *testing.T) {
	c := Catalog{
		Kind: CatalogKind, SchemaVersion: 1, CatalogID: "t", Name: "T",
		Topics: []Topic{
			{ID: "a", Title: "A", Tier: TierFoundation, EstimatedHours: 1},
			{ID: "b", Title: "B", Tier: TierFoundation, EstimatedHours: 1},
			{ID: "c", Title: "C", Tier: TierFoundation, EstimatedHours: 1},
		},
	}
	tiers := c.TierProgress(set("a"))
	if tiers[0].Percentage != 33 {
		t.Fatalf("expected 1/3 to round to 33, got %d", tiers[0].Percentage)
	}
	tiers = c.TierProgress(set("a", "b"))
	if tiers[0].Percentage != 67 {
		t.Fatalf("expected 2/3 to round to 67, got %d", tiers[0].Percentage)
	}
}

func TestCatalogTotals(t *testing.T) {
	c := resolverCatalog()
	if got := c.TotalTopics(); got != 4 {
		t.Fatalf("topics: got %d", got)
	}
	if got := c.TotalEstimatedHours(); got != 23 {
		t.Fatalf("hours: got %v", got)
	}
}
