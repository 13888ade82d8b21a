package ui

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

type mockController struct {
	selected      []string
	toggledTopics []string
	toggledSubs   []string
	problems      []string
	resetCalls    int
	dismissCalls  int
	statsCalls    int
	backCalls     int
	quitCalls     int
}

func (m *mockController) OnSelectTopic(id string)    { m.selected = append(m.selected, id) }
func (m *mockController) OnToggleTopic(id string)    { m.toggledTopics = append(m.toggledTopics, id) }
func (m *mockController) OnToggleSubtopic(id string) { m.toggledSubs = append(m.toggledSubs, id) }
func (m *mockController) OnToggleProblem(topicID, title string, points int) {
	m.problems = append(m.problems, topicID+"/"+title)
}
func (m *mockController) OnResetProgress()      { m.resetCalls++ }
func (m *mockController) OnDismissAchievement() { m.dismissCalls++ }
func (m *mockController) OnOpenStats()          { m.statsCalls++ }
func (m *mockController) OnBackToRoadmap()      { m.backCalls++ }
func (m *mockController) OnQuit()               { m.quitCalls++ }

func press(v *Root, code rune, mod tea.KeyMod, text string) {
	_, _ = v.Update(tea.KeyPressMsg{Code: code, Mod: mod, Text: text})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(300 * time.Millisecond)
	for !cond() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !cond() {
		t.Fatalf("condition not met within deadline")
	}
}

func testRoadmap() RoadmapState {
	return RoadmapState{
		CatalogName: "DSA Roadmap",
		Header:      HeaderStats{Level: 2, TotalPoints: 1350, Streak: 4},
		Tiers: []TierSection{
			{
				Tier: "foundation", Label: "Foundation", Unlocked: true,
				CompletedTopics: 1, TotalTopics: 2, Percentage: 50,
				Topics: []TopicRow{
					{ID: "arrays", Title: "Arrays", Completed: true, Unlocked: true},
					{ID: "strings", Title: "Strings", Unlocked: true, Recommended: true},
				},
			},
			{
				Tier: "linear", Label: "Linear Structures", Unlocked: false,
				TotalTopics: 1,
				Topics: []TopicRow{
					{ID: "linked-lists", Title: "Linked Lists", Prerequisites: []string{"arrays"}},
				},
			},
		},
	}
}

func TestRoadmapEnterSelectsTopicUnderCursor(t *testing.T) {
	v := New(Options{ASCIIOnly: true})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetRoadmap(testRoadmap())

	press(v, tea.KeyDown, 0, "")
	press(v, tea.KeyEnter, 0, "")

	waitFor(t, func() bool { return len(ctrl.selected) == 1 })
	if ctrl.selected[0] != "strings" {
		t.Fatalf("expected strings selected, got %q", ctrl.selected[0])
	}
}

func TestRoadmapLockedTopicDoesNotToggle(t *testing.T) {
	v := New(Options{ASCIIOnly: true})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetRoadmap(testRoadmap())

	press(v, tea.KeyDown, 0, "")
	press(v, tea.KeyDown, 0, "")
	press(v, ' ', 0, " ")

	time.Sleep(50 * time.Millisecond)
	if len(ctrl.toggledTopics) != 0 {
		t.Fatalf("expected no toggle for locked topic, got %v", ctrl.toggledTopics)
	}
	if v.statusFlash == "" {
		t.Fatalf("expected a status flash explaining the lock")
	}
}

func TestRoadmapSpaceTogglesUnlockedTopic(t *testing.T) {
	v := New(Options{ASCIIOnly: true})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetRoadmap(testRoadmap())

	press(v, ' ', 0, " ")

	waitFor(t, func() bool { return len(ctrl.toggledTopics) == 1 })
	if ctrl.toggledTopics[0] != "arrays" {
		t.Fatalf("expected arrays toggled, got %q", ctrl.toggledTopics[0])
	}
}

func TestResetKeyOpensConfirmWithoutImmediateReset(t *testing.T) {
	v := New(Options{ASCIIOnly: true})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetRoadmap(testRoadmap())

	press(v, 'r', 0, "r")

	time.Sleep(50 * time.Millisecond)
	if ctrl.resetCalls != 0 {
		t.Fatalf("expected no immediate reset call")
	}
	if !v.resetOpen {
		t.Fatalf("expected reset confirm modal to be open")
	}
}

func TestResetConfirmDefaultsToKeep(t *testing.T) {
	v := New(Options{ASCIIOnly: true})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetRoadmap(testRoadmap())

	press(v, 'r', 0, "r")
	press(v, tea.KeyEnter, 0, "")

	time.Sleep(50 * time.Millisecond)
	if ctrl.resetCalls != 0 {
		t.Fatalf("expected keep to be the default choice")
	}
	if v.resetOpen {
		t.Fatalf("expected modal to close after choosing")
	}
}

func TestResetConfirmAcceptFiresReset(t *testing.T) {
	v := New(Options{ASCIIOnly: true})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetRoadmap(testRoadmap())

	press(v, 'r', 0, "r")
	press(v, tea.KeyTab, 0, "")
	press(v, tea.KeyEnter, 0, "")

	waitFor(t, func() bool { return ctrl.resetCalls == 1 })
}

func TestToastEnterDismisses(t *testing.T) {
	v := New(Options{ASCIIOnly: true})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetToast(ToastState{Visible: true, Title: "First Steps", Points: 50})

	press(v, tea.KeyEnter, 0, "")

	waitFor(t, func() bool { return ctrl.dismissCalls == 1 })
	if v.toast.Visible {
		t.Fatalf("expected toast hidden after dismissal")
	}
}

func TestTopicDetailTogglesSubtopicAndProblem(t *testing.T) {
	v := New(Options{ASCIIOnly: true})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetScreen(ScreenTopic)
	v.SetTopicDetail(DetailState{
		TopicID: "arrays", Title: "Arrays", Unlocked: true,
		Subtopics: []SubtopicRow{{ID: "two-pointers", Title: "Two Pointers", Unlocked: true}},
		Problems:  []ProblemRow{{Title: "Two Sum", Difficulty: "easy", Points: 10}},
	})

	press(v, tea.KeyDown, 0, "")
	press(v, ' ', 0, " ")
	waitFor(t, func() bool { return len(ctrl.toggledSubs) == 1 })
	if ctrl.toggledSubs[0] != "two-pointers" {
		t.Fatalf("expected two-pointers toggled, got %q", ctrl.toggledSubs[0])
	}

	press(v, tea.KeyDown, 0, "")
	press(v, ' ', 0, " ")
	waitFor(t, func() bool { return len(ctrl.problems) == 1 })
	if ctrl.problems[0] != "arrays/Two Sum" {
		t.Fatalf("expected arrays/Two Sum toggled, got %q", ctrl.problems[0])
	}
}

func TestLockedSubtopicDoesNotToggle(t *testing.T) {
	v := New(Options{ASCIIOnly: true})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetScreen(ScreenTopic)
	v.SetTopicDetail(DetailState{
		TopicID: "arrays", Title: "Arrays", Unlocked: true,
		Subtopics: []SubtopicRow{{ID: "sliding-window", Title: "Sliding Window", Unlocked: false}},
	})

	press(v, tea.KeyDown, 0, "")
	press(v, ' ', 0, " ")

	time.Sleep(50 * time.Millisecond)
	if len(ctrl.toggledSubs) != 0 {
		t.Fatalf("expected locked subtopic to stay untouched")
	}
}

func TestStatsKeyRoundTrip(t *testing.T) {
	v := New(Options{ASCIIOnly: true})
	ctrl := &mockController{}
	v.SetController(ctrl)
	v.SetRoadmap(testRoadmap())

	press(v, 's', 0, "s")
	waitFor(t, func() bool { return ctrl.statsCalls == 1 })

	v.SetScreen(ScreenStats)
	press(v, tea.KeyEsc, 0, "")
	waitFor(t, func() bool { return ctrl.backCalls == 1 })
}

func TestRoadmapFrameListsTopics(t *testing.T) {
	v := New(Options{ASCIIOnly: true})
	v.SetRoadmap(testRoadmap())
	_, _ = v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	frame := v.renderRoadmap()
	for _, want := range []string{"Arrays", "Strings", "Linked Lists", "Foundation"} {
		if !strings.Contains(frame, want) {
			t.Fatalf("expected frame to contain %q", want)
		}
	}
}

func TestTooSmallGuard(t *testing.T) {
	v := New(Options{ASCIIOnly: true})
	_, _ = v.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if v.layout != LayoutTooSmall {
		t.Fatalf("expected too-small layout for 40x10")
	}
	if !strings.Contains(v.renderTooSmall(), "too small") {
		t.Fatalf("expected too-small notice")
	}
}

func TestTrimForWidth(t *testing.T) {
	if got := trimForWidth("hello world", 5); got != "hell…" {
		t.Fatalf("got %q", got)
	}
	if got := trimForWidth("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := trimForWidth("anything", 0); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatInt(t *testing.T) {
	cases := map[int]string{0: "0", 950: "950", 1350: "1,350", 1234567: "1,234,567", -4200: "-4,200"}
	for in, want := range cases {
		if got := formatInt(in); got != want {
			t.Fatalf("formatInt(%d) = %q, want %q", in, got, want)
		}
	}
}
