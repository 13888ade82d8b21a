package progress

import (
	"encoding/json"
	"sort"
	"time"
)

// SnapshotKey is the fixed storage key the serialized aggregate lives
// under in the persistence adapter.
const SnapshotKey = "dsa_progress"

// Snapshot is the persisted wire shape. Sets flatten to sorted lists and
// times serialize as RFC 3339 strings; every field is optional on load.
type Snapshot struct {
	CompletedTopics    []string              `json:"completedTopics"`
	CompletedSubtopics []string              `json:"completedSubtopics"`
	CompletedProblems  []string              `json:"completedProblems"`
	CurrentStreak      int                   `json:"currentStreak"`
	TotalHoursSpent    float64               `json:"totalHoursSpent"`
	LastStudyDate      string                `json:"lastStudyDate"`
	TotalPoints        int                   `json:"totalPoints"`
	Level              int                   `json:"level"`
	Badges             []string              `json:"badges"`
	Achievements       []SnapshotAchievement `json:"achievements"`
}

type SnapshotAchievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	UnlockedAt  string `json:"unlockedAt"`
	Points      int    `json:"points"`
}

func EncodeSnapshot(p UserProgress) ([]byte, error) {
	snap := Snapshot{
		CompletedTopics:    sortedKeys(p.CompletedTopics),
		CompletedSubtopics: sortedKeys(p.CompletedSubtopics),
		CompletedProblems:  sortedKeys(p.CompletedProblems),
		CurrentStreak:      p.CurrentStreak,
		TotalHoursSpent:    p.TotalHoursSpent,
		LastStudyDate:      p.LastStudyDate.UTC().Format(time.RFC3339),
		TotalPoints:        p.TotalPoints,
		Level:              p.Level,
		Badges:             append([]string{}, p.Badges...),
		Achievements:       make([]SnapshotAchievement, 0, len(p.Achievements)),
	}
	for _, a := range p.Achievements {
		snap.Achievements = append(snap.Achievements, SnapshotAchievement{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			UnlockedAt:  a.UnlockedAt.UTC().Format(time.RFC3339),
			Points:      a.Points,
		})
	}
	return json.Marshal(snap)
}

// DecodeSnapshot parses a persisted snapshot. Missing fields fall back to
// zero-value defaults; a malformed blob returns an error so the caller
// can substitute a fresh aggregate.
func DecodeSnapshot(body []byte, now time.Time) (UserProgress, error) {
	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return UserProgress{}, err
	}

	p := NewUserProgress(now)
	for _, id := range snap.CompletedTopics {
		p.CompletedTopics[id] = struct{}{}
	}
	for _, id := range snap.CompletedSubtopics {
		p.CompletedSubtopics[id] = struct{}{}
	}
	for _, id := range snap.CompletedProblems {
		p.CompletedProblems[id] = struct{}{}
	}
	p.CurrentStreak = snap.CurrentStreak
	p.TotalHoursSpent = snap.TotalHoursSpent
	p.TotalPoints = snap.TotalPoints
	p.Level = levelFor(snap.TotalPoints)
	if len(snap.Badges) > 0 {
		p.Badges = append([]string{}, snap.Badges...)
	}
	if t, err := time.Parse(time.RFC3339, snap.LastStudyDate); err == nil {
		p.LastStudyDate = t
	}
	for _, a := range snap.Achievements {
		unlocked := now
		if t, err := time.Parse(time.RFC3339, a.UnlockedAt); err == nil {
			unlocked = t
		}
		p.Achievements = append(p.Achievements, Achievement{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			UnlockedAt:  unlocked,
			Points:      a.Points,
		})
	}
	return p, nil
}

func sortedKeys(s map[string]struct{}) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
