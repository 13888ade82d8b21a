package progress

import "time"

// UserProgress is the mutable aggregate owned by the Tracker. Toggles
// replace the whole value rather than mutating in place so achievement
// triggers can compare the previous and next state.
type UserProgress struct {
	CompletedTopics    map[string]struct{}
	CompletedSubtopics map[string]struct{}
	CompletedProblems  map[string]struct{}
	CurrentStreak      int
	TotalHoursSpent    float64
	LastStudyDate      time.Time
	TotalPoints        int
	Level              int
	Badges             []string
	Achievements       []Achievement
}

// Achievement is a one-time bonus. Once unlocked it is never revoked and
// its points are never subtracted.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	UnlockedAt  time.Time
	Points      int
}

const (
	topicPoints    = 100
	subtopicPoints = 50
	pointsPerLevel = 1000
)

// NewUserProgress returns the zero-value aggregate: empty sets, streak 0,
// no points, level 1, lastStudyDate pinned to now.
func NewUserProgress(now time.Time) UserProgress {
	return UserProgress{
		CompletedTopics:    map[string]struct{}{},
		CompletedSubtopics: map[string]struct{}{},
		CompletedProblems:  map[string]struct{}{},
		LastStudyDate:      now,
		Level:              1,
		Badges:             []string{},
		Achievements:       []Achievement{},
	}
}

func (p UserProgress) clone() UserProgress {
	cp := p
	cp.CompletedTopics = cloneSet(p.CompletedTopics)
	cp.CompletedSubtopics = cloneSet(p.CompletedSubtopics)
	cp.CompletedProblems = cloneSet(p.CompletedProblems)
	cp.Badges = append([]string(nil), p.Badges...)
	cp.Achievements = append([]Achievement(nil), p.Achievements...)
	return cp
}

func (p UserProgress) hasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

func cloneSet(s map[string]struct{}) map[string]struct{} {
	cp := make(map[string]struct{}, len(s))
	for k := range s {
		cp[k] = struct{}{}
	}
	return cp
}

// levelFor derives the gamification level from total points in
// 1000-point bands. Floor division keeps the invariant even if points
// were ever transiently negative.
func levelFor(points int) int {
	band := points / pointsPerLevel
	if points < 0 && points%pointsPerLevel != 0 {
		band--
	}
	return band + 1
}
