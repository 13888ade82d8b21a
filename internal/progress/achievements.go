package progress

// FoundationTopicIDs is the fixed set gating the foundation-master
// achievement.
var FoundationTopicIDs = []string{"arrays", "strings", "basic-math"}

type achievementDef struct {
	id          string
	title       string
	description string
	icon        string
	points      int
	triggered   func(prev, next *UserProgress) bool
}

// achievementDefs is evaluated in order; the first newly satisfied entry
// is the one surfaced as the visible notification.
var achievementDefs = []achievementDef{
	{
		id:          "first-topic",
		title:       "Getting Started",
		description: "Completed your first topic!",
		icon:        "target",
		points:      50,
		triggered: func(prev, next *UserProgress) bool {
			return len(next.CompletedTopics) == 1 && len(prev.CompletedTopics) == 0
		},
	},
	{
		id:          "week-streak",
		title:       "Week Warrior",
		description: "Maintained a 7-day learning streak!",
		icon:        "flame",
		points:      100,
		triggered: func(prev, next *UserProgress) bool {
			return next.CurrentStreak >= 7 && prev.CurrentStreak < 7
		},
	},
	{
		id:          "foundation-master",
		title:       "Foundation Master",
		description: "Completed all foundation level topics!",
		icon:        "pillar",
		points:      200,
		triggered: func(prev, next *UserProgress) bool {
			return allCompleted(next.CompletedTopics, FoundationTopicIDs) &&
				!allCompleted(prev.CompletedTopics, FoundationTopicIDs)
		},
	},
	{
		id:          "problem-solver",
		title:       "Problem Solver",
		description: "Solved 10 practice problems!",
		icon:        "puzzle",
		points:      150,
		triggered: func(prev, next *UserProgress) bool {
			return len(next.CompletedProblems) >= 10 && len(prev.CompletedProblems) < 10
		},
	},
}

func allCompleted(set map[string]struct{}, ids []string) bool {
	for _, id := range ids {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
