package ui

// Controller receives user intents from the view. The view holds no
// progress logic of its own; every toggle goes through here.
type Controller interface {
	OnSelectTopic(topicID string)
	OnToggleTopic(topicID string)
	OnToggleSubtopic(subtopicID string)
	OnToggleProblem(topicID, title string, points int)
	OnResetProgress()
	OnDismissAchievement()
	OnOpenStats()
	OnBackToRoadmap()
	OnQuit()
}

type View interface {
	Run() error
	Stop()
	SetController(Controller)
	SetScreen(Screen)
	SetRoadmap(RoadmapState)
	SetTopicDetail(DetailState)
	SetStats(StatsState)
	SetToast(ToastState)
	SetResetConfirmOpen(open bool)
	FlashStatus(msg string)
}

type Screen int

const (
	ScreenRoadmap Screen = iota
	ScreenTopic
	ScreenStats
)

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutCompact
	LayoutTooSmall
)

// HeaderStats is the always-visible gamification strip.
type HeaderStats struct {
	Level       int
	TotalPoints int
	Streak      int
}

type RoadmapState struct {
	CatalogName string
	Header      HeaderStats
	Tiers       []TierSection
	Recommended []string
}

type TierSection struct {
	Tier            string
	Label           string
	Unlocked        bool
	CompletedTopics int
	TotalTopics     int
	Percentage      int
	Topics          []TopicRow
}

type TopicRow struct {
	ID             string
	Title          string
	Tags           []string
	EstimatedHours float64
	Difficulty     string
	Prerequisites  []string
	Completed      bool
	Unlocked       bool
	Recommended    bool
	ProblemsDone   int
	ProblemsTotal  int
	SubtopicCount  int
}

type DetailState struct {
	TopicID         string
	Title           string
	Description     string
	TheoryMD        string
	TimeComplexity  string
	SpaceComplexity string
	EstimatedHours  float64
	Difficulty      string
	Completed       bool
	Unlocked        bool
	Subtopics       []SubtopicRow
	Problems        []ProblemRow
}

type SubtopicRow struct {
	ID            string
	Title         string
	Prerequisites []string
	Completed     bool
	Unlocked      bool
}

type ProblemRow struct {
	Title       string
	Difficulty  string
	Points      int
	LeetcodeNum int
	Description string
	Completed   bool
}

type StatsState struct {
	Header            HeaderStats
	PointsIntoLevel   int
	CompletedTopics   int
	TotalTopics       int
	CompletedProblems int
	TotalProblems     int
	HoursDone         float64
	HoursTotal        float64
	Tiers             []TierBar
	NextUp            []string
	Achievements      []AchievementRow
}

type TierBar struct {
	Label      string
	Completed  int
	Total      int
	Percentage int
	Unlocked   bool
}

type AchievementRow struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Points      int
	UnlockedAt  string
}

// ToastState is the single pending achievement notification. A new
// unlock while one is showing replaces it.
type ToastState struct {
	Visible     bool
	Title       string
	Description string
	Icon        string
	Points      int
}
