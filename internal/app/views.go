package app

import (
	"time"

	"dsadojo/internal/curriculum"
	"dsadojo/internal/progress"
	"dsadojo/internal/ui"
)

var tierLabels = map[string]string{
	curriculum.TierFoundation:  "Foundation",
	curriculum.TierLinear:      "Linear Structures",
	curriculum.TierNonLinear:   "Non-Linear Structures",
	curriculum.TierAdvanced:    "Advanced Techniques",
	curriculum.TierSpecialized: "Specialized Topics",
}

func tierLabel(tier string) string {
	if label, ok := tierLabels[tier]; ok {
		return label
	}
	return tier
}

func (a *App) headerStats(p progress.UserProgress) ui.HeaderStats {
	return ui.HeaderStats{
		Level:       p.Level,
		TotalPoints: p.TotalPoints,
		Streak:      p.CurrentStreak,
	}
}

func (a *App) roadmapState() ui.RoadmapState {
	p := a.tracker.Progress()
	tiers := a.catalog.TierProgress(p.CompletedTopics)
	recommended := a.catalog.NextRecommended(p.CompletedTopics)
	recSet := make(map[string]struct{}, len(recommended))
	for _, id := range recommended {
		recSet[id] = struct{}{}
	}

	sections := make([]ui.TierSection, 0, len(tiers))
	for _, tp := range tiers {
		section := ui.TierSection{
			Tier:            tp.Tier,
			Label:           tierLabel(tp.Tier),
			Unlocked:        tp.Unlocked,
			CompletedTopics: tp.CompletedTopics,
			TotalTopics:     tp.TotalTopics,
			Percentage:      tp.Percentage,
		}
		for _, topic := range a.catalog.Topics {
			if topic.Tier != tp.Tier {
				continue
			}
			section.Topics = append(section.Topics, a.topicRow(topic, p, recSet))
		}
		if len(section.Topics) == 0 {
			continue
		}
		sections = append(sections, section)
	}

	return ui.RoadmapState{
		CatalogName: a.catalog.Name,
		Header:      a.headerStats(p),
		Tiers:       sections,
		Recommended: recommended,
	}
}

func (a *App) topicRow(topic curriculum.Topic, p progress.UserProgress, recSet map[string]struct{}) ui.TopicRow {
	_, completed := p.CompletedTopics[topic.ID]
	_, rec := recSet[topic.ID]
	done := 0
	for _, problem := range topic.Problems {
		if _, ok := p.CompletedProblems[curriculum.ProblemKey(topic.ID, problem.Title)]; ok {
			done++
		}
	}
	return ui.TopicRow{
		ID:             topic.ID,
		Title:          topic.Title,
		Tags:           topic.Tags,
		EstimatedHours: topic.EstimatedHours,
		Difficulty:     topic.Difficulty,
		Prerequisites:  topic.Prerequisites,
		Completed:      completed,
		Unlocked:       curriculum.IsTopicUnlocked(topic, p.CompletedTopics),
		Recommended:    rec,
		ProblemsDone:   done,
		ProblemsTotal:  len(topic.Problems),
		SubtopicCount:  len(topic.Subtopics),
	}
}

func (a *App) detailState(topic curriculum.Topic) ui.DetailState {
	p := a.tracker.Progress()
	_, completed := p.CompletedTopics[topic.ID]

	subs := make([]ui.SubtopicRow, 0, len(topic.Subtopics))
	for _, sub := range topic.Subtopics {
		_, subDone := p.CompletedSubtopics[sub.ID]
		subs = append(subs, ui.SubtopicRow{
			ID:            sub.ID,
			Title:         sub.Title,
			Prerequisites: sub.Prerequisites,
			Completed:     subDone,
			Unlocked:      curriculum.IsSubtopicUnlocked(topic, sub, p.CompletedTopics, p.CompletedSubtopics),
		})
	}

	problems := make([]ui.ProblemRow, 0, len(topic.Problems))
	for _, problem := range topic.Problems {
		_, probDone := p.CompletedProblems[curriculum.ProblemKey(topic.ID, problem.Title)]
		problems = append(problems, ui.ProblemRow{
			Title:       problem.Title,
			Difficulty:  problem.Difficulty,
			Points:      curriculum.ProblemPoints(problem.Difficulty, problem.Points),
			LeetcodeNum: problem.LeetcodeNum,
			Description: problem.Description,
			Completed:   probDone,
		})
	}

	return ui.DetailState{
		TopicID:         topic.ID,
		Title:           topic.Title,
		Description:     topic.Description,
		TheoryMD:        topic.TheoryMD,
		TimeComplexity:  topic.Complexity.Time,
		SpaceComplexity: topic.Complexity.Space,
		EstimatedHours:  topic.EstimatedHours,
		Difficulty:      topic.Difficulty,
		Completed:       completed,
		Unlocked:        curriculum.IsTopicUnlocked(topic, p.CompletedTopics),
		Subtopics:       subs,
		Problems:        problems,
	}
}

func (a *App) statsState() ui.StatsState {
	p := a.tracker.Progress()

	var hoursDone float64
	for _, topic := range a.catalog.Topics {
		if _, ok := p.CompletedTopics[topic.ID]; ok {
			hoursDone += topic.EstimatedHours
		}
	}

	tiers := a.catalog.TierProgress(p.CompletedTopics)
	bars := make([]ui.TierBar, 0, len(tiers))
	for _, tp := range tiers {
		if tp.TotalTopics == 0 {
			continue
		}
		bars = append(bars, ui.TierBar{
			Label:      tierLabel(tp.Tier),
			Completed:  tp.CompletedTopics,
			Total:      tp.TotalTopics,
			Percentage: tp.Percentage,
			Unlocked:   tp.Unlocked,
		})
	}

	rows := make([]ui.AchievementRow, 0, len(p.Achievements))
	for _, ach := range p.Achievements {
		rows = append(rows, ui.AchievementRow{
			ID:          ach.ID,
			Title:       ach.Title,
			Description: ach.Description,
			Icon:        ach.Icon,
			Points:      ach.Points,
			UnlockedAt:  ach.UnlockedAt.Local().Format(time.DateOnly),
		})
	}

	into := p.TotalPoints % 1000
	if into < 0 {
		into += 1000
	}

	return ui.StatsState{
		Header:            a.headerStats(p),
		PointsIntoLevel:   into,
		CompletedTopics:   len(p.CompletedTopics),
		TotalTopics:       a.catalog.TotalTopics(),
		CompletedProblems: len(p.CompletedProblems),
		TotalProblems:     a.catalog.TotalProblems(),
		HoursDone:         hoursDone,
		HoursTotal:        a.catalog.TotalEstimatedHours(),
		Tiers:             bars,
		NextUp:            a.catalog.NextRecommended(p.CompletedTopics),
		Achievements:      rows,
	}
}
