package curriculum

import "math"

// The resolver is pure: everything here is a function of the catalog and
// the caller's completed-id sets, never of stored state.

// IsTopicUnlocked reports whether every prerequisite of topic is in
// completedTopics. Topics without prerequisites are always unlocked.
func IsTopicUnlocked(topic Topic, completedTopics map[string]struct{}) bool {
	for _, pre := range topic.Prerequisites {
		if _, ok := completedTopics[pre]; !ok {
			return false
		}
	}
	return true
}

// IsSubtopicUnlocked layers the parent-completion gate on top of the
// prerequisite check. A subtopic prerequisite is satisfied by either a
// completed subtopic or a completed topic id.
func IsSubtopicUnlocked(parent, sub Topic, completedTopics, completedSubtopics map[string]struct{}) bool {
	if _, ok := completedTopics[parent.ID]; !ok {
		return false
	}
	for _, pre := range sub.Prerequisites {
		if _, ok := completedSubtopics[pre]; ok {
			continue
		}
		if _, ok := completedTopics[pre]; ok {
			continue
		}
		return false
	}
	return true
}

// NextRecommended returns the ids of topics that are unlocked but not yet
// completed, in catalog order.
func (c Catalog) NextRecommended(completedTopics map[string]struct{}) []string {
	recommended := make([]string, 0)
	for _, topic := range c.Topics {
		if _, done := completedTopics[topic.ID]; done {
			continue
		}
		if IsTopicUnlocked(topic, completedTopics) {
			recommended = append(recommended, topic.ID)
		}
	}
	return recommended
}

type TierProgress struct {
	Tier            string
	TotalTopics     int
	CompletedTopics int
	Percentage      int
	Unlocked        bool
}

// TierProgress walks the fixed tier sequence and reports per-tier
// completion. A tier is unlocked when it is the foundation tier or when
// every topic of the preceding tier is completed.
func (c Catalog) TierProgress(completedTopics map[string]struct{}) []TierProgress {
	out := make([]TierProgress, 0, len(TierOrder))
	for i, tier := range TierOrder {
		total, done := 0, 0
		for _, topic := range c.Topics {
			if topic.Tier != tier {
				continue
			}
			total++
			if _, ok := completedTopics[topic.ID]; ok {
				done++
			}
		}
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(done) / float64(total) * 100))
		}
		unlocked := i == 0 || c.tierComplete(TierOrder[i-1], completedTopics)
		out = append(out, TierProgress{
			Tier:            tier,
			TotalTopics:     total,
			CompletedTopics: done,
			Percentage:      pct,
			Unlocked:        unlocked,
		})
	}
	return out
}

func (c Catalog) tierComplete(tier string, completedTopics map[string]struct{}) bool {
	for _, topic := range c.Topics {
		if topic.Tier != tier {
			continue
		}
		if _, ok := completedTopics[topic.ID]; !ok {
			return false
		}
	}
	return true
}

// FindTopic looks up a topic by id, searching subtopics too.
func (c Catalog) FindTopic(id string) (Topic, bool) {
	for _, topic := range c.Topics {
		if topic.ID == id {
			return topic, true
		}
		for _, sub := range topic.Subtopics {
			if sub.ID == id {
				return sub, true
			}
		}
	}
	return Topic{}, false
}

// FindSubtopic looks up a subtopic by id and returns its parent topic
// alongside it.
func (c Catalog) FindSubtopic(id string) (parent, sub Topic, ok bool) {
	for _, topic := range c.Topics {
		for _, s := range topic.Subtopics {
			if s.ID == id {
				return topic, s, true
			}
		}
	}
	return Topic{}, Topic{}, false
}

// TotalTopics counts top-level topics only; subtopics track separately.
func (c Catalog) TotalTopics() int { return len(c.Topics) }

func (c Catalog) TotalEstimatedHours() float64 {
	var sum float64
	for _, topic := range c.Topics {
		sum += topic.EstimatedHours
	}
	return sum
}

func (c Catalog) TotalProblems() int {
	n := 0
	for _, topic := range c.Topics {
		n += len(topic.Problems)
	}
	return n
}
