package progress

import (
	"context"
	"io"
	"math"
	"time"

	clog "github.com/charmbracelet/log"
)

// Store is the persistence adapter the tracker writes through. Snapshots
// live under a fixed key; both operations are best-effort from the
// tracker's point of view.
type Store interface {
	LoadSnapshot(ctx context.Context, key string) ([]byte, bool, error)
	SaveSnapshot(ctx context.Context, key string, body []byte) error
}

// Tracker owns the UserProgress aggregate. It is the only writer; all
// mutation goes through the toggle operations, each of which persists a
// full snapshot before returning. Persistence failures are logged and
// swallowed, never surfaced to the caller.
type Tracker struct {
	store   Store
	logger  *clog.Logger
	now     func() time.Time
	current UserProgress
	pending *Achievement
}

type TrackerOptions struct {
	Store  Store
	Logger *clog.Logger
	// Now overrides the clock; tests pin it to exercise streak math.
	Now func() time.Time
}

// NewTracker loads the persisted snapshot if one exists and parses, and
// falls back to the zero-value aggregate otherwise.
func NewTracker(ctx context.Context, opts TrackerOptions) *Tracker {
	t := &Tracker{
		store:  opts.Store,
		logger: opts.Logger,
		now:    opts.Now,
	}
	if t.logger == nil {
		t.logger = clog.New(io.Discard)
	}
	if t.now == nil {
		t.now = time.Now
	}
	t.current = t.loadOrDefault(ctx)
	return t
}

func (t *Tracker) loadOrDefault(ctx context.Context) UserProgress {
	fresh := NewUserProgress(t.now())
	if t.store == nil {
		return fresh
	}
	body, ok, err := t.store.LoadSnapshot(ctx, SnapshotKey)
	if err != nil {
		t.logger.Warn("progress load failed, starting fresh", "error", err)
		return fresh
	}
	if !ok {
		return fresh
	}
	loaded, err := DecodeSnapshot(body, t.now())
	if err != nil {
		t.logger.Warn("progress snapshot malformed, starting fresh", "error", err)
		return fresh
	}
	return loaded
}

// ToggleTopic flips the completion state of a topic id. Completing adds
// 100 points, advances the streak per the day-difference rules and
// evaluates achievements; un-completing subtracts the 100 points and
// leaves streak, lastStudyDate and unlocked achievements untouched.
func (t *Tracker) ToggleTopic(ctx context.Context, topicID string) {
	prev := t.current
	next := prev.clone()
	today := t.now()

	if _, done := next.CompletedTopics[topicID]; done {
		delete(next.CompletedTopics, topicID)
		next.TotalPoints -= topicPoints
		next.Level = levelFor(next.TotalPoints)
	} else {
		next.CompletedTopics[topicID] = struct{}{}
		next.TotalPoints += topicPoints
		next.CurrentStreak = nextStreak(prev.CurrentStreak, prev.LastStudyDate, today)
		next.LastStudyDate = today
		next.Level = levelFor(next.TotalPoints)
		t.unlockAchievements(&prev, &next, today)
	}

	t.current = next
	t.logger.Debug("topic toggled", "topic", topicID, "points", next.TotalPoints, "streak", next.CurrentStreak)
	t.persist(ctx)
}

// ToggleSubtopic flips a subtopic for ±50 points. No streak or
// achievement interaction.
func (t *Tracker) ToggleSubtopic(ctx context.Context, subtopicID string) {
	next := t.current.clone()
	if _, done := next.CompletedSubtopics[subtopicID]; done {
		delete(next.CompletedSubtopics, subtopicID)
		next.TotalPoints -= subtopicPoints
	} else {
		next.CompletedSubtopics[subtopicID] = struct{}{}
		next.TotalPoints += subtopicPoints
	}
	next.Level = levelFor(next.TotalPoints)
	t.current = next
	t.persist(ctx)
}

// ToggleProblem flips a practice problem for ±points. The caller supplies
// the problem's point value; the tracker trusts it. Achievements are
// evaluated on completion only.
func (t *Tracker) ToggleProblem(ctx context.Context, problemID string, points int) {
	prev := t.current
	next := prev.clone()

	if _, done := next.CompletedProblems[problemID]; done {
		delete(next.CompletedProblems, problemID)
		next.TotalPoints -= points
		next.Level = levelFor(next.TotalPoints)
	} else {
		next.CompletedProblems[problemID] = struct{}{}
		next.TotalPoints += points
		next.Level = levelFor(next.TotalPoints)
		t.unlockAchievements(&prev, &next, t.now())
	}

	t.current = next
	t.persist(ctx)
}

// Reset replaces the aggregate with the zero-value default. Confirmation
// is a presentation concern.
func (t *Tracker) Reset(ctx context.Context) {
	t.current = NewUserProgress(t.now())
	t.pending = nil
	t.logger.Info("progress reset")
	t.persist(ctx)
}

// Pending returns the single queued achievement notification, if any.
func (t *Tracker) Pending() *Achievement {
	if t.pending == nil {
		return nil
	}
	cp := *t.pending
	return &cp
}

// DismissAchievement clears the pending notification slot.
func (t *Tracker) DismissAchievement() {
	t.pending = nil
}

// Progress returns a read-only deep copy of the aggregate.
func (t *Tracker) Progress() UserProgress {
	return t.current.clone()
}

func (t *Tracker) IsTopicCompleted(id string) bool {
	_, ok := t.current.CompletedTopics[id]
	return ok
}

func (t *Tracker) IsSubtopicCompleted(id string) bool {
	_, ok := t.current.CompletedSubtopics[id]
	return ok
}

func (t *Tracker) IsProblemCompleted(id string) bool {
	_, ok := t.current.CompletedProblems[id]
	return ok
}

// unlockAchievements appends every newly triggered achievement absent
// from the list, credits its points exactly once and surfaces the first
// new unlock as the pending notification. A trigger firing while another
// notification is pending overwrites it.
func (t *Tracker) unlockAchievements(prev, next *UserProgress, now time.Time) {
	var first *Achievement
	for _, def := range achievementDefs {
		if !def.triggered(prev, next) || next.hasAchievement(def.id) {
			continue
		}
		unlocked := Achievement{
			ID:          def.id,
			Title:       def.title,
			Description: def.description,
			Icon:        def.icon,
			UnlockedAt:  now,
			Points:      def.points,
		}
		next.Achievements = append(next.Achievements, unlocked)
		next.TotalPoints += def.points
		next.Level = levelFor(next.TotalPoints)
		if first == nil {
			cp := unlocked
			first = &cp
		}
		t.logger.Info("achievement unlocked", "id", def.id, "points", def.points)
	}
	if first != nil {
		t.pending = first
	}
}

func (t *Tracker) persist(ctx context.Context) {
	if t.store == nil {
		return
	}
	body, err := EncodeSnapshot(t.current)
	if err != nil {
		t.logger.Warn("progress encode failed", "error", err)
		return
	}
	if err := t.store.SaveSnapshot(ctx, SnapshotKey, body); err != nil {
		t.logger.Warn("progress save failed", "error", err)
	}
}

// nextStreak applies the whole-day difference rules: same day keeps the
// streak, the next day extends it, any other gap (including clock skew
// backwards) resets it to 1.
func nextStreak(streak int, lastStudy, today time.Time) int {
	days := int(math.Floor(today.Sub(lastStudy).Hours() / 24))
	switch {
	case days == 0:
		return streak
	case days == 1:
		return streak + 1
	default:
		return 1
	}
}
