package curriculum

import (
	"fmt"
	"regexp"
)

const (
	CatalogKind            = "catalog"
	SupportedSchemaVersion = 1
)

// Tier names the fixed curriculum difficulty bands, in unlock order.
const (
	TierFoundation  = "foundation"
	TierLinear      = "linear"
	TierNonLinear   = "non-linear"
	TierAdvanced    = "advanced"
	TierSpecialized = "specialized"
)

// TierOrder is the strict unlock sequence: a tier opens only once every
// topic in the preceding tier is completed.
var TierOrder = []string{TierFoundation, TierLinear, TierNonLinear, TierAdvanced, TierSpecialized}

const (
	DefaultTopicPoints  = 100
	EasyProblemPoints   = 10
	MediumProblemPoints = 25
	HardProblemPoints   = 50
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,63}$`)

type Catalog struct {
	Kind          string  `yaml:"kind"`
	SchemaVersion int     `yaml:"schema_version"`
	CatalogID     string  `yaml:"catalog_id"`
	Name          string  `yaml:"name"`
	DescriptionMD string  `yaml:"description_md"`
	Topics        []Topic `yaml:"topics"`

	Path string `yaml:"-"`
}

type Topic struct {
	ID             string            `yaml:"id"`
	Title          string            `yaml:"title"`
	Description    string            `yaml:"description"`
	Tags           []string          `yaml:"tags"`
	EstimatedHours float64           `yaml:"estimated_hours"`
	Tier           string            `yaml:"tier"`
	Prerequisites  []string          `yaml:"prerequisites"`
	Points         int               `yaml:"points"`
	Difficulty     string            `yaml:"difficulty"`
	TheoryMD       string            `yaml:"theory_md"`
	Complexity     ComplexitySpec    `yaml:"complexity"`
	Problems       []PracticeProblem `yaml:"practice_problems"`
	Subtopics      []Topic           `yaml:"subtopics"`
}

// ComplexitySpec is display-only payload; the progress engine never reads it.
type ComplexitySpec struct {
	Time  string `yaml:"time"`
	Space string `yaml:"space"`
}

type PracticeProblem struct {
	Title       string `yaml:"title"`
	Difficulty  string `yaml:"difficulty"`
	Points      int    `yaml:"points"`
	LeetcodeNum int    `yaml:"leetcode_num"`
	Description string `yaml:"description"`
}

func validTier(tier string) bool {
	for _, t := range TierOrder {
		if t == tier {
			return true
		}
	}
	return false
}

func validTag(tag string) bool {
	switch tag {
	case "must-know", "tricky", "interview-frequent":
		return true
	}
	return false
}

func validTopicDifficulty(d string) bool {
	switch d {
	case "", "beginner", "intermediate", "advanced", "expert":
		return true
	}
	return false
}

// ProblemPoints resolves a problem's point value, deriving it from
// difficulty when no explicit value is set.
func ProblemPoints(difficulty string, explicit int) int {
	if explicit > 0 {
		return explicit
	}
	switch difficulty {
	case "medium":
		return MediumProblemPoints
	case "hard":
		return HardProblemPoints
	default:
		return EasyProblemPoints
	}
}

// ProblemKey builds the composite completion id for a practice problem.
func ProblemKey(topicID, title string) string {
	return topicID + "-" + title
}

func (c Catalog) Validate() error {
	if c.Kind != CatalogKind {
		return fmt.Errorf("kind must be %q", CatalogKind)
	}
	if c.SchemaVersion == 0 {
		return fmt.Errorf("schema_version is required")
	}
	if c.SchemaVersion > SupportedSchemaVersion {
		return fmt.Errorf("unsupported catalog schema_version %d (max supported %d)", c.SchemaVersion, SupportedSchemaVersion)
	}
	if !idPattern.MatchString(c.CatalogID) {
		return fmt.Errorf("invalid catalog_id %q", c.CatalogID)
	}
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(c.Topics) == 0 {
		return fmt.Errorf("topics must contain at least one entry")
	}

	topicIDs := map[string]struct{}{}
	for _, t := range c.Topics {
		if err := t.validate(false); err != nil {
			return err
		}
		if _, ok := topicIDs[t.ID]; ok {
			return fmt.Errorf("duplicate topic id %q", t.ID)
		}
		topicIDs[t.ID] = struct{}{}
	}
	for _, t := range c.Topics {
		for _, pre := range t.Prerequisites {
			if _, ok := topicIDs[pre]; !ok {
				return fmt.Errorf("topic %q prerequisite %q does not exist in catalog", t.ID, pre)
			}
		}
		// Subtopic prerequisites may reference sibling subtopics or the
		// parent topic itself.
		subIDs := map[string]struct{}{t.ID: {}}
		for _, sub := range t.Subtopics {
			if _, ok := subIDs[sub.ID]; ok {
				return fmt.Errorf("duplicate subtopic id %q under topic %q", sub.ID, t.ID)
			}
			subIDs[sub.ID] = struct{}{}
		}
		for _, sub := range t.Subtopics {
			for _, pre := range sub.Prerequisites {
				if _, ok := subIDs[pre]; !ok {
					return fmt.Errorf("subtopic %q prerequisite %q does not exist under topic %q", sub.ID, pre, t.ID)
				}
			}
		}
	}
	return nil
}

func (t Topic) validate(subtopic bool) error {
	kind := "topic"
	if subtopic {
		kind = "subtopic"
	}
	if !idPattern.MatchString(t.ID) {
		return fmt.Errorf("invalid %s id %q", kind, t.ID)
	}
	if t.Title == "" {
		return fmt.Errorf("%s %q: title is required", kind, t.ID)
	}
	if t.EstimatedHours <= 0 {
		return fmt.Errorf("%s %q: estimated_hours must be > 0", kind, t.ID)
	}
	if !subtopic && !validTier(t.Tier) {
		return fmt.Errorf("topic %q: invalid tier %q", t.ID, t.Tier)
	}
	if !validTopicDifficulty(t.Difficulty) {
		return fmt.Errorf("%s %q: invalid difficulty %q", kind, t.ID, t.Difficulty)
	}
	for _, tag := range t.Tags {
		if !validTag(tag) {
			return fmt.Errorf("%s %q: invalid tag %q", kind, t.ID, tag)
		}
	}
	seen := map[string]struct{}{}
	for _, p := range t.Problems {
		if p.Title == "" {
			return fmt.Errorf("%s %q: practice_problems[].title is required", kind, t.ID)
		}
		if _, ok := seen[p.Title]; ok {
			return fmt.Errorf("%s %q: duplicate practice problem %q", kind, t.ID, p.Title)
		}
		seen[p.Title] = struct{}{}
		switch p.Difficulty {
		case "easy", "medium", "hard":
		default:
			return fmt.Errorf("%s %q: problem %q has invalid difficulty %q", kind, t.ID, p.Title, p.Difficulty)
		}
		if p.Points < 0 {
			return fmt.Errorf("%s %q: problem %q points must be >= 0", kind, t.ID, p.Title)
		}
	}
	if subtopic && len(t.Subtopics) > 0 {
		return fmt.Errorf("subtopic %q must not nest further subtopics", t.ID)
	}
	for _, sub := range t.Subtopics {
		if err := sub.validate(true); err != nil {
			return err
		}
	}
	return nil
}
