package ui

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
)

type applyMsg struct {
	fn func(*Root)
}

type animateMsg time.Time

type roadmapKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Toggle key.Binding
	Stats  key.Binding
	Back   key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

func (k roadmapKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Toggle, k.Stats, k.Reset, k.Quit}
}

func (k roadmapKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Open, k.Toggle}, {k.Stats, k.Back, k.Reset, k.Quit}}
}

// Root is the bubbletea model for the whole app. All state it renders is
// pushed in via the Set* methods; it computes nothing about progress on
// its own.
type Root struct {
	theme Theme
	ascii bool
	ctrl  Controller

	mu      sync.Mutex
	program *tea.Program
	running bool

	screen Screen
	layout LayoutMode
	cols   int
	rows   int

	roadmap RoadmapState
	detail  DetailState
	stats   StatsState
	toast   ToastState

	resetOpen   bool
	resetIndex  int
	statusFlash string

	roadmapIndex int
	detailIndex  int
	scrollTop    int

	help     help.Model
	keymap   roadmapKeyMap
	tierBar  progress.Model
	markdown *glamour.TermRenderer
	logger   *clog.Logger

	toastPos float64
	toastVel float64
	spring   harmonica.Spring
}

type Options struct {
	ASCIIOnly    bool
	Debug        bool
	StyleVariant string
	MotionLevel  string
}

func New(opts Options) *Root {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "dsadojo-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(76),
	)
	if err != nil {
		renderer = nil
	}

	h := help.New()
	h.Styles = help.DefaultDarkStyles()

	spring := harmonica.NewSpring(harmonica.FPS(60), 9.0, 0.8)
	if normalizeMotionLevel(opts.MotionLevel) == "off" {
		spring = harmonica.NewSpring(harmonica.FPS(60), 1000.0, 1.0)
	}

	bar := progress.New(
		progress.WithWidth(26),
		progress.WithColors(lipgloss.Color("#53D0FF"), lipgloss.Color("#5BE49B"), lipgloss.Color("#FFD166")),
		progress.WithScaled(true),
	)

	r := &Root{
		theme:    ThemeForVariant(opts.StyleVariant),
		ascii:    opts.ASCIIOnly,
		screen:   ScreenRoadmap,
		layout:   LayoutWide,
		cols:     120,
		rows:     30,
		help:     h,
		tierBar:  bar,
		markdown: renderer,
		logger:   logger,
		spring:   spring,
	}
	r.keymap = roadmapKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Toggle: key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "toggle done")),
		Stats:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	return r
}

func (r *Root) Init() tea.Cmd {
	return animateTickCmd()
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec)
			model = r
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		r.layout = DetermineLayoutMode(r.cols, r.rows)
		return r, nil
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, r.animateIfNeeded()
	case animateMsg:
		target := 0.0
		if r.toast.Visible {
			target = 1.0
		}
		r.toastPos, r.toastVel = r.spring.Update(r.toastPos, r.toastVel, target)
		if r.shouldAnimate(target) {
			return r, animateTickCmd()
		}
		r.toastPos, r.toastVel = target, 0
		return r, nil
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, r.keymap.Quit) {
		r.dispatchController(func(c Controller) { c.OnQuit() })
		return r, tea.Quit
	}

	if r.toast.Visible {
		switch {
		case key.Matches(msg, r.keymap.Back), key.Matches(msg, r.keymap.Open):
			r.toast.Visible = false
			r.dispatchController(func(c Controller) { c.OnDismissAchievement() })
			return r, r.animateIfNeeded()
		}
		// Any other key falls through to the screen underneath.
	}

	if r.resetOpen {
		return r.handleResetKey(msg)
	}

	switch r.screen {
	case ScreenRoadmap:
		return r.handleRoadmapKey(msg)
	case ScreenTopic:
		return r.handleTopicKey(msg)
	default:
		return r.handleStatsKey(msg)
	}
}

func (r *Root) handleResetKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, r.keymap.Back):
		r.resetOpen = false
	case key.Matches(msg, key.NewBinding(key.WithKeys("left", "right", "tab"))):
		r.resetIndex = 1 - r.resetIndex
	case key.Matches(msg, r.keymap.Open):
		confirm := r.resetIndex == 0
		r.resetOpen = false
		if confirm {
			r.dispatchController(func(c Controller) { c.OnResetProgress() })
		}
	}
	return r, nil
}

func (r *Root) handleRoadmapKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	rows := r.roadmapTopicCount()
	switch {
	case key.Matches(msg, r.keymap.Up):
		if r.roadmapIndex > 0 {
			r.roadmapIndex--
		}
	case key.Matches(msg, r.keymap.Down):
		if r.roadmapIndex < rows-1 {
			r.roadmapIndex++
		}
	case key.Matches(msg, r.keymap.Open):
		if row, ok := r.topicRowAt(r.roadmapIndex); ok {
			if !row.Unlocked {
				r.statusFlash = "Locked — complete " + strings.Join(row.Prerequisites, ", ") + " first"
				return r, nil
			}
			id := row.ID
			r.dispatchController(func(c Controller) { c.OnSelectTopic(id) })
		}
	case key.Matches(msg, r.keymap.Toggle):
		if row, ok := r.topicRowAt(r.roadmapIndex); ok {
			if !row.Unlocked {
				r.statusFlash = "Locked topics cannot be toggled"
				return r, nil
			}
			id := row.ID
			r.dispatchController(func(c Controller) { c.OnToggleTopic(id) })
		}
	case key.Matches(msg, r.keymap.Stats):
		r.dispatchController(func(c Controller) { c.OnOpenStats() })
	case key.Matches(msg, r.keymap.Reset):
		r.resetOpen = true
		r.resetIndex = 1
	}
	return r, nil
}

func (r *Root) handleTopicKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	items := r.detailItemCount()
	switch {
	case key.Matches(msg, r.keymap.Up):
		if r.detailIndex > 0 {
			r.detailIndex--
		}
	case key.Matches(msg, r.keymap.Down):
		if r.detailIndex < items-1 {
			r.detailIndex++
		}
	case key.Matches(msg, r.keymap.Toggle), key.Matches(msg, r.keymap.Open):
		r.toggleDetailItem()
	case key.Matches(msg, r.keymap.Stats):
		r.dispatchController(func(c Controller) { c.OnOpenStats() })
	case key.Matches(msg, r.keymap.Back):
		r.detailIndex = 0
		r.dispatchController(func(c Controller) { c.OnBackToRoadmap() })
	}
	return r, nil
}

func (r *Root) handleStatsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, r.keymap.Back), key.Matches(msg, r.keymap.Stats):
		r.dispatchController(func(c Controller) { c.OnBackToRoadmap() })
	case key.Matches(msg, r.keymap.Reset):
		r.resetOpen = true
		r.resetIndex = 1
	}
	return r, nil
}

// Detail items are laid out as: the topic itself, then subtopics, then
// practice problems.
func (r *Root) detailItemCount() int {
	return 1 + len(r.detail.Subtopics) + len(r.detail.Problems)
}

func (r *Root) toggleDetailItem() {
	d := r.detail
	idx := r.detailIndex
	switch {
	case idx == 0:
		if !d.Unlocked {
			r.statusFlash = "Locked topics cannot be toggled"
			return
		}
		id := d.TopicID
		r.dispatchController(func(c Controller) { c.OnToggleTopic(id) })
	case idx <= len(d.Subtopics):
		sub := d.Subtopics[idx-1]
		if !sub.Unlocked {
			r.statusFlash = "Locked — complete the parent topic and prerequisites first"
			return
		}
		id := sub.ID
		r.dispatchController(func(c Controller) { c.OnToggleSubtopic(id) })
	default:
		p := d.Problems[idx-1-len(d.Subtopics)]
		topicID, title, points := d.TopicID, p.Title, p.Points
		r.dispatchController(func(c Controller) { c.OnToggleProblem(topicID, title, points) })
	}
}

func (r *Root) roadmapTopicCount() int {
	n := 0
	for _, tier := range r.roadmap.Tiers {
		n += len(tier.Topics)
	}
	return n
}

func (r *Root) topicRowAt(idx int) (TopicRow, bool) {
	for _, tier := range r.roadmap.Tiers {
		if idx < len(tier.Topics) {
			return tier.Topics[idx], true
		}
		idx -= len(tier.Topics)
	}
	return TopicRow{}, false
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec)
			width := max(1, r.cols)
			view = tea.NewView(r.theme.Warn.Width(width).Render("UI recovered from a rendering panic. Check logs."))
		}
	}()

	if r.cols < 1 {
		r.cols = 120
	}
	if r.rows < 1 {
		r.rows = 30
	}

	if r.layout == LayoutTooSmall {
		v := tea.NewView(r.renderTooSmall())
		v.AltScreen = true
		return v
	}

	var base string
	switch r.screen {
	case ScreenTopic:
		base = r.renderTopic()
	case ScreenStats:
		base = r.renderStats()
	default:
		base = r.renderRoadmap()
	}

	if overlay := r.renderOverlay(); overlay != "" {
		base = composeOverlay(base, overlay, r.cols, r.rows, r.toastPos)
	}

	v := tea.NewView(base)
	v.AltScreen = true
	return v
}

func (r *Root) renderTooSmall() string {
	msg := fmt.Sprintf("Terminal too small (%dx%d). Need at least 72x20.", r.cols, r.rows)
	return r.theme.Warn.Render(msg)
}

func (r *Root) renderHeader(title string, hs HeaderStats) string {
	left := r.theme.Header.Render(title)
	stats := fmt.Sprintf("Lv %d  %s pts  %s",
		hs.Level,
		formatInt(hs.TotalPoints),
		r.streakLabel(hs.Streak),
	)
	right := r.theme.Header.Render(r.theme.HeaderStat.Render(stats))
	gap := r.cols - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	filler := r.theme.Header.Render(strings.Repeat(" ", gap))
	return left + filler + right
}

func (r *Root) streakLabel(streak int) string {
	if r.ascii {
		return fmt.Sprintf("streak %d", streak)
	}
	return fmt.Sprintf("🔥%d", streak)
}

func (r *Root) renderRoadmap() string {
	var b strings.Builder
	b.WriteString(r.renderHeader("DSA Roadmap — "+r.roadmap.CatalogName, r.roadmap.Header))
	b.WriteString("\n\n")

	flatIdx := 0
	for _, tier := range r.roadmap.Tiers {
		b.WriteString(r.renderTierHeading(tier))
		b.WriteString("\n")
		for _, row := range tier.Topics {
			b.WriteString(r.renderTopicRow(row, flatIdx == r.roadmapIndex, tier.Unlocked))
			b.WriteString("\n")
			flatIdx++
		}
		b.WriteString("\n")
	}

	body := r.clipToBody(b.String())
	return body + "\n" + r.renderStatusBar()
}

func (r *Root) renderTierHeading(tier TierSection) string {
	style := r.theme.TierTitle
	lock := ""
	if !tier.Unlocked {
		style = r.theme.TierLocked
		lock = r.lockGlyph() + " "
	}
	label := fmt.Sprintf("%s%s  %d/%d (%d%%)", lock, tier.Label, tier.CompletedTopics, tier.TotalTopics, tier.Percentage)
	bar := r.tierBar.ViewAs(float64(tier.Percentage) / 100)
	return style.Render(label) + "  " + bar
}

func (r *Root) renderTopicRow(row TopicRow, selected, tierUnlocked bool) string {
	check := r.checkbox(row.Completed)
	style := r.theme.TopicOpen
	marker := " "
	switch {
	case row.Completed:
		style = r.theme.TopicDone
	case !row.Unlocked || !tierUnlocked:
		style = r.theme.TopicLocked
		check = r.lockGlyph()
	}
	if row.Recommended && !row.Completed {
		marker = r.theme.Recommended.Render("»")
	}

	meta := fmt.Sprintf("%.0fh · %d/%d problems", row.EstimatedHours, row.ProblemsDone, row.ProblemsTotal)
	if row.SubtopicCount > 0 {
		meta += fmt.Sprintf(" · %d subtopics", row.SubtopicCount)
	}
	line := fmt.Sprintf(" %s %s %-32s %s", marker, check, row.Title, r.theme.Tag.Render(meta))
	if selected {
		return r.theme.Cursor.Render(trimForWidth(line, r.cols-2))
	}
	return style.Render(trimForWidth(line, r.cols-2))
}

func (r *Root) renderTopic() string {
	d := r.detail
	var b strings.Builder
	b.WriteString(r.renderHeader("Topic — "+d.Title, r.roadmap.Header))
	b.WriteString("\n\n")

	state := r.checkbox(d.Completed) + " "
	b.WriteString(r.theme.Accent.Render(state+d.Title) + "\n")
	b.WriteString(r.theme.Muted.Render(d.Description) + "\n")
	meta := fmt.Sprintf("%s · %.0fh estimated", d.Difficulty, d.EstimatedHours)
	if d.TimeComplexity != "" {
		meta += " · " + d.TimeComplexity
	}
	b.WriteString(r.theme.Tag.Render(meta) + "\n\n")

	if d.TheoryMD != "" {
		b.WriteString(r.renderMarkdown(d.TheoryMD))
		b.WriteString("\n")
	}

	if r.detailIndex == 0 {
		b.WriteString(r.theme.Cursor.Render(" mark topic "+r.doneWord(d.Completed)+" ") + "\n\n")
	} else {
		b.WriteString(r.theme.Muted.Render(" mark topic "+r.doneWord(d.Completed)+" ") + "\n\n")
	}

	if len(d.Subtopics) > 0 {
		b.WriteString(r.theme.TierTitle.Render("Subtopics") + "\n")
		for i, sub := range d.Subtopics {
			b.WriteString(r.renderSubtopicRow(sub, r.detailIndex == 1+i))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(r.theme.TierTitle.Render("Practice Problems") + "\n")
	for i, p := range d.Problems {
		b.WriteString(r.renderProblemRow(p, r.detailIndex == 1+len(d.Subtopics)+i))
		b.WriteString("\n")
	}

	body := r.clipToBody(b.String())
	return body + "\n" + r.renderStatusBar()
}

func (r *Root) renderSubtopicRow(sub SubtopicRow, selected bool) string {
	check := r.checkbox(sub.Completed)
	style := r.theme.TopicOpen
	if sub.Completed {
		style = r.theme.TopicDone
	} else if !sub.Unlocked {
		style = r.theme.TopicLocked
		check = r.lockGlyph()
	}
	line := fmt.Sprintf("   %s %s", check, sub.Title)
	if selected {
		return r.theme.Cursor.Render(trimForWidth(line, r.cols-2))
	}
	return style.Render(trimForWidth(line, r.cols-2))
}

func (r *Root) renderProblemRow(p ProblemRow, selected bool) string {
	check := r.checkbox(p.Completed)
	diff := r.difficultyStyle(p.Difficulty).Render(fmt.Sprintf("%-6s", p.Difficulty))
	ref := ""
	if p.LeetcodeNum > 0 {
		ref = fmt.Sprintf("LC %d · ", p.LeetcodeNum)
	}
	line := fmt.Sprintf("   %s %s %-44s %s", check, diff, p.Title, r.theme.Tag.Render(fmt.Sprintf("%s%d pts", ref, p.Points)))
	if selected {
		return r.theme.Cursor.Render(trimForWidth(line, r.cols-2))
	}
	style := r.theme.TopicOpen
	if p.Completed {
		style = r.theme.TopicDone
	}
	return style.Render(trimForWidth(line, r.cols-2))
}

func (r *Root) renderStats() string {
	s := r.stats
	var b strings.Builder
	b.WriteString(r.renderHeader("Progress Stats", s.Header))
	b.WriteString("\n\n")

	b.WriteString(r.theme.TierTitle.Render("Level") + "\n")
	b.WriteString(fmt.Sprintf("  Level %d — %d/%d pts to next  %s\n\n",
		s.Header.Level, s.PointsIntoLevel, 1000, r.tierBar.ViewAs(float64(s.PointsIntoLevel)/1000)))

	b.WriteString(r.theme.TierTitle.Render("Totals") + "\n")
	b.WriteString(fmt.Sprintf("  Topics    %d/%d\n", s.CompletedTopics, s.TotalTopics))
	b.WriteString(fmt.Sprintf("  Problems  %d/%d\n", s.CompletedProblems, s.TotalProblems))
	b.WriteString(fmt.Sprintf("  Hours     %.0f/%.0f estimated\n\n", s.HoursDone, s.HoursTotal))

	b.WriteString(r.theme.TierTitle.Render("Tiers") + "\n")
	for _, tier := range s.Tiers {
		style := r.theme.TopicOpen
		lock := "  "
		if !tier.Unlocked {
			style = r.theme.TopicLocked
			lock = r.lockGlyph() + " "
		}
		b.WriteString(style.Render(fmt.Sprintf("  %s%-12s %2d/%-2d ", lock, tier.Label, tier.Completed, tier.Total)))
		b.WriteString(r.tierBar.ViewAs(float64(tier.Percentage)/100) + "\n")
	}
	b.WriteString("\n")

	if len(s.NextUp) > 0 {
		b.WriteString(r.theme.TierTitle.Render("Next Up") + "\n")
		b.WriteString("  " + r.theme.Recommended.Render(strings.Join(s.NextUp, ", ")) + "\n\n")
	}

	b.WriteString(r.theme.TierTitle.Render("Achievements") + "\n")
	if len(s.Achievements) == 0 {
		b.WriteString(r.theme.Muted.Render("  None yet — complete your first topic.") + "\n")
	}
	for _, a := range s.Achievements {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			r.theme.Recommended.Render(a.Title),
			r.theme.Tag.Render(fmt.Sprintf("+%d pts", a.Points)),
			r.theme.Muted.Render(a.UnlockedAt)))
	}

	body := r.clipToBody(b.String())
	return body + "\n" + r.renderStatusBar()
}

func (r *Root) renderOverlay() string {
	if r.resetOpen {
		return r.renderResetConfirm()
	}
	if r.toast.Visible && r.toastPos > 0.01 {
		return r.renderToast()
	}
	return ""
}

func (r *Root) renderResetConfirm() string {
	yes, no := "[ Reset ]", "[ Keep ]"
	if r.resetIndex == 0 {
		yes = r.theme.Warn.Render("[ Reset ]")
	} else {
		no = r.theme.Accent.Render("[ Keep ]")
	}
	body := r.theme.OverlayTitle.Render("Reset all progress?") + "\n\n" +
		"Points, streak and achievements will be wiped.\n\n" +
		yes + "   " + no
	return r.theme.Overlay.Render(body)
}

func (r *Root) renderToast() string {
	t := r.toast
	icon := ""
	if !r.ascii {
		icon = "🏆 "
	}
	body := r.theme.OverlayTitle.Render(icon+"Achievement Unlocked!") + "\n" +
		r.theme.Accent.Render(t.Title) + "  " + r.theme.Recommended.Render(fmt.Sprintf("+%d pts", t.Points)) + "\n" +
		r.theme.Muted.Render(t.Description) + "\n\n" +
		r.theme.Tag.Render("enter/esc to dismiss")
	return r.theme.Overlay.Render(body)
}

func (r *Root) renderStatusBar() string {
	if r.statusFlash != "" {
		flash := r.statusFlash
		r.statusFlash = ""
		return r.theme.Status.Width(r.cols).Render(trimForWidth(flash, r.cols-2))
	}
	return r.theme.Status.Width(r.cols).Render(trimForWidth(r.help.View(r.keymap), r.cols-2))
}

func (r *Root) renderMarkdown(md string) string {
	if r.markdown == nil {
		return md
	}
	out, err := r.markdown.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// clipToBody keeps the body within the rows available above the status
// bar, scrolling so the cursor stays visible.
func (r *Root) clipToBody(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	avail := r.rows - 2
	if avail < 1 {
		avail = 1
	}
	if len(lines) <= avail {
		return strings.Join(lines, "\n")
	}
	cursorLine := r.approxCursorLine(lines)
	if cursorLine < r.scrollTop {
		r.scrollTop = cursorLine
	}
	if cursorLine >= r.scrollTop+avail {
		r.scrollTop = cursorLine - avail + 1
	}
	if r.scrollTop > len(lines)-avail {
		r.scrollTop = len(lines) - avail
	}
	if r.scrollTop < 0 {
		r.scrollTop = 0
	}
	return strings.Join(lines[r.scrollTop:r.scrollTop+avail], "\n")
}

// approxCursorLine estimates which rendered line carries the cursor so
// scrolling can follow it. A proportional estimate is good enough; exact
// tracking would mean parsing ANSI back out of the frame.
func (r *Root) approxCursorLine(lines []string) int {
	total := r.roadmapTopicCount()
	idx := r.roadmapIndex
	if r.screen == ScreenTopic {
		total = r.detailItemCount()
		idx = r.detailIndex
	}
	if total <= 0 {
		return 0
	}
	return idx * len(lines) / total
}

func (r *Root) checkbox(done bool) string {
	if r.ascii {
		if done {
			return "[x]"
		}
		return "[ ]"
	}
	if done {
		return "✓"
	}
	return "○"
}

func (r *Root) lockGlyph() string {
	if r.ascii {
		return "[#]"
	}
	return "🔒"
}

func (r *Root) doneWord(done bool) string {
	if done {
		return "incomplete"
	}
	return "complete"
}

func (r *Root) difficultyStyle(d string) lipgloss.Style {
	switch d {
	case "medium":
		return r.theme.Medium
	case "hard":
		return r.theme.Hard
	default:
		return r.theme.Easy
	}
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
}

func (r *Root) SetScreen(screen Screen) {
	r.apply(func(m *Root) {
		m.screen = screen
		m.scrollTop = 0
	})
}

func (r *Root) SetRoadmap(state RoadmapState) {
	r.apply(func(m *Root) {
		m.roadmap = state
		if count := m.roadmapTopicCount(); m.roadmapIndex >= count && count > 0 {
			m.roadmapIndex = count - 1
		}
	})
}

func (r *Root) SetTopicDetail(state DetailState) {
	r.apply(func(m *Root) {
		m.detail = state
		if count := m.detailItemCount(); m.detailIndex >= count && count > 0 {
			m.detailIndex = count - 1
		}
	})
}

func (r *Root) SetStats(state StatsState) {
	r.apply(func(m *Root) {
		m.stats = state
	})
}

func (r *Root) SetToast(state ToastState) {
	r.apply(func(m *Root) {
		m.toast = state
	})
}

func (r *Root) SetResetConfirmOpen(open bool) {
	r.apply(func(m *Root) {
		m.resetOpen = open
		m.resetIndex = 1
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
	})
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

func (r *Root) dispatchController(fn func(Controller)) {
	if fn == nil || r.ctrl == nil {
		return
	}
	ctrl := r.ctrl
	go fn(ctrl)
}

func (r *Root) animateIfNeeded() tea.Cmd {
	target := 0.0
	if r.toast.Visible {
		target = 1.0
	}
	if r.shouldAnimate(target) {
		return animateTickCmd()
	}
	return nil
}

func (r *Root) shouldAnimate(target float64) bool {
	if target > 0.5 {
		return r.toastPos < 0.999 || absFloat(r.toastVel) > 0.001
	}
	return r.toastPos > 0.001 || absFloat(r.toastVel) > 0.001
}

func (r *Root) onModelPanic(where string, rec any) {
	r.logger.Error("ui panic recovered", "where", where, "panic", fmt.Sprint(rec), "stack", string(debug.Stack()))
}

func animateTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return animateMsg(t) })
}

// composeOverlay splices the overlay into the base frame. pos slides the
// box in from just above its resting place as the spring settles.
func composeOverlay(base, overlay string, cols, rows int, pos float64) string {
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < rows {
		baseLines = append(baseLines, "")
	}
	overlayLines := strings.Split(overlay, "\n")
	ow := 0
	for _, line := range overlayLines {
		if w := lipgloss.Width(line); w > ow {
			ow = w
		}
	}
	startCol := (cols - ow) / 2
	if startCol < 0 {
		startCol = 0
	}
	rest := (rows - len(overlayLines)) / 3
	if rest < 1 {
		rest = 1
	}
	startRow := rest - int(float64(rest)*(1-clamp01(pos)))
	if startRow < 0 {
		startRow = 0
	}

	for i, line := range overlayLines {
		row := startRow + i
		if row >= len(baseLines) || row >= rows {
			break
		}
		pad := strings.Repeat(" ", startCol)
		baseLines[row] = pad + line
	}
	if len(baseLines) > rows {
		baseLines = baseLines[:rows]
	}
	return strings.Join(baseLines, "\n")
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(strings.ReplaceAll(ansi.Strip(s), "\n", " "))
	if len(runes) <= width {
		return string(runes)
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func formatInt(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 || (n < 0 && len(s) <= 4) {
		return s
	}
	var b strings.Builder
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

var _ tea.Model = (*Root)(nil)
var _ View = (*Root)(nil)

func normalizeMotionLevel(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}
