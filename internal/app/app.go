package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dsadojo/internal/curriculum"
	"dsadojo/internal/progress"
	"dsadojo/internal/state"
	"dsadojo/internal/telemetry"
	"dsadojo/internal/ui"

	clog "github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type App struct {
	cfg Config

	logger   *clog.Logger
	closeLog func() error
	store    *state.SQLiteStore
	loader   *curriculum.FSLoader
	tracker  *progress.Tracker

	view   *ui.Root
	screen ui.Screen

	sessionID string
	catalogs  []curriculum.Catalog
	catalog   curriculum.Catalog
	topicID   string
}

func New(cfg Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	logger, closeLog, err := telemetry.NewLogger(cfg.LogPath, cfg.Debug)
	if err != nil {
		return nil, err
	}

	store, err := state.NewSQLite(filepath.Join(cfg.DataDir, "state.db"))
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	if err := store.EnsureSchema(context.Background()); err != nil {
		_ = store.Close()
		_ = closeLog()
		return nil, err
	}

	loader := curriculum.NewLoader()
	catalogs, err := loader.LoadCatalogs(context.Background(), cfg.CatalogDir)
	if err != nil {
		_ = store.Close()
		_ = closeLog()
		return nil, err
	}
	if len(catalogs) == 0 {
		_ = store.Close()
		_ = closeLog()
		return nil, fmt.Errorf("no catalogs available under %s/", cfg.CatalogDir)
	}
	catalog := catalogs[0]
	if cfg.CatalogID != "" {
		found := false
		for _, c := range catalogs {
			if c.CatalogID == cfg.CatalogID {
				catalog = c
				found = true
				break
			}
		}
		if !found {
			_ = store.Close()
			_ = closeLog()
			return nil, fmt.Errorf("catalog %q not found", cfg.CatalogID)
		}
	}

	if saved, err := store.LoadSettings(context.Background()); err == nil {
		if v, ok := saved["ui.style_variant"]; ok && cfg.UI.StyleVariant == DefaultConfig().UI.StyleVariant {
			cfg.UI.StyleVariant = v
		}
	}

	tracker := progress.NewTracker(context.Background(), progress.TrackerOptions{
		Store:  store,
		Logger: logger,
	})

	view := ui.New(ui.Options{
		ASCIIOnly:    cfg.ASCIIOnly,
		Debug:        cfg.Debug,
		StyleVariant: cfg.UI.StyleVariant,
		MotionLevel:  cfg.UI.MotionLevel,
	})

	a := &App{
		cfg:       cfg,
		logger:    logger,
		closeLog:  closeLog,
		store:     store,
		loader:    loader,
		tracker:   tracker,
		view:      view,
		screen:    ui.ScreenRoadmap,
		sessionID: uuid.NewString(),
		catalogs:  catalogs,
		catalog:   catalog,
	}
	view.SetController(a)
	view.SetRoadmap(a.roadmapState())
	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("app start",
		"session", a.sessionID,
		"catalog", a.catalog.CatalogID,
		"topics", a.catalog.TotalTopics(),
	)

	if err := a.store.SaveSettings(ctx, map[string]string{
		"ui.style_variant": a.cfg.UI.StyleVariant,
		"ui.motion_level":  a.cfg.UI.MotionLevel,
		"catalog.last":     a.catalog.CatalogID,
	}); err != nil {
		a.logger.Warn("settings save failed", "err", err)
	}

	a.view.SetScreen(ui.ScreenRoadmap)
	a.pushPendingToast()
	return a.view.Run()
}

func (a *App) Close() {
	a.view.Stop()
	if err := a.store.Close(); err != nil {
		a.logger.Warn("store close failed", "err", err)
	}
	_ = a.closeLog()
}

// View exposes the root model so main can hand it to the terminal.
func (a *App) View() *ui.Root { return a.view }

func (a *App) OnSelectTopic(topicID string) {
	topic, ok := a.catalog.FindTopic(topicID)
	if !ok {
		a.view.FlashStatus("unknown topic: " + topicID)
		return
	}
	p := a.tracker.Progress()
	if !curriculum.IsTopicUnlocked(topic, p.CompletedTopics) {
		a.view.FlashStatus("topic is locked")
		return
	}
	a.topicID = topicID
	a.screen = ui.ScreenTopic
	a.view.SetTopicDetail(a.detailState(topic))
	a.view.SetScreen(ui.ScreenTopic)
	a.logger.Debug("topic opened", "topic", topicID)
}

func (a *App) OnToggleTopic(topicID string) {
	topic, ok := a.catalog.FindTopic(topicID)
	if !ok {
		a.view.FlashStatus("unknown topic: " + topicID)
		return
	}
	p := a.tracker.Progress()
	if !a.tracker.IsTopicCompleted(topicID) && !curriculum.IsTopicUnlocked(topic, p.CompletedTopics) {
		a.view.FlashStatus("complete the prerequisites first")
		return
	}
	ctx, cancel := a.opCtx()
	defer cancel()
	a.tracker.ToggleTopic(ctx, topicID)
	a.refresh()
}

func (a *App) OnToggleSubtopic(subtopicID string) {
	parent, sub, ok := a.catalog.FindSubtopic(subtopicID)
	if !ok {
		a.view.FlashStatus("unknown subtopic: " + subtopicID)
		return
	}
	p := a.tracker.Progress()
	if !a.tracker.IsSubtopicCompleted(subtopicID) &&
		!curriculum.IsSubtopicUnlocked(parent, sub, p.CompletedTopics, p.CompletedSubtopics) {
		a.view.FlashStatus("complete the parent topic and prerequisites first")
		return
	}
	ctx, cancel := a.opCtx()
	defer cancel()
	a.tracker.ToggleSubtopic(ctx, subtopicID)
	a.refresh()
}

func (a *App) OnToggleProblem(topicID, title string, points int) {
	ctx, cancel := a.opCtx()
	defer cancel()
	a.tracker.ToggleProblem(ctx, curriculum.ProblemKey(topicID, title), points)
	a.refresh()
}

func (a *App) OnResetProgress() {
	ctx, cancel := a.opCtx()
	defer cancel()
	a.tracker.Reset(ctx)
	a.logger.Info("progress reset", "session", a.sessionID)
	a.view.SetToast(ui.ToastState{})
	a.refresh()
	a.view.FlashStatus("Progress reset")
}

func (a *App) OnDismissAchievement() {
	a.tracker.DismissAchievement()
	a.view.SetToast(ui.ToastState{})
}

func (a *App) OnOpenStats() {
	a.screen = ui.ScreenStats
	a.view.SetStats(a.statsState())
	a.view.SetScreen(ui.ScreenStats)
}

func (a *App) OnBackToRoadmap() {
	a.screen = ui.ScreenRoadmap
	a.topicID = ""
	a.view.SetRoadmap(a.roadmapState())
	a.view.SetScreen(ui.ScreenRoadmap)
}

func (a *App) OnQuit() {
	a.logger.Info("app quit", "session", a.sessionID)
}

// refresh rebuilds the state for every screen the user can be looking at
// and surfaces a newly unlocked achievement, if any.
func (a *App) refresh() {
	a.view.SetRoadmap(a.roadmapState())
	if a.topicID != "" {
		if topic, ok := a.catalog.FindTopic(a.topicID); ok {
			a.view.SetTopicDetail(a.detailState(topic))
		}
	}
	if a.screen == ui.ScreenStats {
		a.view.SetStats(a.statsState())
	}
	a.pushPendingToast()
}

func (a *App) pushPendingToast() {
	pending := a.tracker.Pending()
	if pending == nil {
		return
	}
	a.view.SetToast(ui.ToastState{
		Visible:     true,
		Title:       pending.Title,
		Description: pending.Description,
		Icon:        pending.Icon,
		Points:      pending.Points,
	})
}

func (a *App) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
