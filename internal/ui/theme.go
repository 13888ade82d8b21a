package ui

import lipgloss "charm.land/lipgloss/v2"

type Theme struct {
	Header       lipgloss.Style
	HeaderStat   lipgloss.Style
	Status       lipgloss.Style
	TierTitle    lipgloss.Style
	TierLocked   lipgloss.Style
	TopicDone    lipgloss.Style
	TopicLocked  lipgloss.Style
	TopicOpen    lipgloss.Style
	Cursor       lipgloss.Style
	Recommended  lipgloss.Style
	Tag          lipgloss.Style
	Easy         lipgloss.Style
	Medium       lipgloss.Style
	Hard         lipgloss.Style
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
	Accent       lipgloss.Style
	Muted        lipgloss.Style
	Warn         lipgloss.Style
}

func DefaultTheme() Theme {
	return ThemeForVariant("roadmap_dark")
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "paper_light":
		return paperLightTheme()
	default:
		return roadmapDarkTheme()
	}
}

func roadmapDarkTheme() Theme {
	ink := lipgloss.Color("#101828")
	slate := lipgloss.Color("#1D2939")
	snow := lipgloss.Color("#F2F4F7")
	sky := lipgloss.Color("#53D0FF")
	mint := lipgloss.Color("#5BE49B")
	gold := lipgloss.Color("#FFD166")
	coral := lipgloss.Color("#FF7A85")
	dim := lipgloss.Color("#8A94A8")

	return Theme{
		Header:       lipgloss.NewStyle().Background(ink).Foreground(snow).Padding(0, 1),
		HeaderStat:   lipgloss.NewStyle().Foreground(gold).Bold(true),
		Status:       lipgloss.NewStyle().Background(slate).Foreground(snow).Padding(0, 1),
		TierTitle:    lipgloss.NewStyle().Foreground(sky).Bold(true),
		TierLocked:   lipgloss.NewStyle().Foreground(dim).Bold(true),
		TopicDone:    lipgloss.NewStyle().Foreground(mint),
		TopicLocked:  lipgloss.NewStyle().Foreground(dim),
		TopicOpen:    lipgloss.NewStyle().Foreground(snow),
		Cursor:       lipgloss.NewStyle().Foreground(ink).Background(sky).Bold(true),
		Recommended:  lipgloss.NewStyle().Foreground(gold),
		Tag:          lipgloss.NewStyle().Foreground(dim).Italic(true),
		Easy:         lipgloss.NewStyle().Foreground(mint),
		Medium:       lipgloss.NewStyle().Foreground(gold),
		Hard:         lipgloss.NewStyle().Foreground(coral),
		Overlay:      lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(gold).Background(ink).Foreground(snow).Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(gold).Bold(true),
		Accent:       lipgloss.NewStyle().Foreground(sky).Bold(true),
		Muted:        lipgloss.NewStyle().Foreground(dim),
		Warn:         lipgloss.NewStyle().Foreground(coral).Bold(true),
	}
}

func paperLightTheme() Theme {
	paper := lipgloss.Color("#FAF7F0")
	char := lipgloss.Color("#2B2B2B")
	navy := lipgloss.Color("#1F4E79")
	moss := lipgloss.Color("#3E7C4F")
	ochre := lipgloss.Color("#B57F2E")
	clay := lipgloss.Color("#B34A44")
	fog := lipgloss.Color("#9A958A")

	return Theme{
		Header:       lipgloss.NewStyle().Background(navy).Foreground(paper).Padding(0, 1),
		HeaderStat:   lipgloss.NewStyle().Foreground(ochre).Bold(true),
		Status:       lipgloss.NewStyle().Background(char).Foreground(paper).Padding(0, 1),
		TierTitle:    lipgloss.NewStyle().Foreground(navy).Bold(true),
		TierLocked:   lipgloss.NewStyle().Foreground(fog).Bold(true),
		TopicDone:    lipgloss.NewStyle().Foreground(moss),
		TopicLocked:  lipgloss.NewStyle().Foreground(fog),
		TopicOpen:    lipgloss.NewStyle().Foreground(char),
		Cursor:       lipgloss.NewStyle().Foreground(paper).Background(navy).Bold(true),
		Recommended:  lipgloss.NewStyle().Foreground(ochre),
		Tag:          lipgloss.NewStyle().Foreground(fog).Italic(true),
		Easy:         lipgloss.NewStyle().Foreground(moss),
		Medium:       lipgloss.NewStyle().Foreground(ochre),
		Hard:         lipgloss.NewStyle().Foreground(clay),
		Overlay:      lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(ochre).Background(paper).Foreground(char).Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(ochre).Bold(true),
		Accent:       lipgloss.NewStyle().Foreground(navy).Bold(true),
		Muted:        lipgloss.NewStyle().Foreground(fog),
		Warn:         lipgloss.NewStyle().Foreground(clay).Bold(true),
	}
}
