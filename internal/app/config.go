package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config controls runtime behavior for the TUI app.
type Config struct {
	LogPath    string
	Debug      bool
	ASCIIOnly  bool
	DataDir    string
	CatalogDir string
	CatalogID  string
	UI         UIConfig
}

type UIConfig struct {
	StyleVariant string
	MotionLevel  string
}

func DefaultConfig() Config {
	return Config{
		CatalogDir: "catalog",
		UI: UIConfig{
			StyleVariant: "roadmap_dark",
			MotionLevel:  "full",
		},
	}
}

func (c *Config) Validate() error {
	switch c.UI.StyleVariant {
	case "", "roadmap_dark", "paper_light":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "roadmap_dark"
	}
	switch c.UI.MotionLevel {
	case "", "off", "reduced", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	if c.UI.MotionLevel == "" {
		c.UI.MotionLevel = "full"
	}
	if c.CatalogDir == "" {
		c.CatalogDir = "catalog"
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "dsadojo")
	}

	return nil
}
