package curriculum

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// LoadCatalogs scans root for directories containing a catalog.yaml and
// loads each one. Catalogs come back sorted by catalog_id so the default
// selection is deterministic.
func (l *FSLoader) LoadCatalogs(ctx context.Context, root string) ([]Catalog, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	catalogs := make([]Catalog, 0)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		catalogYAML := filepath.Join(dir, "catalog.yaml")
		if _, err := os.Stat(catalogYAML); err != nil {
			continue
		}
		catalog, err := readCatalog(catalogYAML)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", dir, err)
		}
		catalog.Path = dir
		catalogs = append(catalogs, catalog)
	}

	sort.Slice(catalogs, func(i, j int) bool { return catalogs[i].CatalogID < catalogs[j].CatalogID })
	return catalogs, nil
}

func readCatalog(path string) (Catalog, error) {
	var catalog Catalog
	b, err := os.ReadFile(path)
	if err != nil {
		return catalog, err
	}
	if err := yaml.Unmarshal(b, &catalog); err != nil {
		return catalog, fmt.Errorf("parse %s: %w", path, err)
	}
	applyCatalogDefaults(&catalog)
	if err := catalog.Validate(); err != nil {
		return catalog, fmt.Errorf("validate %s: %w", path, err)
	}
	return catalog, nil
}

func applyCatalogDefaults(catalog *Catalog) {
	for i := range catalog.Topics {
		applyTopicDefaults(&catalog.Topics[i])
	}
}

func applyTopicDefaults(t *Topic) {
	if t.Points <= 0 {
		t.Points = DefaultTopicPoints
	}
	if t.Difficulty == "" {
		t.Difficulty = "beginner"
	}
	for i := range t.Problems {
		p := &t.Problems[i]
		if p.Points <= 0 {
			p.Points = ProblemPoints(p.Difficulty, 0)
		}
	}
	for i := range t.Subtopics {
		applyTopicDefaults(&t.Subtopics[i])
	}
}
