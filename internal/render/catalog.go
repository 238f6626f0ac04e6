package render

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// CatalogEntry describes one selectable template.
type CatalogEntry struct {
	ID          string `yaml:"id" json:"id"`
	File        string `yaml:"file" json:"file"`
	DisplayName string `yaml:"display_name" json:"display_name"`
}

// Catalog is the parsed templates.yaml manifest of a template directory.
type Catalog struct {
	Templates []CatalogEntry `yaml:"templates"`
}

// LoadCatalog reads templates.yaml from the template directory.
func LoadCatalog(dir string) (*Catalog, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "templates.yaml"))
	if err != nil {
		return nil, err
	}

	var catalog Catalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("parsing templates.yaml: %w", err)
	}
	return &catalog, nil
}

// Lookup resolves a template ID to its catalog entry.
func (c *Catalog) Lookup(id string) (CatalogEntry, bool) {
	for _, entry := range c.Templates {
		if entry.ID == id {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}

// ListTemplates returns the catalog entries, or an empty slice when the
// directory carries no manifest.
func (r *Renderer) ListTemplates() []CatalogEntry {
	if r.catalog == nil {
		return []CatalogEntry{}
	}
	return r.catalog.Templates
}
