// Package catalog loads the app catalog rendered on the provisioning form.
package catalog

import (
	"fmt"

	"provpush/internal/domain/model"
	log "provpush/pkg/log"
	"provpush/pkg/yaml"
)

// Repository serves a catalog that was read once at construction.
type Repository struct {
	catalog model.Catalog
}

// Load reads and validates the catalog at path. Both JSON and YAML documents
// are accepted.
func Load(path string) (*Repository, error) {
	var c model.Catalog
	if err := yaml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("failed to load app catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app catalog %s: %w", path, err)
	}

	apps := 0
	for _, t := range c.Terminals {
		apps += len(t.Apps)
	}
	log.Info("App catalog loaded", "path", path, "terminals", len(c.Terminals), "apps", apps)

	return &Repository{catalog: c}, nil
}

// New wraps an already validated catalog.
func New(c model.Catalog) *Repository {
	return &Repository{catalog: c}
}

// Catalog returns the loaded catalog. Callers must treat it as read-only.
func (r *Repository) Catalog() model.Catalog {
	return r.catalog
}
