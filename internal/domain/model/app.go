package model

import (
	"fmt"
	"strings"
)

// App is an installable package offered for a terminal.
type App struct {
	Package  string   `json:"package" yaml:"package"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Versions []string `json:"versions" yaml:"versions"`
}

// DisplayName returns Name, falling back to the package name.
func (a App) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Package
}

// Terminal is a device that can receive app pushes.
type Terminal struct {
	TID   string `json:"tid" yaml:"tid"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Apps  []App  `json:"apps" yaml:"apps"`
}

// Catalog lists the terminals and the apps that can be pushed to them.
// It is loaded once at startup and shared read-only between requests.
type Catalog struct {
	Terminals []Terminal `json:"terminals" yaml:"terminals"`
}

// Validate checks that every terminal has a unique non-empty TID and that every
// app has a package name. Surrounding whitespace is trimmed in place.
func (c *Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c.Terminals))
	for i := range c.Terminals {
		term := &c.Terminals[i]
		term.TID = strings.TrimSpace(term.TID)
		if term.TID == "" {
			return fmt.Errorf("terminal #%d has an empty tid", i+1)
		}
		if _, dup := seen[term.TID]; dup {
			return fmt.Errorf("terminal %q is listed more than once", term.TID)
		}
		seen[term.TID] = struct{}{}

		for j := range term.Apps {
			app := &term.Apps[j]
			app.Package = strings.TrimSpace(app.Package)
			if app.Package == "" {
				return fmt.Errorf("terminal %q: app #%d has an empty package", term.TID, j+1)
			}
			for k, v := range app.Versions {
				app.Versions[k] = strings.TrimSpace(v)
			}
		}
	}
	return nil
}
