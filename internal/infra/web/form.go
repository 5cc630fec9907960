package web

import (
	"net/url"
	"strings"

	"provpush/internal/domain/model"
)

// Form field names. Per-terminal fields carry the TID in their name, e.g.
// packages_T100[].
const (
	fieldPushTime = "push_time"
	fieldTID      = "tid[]"
)

func packagesField(tid string) string { return "packages_" + tid + "[]" }
func versionsField(tid string) string { return "versions_" + tid + "[]" }
func forceField(tid string) string    { return "force_" + tid + "[]" }

// entriesFromForm collects the rows of a submitted form. Each selected TID is
// used once, in the order first seen. The package and version lists of a
// terminal are paired by position; a force value of exactly "True" at the
// same position sets ForceUpdate. Rows missing a package or version are
// skipped.
func entriesFromForm(form url.Values) []model.ProvisioningEntry {
	var entries []model.ProvisioningEntry
	seen := make(map[string]struct{})

	for _, raw := range form[fieldTID] {
		tid := strings.TrimSpace(raw)
		if tid == "" {
			continue
		}
		if _, dup := seen[tid]; dup {
			continue
		}
		seen[tid] = struct{}{}

		packages := form[packagesField(tid)]
		versions := form[versionsField(tid)]
		forces := form[forceField(tid)]

		n := min(len(packages), len(versions))
		for i := 0; i < n; i++ {
			pkg := strings.TrimSpace(packages[i])
			version := strings.TrimSpace(versions[i])
			if pkg == "" || version == "" {
				continue
			}
			entries = append(entries, model.ProvisioningEntry{
				TID:         tid,
				Package:     pkg,
				Version:     version,
				ForceUpdate: i < len(forces) && forces[i] == "True",
			})
		}
	}
	return entries
}
