// Package manifest renders provisioning entries as the CSV document consumed
// by the terminal management system.
package manifest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"provpush/internal/domain/model"
)

// Header is the fixed first row of every manifest.
var Header = []string{"TID", "APP", "Version", "ForceUpdate"}

// Encode renders entries as CSV with Header as the first row and one row per
// entry in input order. ForceUpdate is written as True or False.
func Encode(entries []model.ProvisioningEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, err
	}
	for i, e := range entries {
		if err := validate(e); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", model.ErrInvalidEntry, i+1, err)
		}
		if err := w.Write([]string{e.TID, e.Package, e.Version, FormatBool(e.ForceUpdate)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatBool renders b the way the receiving system expects.
func FormatBool(b bool) string {
	s := strconv.FormatBool(b)
	return strings.ToUpper(s[:1]) + s[1:]
}

func validate(e model.ProvisioningEntry) error {
	switch {
	case strings.TrimSpace(e.TID) == "":
		return fmt.Errorf("empty terminal id")
	case strings.TrimSpace(e.Package) == "":
		return fmt.Errorf("terminal %s: empty package", e.TID)
	case strings.TrimSpace(e.Version) == "":
		return fmt.Errorf("terminal %s: package %s: empty version", e.TID, e.Package)
	}
	return nil
}
