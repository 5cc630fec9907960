// Package filename allocates unique names for generated manifests.
package filename

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"provpush/internal/domain/model"
	"provpush/pkg/files"
)

const (
	prefix          = "push_app-prov-"
	extension       = ".csv"
	timestampLayout = "200601021504"
)

// Base returns the collision-free name for ts: push_app-prov-YYYYMMDDHHMM.csv.
// ts is formatted in its own location.
func Base(ts time.Time) string {
	return prefix + ts.Format(timestampLayout) + extension
}

// Candidate returns the n-th name tried for ts. n == 0 is Base(ts); later
// candidates carry a -n suffix.
func Candidate(ts time.Time, n int) string {
	if n == 0 {
		return Base(ts)
	}
	return fmt.Sprintf("%s%s-%d%s", prefix, ts.Format(timestampLayout), n, extension)
}

// Allocator hands out manifest names that do not collide with files already in
// its directory. Uniqueness only holds for processes sharing the directory
// through one Allocator; it is not safe across hosts.
type Allocator struct {
	dir string
	mu  sync.Mutex
}

// NewAllocator returns an Allocator for dir.
func NewAllocator(dir string) *Allocator {
	return &Allocator{dir: dir}
}

// Path joins name onto the allocator directory.
func (a *Allocator) Path(name string) string {
	return filepath.Join(a.dir, name)
}

// Allocate reserves and returns the first free name for ts. The returned file
// exists and is empty; the caller owns it from here on.
func (a *Allocator) Allocate(ts time.Time) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for n := 0; ; n++ {
		name := Candidate(ts, n)
		ok, err := files.Reserve(a.Path(name))
		if err != nil {
			return "", fmt.Errorf("%w: %v", model.ErrFilesystem, err)
		}
		if ok {
			return name, nil
		}
	}
}
