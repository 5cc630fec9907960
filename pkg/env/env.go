package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads KEY=VALUE pairs from the .env file at path into the process
// environment. Variables that are already set are left untouched, so the real
// environment always wins over the file. A missing file is not an error.
func Load(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// String returns the trimmed value of key, or def when unset or blank.
func String(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return def
}

// Int returns the value of key parsed as a base-10 integer, or def when unset
// or blank.
func Int(key string, def int) (int, error) {
	raw := String(key, "")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return n, nil
}

// Duration returns the value of key parsed with time.ParseDuration, or def
// when unset or blank. A bare integer is read as seconds.
func Duration(key string, def time.Duration) (time.Duration, error) {
	raw := String(key, "")
	if raw == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 30s, got %q", key, raw)
	}
	return d, nil
}
