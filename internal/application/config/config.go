package config

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"provpush/internal/domain/model"
	"provpush/pkg/env"
)

const (
	// defaultListenHost keeps the form reachable from the local host only.
	defaultListenHost = "127.0.0.1"
	// defaultAppsFile is the catalog rendered on the form.
	defaultAppsFile = "apps.json"
	// defaultWorkDir is where manifests are written before upload.
	defaultWorkDir = "."
	// defaultLogFile receives a copy of every log record, rotated daily.
	defaultLogFile = "app.log"
	// defaultLogLevel is used when LOG_LEVEL is not set.
	defaultLogLevel = "info"
	// defaultSFTPTimeout bounds one upload.
	defaultSFTPTimeout = 30 * time.Second
	// defaultShutdownTimeout bounds the graceful HTTP shutdown.
	defaultShutdownTimeout = 10 * time.Second
)

// Config holds the process configuration. It is read once at startup.
type Config struct {
	// SecretKey signs the flash message cookie.
	SecretKey string
	// ListenHost and ListenPort form the HTTP listen address.
	ListenHost string
	ListenPort int
	// GRPCHealthPort serves grpc.health.v1 when non-zero.
	GRPCHealthPort int

	SFTPHost       string
	SFTPPort       int
	SFTPUsername   string
	SFTPKeyPath    string
	SFTPPassphrase string
	SFTPRemotePath string
	// SFTPKnownHosts enables host key verification when set.
	SFTPKnownHosts string
	SFTPTimeout    time.Duration

	// AppsFile is the JSON or YAML catalog path.
	AppsFile string
	// WorkDir is where manifests are staged before upload.
	WorkDir string
	// LogFile is the rotated log file; empty disables file logging.
	LogFile  string
	LogLevel string

	ShutdownTimeout time.Duration
}

// required lists the variables that have no default.
var required = []string{
	"SECRET_KEY",
	"SFTP_HOST",
	"SFTP_PORT",
	"SFTP_USERNAME",
	"SFTP_KEY_PATH",
	"SFTP_REMOTE_PATH",
	"FLASK_PORT",
}

// LoadConfig loads envFile (if present) into the environment and builds the
// configuration from environment variables. Every missing or malformed
// variable is reported in the returned error.
func LoadConfig(envFile string) (*Config, error) {
	if err := env.Load(envFile); err != nil {
		return nil, err
	}

	var errs []error
	var missing []string
	for _, key := range required {
		if env.String(key, "") == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", ")))
	}

	cfg := &Config{
		SecretKey:      env.String("SECRET_KEY", ""),
		ListenHost:     env.String("LISTEN_HOST", ""),
		SFTPHost:       env.String("SFTP_HOST", ""),
		SFTPUsername:   env.String("SFTP_USERNAME", ""),
		SFTPKeyPath:    env.String("SFTP_KEY_PATH", ""),
		SFTPPassphrase: env.String("SFTP_KEY_PASSPHRASE", ""),
		SFTPRemotePath: env.String("SFTP_REMOTE_PATH", ""),
		SFTPKnownHosts: env.String("SFTP_KNOWN_HOSTS", ""),
		AppsFile:       env.String("APPS_FILE", ""),
		WorkDir:        env.String("WORK_DIR", ""),
		LogFile:        env.String("LOG_FILE", defaultLogFile),
		LogLevel:       env.String("LOG_LEVEL", ""),
	}

	var err error
	if cfg.SFTPPort, err = env.Int("SFTP_PORT", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.ListenPort, err = env.Int("FLASK_PORT", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.GRPCHealthPort, err = env.Int("GRPC_HEALTH_PORT", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.SFTPTimeout, err = env.Duration("SFTP_TIMEOUT", 0); err != nil {
		errs = append(errs, err)
	}
	if strings.EqualFold(cfg.LogFile, "off") || cfg.LogFile == "-" {
		cfg.LogFile = ""
	}

	prepareConfig(cfg)

	if err := validatePort("SFTP_PORT", cfg.SFTPPort, len(missing) > 0); err != nil {
		errs = append(errs, err)
	}
	if err := validatePort("FLASK_PORT", cfg.ListenPort, len(missing) > 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.GRPCHealthPort != 0 {
		if err := validatePort("GRPC_HEALTH_PORT", cfg.GRPCHealthPort, false); err != nil {
			errs = append(errs, err)
		}
	}
	if cfg.SFTPTimeout < 0 {
		errs = append(errs, errors.New("SFTP_TIMEOUT must not be negative"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// prepareConfig applies defaults for optional fields.
func prepareConfig(cfg *Config) {
	if cfg.ListenHost == "" {
		cfg.ListenHost = defaultListenHost
	}
	if cfg.AppsFile == "" {
		cfg.AppsFile = defaultAppsFile
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = defaultWorkDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.SFTPTimeout == 0 {
		cfg.SFTPTimeout = defaultSFTPTimeout
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
}

// validatePort checks p is a usable TCP port. A zero port whose variable was
// already reported missing is not reported twice.
func validatePort(key string, p int, missingReported bool) error {
	if p == 0 && missingReported {
		return nil
	}
	if p < 1 || p > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", key, p)
	}
	return nil
}

// GetListenAddress returns the HTTP listen address.
func (c *Config) GetListenAddress() string {
	return net.JoinHostPort(c.ListenHost, strconv.Itoa(c.ListenPort))
}

// GetGRPCHealthAddress returns the gRPC health listen address, or "" when
// the health server is disabled.
func (c *Config) GetGRPCHealthAddress() string {
	if c.GRPCHealthPort == 0 {
		return ""
	}
	return net.JoinHostPort(c.ListenHost, strconv.Itoa(c.GRPCHealthPort))
}

// GetUploadTarget returns the SFTP destination.
func (c *Config) GetUploadTarget() model.UploadTarget {
	return model.UploadTarget{
		Host:      c.SFTPHost,
		Port:      c.SFTPPort,
		Username:  c.SFTPUsername,
		KeyPath:   c.SFTPKeyPath,
		RemoteDir: c.SFTPRemotePath,
	}
}

// GetWorkDir returns the absolute staging directory when it can be resolved.
func (c *Config) GetWorkDir() string {
	if abs, err := filepath.Abs(c.WorkDir); err == nil {
		return abs
	}
	return c.WorkDir
}
