package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/moodle2pdf/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// MaxInputSize limits config input to prevent memory exhaustion (1MB).
const MaxInputSize = 1 << 20

// Field length limits.
const (
	MaxPathLength       = 4096
	MaxCookieNameLength = 128
	MaxMarkerLength     = 8
	MaxDirectiveLength  = 64
)

// Accepted enumerations.
const (
	EngineRod      = "rod"
	EngineChromedp = "chromedp"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// appDirName is the directory searched under the user config dir.
const appDirName = "moodle2pdf"

// Config holds all configuration for an export run.
type Config struct {
	Workers    int              `yaml:"workers"` // 0 = 2 x CPUs
	Timeout    string           `yaml:"timeout"` // per attempt, e.g. "90s"; empty or "0" = none
	Output     OutputConfig     `yaml:"output"`
	Report     ReportConfig     `yaml:"report"`
	Directives DirectivesConfig `yaml:"directives"`
	Session    SessionConfig    `yaml:"session"`
	Browser    BrowserConfig    `yaml:"browser"`
}

// OutputConfig defines where PDFs go.
type OutputConfig struct {
	Dir      string `yaml:"dir"`      // root; one subdirectory per quiz
	Validate bool   `yaml:"validate"` // parse each PDF before writing it
}

// ReportConfig defines the persisted stats report.
type ReportConfig struct {
	Path   string `yaml:"path"`   // empty = no report
	Format string `yaml:"format"` // "json" or "yaml"
}

// DirectivesConfig defines directive file parsing.
type DirectivesConfig struct {
	CommentMarker string   `yaml:"commentMarker"`
	Ignore        []string `yaml:"ignore"` // dropped at parse time
}

// SessionConfig defines authentication forwarding.
type SessionConfig struct {
	CookieName string `yaml:"cookieName"`
}

// BrowserConfig defines the headless browser.
type BrowserConfig struct {
	Engine  string `yaml:"engine"`  // "rod" or "chromedp"
	Bin     string `yaml:"bin"`     // empty = engine lookup
	Sandbox bool   `yaml:"sandbox"` // Chrome sandbox; off by default
	Stealth bool   `yaml:"stealth"` // rod only
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Workers: 0,
		Timeout: "",
		Output:  OutputConfig{Dir: "output"},
		Report:  ReportConfig{Path: "stats.json", Format: FormatJSON},
		Directives: DirectivesConfig{
			CommentMarker: "#",
			Ignore:        []string{"save-text"},
		},
		Session: SessionConfig{CookieName: "MoodleSession"},
		Browser: BrowserConfig{Engine: EngineRod},
	}
}

// TimeoutDuration parses Timeout. Empty means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout: %v", ErrInvalidValue, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: timeout: must not be negative, got %s", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// Validate checks values and field lengths.
// Called automatically by LoadConfig, but available for callers that
// build a Config by hand or merge flags into one.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers: must be >= 0, got %d", ErrInvalidValue, c.Workers)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("%w: output.dir: required", ErrInvalidValue)
	}

	if err := validateFieldLength("report.path", c.Report.Path, MaxPathLength); err != nil {
		return err
	}
	switch strings.ToLower(c.Report.Format) {
	case "", FormatJSON, FormatYAML:
		// valid
	default:
		return fmt.Errorf("%w: report.format: %q (must be json or yaml)", ErrInvalidValue, c.Report.Format)
	}

	if err := validateFieldLength("directives.commentMarker", c.Directives.CommentMarker, MaxMarkerLength); err != nil {
		return err
	}
	for i, name := range c.Directives.Ignore {
		if err := validateFieldLength(fmt.Sprintf("directives.ignore[%d]", i), name, MaxDirectiveLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("session.cookieName", c.Session.CookieName, MaxCookieNameLength); err != nil {
		return err
	}
	if c.Session.CookieName == "" || strings.ContainsAny(c.Session.CookieName, "=; \t") {
		return fmt.Errorf("%w: session.cookieName: %q", ErrInvalidValue, c.Session.CookieName)
	}

	switch strings.ToLower(c.Browser.Engine) {
	case "", EngineRod, EngineChromedp:
		// valid
	default:
		return fmt.Errorf("%w: browser.engine: %q (must be rod or chromedp)", ErrInvalidValue, c.Browser.Engine)
	}
	if err := validateFieldLength("browser.bin", c.Browser.Bin, MaxPathLength); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decodeStrict rejects unknown fields and oversized input.
func decodeStrict(data []byte, v any) error {
	if len(data) == 0 {
		return errors.New("empty config")
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("input exceeds maximum size: %d bytes (max %d)", len(data), MaxInputSize)
	}
	return yaml.UnmarshalWithOptions(data, v, yaml.Strict())
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the files tried for a config name, in order:
// current directory, then ~/.config/moodle2pdf/, each with .yaml and .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
