package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is wrapped by every configuration validation error
var ErrInvalid = errors.New("invalid configuration")

// Supported browser engines
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebkit   = "webkit"
)

// Timeouts bounds every wait performed by a scenario
type Timeouts struct {
	Action     time.Duration
	Navigation time.Duration
	Expect     time.Duration
	Poll       time.Duration
	Test       time.Duration
}

// Config is the immutable run configuration. Build it once with Load and pass
// it by value to whatever needs it.
type Config struct {
	BaseURL      string
	Browser      string
	Headless     bool
	SlowMo       time.Duration
	Screenshots  bool
	ArtifactsDir string
	LogLevel     string
	FixturesFile string
	Timeouts     Timeouts
	Fixtures     Fixtures
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		BaseURL:      "http://localhost:3000",
		Browser:      BrowserChromium,
		Headless:     true,
		Screenshots:  true,
		ArtifactsDir: "test-results",
		LogLevel:     "info",
		Timeouts: Timeouts{
			Action:     10 * time.Second,
			Navigation: 15 * time.Second,
			Expect:     5 * time.Second,
			Poll:       100 * time.Millisecond,
			Test:       30 * time.Second,
		},
		Fixtures: defaultFixtures(),
	}
}

// Load builds the configuration from defaults, the optional YAML fixture file
// named by AMAZONA_FIXTURES and finally individual environment variables.
func Load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := getenv("AMAZONA_FIXTURES"); path != "" {
		if err := LoadFixturesFile(path, &cfg.Fixtures); err != nil {
			return Config{}, err
		}
		cfg.FixturesFile = path
	}

	if v := getenv("BASE_URL"); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := getenv("USER_EMAIL"); v != "" {
		cfg.Fixtures.ValidUser.Email = v
	}
	if v := getenv("USER_PASSWORD"); v != "" {
		cfg.Fixtures.ValidUser.Password = v
		cfg.Fixtures.Profile.CurrentPassword = v
	}
	if v := getenv("BROWSER"); v != "" {
		cfg.Browser = strings.ToLower(v)
	}
	if v := getenv("HEADLESS"); v != "" {
		cfg.Headless = v != "false"
	}
	if v := getenv("SCREENSHOTS"); v != "" {
		cfg.Screenshots = v != "false"
	}
	if v := getenv("ARTIFACTS_DIR"); v != "" {
		cfg.ArtifactsDir = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	durations := []struct {
		key    string
		target *time.Duration
	}{
		{"SLOW_MO", &cfg.SlowMo},
		{"ACTION_TIMEOUT", &cfg.Timeouts.Action},
		{"NAVIGATION_TIMEOUT", &cfg.Timeouts.Navigation},
		{"EXPECT_TIMEOUT", &cfg.Timeouts.Expect},
		{"TEST_TIMEOUT", &cfg.Timeouts.Test},
	}
	for _, d := range durations {
		v := getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := parseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, d.key, err)
		}
		*d.target = parsed
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a run
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: BASE_URL %q is not an absolute URL", ErrInvalid, c.BaseURL)
	}
	switch c.Browser {
	case BrowserChromium, BrowserFirefox, BrowserWebkit:
	default:
		return fmt.Errorf("%w: unsupported browser %q", ErrInvalid, c.Browser)
	}
	if c.Timeouts.Action <= 0 || c.Timeouts.Navigation <= 0 || c.Timeouts.Expect <= 0 || c.Timeouts.Test <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalid)
	}
	if c.Timeouts.Poll <= 0 || c.Timeouts.Poll > c.Timeouts.Expect {
		return fmt.Errorf("%w: poll interval must be positive and below the expect timeout", ErrInvalid)
	}
	if c.Fixtures.ValidUser.Email == "" {
		return fmt.Errorf("%w: valid user email is empty", ErrInvalid)
	}
	return nil
}

// URL joins a path to the base URL
func (c Config) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path
}

// parseDuration accepts Go durations ("1.5s") and bare milliseconds ("1500")
func parseDuration(v string) (time.Duration, error) {
	if ms, err := strconv.Atoi(v); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("negative duration %q", v)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", v)
	}
	return d, nil
}
