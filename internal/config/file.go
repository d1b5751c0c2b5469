package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFixturesFile overlays the fixtures found in a YAML file onto f. Keys
// missing from the file keep their current values.
func LoadFixturesFile(path string, f *Fixtures) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read fixtures file: %v", ErrInvalid, err)
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return fmt.Errorf("%w: parse fixtures file %s: %v", ErrInvalid, path, err)
	}
	return nil
}

// MarshalYAML renders the resolved configuration for display
func (c Config) MarshalYAML() (interface{}, error) {
	return struct {
		BaseURL      string   `yaml:"baseURL"`
		Browser      string   `yaml:"browser"`
		Headless     bool     `yaml:"headless"`
		SlowMo       string   `yaml:"slowMo"`
		Screenshots  bool     `yaml:"screenshots"`
		ArtifactsDir string   `yaml:"artifactsDir"`
		LogLevel     string   `yaml:"logLevel"`
		FixturesFile string   `yaml:"fixturesFile,omitempty"`
		Timeouts     []string `yaml:"timeouts"`
		Fixtures     Fixtures `yaml:"fixtures"`
	}{
		BaseURL:      c.BaseURL,
		Browser:      c.Browser,
		Headless:     c.Headless,
		SlowMo:       c.SlowMo.String(),
		Screenshots:  c.Screenshots,
		ArtifactsDir: c.ArtifactsDir,
		LogLevel:     c.LogLevel,
		FixturesFile: c.FixturesFile,
		Timeouts: []string{
			"action=" + c.Timeouts.Action.String(),
			"navigation=" + c.Timeouts.Navigation.String(),
			"expect=" + c.Timeouts.Expect.String(),
			"poll=" + c.Timeouts.Poll.String(),
			"test=" + c.Timeouts.Test.String(),
		},
		Fixtures: c.Fixtures,
	}, nil
}
