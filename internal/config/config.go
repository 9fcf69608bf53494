package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultReferenceName labels the ground-truth merge recorded in
	// version-control history when the config does not override it.
	DefaultReferenceName = "actual"

	// DefaultTrials is the number of timed executions per tool per scenario.
	DefaultTrials = 10
)

type Config struct {
	Tools         []Tool `yaml:"tools"`
	ReferenceName string `yaml:"reference_name"`
	DatasetDir    string `yaml:"dataset_dir"`
	ScenariosDir  string `yaml:"scenarios_dir"`
	OutputDir     string `yaml:"output_dir"`
	Trials        int    `yaml:"trials"`
	EnvFile       string `yaml:"env_file"`
}

// Tool describes one merge tool under benchmark. CommandTemplate is a
// whitespace-separated argument list with {placeholder} substitution; see
// template.go for the recognized names.
type Tool struct {
	Name            string `yaml:"name"`
	BinaryPath      string `yaml:"binary_path"`
	CommandTemplate string `yaml:"command_template"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.ReferenceName == "" {
		cfg.ReferenceName = DefaultReferenceName
	}
	if cfg.DatasetDir == "" {
		cfg.DatasetDir = "datasets"
	}
	if cfg.ScenariosDir == "" {
		cfg.ScenariosDir = "scenarios"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	if cfg.Trials == 0 {
		cfg.Trials = DefaultTrials
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.Tools) == 0 {
		return fmt.Errorf("no tools defined")
	}
	seen := make(map[string]bool, len(cfg.Tools))
	for i, t := range cfg.Tools {
		if t.Name == "" {
			return fmt.Errorf("tool %d: name is required", i)
		}
		if t.BinaryPath == "" {
			return fmt.Errorf("tool %q: binary_path is required", t.Name)
		}
		if t.CommandTemplate == "" {
			return fmt.Errorf("tool %q: command_template is required", t.Name)
		}
		if seen[t.Name] {
			return fmt.Errorf("tool %q: duplicate name", t.Name)
		}
		seen[t.Name] = true
		if t.Name == cfg.ReferenceName {
			return fmt.Errorf("tool %q: name collides with reference name", t.Name)
		}
		// Unknown placeholders abort the run here rather than surfacing
		// one substitution error per trial.
		for _, ph := range Placeholders(t.CommandTemplate) {
			if !knownPlaceholder[ph] {
				return fmt.Errorf("tool %q: unknown placeholder {%s} in command_template", t.Name, ph)
			}
		}
	}
	if cfg.Trials < 1 {
		return fmt.Errorf("trials must be at least 1")
	}
	return nil
}

// ToolNames returns the tool names in config order, which fixes the column
// order of every downstream table.
func (c *Config) ToolNames() []string {
	names := make([]string, len(c.Tools))
	for i, t := range c.Tools {
		names[i] = t.Name
	}
	return names
}

// LoadEnv loads env_file into the process environment so tool binaries see
// whatever variables they need (JAVA_HOME and the like).
func (c *Config) LoadEnv() error {
	if c.EnvFile == "" {
		return nil
	}
	if err := godotenv.Load(c.EnvFile); err != nil {
		return fmt.Errorf("loading env file %s: %w", c.EnvFile, err)
	}
	return nil
}
