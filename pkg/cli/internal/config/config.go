package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file
const FileName = "scc.yaml"

// Config represents the scc.yaml configuration
type Config struct {
	// Page title; defaults to the root component name
	Title string `yaml:"title,omitempty"`

	// Page language attribute
	Lang string `yaml:"lang,omitempty"`

	// Output directory
	Output string `yaml:"output,omitempty"`

	// Components selects and orders the non-root components by name.
	// Empty means every component the application registers.
	Components []string `yaml:"components,omitempty"`

	// Inline embeds CSS, runtime and factories in index.html
	Inline bool `yaml:"inline,omitempty"`

	// ComponentsPath is where factory scripts are written, relative to Output
	ComponentsPath string `yaml:"components_path,omitempty"`

	// Verify runs join-key verification after every build
	Verify bool `yaml:"verify,omitempty"`

	// Styles are YAML style sheets merged into styles.css
	Styles []string `yaml:"styles,omitempty"`

	// Scripts are JavaScript files copied to the output and loaded by the page
	Scripts []string `yaml:"scripts,omitempty"`

	// Minify configuration
	Minify *MinifyConfig `yaml:"minify,omitempty"`

	// Development server configuration
	Dev *DevConfig `yaml:"dev,omitempty"`
}

// MinifyConfig configures the external minifier
type MinifyConfig struct {
	// Command line run per artifact; "{kind}" expands to html, js or css
	Command string `yaml:"command,omitempty"`

	// Kinds limits the artifacts passed to the command
	Kinds []string `yaml:"kinds,omitempty"`
}

// DevConfig contains development server configuration
type DevConfig struct {
	// Server port
	Port int `yaml:"port,omitempty"`

	// Server host
	Host string `yaml:"host,omitempty"`

	// Paths watched for changes
	Watch []string `yaml:"watch,omitempty"`

	// Rebuild is run through the shell instead of the in-process build
	// when watched files change, such as "go run ./cmd/site build". Empty
	// rebuilds in process, which picks up style sheets, scripts and
	// scc.yaml but not Go sources.
	Rebuild string `yaml:"rebuild,omitempty"`
}

// Load loads configuration from scc.yaml in projectPath. A missing file
// yields the defaults.
func Load(projectPath string) (*Config, error) {
	configPath := filepath.Join(projectPath, FileName)

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%s: %w", FileName, err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", FileName, err)
	}
	return &config, nil
}

// Save saves configuration to scc.yaml
func Save(config *Config, projectPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectPath, FileName), data, 0644)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Lang:           "en",
		Output:         "dist",
		ComponentsPath: "components/",
		Dev: &DevConfig{
			Port:  8080,
			Host:  "localhost",
			Watch: []string{"app", FileName},
		},
	}
}

// applyDefaults applies default values to missing configuration
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Lang == "" {
		config.Lang = defaults.Lang
	}
	if config.Output == "" {
		config.Output = defaults.Output
	}
	if config.ComponentsPath == "" {
		config.ComponentsPath = defaults.ComponentsPath
	}

	if config.Dev == nil {
		config.Dev = defaults.Dev
	} else {
		if config.Dev.Port == 0 {
			config.Dev.Port = defaults.Dev.Port
		}
		if config.Dev.Host == "" {
			config.Dev.Host = defaults.Dev.Host
		}
		if len(config.Dev.Watch) == 0 {
			config.Dev.Watch = defaults.Dev.Watch
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Dev != nil && (c.Dev.Port < 0 || c.Dev.Port > 65535) {
		return fmt.Errorf("dev.port %d out of range", c.Dev.Port)
	}
	if c.Minify != nil {
		for _, k := range c.Minify.Kinds {
			switch k {
			case "html", "js", "css":
			default:
				return fmt.Errorf("minify.kinds: unknown kind %q", k)
			}
		}
	}
	seen := make(map[string]bool, len(c.Components))
	for _, name := range c.Components {
		if seen[name] {
			return fmt.Errorf("components: %s listed twice", name)
		}
		seen[name] = true
	}
	return nil
}

// Addr returns the dev server listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Dev.Host, c.Dev.Port)
}
