package meshedit

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Editor  EditorConfig  `yaml:"editor" toml:"editor"`
}

type LoggingConfig struct {
	Prefix string `yaml:"prefix" toml:"prefix"`
	Debug  bool   `yaml:"debug" toml:"debug"`
}

type EditorConfig struct {
	// DefaultTool is the tool active after startup and after a document is closed.
	DefaultTool string `yaml:"default_tool" toml:"default_tool"`
	// DuplicateSuffix is appended to the name of a duplicated node.
	DuplicateSuffix string `yaml:"duplicate_suffix" toml:"duplicate_suffix"`
}

func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Prefix: "meshedit",
		},
		Editor: EditorConfig{
			DefaultTool:     ToolSelect.String(),
			DuplicateSuffix: " (copy)",
		},
	}
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) file over the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	cfg, err := ParseConfig(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func ParseConfig(data []byte, format string) (Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(err, "parse yaml")
		}
	case "toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(err, "parse toml")
		}
	default:
		return Config{}, errors.Errorf("unsupported config format %q", format)
	}
	if _, err := cfg.Tool(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Tool() (ToolType, error) {
	if c.Editor.DefaultTool == "" {
		return ToolSelect, nil
	}
	return ParseToolType(c.Editor.DefaultTool)
}

// Modules returns the modules that set up an editor from c.
func (c Config) Modules() []Module {
	tool, _ := c.Tool()
	return []Module{
		ConfigModule{Config: c},
		LoggingModule{Prefix: c.Logging.Prefix, Debug: c.Logging.Debug},
		HierarchyModule{DefaultTool: tool},
	}
}

// ConfigModule makes the configuration available as a resource.
type ConfigModule struct {
	Config Config
}

func (m ConfigModule) Install(app *App, cmd *Commands) {
	cfg := m.Config
	cmd.AddResources(&cfg)
}
