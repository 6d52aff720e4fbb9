package options

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const DefaultAppName = "imgsample"

// Config is the on-disk configuration for the command line tools.
type Config struct {
	// AppName namespaces saved files and the album directory.
	AppName string `yaml:"app_name"`

	// PicturesDir is the public pictures directory the album lives under.
	PicturesDir string `yaml:"pictures_dir"`

	// MaxWidth and MaxHeight are the bounds passed to LoadBounded. Zero on
	// both means load at full resolution.
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`

	// IndexFile, when set, receives the path of every saved image.
	IndexFile string `yaml:"index_file"`

	MaxPixels    int64  `yaml:"max_pixels"`
	Interpolator string `yaml:"interpolator"`
	LogLevel     string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		AppName:      DefaultAppName,
		PicturesDir:  DefaultPicturesDir(),
		MaxPixels:    DefaultMaxPixels,
		Interpolator: DefaultInterpolator,
		LogLevel:     log.InfoLevel.String(),
	}
}

// DefaultPicturesDir resolves the user's public pictures directory.
// XDG_PICTURES_DIR wins, then $HOME/Pictures, then ./Pictures.
func DefaultPicturesDir() string {
	if dir := os.Getenv("XDG_PICTURES_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "Pictures"
	}
	return filepath.Join(home, "Pictures")
}

// LoadConfig reads a YAML config file, layering it over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.AppName) == "" {
		return fmt.Errorf("app_name must not be empty")
	}
	if strings.ContainsAny(c.AppName, `/\`) {
		return fmt.Errorf("app_name %q must not contain path separators", c.AppName)
	}
	if c.PicturesDir == "" {
		return fmt.Errorf("pictures_dir must not be empty")
	}
	if c.MaxWidth < 0 || c.MaxHeight < 0 {
		return fmt.Errorf("max_width/max_height must not be negative, got %d x %d", c.MaxWidth, c.MaxHeight)
	}
	if (c.MaxWidth == 0) != (c.MaxHeight == 0) {
		return fmt.Errorf("max_width and max_height must be set together, got %d x %d", c.MaxWidth, c.MaxHeight)
	}
	if c.MaxPixels < 0 {
		return fmt.Errorf("max_pixels must not be negative, got %d", c.MaxPixels)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return c.DecoderOptions().Validate()
}

// Bounded reports whether loads should be downsampled to MaxWidth x MaxHeight.
func (c Config) Bounded() bool {
	return c.MaxWidth > 0 && c.MaxHeight > 0
}

func (c Config) DecoderOptions() *DecoderOptions {
	return NewDecoderOptions(&DecoderOptions{
		MaxPixels:    c.MaxPixels,
		Interpolator: c.Interpolator,
	})
}

// ApplyLogLevel sets the global logrus level from the config.
func (c Config) ApplyLogLevel() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}
