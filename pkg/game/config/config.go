// Package config holds the application configuration: logging, the
// settings file, host window and tick rate, controller tuning and the
// default key bindings.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"actionmap/pkg/engine/input"
	"actionmap/pkg/engine/input/key"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Backends accepted by host.backend.
const (
	BackendEbiten = "ebiten"
	BackendTUI    = "tui"
)

type Config struct {
	Logging        LoggingConfig  `yaml:"logging"`
	Settings       SettingsConfig `yaml:"settings"`
	Host           HostConfig     `yaml:"host"`
	Camera         CameraConfig   `yaml:"camera"`
	Player         PlayerConfig   `yaml:"player"`
	Bindings       []Binding      `yaml:"bindings"`
	StaticBindings []Binding      `yaml:"static_bindings"`
}

// LoggingConfig selects the log level and format. File redirects the log
// away from stderr, which the terminal host draws over.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// SettingsConfig locates the persisted bindings. The extension of Path
// selects the store format.
type SettingsConfig struct {
	Path        string `yaml:"path"`
	SaveChanges bool   `yaml:"save_changes"`
}

type HostConfig struct {
	Backend  string       `yaml:"backend"`
	TickRate int          `yaml:"tick_rate"`
	Window   WindowConfig `yaml:"window"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type CameraConfig struct {
	MaxPitch float64 `yaml:"max_pitch"`
}

type PlayerConfig struct {
	Speed         float64 `yaml:"speed"`
	RunMultiplier float64 `yaml:"run_multiplier"`
}

// Binding names an action and its key names. AltKey may be empty.
type Binding struct {
	Name   string `yaml:"name"`
	Key    string `yaml:"key"`
	AltKey string `yaml:"alt_key,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Settings: SettingsConfig{
			Path:        "bindings.yaml",
			SaveChanges: true,
		},
		Host: HostConfig{
			Backend:  BackendEbiten,
			TickRate: 60,
			Window:   WindowConfig{Width: 960, Height: 540, Title: "Action Map"},
		},
		Camera: CameraConfig{MaxPitch: 80},
		Player: PlayerConfig{Speed: 5, RunMultiplier: 2},
		Bindings: []Binding{
			{Name: "Move Forward", Key: "W"},
			{Name: "Move Back", Key: "S"},
			{Name: "Move Left", Key: "A"},
			{Name: "Move Right", Key: "D"},
			{Name: "Run", Key: "LeftShift"},
		},
		StaticBindings: []Binding{
			{Name: "Escape", Key: "Escape"},
			{Name: "Menu Up", Key: "UpArrow"},
			{Name: "Menu Down", Key: "DownArrow"},
			{Name: "Menu Left", Key: "LeftArrow"},
			{Name: "Menu Right", Key: "RightArrow"},
			{Name: "Menu Select", Key: "Return"},
			{Name: "Menu Clear", Key: "Delete"},
			{Name: "Sensitivity Up", Key: "Equals"},
			{Name: "Sensitivity Down", Key: "Minus"},
		},
	}
}

// Load reads path over the defaults. Lists in the file replace the default
// lists rather than merging with them.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the host section and every binding's key names.
func (c *Config) Validate() error {
	switch c.Host.Backend {
	case BackendEbiten, BackendTUI:
	default:
		return fmt.Errorf("%w: host.backend %q", ErrInvalid, c.Host.Backend)
	}
	if c.Host.TickRate <= 0 {
		return fmt.Errorf("%w: host.tick_rate must be positive", ErrInvalid)
	}
	if c.Camera.MaxPitch < 0 || c.Camera.MaxPitch > 90 {
		return fmt.Errorf("%w: camera.max_pitch %v out of [0, 90]", ErrInvalid, c.Camera.MaxPitch)
	}
	for _, list := range [][]Binding{c.Bindings, c.StaticBindings} {
		for _, b := range list {
			if b.Name == "" {
				return fmt.Errorf("%w: binding without a name", ErrInvalid)
			}
			if _, _, err := b.keys(); err != nil {
				return fmt.Errorf("%w: binding %q: %w", ErrInvalid, b.Name, err)
			}
		}
	}
	return nil
}

// TickInterval converts the tick rate to a ticker period.
func (c *Config) TickInterval() time.Duration {
	if c.Host.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Host.TickRate)
}

// Register creates the configured actions in reg, static ones first.
// Names already present in reg are left alone by the registry. Rebindable
// keys are assigned with SetActionKey, so a key listed twice ends up on the
// later action only.
func (c *Config) Register(reg *input.Registry) error {
	for _, b := range c.StaticBindings {
		k, _, err := b.keys()
		if err != nil {
			return fmt.Errorf("static binding %q: %w", b.Name, err)
		}
		reg.CreateStaticAction(b.Name, k)
	}
	for _, b := range c.Bindings {
		k, alt, err := b.keys()
		if err != nil {
			return fmt.Errorf("binding %q: %w", b.Name, err)
		}
		if _, created := reg.CreateAction(b.Name, key.None); created {
			reg.SetActionKey(b.Name, k, input.Primary)
			reg.SetActionKey(b.Name, alt, input.Alternate)
		}
	}
	return nil
}

func (b Binding) keys() (key.Key, key.Key, error) {
	k, err := key.Parse(b.Key)
	if err != nil {
		return key.None, key.None, err
	}
	alt, err := key.Parse(b.AltKey)
	if err != nil {
		return key.None, key.None, err
	}
	return k, alt, nil
}
