package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/sortsound/internal/sorting"
)

const (
	WindowWidth  = 800
	WindowHeight = 600
	WindowTitle  = "sortsound - Space: pause, N: next, M: mute, Esc/Q: quit"

	BarWidth = 6
	BarGap   = 2

	StepsPerSecond = 20
	RestDuration   = time.Second

	// Audio
	SampleRate    = 48000 / 2
	TableSize     = 64
	BaseFrequency = 440.0
	Volume        = 0.1

	// Oscilloscope
	VisualRingSize  = 4096
	ScopeSamples    = 512
	ScopeWidth      = 200
	ScopeHeight     = 60
	ColorShiftSpeed = 0.01
)

// DefaultFile is read when no --config flag is given.
const DefaultFile = "sortsound.yaml"

var (
	ValidWaveforms  = []string{"sine", "square", "triangle", "sawtooth"}
	ValidLogLevels  = []string{"debug", "info", "warn", "error"}
	DefaultSequence = []string{"counting", "comb", "cocktail"}
)

// Config holds all sortsound configuration.
type Config struct {
	Window     WindowConfig   `yaml:"window"`
	Bars       BarsConfig     `yaml:"bars"`
	Playback   PlaybackConfig `yaml:"playback"`
	Audio      AudioConfig    `yaml:"audio"`
	Algorithms []string       `yaml:"algorithms"`
	Logging    LoggingConfig  `yaml:"logging"`

	// Seed for the shuffle; 0 picks a random one.
	Seed uint64 `yaml:"seed"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type BarsConfig struct {
	Width int `yaml:"width"`
	Gap   int `yaml:"gap"`
}

type PlaybackConfig struct {
	StepsPerSecond int           `yaml:"steps_per_second"`
	Rest           time.Duration `yaml:"rest"`
}

type AudioConfig struct {
	SampleRate    int     `yaml:"sample_rate"`
	TableSize     int     `yaml:"table_size"`
	Waveform      string  `yaml:"waveform"`
	WavetableFile string  `yaml:"wavetable_file"`
	BaseFrequency float64 `yaml:"base_frequency"`
	Volume        float64 `yaml:"volume"`
	Muted         bool    `yaml:"muted"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the classic setup: a 800x600 window,
// 100 bars six pixels wide and twenty steps a second.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
		},
		Bars: BarsConfig{
			Width: BarWidth,
			Gap:   BarGap,
		},
		Playback: PlaybackConfig{
			StepsPerSecond: StepsPerSecond,
			Rest:           RestDuration,
		},
		Audio: AudioConfig{
			SampleRate:    SampleRate,
			TableSize:     TableSize,
			Waveform:      "sine",
			BaseFrequency: BaseFrequency,
			Volume:        Volume,
		},
		Algorithms: append([]string(nil), DefaultSequence...),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SORTSOUND_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = seed
		}
	}
	if v := os.Getenv("SORTSOUND_MUTE"); v != "" {
		if muted, err := strconv.ParseBool(v); err == nil {
			c.Audio.Muted = muted
		}
	}
	if v := os.Getenv("SORTSOUND_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// BarCount is the number of bars drawn; each bar's height is a multiple
// of the bar width so the tallest one fills the window.
func (c *Config) BarCount() int {
	if c.Bars.Width <= 0 {
		return 0
	}
	return c.Window.Height / c.Bars.Width
}

// StepDuration is how long one sort step (and its tone) lasts.
func (c *Config) StepDuration() time.Duration {
	return time.Second / time.Duration(c.Playback.StepsPerSecond)
}

// RestSteps converts the rest between sorts into ticks.
func (c *Config) RestSteps() int {
	return int(c.Playback.Rest / c.StepDuration())
}

// Validate checks that the configuration describes a drawable, audible setup.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Bars.Width <= 0 || c.Bars.Gap < 0 {
		return fmt.Errorf("invalid bar geometry: width=%d gap=%d", c.Bars.Width, c.Bars.Gap)
	}
	if need := c.BarCount() * (c.Bars.Width + c.Bars.Gap); need > c.Window.Width+c.Bars.Gap {
		return fmt.Errorf("%d bars need %dpx but window is %dpx wide", c.BarCount(), need, c.Window.Width)
	}
	if c.Playback.StepsPerSecond <= 0 {
		return fmt.Errorf("steps_per_second must be positive, got %d", c.Playback.StepsPerSecond)
	}
	if c.Playback.Rest < 0 {
		return fmt.Errorf("rest must not be negative, got %s", c.Playback.Rest)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Audio.TableSize < 2 {
		return fmt.Errorf("table_size must be at least 2, got %d", c.Audio.TableSize)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("volume must be within [0,1], got %g", c.Audio.Volume)
	}
	if c.Audio.BaseFrequency <= 0 {
		return fmt.Errorf("base_frequency must be positive, got %g", c.Audio.BaseFrequency)
	}
	if top := c.Audio.BaseFrequency + float64(c.Window.Height); top*2 > float64(c.Audio.SampleRate) {
		return fmt.Errorf("highest tone %.0fHz is above the Nyquist limit of %dHz", top, c.Audio.SampleRate/2)
	}
	if c.Audio.WavetableFile == "" && !slices.Contains(ValidWaveforms, c.Audio.Waveform) {
		return fmt.Errorf("invalid waveform: %s (valid: %v)", c.Audio.Waveform, ValidWaveforms)
	}
	if len(c.Algorithms) == 0 {
		return fmt.Errorf("no algorithms configured")
	}
	if _, err := sorting.LookupAll(c.Algorithms); err != nil {
		return err
	}
	if !slices.Contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	return nil
}
