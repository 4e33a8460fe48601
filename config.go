package canopy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-loadable configuration of an EventSystem and its
// modules.
//
//	pixel_drag_threshold: 8
//	send_navigation_events: true
//	sorting_layers:
//	  3: 10
//	standalone:
//	  repeat_delay: 0.4
//	keys:
//	  axes:
//	    Horizontal: {negative: [ArrowLeft], positive: [ArrowRight]}
type Config struct {
	PixelDragThreshold   float64 `yaml:"pixel_drag_threshold"`
	SendNavigationEvents bool    `yaml:"send_navigation_events"`
	Debug                bool    `yaml:"debug"`
	// SortingLayers maps a sorting layer id to its draw order.
	SortingLayers map[int]int      `yaml:"sorting_layers"`
	Standalone    StandaloneConfig `yaml:"standalone"`
	Keys          KeyBindings      `yaml:"keys"`
}

// DefaultConfig returns the configuration NewEventSystem and
// DefaultStandaloneConfig start from.
func DefaultConfig() Config {
	return Config{
		PixelDragThreshold:   DefaultPixelDragThreshold,
		SendNavigationEvents: true,
		Standalone:           DefaultStandaloneConfig(),
		Keys:                 DefaultKeyBindings(),
	}
}

// LoadConfig parses YAML over DefaultConfig. Fields absent from data keep
// their defaults.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("canopy: parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("canopy: parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads and parses the YAML file at path.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("canopy: read config: %w", err)
	}
	return LoadConfig(data)
}

func (c *Config) validate() error {
	switch {
	case c.PixelDragThreshold < 0:
		return fmt.Errorf("pixel_drag_threshold must be >= 0, got %v", c.PixelDragThreshold)
	case c.Standalone.InputActionsPerSecond <= 0:
		return fmt.Errorf("input_actions_per_second must be > 0, got %v", c.Standalone.InputActionsPerSecond)
	case c.Standalone.RepeatDelay < 0:
		return fmt.Errorf("repeat_delay must be >= 0, got %v", c.Standalone.RepeatDelay)
	case c.Standalone.MoveDeadZone < 0:
		return fmt.Errorf("move_dead_zone must be >= 0, got %v", c.Standalone.MoveDeadZone)
	}
	return nil
}

// ApplyConfig applies cfg to the system and to every registered module:
// standalone modules take cfg.Standalone and modules reading from an
// EbitenInput have their keys rebound.
func (s *EventSystem) ApplyConfig(cfg Config) error {
	s.PixelDragThreshold = cfg.PixelDragThreshold
	s.SendNavigationEvents = cfg.SendNavigationEvents
	s.SetDebugMode(cfg.Debug)

	s.SortingLayers = SortingLayers{}
	for id, order := range cfg.SortingLayers {
		s.SortingLayers.SetOrder(id, order)
	}

	for _, m := range s.modules {
		if sm, ok := m.(interface{ ApplyConfig(StandaloneConfig) }); ok {
			sm.ApplyConfig(cfg.Standalone)
		}
		im, ok := m.(interface{ Input() Input })
		if !ok {
			continue
		}
		if ei, ok := im.Input().(*EbitenInput); ok {
			if err := ei.Rebind(cfg.Keys); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *EventSystem) applyPendingConfig() {
	if s.pendingCfgs == nil {
		return
	}
	for {
		select {
		case cfg := <-s.pendingCfgs:
			if err := s.ApplyConfig(cfg); err != nil {
				s.logger.Printf("error: reload config: %v", err)
			} else if s.debug {
				s.logger.Printf("config reloaded")
			}
		default:
			return
		}
	}
}
