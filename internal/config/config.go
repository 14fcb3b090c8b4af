// Package config provides YAML-based configuration loading for the game,
// the terminal UI and the SSH server.
package config

import "time"

// SokobanConfig contains all configuration for the Sokoban game.
type SokobanConfig struct {
	Playback PlaybackConfig `yaml:"playback"`
	Display  DisplayConfig  `yaml:"display"`
	Levels   LevelsConfig   `yaml:"levels"`
	Server   ServerConfig   `yaml:"server"`
	Runtime  RuntimeConfig  `yaml:"runtime"`
}

// PlaybackConfig defines auto-solve and replay timing.
type PlaybackConfig struct {
	IntervalMS int `yaml:"interval_ms"`
}

// Interval returns the delay between two demo steps.
func (p PlaybackConfig) Interval() time.Duration {
	return time.Duration(p.IntervalMS) * time.Millisecond
}

// DisplayConfig defines rendering options.
type DisplayConfig struct {
	ShowHints bool `yaml:"show_hints"`
}

// LevelsConfig defines where extra level files are loaded from.
type LevelsConfig struct {
	Dir string `yaml:"dir"` // Empty means built-in levels only
}

// ServerConfig defines the SSH server parameters.
type ServerConfig struct {
	Address        string `yaml:"address"`
	HostKey        string `yaml:"host_key"` // Empty means ~/.sokoban/host_key
	IdleTimeoutMin int    `yaml:"idle_timeout_min"`
}

// IdleTimeout returns the idle connection timeout.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMin) * time.Minute
}

// RuntimeConfig defines the UI loop parameters.
type RuntimeConfig struct {
	TickRate int `yaml:"tick_rate"`
}

// normalize replaces missing or invalid values with defaults.
func (c *SokobanConfig) normalize() {
	def := DefaultSokobanConfig()
	if c.Playback.IntervalMS <= 0 {
		c.Playback.IntervalMS = def.Playback.IntervalMS
	}
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.IdleTimeoutMin <= 0 {
		c.Server.IdleTimeoutMin = def.Server.IdleTimeoutMin
	}
	if c.Runtime.TickRate <= 0 {
		c.Runtime.TickRate = def.Runtime.TickRate
	}
}
