package config

import (
	_ "embed"
)

//go:embed defaults/sokoban.yaml
var defaultSokobanYAML []byte

// DefaultSokobanConfig returns the default Sokoban configuration.
func DefaultSokobanConfig() SokobanConfig {
	return SokobanConfig{
		Playback: PlaybackConfig{
			IntervalMS: 200,
		},
		Display: DisplayConfig{
			ShowHints: false,
		},
		Levels: LevelsConfig{
			Dir: "",
		},
		Server: ServerConfig{
			Address:        ":23235",
			HostKey:        "",
			IdleTimeoutMin: 30,
		},
		Runtime: RuntimeConfig{
			TickRate: 30,
		},
	}
}
