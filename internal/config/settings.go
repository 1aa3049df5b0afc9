package config

import "time"

const (
	DefaultTeamSize        = 3
	DefaultAutoBattleDelay = 1500
	DefaultAddr            = ":8080"
)

type Settings struct {
	Server     ServerConfig     `yaml:"server"`
	Pacing     PacingConfig     `yaml:"pacing"`
	AutoBattle AutoBattleConfig `yaml:"auto_battle"`
	TeamSize   int              `yaml:"team_size"`
	Seed       int64            `yaml:"seed"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	SessionTTLMin  int      `yaml:"session_ttl_min"`
}

// PacingConfig holds the pauses (ms) between perceptible battle beats.
type PacingConfig struct {
	Command     int `yaml:"command"`
	Attack      int `yaml:"attack"`
	Hit         int `yaml:"hit"`
	Status      int `yaml:"status"`
	Faint       int `yaml:"faint"`
	SwitchOut   int `yaml:"switch_out"`
	SwitchIn    int `yaml:"switch_in"`
	TurnHandoff int `yaml:"turn_handoff"`
	GameOver    int `yaml:"game_over"`
}

type AutoBattleConfig struct {
	DelayMs int `yaml:"delay_ms"`
}

func (a AutoBattleConfig) Delay() time.Duration {
	return time.Duration(a.DelayMs) * time.Millisecond
}

func (s ServerConfig) SessionTTL() time.Duration {
	return time.Duration(s.SessionTTLMin) * time.Minute
}

// DefaultPacing mirrors the timings the game was tuned with.
func DefaultPacing() PacingConfig {
	return PacingConfig{
		Command: 100, Attack: 500, Hit: 500, Status: 1000, Faint: 1500,
		SwitchOut: 500, SwitchIn: 700, TurnHandoff: 1500, GameOver: 1500,
	}
}

func DefaultSettings() *Settings {
	s := &Settings{}
	s.applyDefaults()
	return s
}

func LoadSettings(path string) (*Settings, error) {
	var s Settings
	if err := loadYAML(path, &s); err != nil {
		return nil, err
	}
	s.applyDefaults()
	return &s, nil
}

func (s *Settings) applyDefaults() {
	if s.Server.Addr == "" {
		s.Server.Addr = DefaultAddr
	}
	if s.Server.SessionTTLMin == 0 {
		s.Server.SessionTTLMin = 60
	}
	if s.Pacing == (PacingConfig{}) {
		s.Pacing = DefaultPacing()
	}
	if s.AutoBattle.DelayMs == 0 {
		s.AutoBattle.DelayMs = DefaultAutoBattleDelay
	}
	if s.TeamSize == 0 {
		s.TeamSize = DefaultTeamSize
	}
}
