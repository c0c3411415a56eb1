package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SPACEPONG_GAME_FPS.
const EnvPrefix = "SPACEPONG"

// Settings is the full runtime configuration.
type Settings struct {
	Game GameSettings `mapstructure:"game"`
	Log  LogSettings  `mapstructure:"log"`
	SSH  SSHSettings  `mapstructure:"ssh"`
	Web  WebSettings  `mapstructure:"web"`
}

// GameSettings configures a match.
type GameSettings struct {
	Variant    string `mapstructure:"variant"`    // "space" or "classic"
	Frontend   string `mapstructure:"frontend"`   // "tcell" or "ansi"
	FPS        int    `mapstructure:"fps"`        // Target ticks per second
	WinScore   int    `mapstructure:"win_score"`  // Points needed to win
	Difficulty string `mapstructure:"difficulty"` // easy, medium or hard
	Seed       uint64 `mapstructure:"seed"`       // 0 picks a random seed
	HoldMillis int    `mapstructure:"hold_ms"`    // Key hold window for terminals
}

// LogSettings configures the rotating log file.
type LogSettings struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSize    int    `mapstructure:"max_size"` // Megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // Days
	Compress   bool   `mapstructure:"compress"`
}

// SSHSettings configures the SSH server.
type SSHSettings struct {
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	HostKeyPath string `mapstructure:"host_key"`
	IdleTimeout int    `mapstructure:"idle_timeout"` // Seconds, 0 disables
}

// WebSettings configures the spectator server.
type WebSettings struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.variant", "space")
	v.SetDefault("game.frontend", "tcell")
	v.SetDefault("game.fps", 60)
	v.SetDefault("game.win_score", 11)
	v.SetDefault("game.difficulty", "medium")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.hold_ms", 60)

	v.SetDefault("log.file", "spacepong.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)

	v.SetDefault("ssh.host", "::")
	v.SetDefault("ssh.port", "2222")
	v.SetDefault("ssh.host_key", ".ssh/spacepong_ed25519")
	v.SetDefault("ssh.idle_timeout", 120)

	v.SetDefault("web.host", "0.0.0.0")
	v.SetDefault("web.port", "8080")
}

// Load reads settings from file, or from spacepong.yaml in the working
// directory or $HOME/.config/spacepong when file is empty. A missing default
// file is not an error; a missing explicit file is. Environment variables
// override both.
func Load(file string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("spacepong")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/spacepong")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate rejects settings the game cannot run with.
func (s *Settings) Validate() error {
	switch {
	case s.Game.FPS <= 0:
		return fmt.Errorf("config: game.fps must be positive, got %d", s.Game.FPS)
	case s.Game.WinScore <= 0:
		return fmt.Errorf("config: game.win_score must be positive, got %d", s.Game.WinScore)
	}
	switch s.Game.Variant {
	case "space", "classic":
	default:
		return fmt.Errorf("config: unknown game.variant %q", s.Game.Variant)
	}
	switch s.Game.Frontend {
	case "", "tcell", "ansi":
	default:
		return fmt.Errorf("config: unknown game.frontend %q", s.Game.Frontend)
	}
	switch strings.ToLower(s.Game.Difficulty) {
	case "easy", "medium", "hard":
	default:
		return fmt.Errorf("config: unknown game.difficulty %q", s.Game.Difficulty)
	}
	return nil
}
