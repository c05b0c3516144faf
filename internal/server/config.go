package server

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Addr         string `mapstructure:"addr"`
	WebDist      string `mapstructure:"web_dist"`
	MinPlayers   int    `mapstructure:"min_players"`
	FillWithBots bool   `mapstructure:"fill_with_bots"`
	// DealDelay is how long the dealing stage is shown before the auction
	// opens; TrickClearDelay is the presentation window between a trick
	// resolving and being cleared. Both are pacing only, never legality.
	DealDelay       time.Duration `mapstructure:"deal_delay"`
	TrickClearDelay time.Duration `mapstructure:"trick_clear_delay"`
	LogLevel        string        `mapstructure:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		WebDist:         "web/dist",
		MinPlayers:      4,
		FillWithBots:    true,
		DealDelay:       3 * time.Second,
		TrickClearDelay: 3500 * time.Millisecond,
		LogLevel:        "info",
	}
}

// LoadConfig reads a config file over the defaults. An empty path returns
// the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
