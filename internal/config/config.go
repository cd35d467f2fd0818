// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token       string  `yaml:"token"`
	Mode        string  `yaml:"mode"` // polling | webhook (future)
	Username    string  `yaml:"username"`
	Workers     int     `yaml:"workers"`      // update dispatch width; 1 keeps event handling sequential
	OperatorIDs []int64 `yaml:"operator_ids"` // chats allowed to manage patterns; alerts go to all of them
}

type MonitorConfig struct {
	Channel         string `yaml:"channel"`          // monitored channel username, leading @ optional
	AppointmentHint string `yaml:"appointment_hint"` // regexp gate before matching; default recognizes appointment posts
	DisableHint     bool   `yaml:"disable_hint"`     // pass every post to matching regardless of the hint
	CombineAlerts   bool   `yaml:"combine_alerts"`   // single alert naming all matched patterns instead of one per match
}

type StoreConfig struct {
	Path            string   `yaml:"path"`             // patterns file, rewritten wholesale on every mutation
	DefaultPatterns []string `yaml:"default_patterns"` // fallback list when the file is absent/unreadable/empty
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type RedisConfig struct {
	URL      string `yaml:"url"` // empty disables command rate limiting
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AdminConfig struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"` // bearer key for /api/v1; empty keeps those routes forbidden
}

type Config struct {
	Bot     BotConfig     `yaml:"bot"`
	Monitor MonitorConfig `yaml:"monitor"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
	Redis   RedisConfig   `yaml:"redis"`
	Admin   AdminConfig   `yaml:"admin"`

	Runtime RuntimeConfig `yaml:"-"`
}

// DefaultAppointmentHint recognizes the channel's appointment posts: a
// "Appointment Date:" table row carrying an [HH:MM] slot time.
const DefaultAppointmentHint = `(?s)Appointment Date:\s*\|.*\[\d{2}:\d{2}`

// LoadConfig reads the YAML file, loads .env (when present) and applies
// environment overrides for the secrets that commonly live there.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// .env is optional; environment variables win over the YAML file.
	_ = godotenv.Load()
	cfg.applyEnv()

	// defaults
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "polling"
	}
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 1
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "patterns.json"
	}
	if cfg.Monitor.AppointmentHint == "" {
		cfg.Monitor.AppointmentHint = DefaultAppointmentHint
	}
	if cfg.Admin.Port == 0 {
		cfg.Admin.Port = 8081
	}
	cfg.Monitor.Channel = strings.TrimPrefix(strings.TrimSpace(cfg.Monitor.Channel), "@")

	// Minimal validation. Dev mode runs without a token on the noop bot.
	if cfg.Bot.Token == "" && !dev {
		return nil, errors.New("bot.token is required (or BOT_TOKEN)")
	}
	if cfg.Monitor.Channel == "" {
		return nil, errors.New("monitor.channel is required (or TARGET_CHANNEL)")
	}
	if len(cfg.Bot.OperatorIDs) == 0 {
		return nil, errors.New("bot.operator_ids is required (or OPERATOR_CHAT_IDS)")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

// applyEnv maps the environment names the original deployment used onto the
// config. Empty variables leave the YAML values alone.
func (c *Config) applyEnv() {
	c.Bot.Token = envOr("BOT_TOKEN", c.Bot.Token)
	c.Monitor.Channel = envOr("TARGET_CHANNEL", c.Monitor.Channel)
	c.Store.Path = envOr("PATTERNS_FILE", c.Store.Path)
	c.Redis.URL = envOr("REDIS_URL", c.Redis.URL)
	c.Admin.APIKey = envOr("ADMIN_API_KEY", c.Admin.APIKey)
	if ids := envIDList("OPERATOR_CHAT_IDS"); len(ids) > 0 {
		c.Bot.OperatorIDs = ids
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// envIDList parses a comma-separated list of chat IDs; malformed entries are
// skipped rather than failing startup.
func envIDList(key string) []int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
