// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	//Postgres connection string, env-only (never in yaml)
	DatabaseURL string

	//Crawl behavior
	SitesCSV    string `yaml:"sites_csv"`
	DaysToCheck int    `yaml:"days_to_check"`
	SiteDelayMs int    `yaml:"site_delay_ms"`
	Headless    *bool  `yaml:"headless"`

	//Paths
	CachePath     string `yaml:"cache_path"`
	CacheMaxDays  int    `yaml:"cache_max_days"`
	RetentionDays int    `yaml:"retention_days"`

	//Optional Telegram reporting
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	if path := os.Getenv("SITES_CSV"); path != "" {
		cfg.SitesCSV = path
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if cfg.SitesCSV == "" {
		cfg.SitesCSV = "sites.csv"
	}

	if cfg.DaysToCheck == 0 {
		cfg.DaysToCheck = 7
	}

	if cfg.SiteDelayMs == 0 {
		cfg.SiteDelayMs = 1000
	}

	if cfg.CachePath == "" {
		cfg.CachePath = ".cache"
	}

	if cfg.CacheMaxDays == 0 {
		cfg.CacheMaxDays = 30
	}

	if cfg.RetentionDays == 0 {
		cfg.RetentionDays = 60
	}

	//Validate required fields
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	return cfg
}

// IsHeadless defaults to true; set headless: false in yaml to watch runs.
func (c *Config) IsHeadless() bool {
	if c.Headless == nil {
		return true
	}
	return *c.Headless
}

// TelegramEnabled reports whether both reporting credentials are present.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
