package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	API struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"api"`
	Session struct {
		Path string `yaml:"path"`
	} `yaml:"session"`
	Sync struct {
		SearchDebounce  time.Duration `yaml:"search_debounce"`
		MessageInterval time.Duration `yaml:"message_interval"`
		UnreadInterval  time.Duration `yaml:"unread_interval"`
	} `yaml:"sync"`
}

func LoadConfig() Config {
	cfg := defaults()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("Failed to read config file: %v", err)
		}
		// Missing file is fine, defaults plus env cover local runs.
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}

	if v := os.Getenv("TASKORA_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("TASKORA_SESSION_PATH"); v != "" {
		cfg.Session.Path = v
	}
	return cfg
}

func defaults() Config {
	var cfg Config
	cfg.API.BaseURL = "http://localhost:4001"
	cfg.API.Timeout = 30 * time.Second
	cfg.Session.Path = "taskora_session.db"
	cfg.Sync.SearchDebounce = 450 * time.Millisecond
	cfg.Sync.MessageInterval = 10 * time.Second
	cfg.Sync.UnreadInterval = 30 * time.Second
	return cfg
}
