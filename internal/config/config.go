package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int    `yaml:"port"`
		APIKey         string `yaml:"api_key"`
		RateLimitRPS   int    `yaml:"rate_limit_rps"`
		RateLimitBurst int    `yaml:"rate_limit_burst"`
	} `yaml:"server"`

	HoursAPI struct {
		BaseURL         string `yaml:"base_url"`
		APIKey          string `yaml:"api_key"`
		TimeoutSeconds  int    `yaml:"timeout_seconds"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"hours_api"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Promotions struct {
		CatalogPath          string `yaml:"catalog_path"`
		WatchIntervalSeconds int    `yaml:"watch_interval_seconds"`
	} `yaml:"promotions"`

	Availability struct {
		CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
		HorizonDays     int `yaml:"horizon_days"`
		SlotMinutes     int `yaml:"slot_minutes"`
		SlotCapacity    int `yaml:"slot_capacity"`
	} `yaml:"availability"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Promotions.CatalogPath == "" {
		cfg.Promotions.CatalogPath = "configs/promotions.json"
	}

	return &cfg, nil
}

func (c *Config) ServerPort() int {
	if c.Server.Port <= 0 {
		return 8080
	}
	return c.Server.Port
}

func (c *Config) HoursTimeout() time.Duration {
	if c.HoursAPI.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.HoursAPI.TimeoutSeconds) * time.Second
}

func (c *Config) HoursCacheTTL() time.Duration {
	if c.HoursAPI.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.HoursAPI.CacheTTLSeconds) * time.Second
}

func (c *Config) AvailabilityCacheTTL() time.Duration {
	if c.Availability.CacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Availability.CacheTTLSeconds) * time.Second
}

func (c *Config) CatalogWatchInterval() time.Duration {
	if c.Promotions.WatchIntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Promotions.WatchIntervalSeconds) * time.Second
}

func (c *Config) RateLimit() (rps, burst int) {
	rps = c.Server.RateLimitRPS
	if rps <= 0 {
		rps = 20
	}
	burst = c.Server.RateLimitBurst
	if burst <= 0 {
		burst = 40
	}
	return rps, burst
}
