package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Port      string `yaml:"port"`
	DBPath    string `yaml:"db_path"`
	JWTSecret string `yaml:"jwt_secret"`
	RedisAddr string `yaml:"redis_addr"` // empty disables the Redis team index

	Survey SurveyConfig `yaml:"survey"`
}

// SurveyConfig tunes the coverage tracker and auto-collection
type SurveyConfig struct {
	// MinPointsPerCell is the completion threshold. Field practice varies
	// between 2 and 5 points per cell.
	MinPointsPerCell int `yaml:"min_points_per_cell"`

	// AutoCollectInterval between timer-driven readings
	AutoCollectInterval time.Duration `yaml:"auto_collect_interval"`

	// EnforceCalibration turns the calibration warning into a hard gate
	EnforceCalibration bool `yaml:"enforce_calibration"`
}

// Load 加载配置: defaults, then the optional YAML file named by
// CONFIG_FILE, then environment variable overrides.
func Load() *Config {
	cfg := &Config{
		Port:      ":8080",
		DBPath:    "./data/survey.db",
		JWTSecret: "your-secret-key-change-in-production",
		Survey: SurveyConfig{
			MinPointsPerCell:    2,
			AutoCollectInterval: 5 * time.Second,
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read config file %s: %v", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Failed to parse config file %s: %v", path, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("MIN_POINTS_PER_CELL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			log.Fatalf("Invalid MIN_POINTS_PER_CELL: %q", v)
		}
		cfg.Survey.MinPointsPerCell = n
	}
	if v := os.Getenv("AUTO_COLLECT_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Fatalf("Invalid AUTO_COLLECT_INTERVAL: %q", v)
		}
		cfg.Survey.AutoCollectInterval = d
	}
	if v := os.Getenv("ENFORCE_CALIBRATION"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Fatalf("Invalid ENFORCE_CALIBRATION: %q", v)
		}
		cfg.Survey.EnforceCalibration = b
	}

	return cfg
}
