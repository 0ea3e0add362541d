package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		CacheTTL int    `yaml:"cache_ttl"` // seconds
	} `yaml:"redis"`

	Upload struct {
		MaxSize           int64    `yaml:"max_size"` // bytes
		AllowedExtensions []string `yaml:"allowed_extensions"`
		SkillDelimiter    string   `yaml:"skill_delimiter"`
	} `yaml:"upload"`

	// Matching holds the scoring parameters. The exact weighting formula is
	// deliberately configurable rather than hard-coded.
	Matching MatchingConfig `yaml:"matching"`

	Narrative struct {
		APIKey           string        `yaml:"api_key"`
		Model            string        `yaml:"model"`
		Timeout          time.Duration `yaml:"timeout"`
		Concurrency      int           `yaml:"concurrency"`
		FailureThreshold int           `yaml:"failure_threshold"`
		ResetTimeout     time.Duration `yaml:"reset_timeout"`
	} `yaml:"narrative"`

	RateLimit struct {
		PerMinute int `yaml:"per_minute"`
	} `yaml:"rate_limit"`
}

// MatchingConfig tunes the skill matcher and ranker.
type MatchingConfig struct {
	BeginnerWeight     float64 `yaml:"beginner_weight"`
	IntermediateWeight float64 `yaml:"intermediate_weight"`
	ExpertWeight       float64 `yaml:"expert_weight"`
	TeamSizePenalty    float64 `yaml:"team_size_penalty"`
	DomainBonus        float64 `yaml:"domain_bonus"`
	DeadlineWeight     float64 `yaml:"deadline_weight"`
	DefaultMinScore    float64 `yaml:"default_min_score"`
	DefaultLimit       int     `yaml:"default_limit"`
	ScoringWorkers     int     `yaml:"scoring_workers"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or when DATABASE_URL is set, builds the
// configuration from environment variables (test / container mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			cfg.Narrative.APIKey = key
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Narrative.APIKey = os.Getenv("GEMINI_API_KEY")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if len(cfg.Upload.AllowedExtensions) == 0 {
		cfg.Upload.AllowedExtensions = []string{".xlsx", ".xls", ".csv"}
	}
	if cfg.Upload.SkillDelimiter == "" {
		cfg.Upload.SkillDelimiter = ","
	}

	m := &cfg.Matching
	if m.BeginnerWeight == 0 {
		m.BeginnerWeight = 0.5
	}
	if m.IntermediateWeight == 0 {
		m.IntermediateWeight = 0.75
	}
	if m.ExpertWeight == 0 {
		m.ExpertWeight = 1.0
	}
	if m.TeamSizePenalty == 0 {
		m.TeamSizePenalty = 0.8
	}
	if m.DomainBonus == 0 {
		m.DomainBonus = 0.05
	}
	if m.DefaultMinScore == 0 {
		m.DefaultMinScore = 0.5
	}
	if m.DefaultLimit == 0 {
		m.DefaultLimit = 10
	}
	if m.ScoringWorkers == 0 {
		m.ScoringWorkers = 8
	}

	n := &cfg.Narrative
	if n.Model == "" {
		n.Model = "gemini-2.5-flash"
	}
	if n.Timeout == 0 {
		n.Timeout = 10 * time.Second
	}
	if n.Concurrency == 0 {
		n.Concurrency = 4
	}
	if n.FailureThreshold == 0 {
		n.FailureThreshold = 5
	}
	if n.ResetTimeout == 0 {
		n.ResetTimeout = 60 * time.Second
	}

	if cfg.RateLimit.PerMinute == 0 {
		cfg.RateLimit.PerMinute = 120
	}
	if cfg.Redis.CacheTTL == 0 {
		cfg.Redis.CacheTTL = 300
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
