package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	Host      string
	Debug     bool
	APIPrefix string

	Scheduler SchedulerConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig controls the weekly-grid shape and the solver's search
// budget; see internal/scheduling.SolveConfig for how these are consumed.
// Days is a count, not a name list: the service resolves it against
// scheduling.DefaultDays (Monday..Saturday) to get the actual day names.
type SchedulerConfig struct {
	Days        int
	Periods     int
	TimeLimit   time.Duration
	Workers     int
	OverloadCap int
	CacheTTL    time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.Host = v.GetString("HOST")
	cfg.Debug = v.GetBool("DEBUG")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		Days:        v.GetInt("SCHED_DAYS"),
		Periods:     v.GetInt("SCHED_PERIODS"),
		TimeLimit:   parseDuration(v.GetString("SCHED_TIME_LIMIT"), 30*time.Second),
		Workers:     v.GetInt("SCHED_WORKERS"),
		OverloadCap: v.GetInt("SCHED_OVERLOAD_CAP"),
		CacheTTL:    parseDuration(v.GetString("SCHED_CACHE_TTL"), 10*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8000)
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("DEBUG", false)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHED_DAYS", 6)
	v.SetDefault("SCHED_PERIODS", 6)
	v.SetDefault("SCHED_TIME_LIMIT", "30s")
	v.SetDefault("SCHED_WORKERS", 8)
	v.SetDefault("SCHED_OVERLOAD_CAP", 100)
	v.SetDefault("SCHED_CACHE_TTL", "10m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
