package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"local"`
	HTTPPort   int    `env:"HTTP_PORT" envDefault:"8000"`
	HealthPort int    `env:"HEALTH_PORT" envDefault:"8080"`

	// Database
	PostgresDSN         string        `env:"POSTGRES_DSN,required"`
	DBMaxConnections    int32         `env:"DB_MAX_CONNECTIONS" envDefault:"25"`
	DBMinConnections    int32         `env:"DB_MIN_CONNECTIONS" envDefault:"2"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Session store
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	// AI augmentation
	AIEnabled           bool          `env:"AI_ENABLED" envDefault:"true"`
	LLMAPIKey           string        `env:"LLM_API_KEY"`
	LLMModel            string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMBaseURL          string        `env:"LLM_BASE_URL" envDefault:""`
	AICallTimeout       time.Duration `env:"AI_CALL_TIMEOUT" envDefault:"8s"`
	AIRateLimitRPS      float64       `env:"AI_RATE_LIMIT_RPS" envDefault:"2"`
	LLMCircuitThreshold int           `env:"LLM_CIRCUIT_THRESHOLD" envDefault:"5"`
	LLMCircuitTimeout   time.Duration `env:"LLM_CIRCUIT_TIMEOUT" envDefault:"1m"`
	TranscriptionModel  string        `env:"TRANSCRIPTION_MODEL" envDefault:"whisper-1"`

	// Transports
	TelegramBotToken      string `env:"TELEGRAM_BOT_TOKEN"`
	VoiceRateLimitPerHour int    `env:"VOICE_RATE_LIMIT_PER_HOUR" envDefault:"20"`
	MaxVoiceUploadBytes   int64  `env:"MAX_VOICE_UPLOAD_BYTES" envDefault:"10485760"`

	// Request defaults
	DefaultAddress string  `env:"DEFAULT_ADDRESS" envDefault:"Hyderabad, Telangana"`
	DefaultLat     float64 `env:"DEFAULT_LAT" envDefault:"17.385"`
	DefaultLng     float64 `env:"DEFAULT_LNG" envDefault:"78.4867"`

	// Conversation log writer
	LogQueueSize     int           `env:"LOG_QUEUE_SIZE" envDefault:"256"`
	LogFlushInterval time.Duration `env:"LOG_FLUSH_INTERVAL" envDefault:"1s"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	applyAliases(cfg)

	return cfg, nil
}

// applyAliases accepts the variable names used by older deployments.
func applyAliases(cfg *Config) {
	if !hasEnv("LLM_API_KEY") {
		setStringFromEnv("OPENAI_API_KEY", &cfg.LLMAPIKey)
	}

	if !hasEnv("TELEGRAM_BOT_TOKEN") {
		setStringFromEnv("BOT_TOKEN", &cfg.TelegramBotToken)
	}

	if !hasEnv("AI_RATE_LIMIT_RPS") {
		setFloat64FromEnv("RATE_LIMIT_RPS", &cfg.AIRateLimitRPS)
	}

	if !hasEnv("AI_CALL_TIMEOUT") {
		setDurationFromEnv("LLM_TIMEOUT", &cfg.AICallTimeout)
	}
}

func hasEnv(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func setStringFromEnv(key string, target *string) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	val = strings.TrimSpace(val)
	if val == "" {
		return
	}

	*target = val
}

func setFloat64FromEnv(key string, target *float64) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return
	}

	*target = parsed
}

func setDurationFromEnv(key string, target *time.Duration) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	parsed, err := time.ParseDuration(strings.TrimSpace(val))
	if err != nil {
		return
	}

	*target = parsed
}
