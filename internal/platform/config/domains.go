package config

import "time"

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	PostgresDSN       string
	MaxConnections    int32
	MinConnections    int32
	MaxConnIdleTime   time.Duration
	MaxConnLifetime   time.Duration
	HealthCheckPeriod time.Duration
}

// RedisConfig holds session store settings.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SessionTTL time.Duration
}

// LLMConfig holds AI augmentation settings.
type LLMConfig struct {
	Enabled            bool
	APIKey             string
	Model              string
	BaseURL            string
	CallTimeout        time.Duration
	RateLimitRPS       float64
	CircuitThreshold   int
	CircuitTimeout     time.Duration
	TranscriptionModel string
}

// LocationConfig holds the address used when a request names no place.
type LocationConfig struct {
	Address string
	Lat     float64
	Lng     float64
}

// DatabaseCfg returns the database configuration.
func (c *Config) DatabaseCfg() DatabaseConfig {
	return DatabaseConfig{
		PostgresDSN:       c.PostgresDSN,
		MaxConnections:    c.DBMaxConnections,
		MinConnections:    c.DBMinConnections,
		MaxConnIdleTime:   c.DBMaxConnIdleTime,
		MaxConnLifetime:   c.DBMaxConnLifetime,
		HealthCheckPeriod: c.DBHealthCheckPeriod,
	}
}

// RedisCfg returns the session store configuration.
func (c *Config) RedisCfg() RedisConfig {
	return RedisConfig{
		Addr:       c.RedisAddr,
		Password:   c.RedisPassword,
		DB:         c.RedisDB,
		SessionTTL: c.SessionTTL,
	}
}

// LLMCfg returns the AI augmentation configuration. Augmentation counts as
// enabled only when it is switched on and an API key is present.
func (c *Config) LLMCfg() LLMConfig {
	return LLMConfig{
		Enabled:            c.AIEnabled && c.LLMAPIKey != "",
		APIKey:             c.LLMAPIKey,
		Model:              c.LLMModel,
		BaseURL:            c.LLMBaseURL,
		CallTimeout:        c.AICallTimeout,
		RateLimitRPS:       c.AIRateLimitRPS,
		CircuitThreshold:   c.LLMCircuitThreshold,
		CircuitTimeout:     c.LLMCircuitTimeout,
		TranscriptionModel: c.TranscriptionModel,
	}
}

// LocationCfg returns the default request location.
func (c *Config) LocationCfg() LocationConfig {
	return LocationConfig{
		Address: c.DefaultAddress,
		Lat:     c.DefaultLat,
		Lng:     c.DefaultLng,
	}
}
