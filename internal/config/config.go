package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
	Tracing  TracingConfig
	Vitals   VitalsConfig
	Offline  OfflineConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Version     string
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s Timezone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
	Issuer   string
}

type LogConfig struct {
	Level      string
	Format     string
	OutputPath string
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
	OTLPURL     string
	SampleRate  float64
}

// VitalsConfig holds the plausibility bounds applied to vital-sign
// measurements before persistence. These are sanity thresholds, not
// hard physiological limits.
type VitalsConfig struct {
	MaxHeight     float64
	MinPulse      float64
	MaxPulse      float64
	MinRespRate   float64
	MaxRespRate   float64
	MinSaturation float64
	MaxSaturation float64
	MinSystolic   float64
	MaxSystolic   float64
	MinDiastolic  float64
	MaxDiastolic  float64
	MinTemp       float64
	MaxTemp       float64
}

// OfflineConfig controls the local buffer that holds vital-sign records
// which could not reach the database, and the sweep that replays them.
type OfflineConfig struct {
	Path          string
	SweepInterval time.Duration
	MaxRetryDelay time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "clinica-api"),
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "0.0.0"),
		},
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "clinica"),
			User:            getEnv("DB_USER", "clinica"),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "require"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", ""),
			TokenTTL: getEnvDuration("JWT_TOKEN_TTL", 8*time.Hour),
			Issuer:   getEnv("JWT_ISSUER", "clinica-api"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvBool("TRACING_ENABLED", true),
			ServiceName: getEnv("TRACING_SERVICE_NAME", "clinica-api"),
			OTLPURL:     getEnv("OTLP_ENDPOINT", "http://otel-collector:4318"),
			SampleRate:  getEnvFloat("TRACING_SAMPLE_RATE", 0.1),
		},
		Vitals: VitalsConfig{
			MaxHeight:     getEnvFloat("VITALS_MAX_HEIGHT", 250),
			MinPulse:      getEnvFloat("VITALS_MIN_PULSE", 40),
			MaxPulse:      getEnvFloat("VITALS_MAX_PULSE", 200),
			MinRespRate:   getEnvFloat("VITALS_MIN_RESP_RATE", 10),
			MaxRespRate:   getEnvFloat("VITALS_MAX_RESP_RATE", 70),
			MinSaturation: getEnvFloat("VITALS_MIN_SATURATION", 50),
			MaxSaturation: getEnvFloat("VITALS_MAX_SATURATION", 100),
			MinSystolic:   getEnvFloat("VITALS_MIN_SYSTOLIC", 50),
			MaxSystolic:   getEnvFloat("VITALS_MAX_SYSTOLIC", 190),
			MinDiastolic:  getEnvFloat("VITALS_MIN_DIASTOLIC", 40),
			MaxDiastolic:  getEnvFloat("VITALS_MAX_DIASTOLIC", 130),
			MinTemp:       getEnvFloat("VITALS_MIN_TEMP", 15),
			MaxTemp:       getEnvFloat("VITALS_MAX_TEMP", 55),
		},
		Offline: OfflineConfig{
			Path:          getEnv("OFFLINE_BUFFER_PATH", "offline_data.json"),
			SweepInterval: getEnvDuration("OFFLINE_SWEEP_INTERVAL", 5*time.Minute),
			MaxRetryDelay: getEnvDuration("OFFLINE_MAX_RETRY_DELAY", 2*time.Hour),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces production security requirements.
func validate(cfg *Config) error {
	var errs []string

	if cfg.JWT.Secret == "" {
		errs = append(errs, "JWT_SECRET is required")
	} else if len(cfg.JWT.Secret) < 32 && cfg.App.Environment == "production" {
		errs = append(errs, "JWT_SECRET must be at least 32 characters in production")
	}

	if cfg.Database.Password == "" && cfg.App.Environment != "development" {
		errs = append(errs, "DB_PASSWORD is required in non-development environments")
	}

	if cfg.Database.SSLMode == "disable" && cfg.App.Environment == "production" {
		errs = append(errs, "DB_SSLMODE=disable is not allowed in production")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
