package cmd

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string

	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBAutoMigrate     bool

	LogLevel string
	Timezone *time.Location

	RedisAddr         string
	AnalyticsCacheTTL time.Duration

	ServiceTimeStrategy          string
	ServiceTimeEWMAAlpha         float64
	ServiceTimeRecomputeSchedule string

	TxTimeout time.Duration
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the environment, after loading envFile when it exists.
func LoadConfig(envFile string) (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load(envFile)

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "deliverus")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("ANALYTICS_CACHE_TTL", "30s")
	v.SetDefault("SERVICE_TIME_STRATEGY", "mean")
	v.SetDefault("SERVICE_TIME_EWMA_ALPHA", 0.3)
	v.SetDefault("SERVICE_TIME_RECOMPUTE_SCHEDULE", "")
	v.SetDefault("TX_TIMEOUT", "5s")

	durations := map[string]*time.Duration{}
	cfg := Config{
		HTTPPort:                     v.GetString("HTTP_PORT"),
		DBHost:                       v.GetString("DB_HOST"),
		DBPort:                       v.GetString("DB_PORT"),
		DBUser:                       v.GetString("DB_USER"),
		DBPassword:                   v.GetString("DB_PASSWORD"),
		DBName:                       v.GetString("DB_NAME"),
		DBSslMode:                    v.GetString("DB_SSLMODE"),
		DBMaxOpenConns:               v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:               v.GetInt("DB_MAX_IDLE_CONNS"),
		DBAutoMigrate:                v.GetBool("DB_AUTO_MIGRATE"),
		LogLevel:                     v.GetString("LOG_LEVEL"),
		RedisAddr:                    v.GetString("REDIS_ADDR"),
		ServiceTimeStrategy:          v.GetString("SERVICE_TIME_STRATEGY"),
		ServiceTimeEWMAAlpha:         v.GetFloat64("SERVICE_TIME_EWMA_ALPHA"),
		ServiceTimeRecomputeSchedule: v.GetString("SERVICE_TIME_RECOMPUTE_SCHEDULE"),
	}
	durations["DB_CONN_MAX_LIFETIME"] = &cfg.DBConnMaxLifetime
	durations["ANALYTICS_CACHE_TTL"] = &cfg.AnalyticsCacheTTL
	durations["TX_TIMEOUT"] = &cfg.TxTimeout

	for key, dst := range durations {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}

	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return Config{}, fmt.Errorf("TIMEZONE: %w", err)
	}
	cfg.Timezone = loc

	return cfg, nil
}
