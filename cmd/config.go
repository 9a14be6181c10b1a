package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is read from the environment by LoadConfig. Every field has a default
// except DBPassword.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"eventrent"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	KafkaBrokers           []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	KafkaNotificationTopic string   `env:"KAFKA_NOTIFICATION_TOPIC" envDefault:"order-notifications"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	PrepBufferDays   int `env:"PREP_BUFFER_DAYS" envDefault:"5"`
	ReturnBufferDays int `env:"RETURN_BUFFER_DAYS" envDefault:"3"`

	QuoteReminderSchedule string        `env:"QUOTE_REMINDER_SCHEDULE" envDefault:"0 * * * *"`
	QuoteStaleAfter       time.Duration `env:"QUOTE_STALE_AFTER" envDefault:"72h"`
	QuoteReminderInterval time.Duration `env:"QUOTE_REMINDER_INTERVAL" envDefault:"24h"`
}

// LoadConfig reads the given .env files, when present, into the process
// environment and parses it. Variables already set win over the files.
func LoadConfig(files ...string) (Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DSN is the PostgreSQL connection string for the gorm driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
