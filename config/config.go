package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Auth       AuthConfig       `yaml:"auth"`
	Validation ValidationConfig `yaml:"validation"`
	Booking    BookingConfig    `yaml:"booking"`
	Worker     WorkerConfig     `yaml:"worker"`
	Email      EmailConfig      `yaml:"email"`
	Log        LogConfig        `yaml:"log"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type DatabaseConfig struct {
	Driver        string `yaml:"driver"`
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	Name          string `yaml:"name"`
	SSLMode       string `yaml:"ssl_mode"`
	MaxConns      int32  `yaml:"max_conns"`
	MinConns      int32  `yaml:"min_conns"`
	MigrationsDir string `yaml:"migrations_dir"`
	RunMigrations bool   `yaml:"run_migrations"`
}

func (d DatabaseConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	UserEventsTopic    string   `yaml:"user_events_topic"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type AuthConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type ValidationConfig struct {
	DisallowedCountries []string `yaml:"disallowed_countries"`
	CheckMXRecords      bool     `yaml:"check_mx_records"`
}

type BookingConfig struct {
	FlightsCacheTTL                int  `yaml:"flights_cache_ttl_seconds"`
	EnforceNonNegativeFee          bool `yaml:"enforce_non_negative_fee"`
	EnforceDeadlineBeforeDeparture bool `yaml:"enforce_deadline_before_departure"`
}

type WorkerConfig struct {
	ReminderSweepHours int `yaml:"reminder_sweep_hours"`
}

// EmailConfig points the worker at an SMTP relay. An empty SMTPHost makes
// the worker log notifications instead of sending them.
type EmailConfig struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort int    `yaml:"smtp_port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Path returns the config file location, honoring CONFIG_PATH from the
// environment or a local .env file.
func Path() string {
	_ = godotenv.Load()
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if pw := os.Getenv("DATABASE_PASSWORD"); pw != "" {
		cfg.Database.Password = pw
	}
	if pw := os.Getenv("SMTP_PASSWORD"); pw != "" {
		cfg.Email.Password = pw
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the settings used for keys absent from the file.
func Default() *Config {
	return &Config{
		HTTP:     HTTPConfig{Address: ":8080"},
		Database: DatabaseConfig{Driver: DriverPostgres, Port: 5432, SSLMode: "disable", MigrationsDir: "migrations"},
		Kafka: KafkaConfig{
			UserEventsTopic:    "andromeda.users",
			BookingEventsTopic: "andromeda.bookings",
			NotificationsTopic: "andromeda.notifications",
			GroupID:            "andromeda-worker",
		},
		Auth:       AuthConfig{BcryptCost: 12},
		Validation: ValidationConfig{DisallowedCountries: []string{"Israel"}},
		Booking:    BookingConfig{FlightsCacheTTL: 60},
		Worker:     WorkerConfig{ReminderSweepHours: 24},
		Email:      EmailConfig{SMTPPort: 587, From: "no-reply@andromeda.local"},
		Log:        LogConfig{Level: "info"},
	}
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return errors.New("database host and name are required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be between 4 and 31, got %d", c.Auth.BcryptCost)
	}
	if c.Worker.ReminderSweepHours <= 0 {
		return fmt.Errorf("worker.reminder_sweep_hours must be positive, got %d", c.Worker.ReminderSweepHours)
	}
	return nil
}
