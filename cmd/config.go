package cmd

import (
	"time"

	"orders/internal/adapters/out/postgres"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

// Config holds the complete application configuration. Values come from
// defaults, then config.yaml, then the environment (a .env file is loaded
// into the environment first when present).
type Config struct {
	HTTPPort        string        `env:"HTTP_PORT" yaml:"http_port" default:"8080" usage:"HTTP listen port"`
	LogMode         string        `env:"LOG_MODE" yaml:"log_mode" default:"dev" usage:"dev or prod"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout" default:"15s" usage:"Maximum graceful shutdown duration"`
	TracingEnabled  bool          `env:"TRACING_ENABLED" yaml:"tracing_enabled" default:"false" usage:"Export spans to stdout"`

	DB    DBConfig    `env:"DB" yaml:"db"`
	Cache CacheConfig `env:"CACHE" yaml:"cache"`
	Kafka KafkaConfig `env:"KAFKA" yaml:"kafka"`
}

type DBConfig struct {
	Host     string `env:"HOST" yaml:"host" default:"localhost"`
	Port     string `env:"PORT" yaml:"port" default:"5432"`
	User     string `env:"USER" yaml:"user" default:"postgres"`
	Password string `env:"PASSWORD" yaml:"password"`
	Name     string `env:"NAME" yaml:"name" default:"orders"`
	SSLMode  string `env:"SSLMODE" yaml:"sslmode" default:"disable"`
}

// CacheConfig controls the in-memory order cache and the job that warms it.
type CacheConfig struct {
	Size         int    `env:"SIZE" yaml:"size" default:"1024" usage:"Cached orders; 0 disables the cache"`
	WarmSchedule string `env:"WARM_SCHEDULE" yaml:"warm_schedule" default:"0 * * * * *" usage:"Cron schedule with seconds"`
}

// KafkaConfig enables order event publishing when Brokers is not empty.
type KafkaConfig struct {
	Brokers           []string `env:"BROKERS" yaml:"brokers" usage:"Comma separated broker addresses"`
	OrderCreatedTopic string   `env:"ORDER_CREATED_TOPIC" yaml:"order_created_topic" default:"orders.created"`
}

// LoadConfig reads the configuration. files overrides the default list of
// YAML files; missing files are skipped.
func LoadConfig(files ...string) (*Config, error) {
	// .env is optional; variables already set in the environment win.
	_ = godotenv.Load(".env")

	if len(files) == 0 {
		files = []string{"config.yaml"}
	}

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags: true,
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort == "" {
		return errors.New("HTTP_PORT is required")
	}
	if c.Cache.Size < 0 {
		return errors.Errorf("CACHE_SIZE must not be negative, got %d", c.Cache.Size)
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.OrderCreatedTopic == "" {
		return errors.New("KAFKA_ORDER_CREATED_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

// DatabaseConfig returns the connection settings of the orders database.
func (c *Config) DatabaseConfig() postgres.Config {
	return postgres.Config{
		Host:     c.DB.Host,
		Port:     c.DB.Port,
		User:     c.DB.User,
		Password: c.DB.Password,
		Name:     c.DB.Name,
		SSLMode:  c.DB.SSLMode,
	}
}
