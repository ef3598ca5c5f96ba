package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	strutil "njgeo/pkg/platform/strings"
)

// Data sources understood by the catalog.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"
	SourceKafka    = "kafka"
)

// DefaultYear is the reference year of the dataset, used when a query names none.
const DefaultYear = 2022

// Config is the full process configuration.
type Config struct {
	Server   Server
	Data     DataConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Log      LogConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	BaseURL         string
	DefaultYear     int
	WarmOnStart     bool
	ShutdownTimeout time.Duration
}

// DataConfig selects the backing store the reference tables are loaded from.
type DataConfig struct {
	Source              string
	File                string
	CountiesTable       string
	MunicipalitiesTable string
}

// PostgresConfig configures the Postgres table source.
type PostgresConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig configures the Redis table source.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the Kafka table source. Tables are read from
// compacted topics named after them.
type KafkaConfig struct {
	Brokers     []string
	ClientID    string
	DialTimeout time.Duration
	// LoadTimeout bounds one full read of a topic.
	LoadTimeout time.Duration
}

// LogConfig selects logger level and output format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads optional dotenv files into the environment, then builds a Config.
// Missing dotenv files are ignored; variables already set in the environment win.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var errs []error
	intVar := func(key string, fallback int) int {
		n, err := envInt(key, fallback)
		errs = append(errs, err)
		return n
	}
	durVar := func(key string, fallback time.Duration) time.Duration {
		d, err := envDuration(key, fallback)
		errs = append(errs, err)
		return d
	}
	boolVar := func(key string, fallback bool) bool {
		b, err := envBool(key, fallback)
		errs = append(errs, err)
		return b
	}

	cfg := Config{
		Server: Server{
			Addr:            envString("NJGEO_ADDR", ":8080"),
			BaseURL:         strings.TrimRight(os.Getenv("NJGEO_BASE_URL"), "/"),
			DefaultYear:     intVar("NJGEO_DEFAULT_YEAR", DefaultYear),
			WarmOnStart:     boolVar("NJGEO_WARM_ON_START", true),
			ShutdownTimeout: durVar("NJGEO_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Data: DataConfig{
			Source:              strings.ToLower(envString("DATA_SOURCE", SourceFile)),
			File:                envString("DATA_FILE", "data/nj_sample.yaml"),
			CountiesTable:       envString("TABLE_COUNTIES", "counties"),
			MunicipalitiesTable: envString("TABLE_MUNICIPALITIES", "municipalities"),
		},
		Postgres: PostgresConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: intVar("PG_MAX_OPEN_CONNS", 10),
			MaxIdleConns: intVar("PG_MAX_IDLE_CONNS", 2),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intVar("REDIS_POOL_SIZE", 10),
			MinIdleConns: intVar("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durVar("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durVar("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durVar("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:     strutil.SplitList(os.Getenv("KAFKA_BROKERS")),
			ClientID:    envString("KAFKA_CLIENT_ID", "njgeo"),
			DialTimeout: durVar("KAFKA_DIAL_TIMEOUT", 5*time.Second),
			LoadTimeout: durVar("KAFKA_LOAD_TIMEOUT", 30*time.Second),
		},
		Log: LogConfig{
			Level:  strings.ToLower(envString("LOG_LEVEL", "info")),
			Format: strings.ToLower(envString("LOG_FORMAT", "text")),
		},
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks cross-field requirements.
func (c Config) Validate() error {
	switch c.Data.Source {
	case SourceFile:
		if c.Data.File == "" {
			return errors.New("DATA_FILE is required when DATA_SOURCE=file")
		}
	case SourcePostgres:
		if c.Postgres.URL == "" {
			return errors.New("DATABASE_URL is required when DATA_SOURCE=postgres")
		}
	case SourceRedis:
		if c.Redis.URL == "" {
			return errors.New("REDIS_URL is required when DATA_SOURCE=redis")
		}
	case SourceKafka:
		if len(c.Kafka.Brokers) == 0 {
			return errors.New("KAFKA_BROKERS is required when DATA_SOURCE=kafka")
		}
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q (want file, postgres, redis or kafka)", c.Data.Source)
	}
	if c.Data.CountiesTable == "" || c.Data.MunicipalitiesTable == "" {
		return errors.New("TABLE_COUNTIES and TABLE_MUNICIPALITIES must not be empty")
	}
	if c.Server.DefaultYear < 1 {
		return fmt.Errorf("NJGEO_DEFAULT_YEAR must be positive, got %d", c.Server.DefaultYear)
	}
	return nil
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}
