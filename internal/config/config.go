package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string `mapstructure:"ENV"`
	ServerPort string `mapstructure:"SERVER_PORT"`

	DataSource string `mapstructure:"DATA_SOURCE"`
	DataDir    string `mapstructure:"DATA_DIR"`
	DBUrl      string `mapstructure:"DB_URL"`

	EventSink    string `mapstructure:"EVENT_SINK"`
	RedisURL     string `mapstructure:"REDIS_URL"`
	RedisChannel string `mapstructure:"REDIS_CHANNEL"`
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string `mapstructure:"KAFKA_TOPIC"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL"`

	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`
}

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"

	SinkNone      = "none"
	SinkRedis     = "redis"
	SinkKafka     = "kafka"
	SinkWebsocket = "websocket"
)

var knownEnv = []string{
	"ENV", "SERVER_PORT", "DATA_SOURCE", "DATA_DIR", "DB_URL",
	"EVENT_SINK", "REDIS_URL", "REDIS_CHANNEL", "KAFKA_BROKERS", "KAFKA_TOPIC",
	"JWT_SECRET", "TOKEN_TTL", "MIGRATIONS_PATH",
}

// Load reads an optional .env file in the working directory, then lets the
// process environment override it.
func Load() (Config, error) {
	return load(".env")
}

func load(envFile string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Unmarshal only sees keys viper already knows about.
	for _, key := range knownEnv {
		_ = v.BindEnv(key)
	}

	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DATA_SOURCE", SourceCSV)
	v.SetDefault("DATA_DIR", "./support")
	v.SetDefault("EVENT_SINK", SinkNone)
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")

	if err := v.ReadInConfig(); err != nil {
		// no .env file; environment and defaults only
	}

	var cfg Config
	err := v.Unmarshal(&cfg)
	return cfg, err
}

// Validate checks the settings the API server needs.
func (c Config) Validate() error {
	switch c.DataSource {
	case SourceCSV:
		if c.DataDir == "" {
			return errors.New("DATA_DIR is required for the csv source")
		}
	case SourcePostgres:
		if c.DBUrl == "" {
			return errors.New("DB_URL is required for the postgres source")
		}
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q", c.DataSource)
	}

	switch c.EventSink {
	case SinkNone, SinkWebsocket:
	case SinkRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis event sink")
		}
	case SinkKafka:
		if len(c.Brokers()) == 0 {
			return errors.New("KAFKA_BROKERS is required for the kafka event sink")
		}
	default:
		return fmt.Errorf("unknown EVENT_SINK %q", c.EventSink)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

// Brokers splits the comma-separated KAFKA_BROKERS list.
func (c Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
