package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultNetwork is the network whose keybase.pub paths carry no suffix.
const DefaultNetwork = "mainnet"

// Config is the full service configuration.
type Config struct {
	Server   Server
	Network  NetworkConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Github   GithubConfig
	Keybase  KeybaseConfig
	Sweep    SweepConfig
	Fanout   FanoutConfig
	Cache    CacheConfig
	Sources  SourcesConfig
	Log      LogConfig
}

// Server captures HTTP server level configuration.
// AdminToken guards the sweep trigger endpoints; empty disables them.
type Server struct {
	Addr       string
	AdminToken string
}

// NetworkConfig names the chain network and the upstream registries that
// yield node and provider candidates.
type NetworkConfig struct {
	Name       string
	GatewayURL string
	APIURL     string
}

// IsDefault reports whether the configured network is the default one.
func (n NetworkConfig) IsDefault() bool {
	return n.Name == "" || n.Name == DefaultNetwork
}

// RedisConfig configures the cache client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the confirmation record store.
type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type GithubConfig struct {
	APIURL string
	Token  string
}

type KeybaseConfig struct {
	IOURL  string
	PubURL string
}

// SweepConfig tunes the per-identity confirmation loop. Concurrency 1 keeps
// identities strictly sequential.
type SweepConfig struct {
	Concurrency   int
	RetryAttempts int
	RetryStep     time.Duration
}

// FanoutConfig caps in-flight calls of a single batch operation.
type FanoutConfig struct {
	Limit int
}

type CacheConfig struct {
	ConfirmationTTL     time.Duration
	ProfileTTL          time.Duration
	ProviderMetadataTTL time.Duration
	AggregateTTL        time.Duration
}

type SourcesConfig struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

type LogConfig struct {
	Level string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.adminToken", "")

	v.SetDefault("network.name", DefaultNetwork)
	v.SetDefault("network.gatewayURL", "https://gateway.multiversx.com")
	v.SetDefault("network.apiURL", "https://api.multiversx.com")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.poolSize", 20)
	v.SetDefault("redis.minIdleConns", 2)
	v.SetDefault("redis.dialTimeout", 5*time.Second)
	v.SetDefault("redis.readTimeout", 3*time.Second)
	v.SetDefault("redis.writeTimeout", 3*time.Second)

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.maxOpenConns", 10)
	v.SetDefault("postgres.maxIdleConns", 5)
	v.SetDefault("postgres.connMaxLifetime", 30*time.Minute)

	v.SetDefault("github.apiURL", "https://api.github.com")
	v.SetDefault("github.token", "")

	v.SetDefault("keybase.ioURL", "https://keybase.io")
	v.SetDefault("keybase.pubURL", "https://keybase.pub")

	v.SetDefault("sweep.concurrency", 1)
	v.SetDefault("sweep.retryAttempts", 3)
	v.SetDefault("sweep.retryStep", 5*time.Second)

	v.SetDefault("fanout.limit", 16)

	v.SetDefault("cache.confirmationTTL", 6*30*24*time.Hour)
	v.SetDefault("cache.profileTTL", 6*30*24*time.Hour)
	v.SetDefault("cache.providerMetadataTTL", 15*time.Minute)
	v.SetDefault("cache.aggregateTTL", time.Hour)

	v.SetDefault("sources.timeout", 100*time.Second)
	v.SetDefault("sources.requestsPerSecond", 5.0)
	v.SetDefault("sources.burst", 5)

	v.SetDefault("log.level", "info")
}

// Load reads configuration from the optional YAML file at path, then from
// KEYPROOF_* environment variables (e.g. KEYPROOF_REDIS_URL), falling back to
// defaults for everything unset.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("KEYPROOF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv loads configuration using only defaults and the environment.
func FromEnv() (*Config, error) {
	return Load("")
}

func (c *Config) validate() error {
	if c.Sweep.Concurrency < 1 {
		return fmt.Errorf("sweep.concurrency must be at least 1, got %d", c.Sweep.Concurrency)
	}
	if c.Sweep.RetryAttempts < 1 {
		return fmt.Errorf("sweep.retryAttempts must be at least 1, got %d", c.Sweep.RetryAttempts)
	}
	if c.Fanout.Limit < 1 {
		return fmt.Errorf("fanout.limit must be at least 1, got %d", c.Fanout.Limit)
	}
	if c.Sources.Timeout <= 0 {
		return errors.New("sources.timeout must be positive")
	}
	return nil
}
