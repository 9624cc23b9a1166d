package bootstrap

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort          string `mapstructure:"SERVER_PORT"`
	GrpcPort            string `mapstructure:"GRPC_PORT"`
	EngineGrpcAddr      string `mapstructure:"ENGINE_GRPC_ADDR"`
	RedisUrl            string `mapstructure:"REDIS_URL"`
	MongoUri            string `mapstructure:"MONGO_URI"`
	MongoDatabase       string `mapstructure:"MONGO_DATABASE"`
	IsLocalCors         bool   `mapstructure:"LOCAL_CORS"`
	CorsOrigins         string `mapstructure:"CORS_ORIGINS"`
	SearchDepth         int    `mapstructure:"SEARCH_DEPTH"`
	MaxSearchDepth      int    `mapstructure:"MAX_SEARCH_DEPTH"`
	SearchTimeoutMs     int    `mapstructure:"SEARCH_TIMEOUT_MS"`
	ResultCacheTTLSec   int    `mapstructure:"RESULT_CACHE_TTL_SEC"`
	PlaySessionTTLSec   int    `mapstructure:"PLAY_SESSION_TTL_SEC"`
	MaxParallelSearches int    `mapstructure:"MAX_PARALLEL_SEARCHES"`
	PageLimitHistory    int    `mapstructure:"PAGE_LIMIT_HISTORY"`
}

var defaults = map[string]any{
	"SERVER_PORT":           ":8080",
	"GRPC_PORT":             ":8082",
	"ENGINE_GRPC_ADDR":      "",
	"REDIS_URL":             "localhost:6379",
	"MONGO_URI":             "mongodb://localhost:27017",
	"MONGO_DATABASE":        "bizchess",
	"LOCAL_CORS":            false,
	"CORS_ORIGINS":          "http://localhost:3000,http://localhost:5173",
	"SEARCH_DEPTH":          3,
	"MAX_SEARCH_DEPTH":      5,
	"SEARCH_TIMEOUT_MS":     5000,
	"RESULT_CACHE_TTL_SEC":  600,
	"PLAY_SESSION_TTL_SEC":  3600,
	"MAX_PARALLEL_SEARCHES": 4,
	"PAGE_LIMIT_HISTORY":    20,
}

// Setup loads the config file at cfgPath (a .env file in deployments), with
// environment variables taking precedence. A missing file is not an error so
// containers can be configured through the environment alone.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		err := v.ReadInConfig()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.SearchTimeoutMs) * time.Millisecond
}

func (c *Config) ResultCacheTTL() time.Duration {
	return time.Duration(c.ResultCacheTTLSec) * time.Second
}

func (c *Config) PlaySessionTTL() time.Duration {
	return time.Duration(c.PlaySessionTTLSec) * time.Second
}

// AllowedOrigins lists the comma-separated CORS_ORIGINS entries.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CorsOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
