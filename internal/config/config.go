// Package config loads the server configuration. Later sources override
// earlier ones: built-in defaults, the config file, a .env file, then
// WMS_-prefixed environment variables. Command-line flags are applied on top
// by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/erazemk/wms/internal/blob"
	"github.com/erazemk/wms/internal/model"
	"github.com/erazemk/wms/internal/service"
	"github.com/erazemk/wms/internal/store"
)

// EnvPrefix is prepended to every environment variable, e.g. WMS_SERVER_ADDR.
const EnvPrefix = "WMS"

// DotEnvFile is read from the working directory when present.
const DotEnvFile = ".env"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Blob     BlobConfig     `mapstructure:"blob"`
	Operator OperatorConfig `mapstructure:"operator"`
	Assets   AssetsConfig   `mapstructure:"assets"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver      string      `mapstructure:"driver"`
	SQLitePath  string      `mapstructure:"sqlite_path"`
	PostgresDSN string      `mapstructure:"postgres_dsn"`
	Redis       RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type BlobConfig struct {
	Driver string   `mapstructure:"driver"`
	Root   string   `mapstructure:"root"`
	S3     S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	PathStyle       bool   `mapstructure:"path_style"`
}

// OperatorConfig describes the single operator the panel acts as.
type OperatorConfig struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
	Role  string `mapstructure:"role"`
}

type AssetsConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("storage.driver", string(store.DriverSQLite))
	v.SetDefault("storage.sqlite_path", "wms.sqlite3")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.key_prefix", "wms:")

	v.SetDefault("blob.driver", string(blob.DriverFilesystem))
	v.SetDefault("blob.root", "blobdata")
	v.SetDefault("blob.s3.bucket", "")
	v.SetDefault("blob.s3.region", "us-east-1")
	v.SetDefault("blob.s3.endpoint", "")
	v.SetDefault("blob.s3.access_key_id", "")
	v.SetDefault("blob.s3.secret_access_key", "")
	v.SetDefault("blob.s3.path_style", false)

	v.SetDefault("operator.name", "Ariel Parcon")
	v.SetDefault("operator.email", "ariel@goli.com")
	v.SetDefault("operator.role", model.RoleAdministrator)

	v.SetDefault("assets.base_url", service.DefaultAssetBaseURL)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Load reads the configuration. path may be empty, in which case a
// wms.{yaml,toml,json} in the working directory is used if one exists.
func Load(path string) (*Config, error) {
	return load(path, DotEnvFile)
}

func load(path, envFile string) (*Config, error) {
	// godotenv never overrides variables that are already set.
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("wms")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise only fail at startup.
func (c *Config) Validate() error {
	switch store.Driver(c.Storage.Driver) {
	case store.DriverMemory, store.DriverSQLite, store.DriverRedis:
	case store.DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			return errors.New("storage.postgres_dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch blob.Driver(c.Blob.Driver) {
	case blob.DriverMemory, blob.DriverFilesystem:
	case blob.DriverS3:
		if c.Blob.S3.Bucket == "" {
			return errors.New("blob.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown blob driver %q", c.Blob.Driver)
	}

	if c.Operator.Email == "" {
		return errors.New("operator.email is required")
	}
	if !model.KnownRole(c.Operator.Role) {
		return fmt.Errorf("unknown operator role %q", c.Operator.Role)
	}
	return nil
}

// StoreConfig converts the storage section for store.Open.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Driver:      store.Driver(c.Storage.Driver),
		SQLitePath:  c.Storage.SQLitePath,
		PostgresDSN: c.Storage.PostgresDSN,
		Redis: store.RedisConfig{
			Addr:      c.Storage.Redis.Addr,
			Password:  c.Storage.Redis.Password,
			DB:        c.Storage.Redis.DB,
			KeyPrefix: c.Storage.Redis.KeyPrefix,
		},
	}
}

// BlobConfig converts the blob section for blob.Open.
func (c *Config) BlobConfig() blob.Config {
	return blob.Config{
		Driver: blob.Driver(c.Blob.Driver),
		Root:   c.Blob.Root,
		S3: blob.S3Config{
			Bucket:          c.Blob.S3.Bucket,
			Region:          c.Blob.S3.Region,
			Endpoint:        c.Blob.S3.Endpoint,
			AccessKeyID:     c.Blob.S3.AccessKeyID,
			SecretAccessKey: c.Blob.S3.SecretAccessKey,
			PathStyle:       c.Blob.S3.PathStyle,
		},
	}
}

// User returns the operator as a model.User.
func (c *Config) User() model.User {
	return model.User{Name: c.Operator.Name, Email: c.Operator.Email, Role: c.Operator.Role}
}
