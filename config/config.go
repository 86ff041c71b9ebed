package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"clipvault/internal/infrastructure/blob/fs"
	"clipvault/internal/infrastructure/blob/minio"
	"clipvault/internal/infrastructure/broker"
	"clipvault/internal/infrastructure/database"
	"clipvault/pkg/logger"
)

const (
	BackendFS    = "fs"
	BackendMinIO = "minio"
)

// Config represents the configs used by services on system. Secrets never
// live in the yaml file; they come from the environment (or a .env file
// outside prod).
type Config struct {
	Environment     string                 `yaml:"environment"`
	Logger          logger.Config          `yaml:"logger"`
	Server          ServerConfig           `yaml:"server"`
	Storage         StorageConfig          `yaml:"storage"`
	DBConfig        database.Config        `yaml:"db_config"`
	BrokerConfig    broker.Config          `yaml:"redis_broker_config"`
	PublisherConfig broker.PublisherConfig `yaml:"publisher_config"`
	Worker          WorkerConfig           `yaml:"worker"`

	JWTSecret []byte
}

type ServerConfig struct {
	Address string `yaml:"address"`
}

// StorageConfig selects the blob backend: local filesystem or MinIO.
type StorageConfig struct {
	Backend string       `yaml:"backend"`
	FS      fs.Config    `yaml:"fs"`
	MinIO   minio.Config `yaml:"minio"`
}

type WorkerConfig struct {
	ConsumerName string `yaml:"consumer_name"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}
	defer file.Close()

	config := &Config{}

	decoder := yaml.NewDecoder(file)

	if err := decoder.Decode(config); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	if config.Environment != "prod" {
		// A missing .env is fine; the variables may already be exported.
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, Error{
				reason: err.Error(),
			}
		}
	}

	config.Storage.MinIO.AccessKey = os.Getenv("MINIO_ROOT_USER")
	config.Storage.MinIO.SecretKey = os.Getenv("MINIO_ROOT_PASSWORD")
	config.DBConfig.URI = os.Getenv("DATABASE_URI")
	config.BrokerConfig.URI = os.Getenv("BROKER_URI")
	config.JWTSecret = []byte(os.Getenv("JWT_SECRET"))

	if err = config.basicCheck(); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	return config, nil
}

// basicCheck validates the basic stuff in config.
func (c *Config) basicCheck() error {
	switch c.Storage.Backend {
	case BackendFS:
		if c.Storage.FS.Root == "" {
			return errors.New("storage.fs.root is required for the fs backend")
		}
	case BackendMinIO:
		if c.Storage.MinIO.Endpoint == "" {
			return errors.New("storage.minio.endpoint is required for the minio backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if len(c.JWTSecret) == 0 {
		return errors.New("JWT_SECRET is not set")
	}

	if c.Server.Address == "" {
		return errors.New("server.address is required")
	}

	return nil
}
