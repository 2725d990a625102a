package main

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/somtoval/foretrust-api/internal/logger"
	"github.com/somtoval/foretrust-api/internal/storage"
)

const (
	defaultListenAddr   = "localhost:8000"
	defaultLoggingLevel = logger.LevelInfo
	defaultEnvironment  = logger.EnvProduction
	defaultMinioBucket  = "foretrust-uploads"
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address on which the foretrust service will be run
	ListenAddr string

	// Database to connect to
	DatabaseDSN string

	// Secret keys for signing JWT tokens
	// Access and refresh tokens use separate keys so one leaked key can't
	// forge the other token kind
	AccessSecretKey  string
	RefreshSecretKey string

	// Environment
	Environment string

	// Object storage for uploaded news images
	Minio storage.MinioConfig
}

func NewConfig() *Config {
	return &Config{
		LogLevel:    defaultLoggingLevel,
		ListenAddr:  defaultListenAddr,
		Environment: defaultEnvironment,
		Minio: storage.MinioConfig{
			Bucket: defaultMinioBucket,
		},
	}
}

// Load variable from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		c.LoadEnv(func(key string) string {
			return envMap[key]
		})
		return nil
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) {
		return func(value string) {
			if value != "" {
				*o = value
			}
		}
	}
	setBool := func(o *bool) func(value string) {
		return func(value string) {
			if parsed, err := strconv.ParseBool(value); err == nil {
				*o = parsed
			}
		}
	}

	envMap := map[string]func(string){
		"RUN_ADDRESS":        setString(&c.ListenAddr),
		"DATABASE_URI":       setString(&c.DatabaseDSN),
		"ACCESS_SECRET_KEY":  setString(&c.AccessSecretKey),
		"REFRESH_SECRET_KEY": setString(&c.RefreshSecretKey),
		"LOG_LEVEL":          setString(&c.LogLevel),
		"ENVIRONMENT":        setString(&c.Environment),
		"MINIO_ENDPOINT":     setString(&c.Minio.Endpoint),
		"MINIO_ACCESS_KEY":   setString(&c.Minio.AccessKey),
		"MINIO_SECRET_KEY":   setString(&c.Minio.SecretKey),
		"MINIO_BUCKET":       setString(&c.Minio.Bucket),
		"MINIO_USE_SSL":      setBool(&c.Minio.UseSSL),
		"MINIO_PUBLIC_URL":   setString(&c.Minio.PublicURL),
	}

	for key, parseFn := range envMap {
		parseFn(getenv(key))
	}
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("foretrust", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.DatabaseDSN, "database", "d", c.DatabaseDSN, "Database connection string")
	fs.StringVar(&c.AccessSecretKey, "access-secret-key", c.AccessSecretKey, "Secret key for signing access tokens")
	fs.StringVar(&c.RefreshSecretKey, "refresh-secret-key", c.RefreshSecretKey, "Secret key for signing refresh tokens")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")
	fs.StringVar(&c.Minio.Endpoint, "minio-endpoint", c.Minio.Endpoint, "MinIO endpoint for image uploads")
	fs.StringVar(&c.Minio.Bucket, "minio-bucket", c.Minio.Bucket, "MinIO bucket for image uploads")

	return fs.Parse(args)
}
