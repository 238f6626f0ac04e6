// Package config loads runtime configuration from the environment.
// Values are decoded once at startup and handed to the services
// explicitly; nothing in this package is a process-wide singleton.
package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Arango holds document store connection settings.
type Arango struct {
	URL      string `env:"ARANGO_URL"`
	Host     string `env:"ARANGO_HOST,default=localhost"`
	Port     string `env:"ARANGO_PORT,default=8529"`
	User     string `env:"ARANGO_USER,default=root"`
	Password string `env:"ARANGO_PASS,default=mypassword"`
	Database string `env:"ARANGO_DATABASE,default=mycms"`
}

// Endpoint returns the connection URL, deriving it from host and port
// when ARANGO_URL is not set explicitly.
func (a Arango) Endpoint() string {
	if a.URL != "" {
		return a.URL
	}
	return fmt.Sprintf("http://%s:%s", a.Host, a.Port)
}

// Storage selects and configures the blob store backing the rendered
// portfolio pages. Driver is either "s3" or "local".
type Storage struct {
	Driver string `env:"STORAGE_DRIVER,default=s3"`

	// S3 settings (also used for MinIO via Endpoint).
	Bucket    string `env:"S3_BUCKET_NAME,default=mycms-portfolios"`
	Region    string `env:"AWS_REGION,default=ap-northeast-2"`
	Endpoint  string `env:"S3_ENDPOINT"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`

	// Local filesystem settings. Keys are stored as paths under
	// LocalDir and exposed as PublicBaseURL/{key}.
	LocalDir      string `env:"STORAGE_LOCAL_DIR,default=public"`
	PublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL"`
}

// Config is the full runtime configuration for the backend.
type Config struct {
	Port        string `env:"PORT,default=3000"`
	TemplateDir string `env:"TEMPLATE_DIR,default=templates"`
	UploadDir   string `env:"UPLOAD_DIR,default=public/uploads"`

	Arango  Arango
	Storage Storage
}

// Load decodes the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config from environment: %w", err)
	}
	return &cfg, nil
}
