package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Catalog backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
	BackendMinio    = "minio"
)

// EnvPath names the variable consulted when no --config flag is given.
const EnvPath = "MARINEIQ_CONFIG"

type Config struct {
	Server struct {
		Address         string        `yaml:"address"`
		MetricsAddress  string        `yaml:"metricsAddress"`
		GRPCAddress     string        `yaml:"grpcAddress"`
		ReadTimeout     time.Duration `yaml:"readTimeout"`
		WriteTimeout    time.Duration `yaml:"writeTimeout"`
		IdleTimeout     time.Duration `yaml:"idleTimeout"`
		GracefulTimeout time.Duration `yaml:"gracefulTimeout"`
	} `yaml:"server"`

	Logging struct {
		Level string `yaml:"level"`
		JSON  bool   `yaml:"json"`
	} `yaml:"logging"`

	Catalog struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
		Watch   bool   `yaml:"watch"`
		Object  string `yaml:"object"`
	} `yaml:"catalog"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Postgres struct {
		DSN string `yaml:"dsn"`
	} `yaml:"postgres"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	Analysis struct {
		Latency time.Duration `yaml:"latency"`
		Jitter  time.Duration `yaml:"jitter"`
	} `yaml:"analysis"`

	Sessions struct {
		IdleTimeout   time.Duration `yaml:"idleTimeout"`
		SweepInterval time.Duration `yaml:"sweepInterval"`
	} `yaml:"sessions"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`

	RateLimit struct {
		Capacity        int     `yaml:"capacity"`
		RefillPerSecond float64 `yaml:"refillPerSecond"`
	} `yaml:"rateLimit"`

	OpenAI struct {
		APIKey  string `yaml:"apiKey"`
		Model   string `yaml:"model"`
		BaseURL string `yaml:"baseURL"`
	} `yaml:"openai"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.Server.Address = ":8080"
	cfg.Server.MetricsAddress = ":9090"
	cfg.Server.GRPCAddress = ":9091"
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Server.WriteTimeout = 15 * time.Second
	cfg.Server.IdleTimeout = 60 * time.Second
	cfg.Server.GracefulTimeout = 10 * time.Second

	cfg.Logging.Level = "info"
	cfg.Logging.JSON = true

	cfg.Catalog.Backend = BackendMemory
	cfg.Catalog.Watch = true
	cfg.Catalog.Object = "catalog/marineiq.yaml"

	cfg.Database.Host = "127.0.0.1"
	cfg.Database.Port = 3306
	cfg.Database.Name = "marineiq"

	cfg.Minio.BucketName = "marineiq"
	cfg.Minio.Region = "us-east-1"

	cfg.Analysis.Latency = 2 * time.Second

	cfg.Sessions.IdleTimeout = 30 * time.Minute
	cfg.Sessions.SweepInterval = time.Minute

	cfg.CORS.AllowedOrigins = []string{"*"}

	cfg.RateLimit.Capacity = 10
	cfg.RateLimit.RefillPerSecond = 1
	return &cfg
}

// Load baca file config.yaml di atas default, lalu override dari env.
// Path kosong berarti default + env saja.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"MARINEIQ_SERVER_ADDRESS":   &c.Server.Address,
		"MARINEIQ_METRICS_ADDRESS":  &c.Server.MetricsAddress,
		"MARINEIQ_GRPC_ADDRESS":     &c.Server.GRPCAddress,
		"MARINEIQ_LOG_LEVEL":        &c.Logging.Level,
		"MARINEIQ_CATALOG_BACKEND":  &c.Catalog.Backend,
		"MARINEIQ_CATALOG_PATH":     &c.Catalog.Path,
		"MARINEIQ_CATALOG_OBJECT":   &c.Catalog.Object,
		"MARINEIQ_DB_HOST":          &c.Database.Host,
		"MARINEIQ_DB_USER":          &c.Database.User,
		"MARINEIQ_DB_PASSWORD":      &c.Database.Password,
		"MARINEIQ_DB_NAME":          &c.Database.Name,
		"MARINEIQ_POSTGRES_DSN":     &c.Postgres.DSN,
		"MARINEIQ_MINIO_ENDPOINT":   &c.Minio.Endpoint,
		"MARINEIQ_MINIO_ACCESS_KEY": &c.Minio.AccessKey,
		"MARINEIQ_MINIO_SECRET_KEY": &c.Minio.SecretKey,
		"MARINEIQ_MINIO_BUCKET":     &c.Minio.BucketName,
		"MARINEIQ_MINIO_REGION":     &c.Minio.Region,
		"MARINEIQ_OPENAI_API_KEY":   &c.OpenAI.APIKey,
		"MARINEIQ_OPENAI_MODEL":     &c.OpenAI.Model,
		"MARINEIQ_OPENAI_BASE_URL":  &c.OpenAI.BaseURL,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"MARINEIQ_ANALYSIS_LATENCY":     &c.Analysis.Latency,
		"MARINEIQ_ANALYSIS_JITTER":      &c.Analysis.Jitter,
		"MARINEIQ_SESSION_IDLE_TIMEOUT": &c.Sessions.IdleTimeout,
		"MARINEIQ_SESSION_SWEEP":        &c.Sessions.SweepInterval,
		"MARINEIQ_GRACEFUL_TIMEOUT":     &c.Server.GracefulTimeout,
	}
	for key, dst := range durations {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}

	bools := map[string]*bool{
		"MARINEIQ_LOG_JSON":      &c.Logging.JSON,
		"MARINEIQ_CATALOG_WATCH": &c.Catalog.Watch,
		"MARINEIQ_MINIO_USE_SSL": &c.Minio.UseSSL,
	}
	for key, dst := range bools {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
	}

	if v, ok := lookup("MARINEIQ_DB_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MARINEIQ_DB_PORT: %w", err)
		}
		c.Database.Port = port
	}
	if v, ok := lookup("MARINEIQ_CORS_ORIGINS"); ok {
		c.CORS.AllowedOrigins = splitList(v)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	switch c.Catalog.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Catalog.Path == "" {
			errs = append(errs, errors.New("catalog.path is required for the file backend"))
		}
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("postgres.dsn is required for the postgres backend"))
		}
	case BackendMySQL:
		if c.Database.Host == "" || c.Database.Name == "" {
			errs = append(errs, errors.New("database.host and database.name are required for the mysql backend"))
		}
	case BackendMinio:
		if c.Minio.Endpoint == "" || c.Minio.BucketName == "" {
			errs = append(errs, errors.New("minio.endpoint and minio.bucketName are required for the minio backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown catalog backend %q", c.Catalog.Backend))
	}
	if c.Analysis.Latency < 0 || c.Analysis.Jitter < 0 {
		errs = append(errs, errors.New("analysis latency and jitter must not be negative"))
	}
	if c.Sessions.IdleTimeout <= 0 {
		errs = append(errs, errors.New("sessions.idleTimeout must be positive"))
	}
	if c.Sessions.SweepInterval <= 0 {
		errs = append(errs, errors.New("sessions.sweepInterval must be positive"))
	}
	if c.RateLimit.Capacity <= 0 || c.RateLimit.RefillPerSecond <= 0 {
		errs = append(errs, errors.New("rateLimit capacity and refillPerSecond must be positive"))
	}
	return errors.Join(errs...)
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}
