// Package config loads the POS backend settings from config.toml and POS_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. POS_DATABASE_PASSWORD
const EnvPrefix = "POS"

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Checkout  CheckoutConfig  `mapstructure:"checkout"`
	Receipt   ReceiptConfig   `mapstructure:"receipt"`
	Printing  PrintingConfig  `mapstructure:"printing"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Breaker   BreakerConfig   `mapstructure:"breaker"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, or file path
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
	Port    string `mapstructure:"port"`
}

// DatabaseConfig holds the PostgreSQL connection and pool settings
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
	LogLevel        string `mapstructure:"log_level"`
	// AutoMigrate applies the embedded schema migrations at server start
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// RedisConfig holds Redis connection settings.
// An empty Host disables Redis and the projection cache stays in memory.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type HTTPConfig struct {
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
	IdleTimeout      time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes   int           `mapstructure:"max_header_bytes"`
	MaxBodySize      int64         `mapstructure:"max_body_size"`
	CORSAllowOrigins []string      `mapstructure:"cors_allow_origins"`
	TrustedProxies   []string      `mapstructure:"trusted_proxies"`
	// CheckoutRateLimit caps checkout requests per session within RateLimitWindow; zero disables it
	CheckoutRateLimit int           `mapstructure:"checkout_rate_limit"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
	// SwaggerEnabled serves the API documentation under /swagger
	SwaggerEnabled    bool     `mapstructure:"swagger_enabled"`
	SwaggerAllowedIPs []string `mapstructure:"swagger_allowed_ips"` // addresses or CIDR ranges, empty allows all
}

// CheckoutConfig holds sale composition settings
type CheckoutConfig struct {
	Seller             string        `mapstructure:"seller"`
	PaymentMethod      string        `mapstructure:"payment_method"`
	CallTimeout        time.Duration `mapstructure:"call_timeout"` // bound of every remote call
	ZeroQuantityPolicy string        `mapstructure:"zero_quantity_policy"`
	SessionIdleTimeout time.Duration `mapstructure:"session_idle_timeout"`
	SweepInterval      time.Duration `mapstructure:"sweep_interval"`
}

// ReceiptConfig holds the store profile printed on receipts
type ReceiptConfig struct {
	StoreName       string        `mapstructure:"store_name"`
	TaxID           string        `mapstructure:"tax_id"`
	AddressLines    []string      `mapstructure:"address_lines"`
	Phone           string        `mapstructure:"phone"`
	ConsultURL      string        `mapstructure:"consult_url"`
	QRCodeBaseURL   string        `mapstructure:"qrcode_base_url"`
	Series          string        `mapstructure:"series"`
	DefaultNumber   string        `mapstructure:"default_number"`
	AccessKeyPrefix string        `mapstructure:"access_key_prefix"`
	ProtocolPrefix  string        `mapstructure:"protocol_prefix"`
	Footer          string        `mapstructure:"footer"`
	Timezone        string        `mapstructure:"timezone"`
	ProjectionTTL   time.Duration `mapstructure:"projection_ttl"`
}

// PrintingConfig holds receipt rendering and artifact settings
type PrintingConfig struct {
	PDFEnabled      bool          `mapstructure:"pdf_enabled"`
	ChromeRemoteURL string        `mapstructure:"chrome_remote_url"`
	NoSandbox       bool          `mapstructure:"no_sandbox"`
	RenderTimeout   time.Duration `mapstructure:"render_timeout"`
	PaperSize       string        `mapstructure:"paper_size"`
	StorageBackend  string        `mapstructure:"storage_backend"` // filesystem or s3
	BasePath        string        `mapstructure:"base_path"`
	BaseURL         string        `mapstructure:"base_url"`
	Retention       time.Duration `mapstructure:"retention"` // zero keeps artifacts forever
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// StorageConfig holds the S3 artifact store settings
type StorageConfig struct {
	Bucket          string        `mapstructure:"bucket"`
	Region          string        `mapstructure:"region"`
	Endpoint        string        `mapstructure:"endpoint"` // S3 compatible endpoint, e.g. MinIO
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UsePathStyle    bool          `mapstructure:"use_path_style"`
	Prefix          string        `mapstructure:"prefix"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
}

// BreakerConfig holds the circuit breaker of the sale store
type BreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"max_requests"`      // probes allowed while half-open
	Interval         time.Duration `mapstructure:"interval"`          // closed-state counter reset period
	Timeout          time.Duration `mapstructure:"timeout"`           // open-state duration
	FailureThreshold uint32        `mapstructure:"failure_threshold"` // consecutive failures that open it
}

// TelemetryConfig holds the OpenTelemetry export settings
type TelemetryConfig struct {
	Enabled           bool    `mapstructure:"enabled"` // traces
	CollectorEndpoint string  `mapstructure:"collector_endpoint"`
	SamplingRatio     float64 `mapstructure:"sampling_ratio"`
	ServiceName       string  `mapstructure:"service_name"`
	Insecure          bool    `mapstructure:"insecure"`

	DBTraceEnabled    bool          `mapstructure:"db_trace_enabled"`
	DBLogFullSQL      bool          `mapstructure:"db_log_full_sql"`
	DBSlowQueryThresh time.Duration `mapstructure:"db_slow_query_threshold"`

	MetricsEnabled        bool          `mapstructure:"metrics_enabled"`
	MetricsExportInterval time.Duration `mapstructure:"metrics_export_interval"`
	LogsEnabled           bool          `mapstructure:"logs_enabled"`
	LogsLevel             string        `mapstructure:"logs_level"`
}

// Load reads ./config.toml or /app/config.toml when present. POS_ environment
// variables override the file, which overrides the built-in defaults.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFile is Load with an explicit file that must exist
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return decode(v)
}

// newViper registers every key with its default. Environment variables are
// only seen by Unmarshal for registered keys.
func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN returns the postgres URL with user and password escaped
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Addr returns the host:port of the Redis server
func (r *RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
}

// Enabled reports whether a Redis server is configured
func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Location returns the receipt time zone. validate guarantees it loads.
func (r *ReceiptConfig) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
