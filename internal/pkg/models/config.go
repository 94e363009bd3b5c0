package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Trips    TripsConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Metrics  MetricsConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int // seconds
	WriteTimeout    int // seconds
	ShutdownTimeout int // seconds
}

// Fare ledger backends
const (
	FareBackendMemory = "memory"
	FareBackendRedis  = "redis"
)

// TripsConfig contains trip store configuration
type TripsConfig struct {
	WorkerCount int    // max concurrently served calls
	FareBackend string // memory or redis
	APIKey      string // empty disables the check
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL        string // empty disables event ingestion
	QueueGroup string
}

// MetricsConfig contains Prometheus configuration
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	Enabled     bool
	LicenseKey  string
	AppName     string
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
