package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the NELA risk service.
type Config struct {
	HTTPPort           string
	GRPCPort           string
	Environment        string
	LogLevel           string
	LogFormat          string
	KafkaTopic         string
	KafkaClientID      string
	KafkaSASLMechanism string
	KafkaSASLUsername  string
	KafkaSASLPassword  string
	OTLPEndpoint       string
	GRPCTLSCert        string
	GRPCTLSKey         string
	KafkaBrokers       []string
	RateLimit          int
	NelaDebug          bool
	StrictOrder        bool
	TracingEnabled     bool
	GRPCReflection     bool
	KafkaTLS           bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "3000"),
		GRPCPort:           getEnv("GRPC_PORT", "50051"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		NelaDebug:          getEnvBool("NELA_DEBUG", false),
		StrictOrder:        getEnvBool("STRICT_FIELD_ORDER", false),
		RateLimit:          getEnvInt("RATE_LIMIT", 100),
		KafkaBrokers:       getEnvList("KAFKA_BROKERS"),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "nela.risk.calculated"),
		KafkaClientID:      getEnv("KAFKA_CLIENT_ID", "nela-api"),
		KafkaTLS:           getEnvBool("KAFKA_TLS", false),
		KafkaSASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
		KafkaSASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
		KafkaSASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		OTLPEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TracingEnabled:     getEnvBool("TRACING_ENABLED", false),
		GRPCTLSCert:        getEnv("GRPC_TLS_CERT_FILE", ""),
		GRPCTLSKey:         getEnv("GRPC_TLS_KEY_FILE", ""),
		GRPCReflection:     getEnvBool("GRPC_REFLECTION", false),
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if err := validatePort("HTTP_PORT", c.HTTPPort); err != nil {
		errs = append(errs, err)
	}
	if err := validatePort("GRPC_PORT", c.GRPCPort); err != nil {
		errs = append(errs, err)
	}
	if c.HTTPPort == c.GRPCPort {
		errs = append(errs, fmt.Errorf("HTTP_PORT and GRPC_PORT must differ, both are %s", c.HTTPPort))
	}
	if c.RateLimit < 1 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT must be positive, got %d", c.RateLimit))
	}
	if (c.GRPCTLSCert == "") != (c.GRPCTLSKey == "") {
		errs = append(errs, errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together"))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		errs = append(errs, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set"))
	}
	switch c.KafkaSASLMechanism {
	case "", "PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512":
	default:
		errs = append(errs, fmt.Errorf("KAFKA_SASL_MECHANISM %q is not supported", c.KafkaSASLMechanism))
	}
	return errors.Join(errs...)
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// KafkaEnabled reports whether events should be published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// KafkaSASLEnabled reports whether Kafka connections authenticate with SASL.
func (c *Config) KafkaSASLEnabled() bool {
	return c.KafkaSASLUsername != ""
}

// TLSEnabled reports whether the gRPC server should serve TLS.
func (c *Config) TLSEnabled() bool {
	return c.GRPCTLSCert != "" && c.GRPCTLSKey != ""
}

func validatePort(name, value string) error {
	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%s must be a port number between 1 and 65535, got %q", name, value)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return b
}

// getEnvList splits a comma-separated variable, dropping empty entries.
func getEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
