package telemetry

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Protocols accepted in OTEL_EXPORTER_OTLP_PROTOCOL.
const (
	ProtocolGRPC = "grpc"
	ProtocolHTTP = "http/protobuf"
)

// Config is the tracing setup read from the standard OTEL_* variables.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string

	Endpoint string // collector address, with or without scheme
	Protocol string // ProtocolGRPC or ProtocolHTTP
	Headers  map[string]string
	Insecure bool

	Sampler    string // OTEL_TRACES_SAMPLER name; empty samples everything
	SamplerArg string

	ResourceAttrs map[string]string
}

// envKeys maps config keys to the variables they are read from.
var envKeys = map[string]string{
	"enabled":         "OTEL_ENABLED",
	"service_name":    "OTEL_SERVICE_NAME",
	"service_version": "OTEL_SERVICE_VERSION",
	"endpoint":        "OTEL_EXPORTER_OTLP_ENDPOINT",
	"protocol":        "OTEL_EXPORTER_OTLP_PROTOCOL",
	"headers":         "OTEL_EXPORTER_OTLP_HEADERS",
	"insecure":        "OTEL_EXPORTER_OTLP_INSECURE",
	"sampler":         "OTEL_TRACES_SAMPLER",
	"sampler_arg":     "OTEL_TRACES_SAMPLER_ARG",
	"resource_attrs":  "OTEL_RESOURCE_ATTRIBUTES",
}

// LoadFromEnv reads the configuration from the environment.
func LoadFromEnv() *Config {
	v := viper.New()
	v.SetDefault("enabled", false)
	v.SetDefault("service_name", "hpcprof")
	v.SetDefault("service_version", "unknown")
	v.SetDefault("protocol", ProtocolGRPC)
	for key, env := range envKeys {
		_ = v.BindEnv(key, env)
	}

	return &Config{
		Enabled:        envBool(v.GetString("enabled")),
		ServiceName:    v.GetString("service_name"),
		ServiceVersion: v.GetString("service_version"),
		Endpoint:       v.GetString("endpoint"),
		Protocol:       strings.ToLower(v.GetString("protocol")),
		Headers:        parseKeyValuePairs(v.GetString("headers")),
		Insecure:       envBool(v.GetString("insecure")),
		Sampler:        strings.ToLower(v.GetString("sampler")),
		SamplerArg:     v.GetString("sampler_arg"),
		ResourceAttrs:  parseKeyValuePairs(v.GetString("resource_attrs")),
	}
}

// Validate rejects protocols the exporters cannot speak.
func (c *Config) Validate() error {
	switch c.Protocol {
	case ProtocolGRPC, ProtocolHTTP, "http":
		return nil
	default:
		return fmt.Errorf("unsupported OTLP protocol: %q", c.Protocol)
	}
}

func envBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// parseKeyValuePairs parses "k1=v1,k2=v2". Values may contain '='; entries
// without a key are dropped.
func parseKeyValuePairs(s string) map[string]string {
	result := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		result[key] = strings.TrimSpace(value)
	}
	return result
}
