package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearOtelEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OTEL_ENABLED",
		"OTEL_SERVICE_NAME",
		"OTEL_SERVICE_VERSION",
		"OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_EXPORTER_OTLP_PROTOCOL",
		"OTEL_EXPORTER_OTLP_HEADERS",
		"OTEL_EXPORTER_OTLP_INSECURE",
		"OTEL_TRACES_SAMPLER",
		"OTEL_TRACES_SAMPLER_ARG",
		"OTEL_RESOURCE_ATTRIBUTES",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearOtelEnv(t)

	cfg := LoadFromEnv()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "hpcprof", cfg.ServiceName)
	assert.Equal(t, "unknown", cfg.ServiceVersion)
	assert.Equal(t, "grpc", cfg.Protocol)
	assert.Empty(t, cfg.Headers)
	assert.False(t, cfg.Insecure)
}

func TestLoadFromEnv_Custom(t *testing.T) {
	clearOtelEnv(t)
	t.Setenv("OTEL_ENABLED", "TRUE")
	t.Setenv("OTEL_SERVICE_NAME", "hpcprof-import")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "http/protobuf")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "Authorization=Bearer a=b, x-tenant=hpc")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")
	t.Setenv("OTEL_TRACES_SAMPLER", "traceidratio")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")
	t.Setenv("OTEL_RESOURCE_ATTRIBUTES", "site=riken")

	cfg := LoadFromEnv()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "hpcprof-import", cfg.ServiceName)
	assert.Equal(t, "http://collector:4318", cfg.Endpoint)
	assert.Equal(t, "http/protobuf", cfg.Protocol)
	assert.Equal(t, map[string]string{"Authorization": "Bearer a=b", "x-tenant": "hpc"}, cfg.Headers)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, "traceidratio", cfg.Sampler)
	assert.Equal(t, "0.25", cfg.SamplerArg)
	assert.Equal(t, map[string]string{"site": "riken"}, cfg.ResourceAttrs)
}

func TestParseKeyValuePairs(t *testing.T) {
	tests := []struct {
		input string
		want  map[string]string
	}{
		{"", map[string]string{}},
		{"a=1", map[string]string{"a": "1"}},
		{"a=1,,b=2", map[string]string{"a": "1", "b": "2"}},
		{"=1,novalue,c=", map[string]string{"c": ""}},
		{" k = v=w ", map[string]string{"k": "v=w"}},
		{"a=1,a=2", map[string]string{"a": "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseKeyValuePairs(tt.input))
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	for _, protocol := range []string{ProtocolGRPC, ProtocolHTTP, "http"} {
		assert.NoError(t, (&Config{Protocol: protocol}).Validate(), protocol)
	}
	assert.Error(t, (&Config{Protocol: "thrift"}).Validate())
}

func TestInitWithConfig_BadProtocol(t *testing.T) {
	shutdown, err := InitWithConfig(context.Background(), &Config{Enabled: true, Protocol: "thrift"})
	require.Error(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
