package components

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saferoute/internal/config"
)

func TestInitComponents_InMemoryOnly(t *testing.T) {
	// NewMetrics registers with the default registry; isolate it.
	reg := prometheus.NewRegistry()
	prevReg, prevGatherer := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer, prometheus.DefaultGatherer = reg, reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer, prometheus.DefaultGatherer = prevReg, prevGatherer
	})

	cfg := &config.Config{
		Env:       "test",
		Http:      config.HttpConfig{Port: ":0", CORSOrigins: []string{"*"}, ShutdownTimeout: time.Second},
		Broadcast: config.BroadcastConfig{SendBuffer: 4, WriteTimeout: time.Second},
		External: config.ExternalConfig{
			NominatimURL: "http://127.0.0.1:1",
			OSRMURL:      "http://127.0.0.1:1",
			UserAgent:    "test",
			Timeout:      time.Second,
		},
		Auth:      config.AuthConfig{Username: "admin", Password: "pw", Token: "tok"},
		RateLimit: config.RateLimitConfig{MutationsRPS: 1, MutationsBurst: 1, ExternalRPS: 1, ExternalBurst: 1},
		Webhook:   config.WebhookConfig{URL: "http://hooks.local"},
	}

	c, err := InitComponents(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer c.ShutdownAll()

	assert.NotNil(t, c.HttpServer)
	assert.NotNil(t, c.Exporter)
	assert.Nil(t, c.Postgres)
	assert.Nil(t, c.Redis)
	assert.Nil(t, c.Kafka)
	assert.Nil(t, c.Webhook, "webhook needs redis")
}

func TestInitComponents_BadSeedFile(t *testing.T) {
	cfg := &config.Config{SeedFile: "testdata/does-not-exist.yaml"}

	_, err := InitComponents(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}
