package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "CineMax Entertainment", cfg.App.CompanyName)
	assert.True(t, cfg.App.SeedDemoData)
	assert.True(t, cfg.App.EnforceUniqueKeys)
	assert.True(t, cfg.App.RejectUnsellable)
	assert.Equal(t, time.Minute, cfg.App.ReportCacheTTL)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "ticket-sales", cfg.Kafka.Topic)
	assert.Equal(t, "customer_notifications", cfg.RabbitMQ.QueueName)
	assert.Equal(t, 3, cfg.Worker.MaxRetries)
}

func TestParseConfigEnvOverride(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")

	v := viper.New()
	setDefaults(v)
	v.Set("database.password", "from-file")

	cfg, err := ParseConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("BOXOFFICE_TEST_KEY", "value")

	assert.Equal(t, "value", GetEnv("BOXOFFICE_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("BOXOFFICE_MISSING_KEY", "fallback"))
}
