package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "qa-api", cfg.ServiceName)
	assert.Equal(t, ":8088", cfg.Addr())
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 60*time.Second, cfg.FlowiseTimeout)
	assert.Equal(t, 10*time.Second, cfg.OllamaTimeout)
	assert.Equal(t, 5*time.Second, cfg.MermaidTimeout)
	assert.Equal(t, 30*time.Second, cfg.GStoreTimeout)
	assert.Equal(t, "qwen:7b-chat", cfg.OllamaModel)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DATABASE_URL", "root:123456@tcp(127.0.0.1:3308)/modeldev?charset=utf8mb4&parseTime=True")
	t.Setenv("FLOWISE_CHATFLOW_ID_3", "flow-3")
	t.Setenv("HTTP_PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "flow-3", cfg.ChatflowIDs()[2])
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_DRIVER")
}

func TestValidateRejectsBlankChatflow(t *testing.T) {
	t.Setenv("FLOWISE_CHATFLOW_ID_4", " ")

	_, err := Load()
	assert.ErrorContains(t, err, "FLOWISE_CHATFLOW_ID_4")
}

func TestValidateRequiresRedisForLock(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.RoutingLockEnabled = true
	cfg.RedisURL = ""
	assert.ErrorContains(t, cfg.Validate(), "REDIS_URL")
}
