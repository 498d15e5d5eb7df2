package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CART_FREE_SHIPPING_THRESHOLD", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(500), cfg.Cart.FreeShippingThreshold)
	assert.Equal(t, int64(50), cfg.Cart.DeliveryFee)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2*time.Second, cfg.Outbox.PollInterval)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("KAFKA_ENABLED", "false")
	t.Setenv("CART_SESSION_IDLE_TTL", "45m")
	t.Setenv("CART_DELIVERY_FEE", "75")

	cfg := LoadConfig()
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, 45*time.Minute, cfg.Cart.SessionIdleTTL)
	assert.Equal(t, int64(75), cfg.Cart.DeliveryFee)
}

func TestGetEnvHelpers_IgnoreGarbage(t *testing.T) {
	t.Setenv("X_INT", "ten")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")
	t.Setenv("X_LIST", " , ")

	assert.Equal(t, 3, getEnvInt("X_INT", 3))
	assert.True(t, getEnvBool("X_BOOL", true))
	assert.Equal(t, time.Minute, getEnvDuration("X_DUR", time.Minute))
	assert.Equal(t, []string{"a"}, getEnvList("X_LIST", []string{"a"}))
}
