package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.True(t, cfg.Store.SeedDemo)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "bhojanyaan-store", cfg.Redis.StateKey)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, 2*time.Second, cfg.Kafka.PublishTimeout)
	assert.Equal(t, time.Second, cfg.Mail.Delay)
	assert.Equal(t, DefaultMarketplace(), cfg.Marketplace)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, ,kafka-2:9092")
	t.Setenv("COMMISSION_RATE", "0.1")
	t.Setenv("DEFAULT_RADIUS_KM", "30")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("FSSAI_MAIL_DELAY", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 0.1, cfg.Marketplace.CommissionRate)
	assert.Equal(t, 30.0, cfg.Marketplace.DefaultRadiusKm)
	assert.False(t, cfg.Store.SeedDemo)
	assert.Equal(t, 250*time.Millisecond, cfg.Mail.Delay)
}

func TestLoad_RejectsUnknownStoreDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	db := DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", db.GetDSN())
}
