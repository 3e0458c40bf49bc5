package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "./docs/swagger.json", cfg.HTTP.DocsFile)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, NumberingPostgres, cfg.Ledger.NumberingBackend)
	assert.True(t, cfg.Ledger.LowStockThreshold.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "stock-movements", cfg.Kafka.Topic)
	assert.False(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Ledger.MigrateOnStart)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("KAFKA_BROKERS", "k1:9092, k2:9092,")
	v.Set("REDIS_ADDR", "localhost:6379")
	v.Set("NUMBERING_BACKEND", "Redis")
	v.Set("LOW_STOCK_THRESHOLD", "2.5")
	v.Set("MIGRATE_ON_START", "true")
	v.Set("DB_PORT", "6543")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, NumberingRedis, cfg.Ledger.NumberingBackend)
	assert.Equal(t, "2.5", cfg.Ledger.LowStockThreshold.String())
	assert.True(t, cfg.Ledger.MigrateOnStart)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Contains(t, cfg.DB.ConnectionString(), "localhost:6543")
}

func TestFromViper_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"backend desconocido": {"NUMBERING_BACKEND": "mysql"},
		"redis sin dirección": {"NUMBERING_BACKEND": "redis"},
		"umbral no numérico":  {"LOW_STOCK_THRESHOLD": "diez"},
		"umbral negativo":     {"LOW_STOCK_THRESHOLD": "-1"},
		"pool sin conexiones": {"DB_MAX_CONNS": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			for k, val := range env {
				v.Set(k, val)
			}
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "x", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/x?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
