package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, 5000, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.HTTP.Addr())
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, DefaultSecretKey, cfg.Session.SecretKey)
	assert.Equal(t, 120*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, 90*time.Second, cfg.SpeedTest.Timeout)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "postgres://postgres:@localhost:5432/portfolio?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("PORT", "8081")
	v.Set("SECRET_KEY", "s3cr3t")
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/app")
	v.Set("DB_DRIVER", "MEMORY")
	v.Set("CORS_ORIGINS", "https://a.example, https://b.example")
	v.Set("SPEEDTEST_TIMEOUT_SECONDS", "30")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, "s3cr3t", cfg.Session.SecretKey)
	assert.Equal(t, "postgres://u:p@db:5432/app", cfg.DB.ConnectionString())
	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.SpeedTest.Timeout)
}

func TestFromViper_PasswordIsEscaped(t *testing.T) {
	v := viper.New()
	v.Set("DB_PASSWORD", "p@ss/word")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%2Fword")
}

func TestFromViper_Rejects(t *testing.T) {
	cases := map[string][2]string{
		"driver desconocido": {"DB_DRIVER", "mysql"},
		"puerto fuera rango": {"PORT", "70000"},
		"secret vacío":       {"SECRET_KEY", ""},
		"ttl cero":           {"SESSION_TTL_MINUTES", "0"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			v.Set(kv[0], kv[1])
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}
