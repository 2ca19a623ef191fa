package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_EXPIRE", "")
	t.Setenv("MAX_FILE_UPLOAD", "")

	cfg := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 30*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, int64(1000000), cfg.MaxFileUpload)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.True(t, cfg.MailSendEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_EXPIRE", "2h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("MAIL_SEND_ENABLED", "false")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.False(t, cfg.MailSendEnabled)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRE", "thirty days")
	t.Setenv("COOKIE_SECURE", "maybe")
	t.Setenv("REDIS_DB", "x")

	cfg := Load()
	assert.Equal(t, 30*24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "bootcamps", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/bootcamps?sslmode=disable", cfg.PostgresDSN())
}

func TestCSVSplitting(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test ", ElasticsearchAddrs: ""}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.ESAddrs())
}

func validConfig() *Config {
	return &Config{Env: "development", StorageDriver: "local", MailSendEnabled: true, MailTransport: "log", JWTSecret: defaultJWTSecret, MaxFileUpload: 1}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	gcs := validConfig()
	gcs.StorageDriver = "gcs"
	assert.ErrorContains(t, gcs.Validate(), "GCS_BUCKET")

	mg := validConfig()
	mg.MailTransport = "mailgun"
	assert.ErrorContains(t, mg.Validate(), "MAILGUN_DOMAIN")

	mg.MailSendEnabled = false
	assert.NoError(t, mg.Validate())

	prod := validConfig()
	prod.Env = "production"
	assert.ErrorContains(t, prod.Validate(), "JWT_SECRET")

	bad := validConfig()
	bad.StorageDriver = "s3"
	bad.MailTransport = "smtp"
	err := bad.Validate()
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
	assert.ErrorContains(t, err, "MAIL_TRANSPORT")
}
