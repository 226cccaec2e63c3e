package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment does not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GO_ENV", "PORT", "DATABASE_URL", "JWT_SECRET", "CONTEXT_TIMEOUT", "MIGRATE_ON_START",
		"CORS_ALLOWED_ORIGINS", "MAIL_PROVIDER", "MAIL_FROM_ADDRESS", "AWS_REGION",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "SES_INSECURE_SKIP_VERIFY",
		"NOTIFICATION_QUEUE", "KAFKA_BROKERS", "KAFKA_NOTIFICATIONS_TOPIC", "KAFKA_CONSUMER_GROUP",
		"OUTBOX_POLL_INTERVAL", "OUTBOX_BATCH_SIZE", "OUTBOX_MAX_ATTEMPTS",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("GO_ENV", "production")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ContextTimeout)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, "noop", cfg.Mail.Provider)
	assert.Equal(t, QueueOutbox, cfg.Notification.Queue)
	assert.Equal(t, 5*time.Second, cfg.Notification.PollInterval)
	assert.Equal(t, 20, cfg.Notification.BatchSize)
	assert.Equal(t, 5, cfg.Notification.MaxAttempts)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("CONTEXT_TIMEOUT", "3s")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("MAIL_PROVIDER", "ses")
	t.Setenv("AWS_REGION", "eu-west-3")
	t.Setenv("NOTIFICATION_QUEUE", "Kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("OUTBOX_MAX_ATTEMPTS", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.ContextTimeout)
	assert.False(t, cfg.MigrateOnStart)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "eu-west-3", cfg.Mail.AWSRegion)
	assert.Equal(t, QueueKafka, cfg.Notification.Queue)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Notification.KafkaBrokers)
	assert.Equal(t, 8, cfg.Notification.MaxAttempts)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing jwt secret in production", map[string]string{}, "JWT_SECRET"},
		{"kafka without brokers", map[string]string{"JWT_SECRET": "x", "NOTIFICATION_QUEUE": "kafka"}, "KAFKA_BROKERS"},
		{"unknown queue", map[string]string{"JWT_SECRET": "x", "NOTIFICATION_QUEUE": "sqs"}, "NOTIFICATION_QUEUE"},
		{"ses without region", map[string]string{"JWT_SECRET": "x", "MAIL_PROVIDER": "ses"}, "AWS_REGION"},
		{"bad duration", map[string]string{"JWT_SECRET": "x", "OUTBOX_POLL_INTERVAL": "soon"}, "OUTBOX_POLL_INTERVAL"},
		{"bad int", map[string]string{"JWT_SECRET": "x", "OUTBOX_BATCH_SIZE": "many"}, "OUTBOX_BATCH_SIZE"},
		{"non positive batch", map[string]string{"JWT_SECRET": "x", "OUTBOX_BATCH_SIZE": "0"}, "OUTBOX_BATCH_SIZE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_DevelopmentSecretFallback(t *testing.T) {
	for _, env := range []string{"development", "test"} {
		t.Run(env, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("GO_ENV", env)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, devJWTSecret, cfg.JWTSecret)
		})
	}
}

func TestLoad_SecretRequiredWithoutExplicitEnv(t *testing.T) {
	for _, env := range []string{"", "staging", "prod"} {
		t.Run("GO_ENV="+env, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("GO_ENV", env)

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "JWT_SECRET")
		})
	}
}

func TestLoad_UnsetEnvDefaultsToDevelopment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_ENV", "")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}
