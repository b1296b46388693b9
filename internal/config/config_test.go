package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimal = `
mongodb:
  uri: mongodb://localhost:27017
  database: basicchat
redis:
  addr: localhost:6379
kafka:
  brokers: [localhost:9092]
aws:
  region: us-east-1
  bucket: media
jwt:
  alg: HS256
  hs_secret: secret
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "chat.events", cfg.Kafka.Topic)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Minute, cfg.PresignTTL)
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(writeConfig(t, `
mongodb:
  database: basicchat
redis:
  addr: localhost:6379
kafka:
  brokers: [localhost:9092]
aws:
  region: us-east-1
  bucket: media
jwt:
  hs_secret: secret
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongodb.uri")
}

func TestLoadRejectsBadJWTAlg(t *testing.T) {
	_, err := Load(writeConfig(t, `
mongodb:
  uri: mongodb://localhost:27017
  database: basicchat
redis:
  addr: localhost:6379
kafka:
  brokers: [localhost:9092]
aws:
  region: us-east-1
  bucket: media
jwt:
  alg: ES512
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.alg")
}
