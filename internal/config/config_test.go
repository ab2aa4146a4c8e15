package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) ed25519.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	t.Setenv("APP_ID", "app-1")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("PUBLIC_KEY", hex.EncodeToString(pub))
	return pub
}

func TestParse_Defaults(t *testing.T) {
	pub := setRequired(t)

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "app-1", cfg.AppID)
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 5, cfg.ChallengeRateLimit)
	assert.Equal(t, time.Minute, cfg.ChallengeRateWindow)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, pub, cfg.PublicKey)
}

func TestParse_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8443")
	t.Setenv("GUILD_ID", "guild-9")
	t.Setenv("SESSION_TTL", "0s")
	t.Setenv("CHALLENGE_RATE_WINDOW", "30s")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8443", cfg.AppPort)
	assert.Equal(t, "guild-9", cfg.GuildID)
	assert.Zero(t, cfg.SessionTTL)
	assert.Equal(t, 30*time.Second, cfg.ChallengeRateWindow)
}

func TestParse_MissingRequired(t *testing.T) {
	t.Setenv("APP_ID", "")
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("PUBLIC_KEY", "")

	_, err := Parse()
	require.Error(t, err)
}

func TestParsePublicKey(t *testing.T) {
	_, err := ParsePublicKey("zz")
	require.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = ParsePublicKey("abcd")
	require.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestLoadDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := LoadDatabase()
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/rps")
	cfg, err := LoadDatabase()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/rps", cfg.URL)
	assert.Equal(t, "info", cfg.LogLevel)
}
