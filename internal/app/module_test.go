package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/octagoniq/octagoniq-api/internal/config"
)

func TestModule_GraphIsComplete(t *testing.T) {
	require.NoError(t, fx.ValidateApp(Module, fx.Invoke(RunServer)))
}

func TestNewTokenManager_FromConfig(t *testing.T) {
	cfg := config.Config{JWTSecret: "s3cret", JWTAlgorithm: "HS384", JWTIssuer: "octagoniq-api"}
	tokens, err := NewTokenManager(cfg)
	require.NoError(t, err)

	signed, err := tokens.Issue("alice", "user", 0)
	require.NoError(t, err)
	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)

	_, err = NewTokenManager(config.Config{JWTSecret: "s3cret", JWTAlgorithm: "RS256"})
	assert.Error(t, err)
}
