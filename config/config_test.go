package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("GATEWAY_URL", "https://gateway.example.com/mcp")
	t.Setenv("AUTH_SCOPE", "gateway/invoke")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("WORKLOAD_NAME", "")
	t.Setenv("USER_ID", "")
	t.Setenv("MODEL_ID", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://gateway.example.com/mcp", cfg.GatewayURL)
	assert.Equal(t, "gateway/invoke", cfg.AuthScope)
	assert.Equal(t, DefaultWorkloadName, cfg.WorkloadName)
	assert.Equal(t, DefaultUserID, cfg.UserID)
	assert.Equal(t, DefaultModelID, cfg.ModelID)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("WORKLOAD_NAME", "custom-workload")
	t.Setenv("USER_ID", "svc-user")
	t.Setenv("MODEL_ID", "claude-opus-4-1-20250805")
	t.Setenv("TOKEN_URL", "https://idp.example.com/oauth2/token")
	t.Setenv("CLIENT_ID", "cid")
	t.Setenv("CLIENT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "custom-workload", cfg.WorkloadName)
	assert.Equal(t, "svc-user", cfg.UserID)
	assert.Equal(t, "claude-opus-4-1-20250805", cfg.ModelID)
	assert.Equal(t, "https://idp.example.com/oauth2/token", cfg.TokenURL)
	assert.Equal(t, "cid", cfg.ClientID)
	assert.Equal(t, "secret", cfg.ClientSecret)
}

func TestLoad_MissingGatewayURL(t *testing.T) {
	t.Setenv("GATEWAY_URL", "")
	t.Setenv("AUTH_SCOPE", "gateway/invoke")

	_, err := Load()
	require.Error(t, err)

	var missing *MissingEnvError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "GATEWAY_URL", missing.Var)
}

func TestLoad_MissingAuthScope(t *testing.T) {
	t.Setenv("GATEWAY_URL", "https://gateway.example.com/mcp")
	t.Setenv("AUTH_SCOPE", "")

	_, err := Load()
	require.Error(t, err)

	var missing *MissingEnvError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "AUTH_SCOPE", missing.Var)
}

func TestValidate(t *testing.T) {
	cfg := &Config{GatewayURL: "https://g", AuthScope: "s"}
	assert.NoError(t, cfg.Validate())
}
