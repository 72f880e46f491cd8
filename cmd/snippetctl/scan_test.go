package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/security"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func exitCode(err error) int {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	if err != nil {
		return -1
	}
	return 0
}

func TestScan_SecureFromStdin(t *testing.T) {
	out, err := execute(t, "console.log('hi')", "scan", "--language", "javascript", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "SECURE")
	assert.Contains(t, out, "score 0")
}

func TestScan_HighRiskExitCode(t *testing.T) {
	out, err := execute(t, "eval(req.body.x)", "scan", "--language", "javascript", "--json", "-")
	assert.Equal(t, exitHighRisk, exitCode(err))

	var result security.CheckResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.IsSecure)
	assert.Equal(t, security.RiskHigh, result.MalwareDetails.RiskLevel)
	assert.False(t, result.AllowOverride)
}

func TestScan_ProfanityIsNotSecure(t *testing.T) {
	_, err := execute(t, "x = 1", "scan", "--title", "shitty helper", "-")
	assert.Equal(t, exitNotSecure, exitCode(err))
}

func TestScan_LanguageFromExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steal.js")
	require.NoError(t, os.WriteFile(path, []byte("send(document.cookie)"), 0o600))

	out, err := execute(t, "", "scan", "--json", path)
	assert.Equal(t, exitNotSecure, exitCode(err))

	var result security.CheckResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, security.RiskMedium, result.MalwareDetails.RiskLevel)
	assert.True(t, result.AllowOverride)
}

func TestScan_MissingFile(t *testing.T) {
	_, err := execute(t, "", "scan", filepath.Join(t.TempDir(), "nope.py"))
	require.Error(t, err)
	assert.Equal(t, -1, exitCode(err))
}

func TestToken_SignsAdminToken(t *testing.T) {
	t.Setenv(secretKeyEnv, "cli-secret")

	out, err := execute(t, "", "token", "--subject", "ops")
	require.NoError(t, err)

	claims, err := jwt.NewJwtManager("cli-secret", nil).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleAdmin, claims.Role)
	assert.Equal(t, "ops", claims.Subject)
}

func TestToken_RequiresSecret(t *testing.T) {
	t.Setenv(secretKeyEnv, "")

	_, err := execute(t, "", "token")
	assert.Error(t, err)
}
