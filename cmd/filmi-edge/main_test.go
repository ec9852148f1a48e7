// ABOUTME: Tests for CLI helpers: logger setup, config discovery, health and mint
// ABOUTME: Color output is disabled so assertions see plain text

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/filmi-edge/internal/auth"
	"github.com/2389/filmi-edge/internal/config"
)

func init() {
	color.NoColor = true
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestSetupLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "origin", "https://b.com")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "https://b.com", rec["origin"])
}

func TestColorHandler_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "debug", Format: "text"}, &buf)

	logger.With("component", "gateway").WithGroup("req").Debug("http request", "status", 200)

	out := buf.String()
	assert.Contains(t, out, "DBG http request")
	assert.Contains(t, out, "component=gateway")
	assert.Contains(t, out, "req.status=200")
}

func TestColorHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "error", Format: "text"}, &buf)

	logger.Warn("quiet")
	assert.Empty(t, buf.String())

	logger.Error("loud")
	assert.Contains(t, buf.String(), "ERR loud")
}

func TestGetConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	t.Setenv(config.EnvConfigPath, "/etc/filmi/edge.toml")
	assert.Equal(t, "/etc/filmi/edge.toml", getConfigPath())

	t.Setenv(config.EnvConfigPath, "")
	assert.Equal(t, "", getConfigPath(), "missing XDG file means env-only")

	path := filepath.Join(dir, "filmi", "edge.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 3000\n"), 0644))
	assert.Equal(t, path, getConfigPath())
}

func TestCheckHealth(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer healthy.Close()

	unhealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer unhealthy.Close()

	assert.NoError(t, checkHealth(context.Background(), healthy.URL+"/healthz"))

	err := checkHealth(context.Background(), unhealthy.URL+"/healthz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestMint(t *testing.T) {
	cfg := config.Default()
	cfg.Auth.JWTSecret = "mint-test-secret"

	t.Run("demo disabled", func(t *testing.T) {
		var buf bytes.Buffer
		err := mint(cfg, &buf)
		require.ErrorIs(t, err, auth.ErrDemoDisabled)
		assert.Empty(t, buf.String())
	})

	t.Run("demo enabled", func(t *testing.T) {
		demo := *cfg
		demo.Auth.Demo = true

		var buf bytes.Buffer
		require.NoError(t, mint(&demo, &buf))

		var issued auth.IssuedCredential
		require.NoError(t, json.Unmarshal(buf.Bytes(), &issued))
		assert.Equal(t, auth.DemoIdentity(), issued.User)

		verifier, err := auth.NewJWTVerifier([]byte("mint-test-secret"))
		require.NoError(t, err)
		v := verifier.Verify(issued.Token)
		assert.Equal(t, auth.OutcomeVerified, v.Outcome)
		assert.Equal(t, auth.DemoIdentity(), v.Identity)
	})
}
