package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsift/pdf-outliner/internal/config"
)

func TestSetupLogging_Levels(t *testing.T) {
	tests := []struct {
		level       string
		debugLogged bool
		warnLogged  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, false},
		{"bogus", false, true}, // unknown levels fall back to info
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.LogLevel = tt.level

			log := setupLogging(cfg)
			require.NotNil(t, log)
			ctx := context.Background()
			assert.Equal(t, tt.debugLogged, log.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.warnLogged, log.Enabled(ctx, slog.LevelWarn))
		})
	}
}

func TestPrintVersion(t *testing.T) {
	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = origStdout }()

	printVersion()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "PDF Outliner")
	assert.Contains(t, out, "Version: "+version)
	assert.Contains(t, out, "Build Time: "+buildTime)
	assert.Contains(t, out, "Git Commit: "+gitCommit)
}
