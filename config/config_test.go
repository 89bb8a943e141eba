package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/binframe/binframe/wire"
)

func TestLoadAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("byte_order: \"<\"\ndefault_encoding: latin1\nlog_level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "<", cfg.ByteOrder)
	require.Equal(t, "latin1", cfg.DefaultEncoding)
	require.Equal(t, "debug", cfg.LogLevel)

	require.NoError(t, cfg.Apply())
	defer wire.SetGlobalOrder(wire.Network)
	require.Equal(t, wire.LittleEndian, wire.GlobalOrder())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, "!", cfg.ByteOrder)
	require.Equal(t, "utf-8", cfg.DefaultEncoding)
}

func TestApplyRejectsBadOrder(t *testing.T) {
	cfg := Config{ByteOrder: "xy"}
	require.Error(t, cfg.Apply())
}
