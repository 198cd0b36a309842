package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tripcraft/internal/config"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := newRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	require.Contains(t, names, "serve")
	require.Contains(t, names, "plan")
	require.Contains(t, names, "extract")
}

func TestBuildExtractionSideClosesCleanly(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	p, metrics, err := buildExtractionSide(cfg)
	require.NoError(t, err)
	require.NotNil(t, p.extraction)
	require.NotNil(t, metrics)

	// Close on a browser that never launched must be a no-op.
	defer p.browser.Close()
}
