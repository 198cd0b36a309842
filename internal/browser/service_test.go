package browser

import (
	"testing"

	"tripcraft/internal/config"

	"github.com/stretchr/testify/require"
)

func TestNewServiceDoesNotLaunchChrome(t *testing.T) {
	s := NewService(config.BrowserConfig{Headless: true})
	require.Nil(t, s.allocCtx)
	// Close on a never-initialized service is a no-op.
	s.Close()
}

func TestBlockedResourcePatternsCoverHeavyAssets(t *testing.T) {
	require.Contains(t, blockedResourcePatterns, "*.css")
	require.Contains(t, blockedResourcePatterns, "*.png")
	require.Contains(t, blockedResourcePatterns, "*.woff2")
}

func TestStealthScriptHidesWebdriver(t *testing.T) {
	require.Contains(t, stealthScript, "webdriver")
	require.Contains(t, stealthScript, "navigator, 'plugins'")
	require.Contains(t, stealthScript, "navigator, 'languages'")
}
