package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHex(t *testing.T) {
	assert.Equal(t, "#aabbcc", normalizeHex("0xAABBCC"))
	assert.Equal(t, "#112233", normalizeHex("112233"))
	assert.Equal(t, "#aabbcc", normalizeHex(" #abc "))
	assert.Equal(t, "#nothex", normalizeHex("nothex"))
}

func TestMixColors(t *testing.T) {
	assert.Equal(t, "#000000", MixColors("#000000", "#ffffff", 0))
	assert.Equal(t, "#ffffff", MixColors("#000000", "#ffffff", 1))
	assert.Equal(t, "#7f7f7f", MixColors("#000000", "#ffffff", 0.5))
	assert.Equal(t, "bad", MixColors("bad", "#ffffff", 0.5))
}

func TestParseAlacrittyTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alacritty.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[colors.primary]
background = "0x1e1e2e"
foreground = "#cdd6f4"
`), 0644))

	p, ok := parseAlacrittyTOML(path)
	require.True(t, ok)
	assert.Equal(t, "#1e1e2e", p.BG)
	assert.Equal(t, "#cdd6f4", p.FG)
	assert.Equal(t, MixColors(p.BG, p.FG, 0.15), p.AccentBg)
}

func TestParseFootINI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foot.ini")
	require.NoError(t, os.WriteFile(path, []byte("[colors]\nbackground=282828\nforeground=ebdbb2\nselection-background=504945\n"), 0644))

	p, ok := parseFootINI(path)
	require.True(t, ok)
	assert.Equal(t, "#282828", p.BG)
	assert.Equal(t, "#504945", p.AccentBg)
}

func TestParse_MissingColors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foot.ini")
	require.NoError(t, os.WriteFile(path, []byte("[main]\nfont=mono\n"), 0644))

	_, ok := parseFootINI(path)
	assert.False(t, ok)

	_, ok = parseAlacrittyTOML(filepath.Join(t.TempDir(), "missing.toml"))
	assert.False(t, ok)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("VERSION_TUI_ACCENT", "00ff00")

	p := applyEnvOverrides(DefaultPalette())
	assert.Equal(t, "#00ff00", p.Accent)
	assert.Equal(t, DefaultPalette().BG, p.BG)
}
