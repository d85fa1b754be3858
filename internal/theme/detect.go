package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
)

// Detect attempts to load theme from various sources in priority order:
// Omarchy, Alacritty, Foot, then the default. Env overrides apply last.
func Detect() Palette {
	home, err := os.UserHomeDir()
	if err != nil {
		return applyEnvOverrides(DefaultPalette())
	}

	candidates := []func() (Palette, bool){
		func() (Palette, bool) {
			return parseAlacrittyTOML(filepath.Join(home, ".config", "omarchy", "current", "theme", "alacritty.toml"))
		},
		func() (Palette, bool) {
			return parseAlacrittyTOML(filepath.Join(home, ".config", "alacritty", "alacritty.toml"))
		},
		func() (Palette, bool) {
			return parseAlacrittyTOML(filepath.Join(home, ".alacritty.toml"))
		},
		func() (Palette, bool) {
			return parseFootINI(filepath.Join(home, ".config", "foot", "foot.ini"))
		},
	}

	for _, detect := range candidates {
		if p, ok := detect(); ok {
			return applyEnvOverrides(p)
		}
	}

	return applyEnvOverrides(DefaultPalette())
}

// alacrittyColors represents the relevant parts of alacritty.toml
type alacrittyColors struct {
	Colors struct {
		Primary struct {
			Background string `toml:"background"`
			Foreground string `toml:"foreground"`
		} `toml:"primary"`
		Selection struct {
			Background string `toml:"background"`
		} `toml:"selection"`
	} `toml:"colors"`
}

func parseAlacrittyTOML(path string) (Palette, bool) {
	var cfg alacrittyColors
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Palette{}, false
	}

	return derive(cfg.Colors.Primary.Background, cfg.Colors.Primary.Foreground, cfg.Colors.Selection.Background)
}

func parseFootINI(path string) (Palette, bool) {
	cfg, err := ini.Load(path)
	if err != nil {
		return Palette{}, false
	}

	colors, err := cfg.GetSection("colors")
	if err != nil {
		return Palette{}, false
	}

	return derive(
		colors.Key("background").String(),
		colors.Key("foreground").String(),
		colors.Key("selection-background").String(),
	)
}

// derive builds a palette from terminal bg/fg; selection is optional.
func derive(bg, fg, selection string) (Palette, bool) {
	// Need at least bg and fg
	if bg == "" || fg == "" {
		return Palette{}, false
	}

	p := DefaultPalette()
	p.BG = normalizeHex(bg)
	p.FG = normalizeHex(fg)
	p.Muted = MixColors(p.BG, p.FG, 0.5)

	if selection != "" {
		p.AccentBg = normalizeHex(selection)
	} else {
		p.AccentBg = MixColors(p.BG, p.FG, 0.15)
	}

	return p, true
}

// applyEnvOverrides applies VERSION_TUI_* color variables
func applyEnvOverrides(p Palette) Palette {
	overrides := map[string]*string{
		"VERSION_TUI_BG":     &p.BG,
		"VERSION_TUI_FG":     &p.FG,
		"VERSION_TUI_MUTED":  &p.Muted,
		"VERSION_TUI_ACCENT": &p.Accent,
	}
	for name, field := range overrides {
		if v := os.Getenv(name); v != "" {
			*field = normalizeHex(v)
		}
	}
	return p
}

var (
	hexLong  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	hexShort = regexp.MustCompile(`^#[0-9a-fA-F]{3}$`)
)

// normalizeHex ensures color is in #RRGGBB format
func normalizeHex(color string) string {
	color = strings.TrimSpace(color)

	// Handle 0xRRGGBB format
	if strings.HasPrefix(color, "0x") || strings.HasPrefix(color, "0X") {
		color = "#" + color[2:]
	}
	if !strings.HasPrefix(color, "#") {
		color = "#" + color
	}

	switch {
	case hexLong.MatchString(color):
		return strings.ToLower(color)
	case hexShort.MatchString(color):
		r, g, b := color[1:2], color[2:3], color[3:4]
		return strings.ToLower("#" + r + r + g + g + b + b)
	}
	return color
}

// MixColors blends two colors; t=0 yields hex1, t=1 yields hex2.
func MixColors(hex1, hex2 string, t float64) string {
	r1, g1, b1, ok1 := rgb(hex1)
	r2, g2, b2, ok2 := rgb(hex2)
	if !ok1 || !ok2 {
		return hex1
	}

	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-t) + float64(b)*t)
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(r1, r2), mix(g1, g2), mix(b1, b2))
}

func rgb(hex string) (r, g, b uint8, ok bool) {
	hex = normalizeHex(hex)
	if !hexLong.MatchString(hex) {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
