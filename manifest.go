package sceneshift

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the YAML configuration file format for a Director, covering the settings a team
// tweaks without recompiling: the scene path convention, the fade, and identifier aliases.
//
//	base_path: assets/scenes
//	entry_suffix: .glb
//	fade:
//	  duration: 0.75
//	  color: "#101018"
//	scenes:
//	  menu: ui_menu
//	  level1: assets/scenes/level1/level1_v2.glb
type Manifest struct {
	BasePath    string            `yaml:"base_path"`
	EntrySuffix string            `yaml:"entry_suffix"`
	Fade        FadeConfig        `yaml:"fade"`
	Scenes      map[string]string `yaml:"scenes"`
}

// FadeConfig is the fade section of a Manifest. Duration is in seconds; Color is a hex color
// string like "#000000" or "#000000ff".
type FadeConfig struct {
	Duration float32 `yaml:"duration"`
	Color    string  `yaml:"color"`
}

// LoadManifest decodes a Manifest from the reader. Unknown fields are an error, so typos in
// config files surface instead of silently doing nothing.
func LoadManifest(r io.Reader) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	manifest := &Manifest{}
	if err := decoder.Decode(manifest); err != nil {
		return nil, fmt.Errorf("sceneshift: decoding manifest: %w", err)
	}
	return manifest, nil
}

// LoadManifestFile loads a Manifest from the given filepath.
func LoadManifestFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadManifest(f)
}

// Apply copies the Manifest's settings onto the Options, leaving Options fields alone where
// the Manifest doesn't set them. Scene aliases merge into (and override) any already present.
func (manifest *Manifest) Apply(options *Options) error {
	if manifest.BasePath != "" {
		options.BasePath = manifest.BasePath
	}
	if manifest.EntrySuffix != "" {
		options.EntrySuffix = manifest.EntrySuffix
	}
	if manifest.Fade.Duration > 0 {
		options.FadeDuration = manifest.Fade.Duration
	}
	if manifest.Fade.Color != "" {
		fadeColor, err := ParseHexColor(manifest.Fade.Color)
		if err != nil {
			return err
		}
		options.FadeColor = fadeColor
	}
	if len(manifest.Scenes) > 0 {
		if options.Aliases == nil {
			options.Aliases = map[string]string{}
		}
		for name, target := range manifest.Scenes {
			options.Aliases[name] = target
		}
	}
	return nil
}

// ParseHexColor parses a "#rrggbb" or "#rrggbbaa" hex string into a color.RGBA. The leading
// '#' is optional.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("sceneshift: invalid hex color %q", s)
	}
	value, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("sceneshift: invalid hex color %q", s)
	}
	c := color.RGBA{A: 0xff}
	if len(hex) == 8 {
		c.A = uint8(value & 0xff)
		value >>= 8
	}
	c.B = uint8(value & 0xff)
	c.G = uint8((value >> 8) & 0xff)
	c.R = uint8((value >> 16) & 0xff)
	return c, nil
}
