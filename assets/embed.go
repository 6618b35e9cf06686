package assets

import (
	_ "embed"
	"fmt"
	"image/color"
	"sort"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var manifestYAML []byte

// Entry describes where a sprite set lives on disk and how to fake it when
// it does not.
type Entry struct {
	Dir    string `yaml:"dir"`
	File   string `yaml:"file"`
	ImgDur int    `yaml:"img_dur"`
	Loop   bool   `yaml:"loop"`
	Size   [2]int `yaml:"size"`
	Color  string `yaml:"color"`
	Frames int    `yaml:"frames"`
}

// Manifest lists every sprite the game asks for.
type Manifest struct {
	Animations map[string]Entry `yaml:"animations"`
	Images     map[string]Entry `yaml:"images"`
	Tiles      map[string]Entry `yaml:"tiles"`
}

// LoadManifest parses the embedded manifest.
func LoadManifest() (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(manifestYAML, &m); err != nil {
		return nil, fmt.Errorf("assets: unmarshal manifest: %w", err)
	}
	for key, e := range m.Animations {
		if _, err := e.color(); err != nil {
			return nil, fmt.Errorf("assets: animation %s: %w", key, err)
		}
	}
	return &m, nil
}

// AnimationKeys returns every animation key in sorted order.
func (m *Manifest) AnimationKeys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.Animations))
	for k := range m.Animations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e Entry) color() (color.RGBA, error) {
	c, ok := colornames.Map[e.Color]
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown color %q", e.Color)
	}
	return c, nil
}
