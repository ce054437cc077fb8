package contactform

import (
	_ "embed"
	"fmt"
	"maps"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// Preset names shipped with the form.
const (
	PresetValid   = "valid"
	PresetInvalid = "invalid"
	PresetSpecial = "special"
)

var loadPresets = sync.OnceValues(func() (map[string]map[Field]string, error) {
	return ParsePresets(presetsYAML)
})

// ParsePresets decodes a YAML document mapping preset names to field values.
func ParsePresets(data []byte) (map[string]map[Field]string, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}

	presets := make(map[string]map[Field]string, len(raw))
	for name, values := range raw {
		preset := make(map[Field]string, len(values))
		for key, value := range values {
			f, err := ParseField(key)
			if err != nil {
				return nil, fmt.Errorf("preset %q: %w", name, err)
			}
			preset[f] = value
		}
		presets[name] = preset
	}
	return presets, nil
}

// Preset returns a copy of the values of the named built-in preset.
func Preset(name string) (map[Field]string, error) {
	presets, err := loadPresets()
	if err != nil {
		return nil, err
	}
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return maps.Clone(p), nil
}

// PresetNames lists the built-in presets in sorted order.
func PresetNames() []string {
	presets, err := loadPresets()
	if err != nil {
		return nil
	}
	return slices.Sorted(maps.Keys(presets))
}
