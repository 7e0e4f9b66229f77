package keybindings

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/ovity/goline/internal/keys"
)

// profileDoc is the YAML-facing shape of a Profile, ported from the
// teacher's KeybindingExport/import.go shape (profile name + flat
// action->chord map) but addressed at this package's Action set.
type profileDoc struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Bindings    map[string]string `yaml:"bindings"`
}

// Export marshals p to YAML.
func Export(p *Profile) ([]byte, error) {
	doc := profileDoc{Name: p.Name, Description: p.Description, Bindings: make(map[string]string, len(p.Bindings))}
	for action, ev := range p.Bindings {
		doc.Bindings[string(action)] = EncodeEvent(ev)
	}
	return yaml.Marshal(doc)
}

// ExportFile writes p's YAML encoding to path.
func ExportFile(p *Profile, path string) error {
	data, err := Export(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Import parses a YAML-encoded profile, rejecting any binding that names
// an unknown action or an unparseable chord so a typo in a hand-edited
// profile file fails loudly instead of silently no-op'ing.
func Import(data []byte) (*Profile, error) {
	var doc profileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("keybindings: parse profile: %w", err)
	}
	p := &Profile{Name: doc.Name, Description: doc.Description, Bindings: make(map[Action]keys.Event, len(doc.Bindings))}
	for actionName, chord := range doc.Bindings {
		action := Action(actionName)
		if _, ok := canonical[action]; !ok {
			return nil, fmt.Errorf("keybindings: unknown action %q", actionName)
		}
		ev, err := DecodeEvent(chord)
		if err != nil {
			return nil, fmt.Errorf("keybindings: action %q: %w", actionName, err)
		}
		p.Bindings[action] = ev
	}
	return p, nil
}

// ImportFile reads and parses a profile from path.
func ImportFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Import(data)
}
