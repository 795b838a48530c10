package thicket

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ErrUnknownAction is returned when a binding names an action that is neither
// built in nor present in the caller's action table.
var ErrUnknownAction = errors.New("unknown action")

// bindingEntry is one mapping in a binding file.
type bindingEntry struct {
	Key    string   `yaml:"key"`
	Mods   []string `yaml:"mods,omitempty"`
	Action string   `yaml:"action"`
}

// bindingFile is the top-level YAML structure of a binding file.
type bindingFile struct {
	Bindings []bindingEntry `yaml:"bindings"`
}

// ParseBindings decodes a YAML binding document:
//
//	bindings:
//	  - key: z
//	    mods: [ctrl]
//	    action: undo
//
// Action names resolve through actions first, then the built-in names such
// as "click" and "zoom-in". Mappings are returned in document order.
func ParseBindings(data []byte, actions map[string]Action) ([]Mapping, error) {
	var f bindingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse bindings: %w", err)
	}
	out := make([]Mapping, 0, len(f.Bindings))
	for i, b := range f.Bindings {
		key, err := ParseKey(b.Key)
		if err != nil {
			return nil, fmt.Errorf("parse bindings: entry %d: %w", i, err)
		}
		if key.IsModifier() {
			return nil, fmt.Errorf("parse bindings: entry %d: modifier %s cannot be a main key", i, key)
		}
		var mods ModifierSet
		for _, name := range b.Mods {
			m, err := ParseKey(name)
			if err != nil {
				return nil, fmt.Errorf("parse bindings: entry %d: %w", i, err)
			}
			if !m.IsModifier() {
				return nil, fmt.Errorf("parse bindings: entry %d: %s is not a modifier", i, m)
			}
			mods.Add(m)
		}
		action, ok := lookupAction(b.Action, actions)
		if !ok {
			return nil, fmt.Errorf("parse bindings: entry %d: %w: %q", i, ErrUnknownAction, b.Action)
		}
		out = append(out, Mapping{Key: key, Mods: mods, Action: action})
	}
	return out, nil
}

// LoadBindings reads and parses the binding file at path.
func LoadBindings(path string, actions map[string]Action) ([]Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load bindings: %w", err)
	}
	return ParseBindings(data, actions)
}

func lookupAction(name string, actions map[string]Action) (Action, bool) {
	if a, ok := actions[name]; ok {
		return a, true
	}
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range builtinActionNames {
		if i != int(ActionUnmapped) && s == n {
			return Action(i), true
		}
	}
	return ActionUnmapped, false
}
