package thicket

// Mapping binds a trigger key pressed with an exact set of held modifiers to
// an action.
type Mapping struct {
	Key    Key
	Mods   ModifierSet
	Action Action
}

// mappingTable groups mappings by trigger key. Each group keeps registration
// order, which is the tie-break order at lookup.
type mappingTable struct {
	byKey map[Key][]Mapping
	list  []Mapping // every mapping in registration order
}

func (t *mappingTable) add(m Mapping) {
	if t.byKey == nil {
		t.byKey = make(map[Key][]Mapping)
	}
	t.byKey[m.Key] = append(t.byKey[m.Key], m)
	t.list = append(t.list, m)
}

// lookup returns the action of the first mapping registered for key whose
// modifier set equals held. Duplicate sets are tolerated; the earliest wins.
func (t *mappingTable) lookup(key Key, held ModifierSet) Action {
	for _, m := range t.byKey[key] {
		if m.Mods.Equal(held) {
			return m.Action
		}
	}
	return ActionUnmapped
}

func (t *mappingTable) reset() {
	t.byKey = nil
	t.list = nil
}

// all returns a copy of every mapping in registration order.
func (t *mappingTable) all() []Mapping {
	out := make([]Mapping, len(t.list))
	copy(out, t.list)
	return out
}
