package thicket

import (
	"errors"
	"fmt"
	"strings"
)

// Key is a raw key code. Platform layers translate their own key identifiers
// into these values.
type Key uint16

const (
	KeyNone Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyEscape
	KeyEnter
	KeyTab
	KeySpace
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight

	// Modifier keys. They participate in a ModifierSet and never resolve to
	// an action on their own.
	KeyShiftLeft
	KeyShiftRight
	KeyControlLeft
	KeyControlRight
	KeyAltLeft
	KeyAltRight
	KeyMetaLeft
	KeyMetaRight

	numKeys
)

// IsModifier reports whether k is a shift, control, alt or meta key.
func (k Key) IsModifier() bool {
	return k >= KeyShiftLeft && k <= KeyMetaRight
}

var keyNames = func() [numKeys]string {
	var names [numKeys]string
	names[KeyNone] = "None"
	for k := KeyA; k <= KeyZ; k++ {
		names[k] = string(rune('A' + (k - KeyA)))
	}
	for k := Key0; k <= Key9; k++ {
		names[k] = string(rune('0' + (k - Key0)))
	}
	for k := KeyF1; k <= KeyF12; k++ {
		names[k] = fmt.Sprintf("F%d", k-KeyF1+1)
	}
	names[KeyEscape] = "Escape"
	names[KeyEnter] = "Enter"
	names[KeyTab] = "Tab"
	names[KeySpace] = "Space"
	names[KeyBackspace] = "Backspace"
	names[KeyDelete] = "Delete"
	names[KeyInsert] = "Insert"
	names[KeyHome] = "Home"
	names[KeyEnd] = "End"
	names[KeyPageUp] = "PageUp"
	names[KeyPageDown] = "PageDown"
	names[KeyArrowUp] = "ArrowUp"
	names[KeyArrowDown] = "ArrowDown"
	names[KeyArrowLeft] = "ArrowLeft"
	names[KeyArrowRight] = "ArrowRight"
	names[KeyShiftLeft] = "ShiftLeft"
	names[KeyShiftRight] = "ShiftRight"
	names[KeyControlLeft] = "ControlLeft"
	names[KeyControlRight] = "ControlRight"
	names[KeyAltLeft] = "AltLeft"
	names[KeyAltRight] = "AltRight"
	names[KeyMetaLeft] = "MetaLeft"
	names[KeyMetaRight] = "MetaRight"
	return names
}()

// Short names accepted by ParseKey. A bare modifier name means the left key.
var keyAliases = map[string]Key{
	"shift":   KeyShiftLeft,
	"ctrl":    KeyControlLeft,
	"control": KeyControlLeft,
	"alt":     KeyAltLeft,
	"meta":    KeyMetaLeft,
	"cmd":     KeyMetaLeft,
	"esc":     KeyEscape,
	"return":  KeyEnter,
	"up":      KeyArrowUp,
	"down":    KeyArrowDown,
	"left":    KeyArrowLeft,
	"right":   KeyArrowRight,
}

// String returns the key's canonical name.
func (k Key) String() string {
	if k < numKeys {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// ErrUnknownKey is returned by ParseKey for names that match no key.
var ErrUnknownKey = errors.New("unknown key")

// ParseKey returns the key with the given name. Matching is case-insensitive
// and accepts the short modifier aliases shift, ctrl, alt and meta.
func ParseKey(name string) (Key, error) {
	n := strings.TrimSpace(name)
	if k, ok := keyAliases[strings.ToLower(n)]; ok {
		return k, nil
	}
	for k := KeyNone + 1; k < numKeys; k++ {
		if strings.EqualFold(keyNames[k], n) {
			return k, nil
		}
	}
	return KeyNone, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// MaxModifiers is the capacity of a ModifierSet.
const MaxModifiers = 4

// ModifierSet is an unordered, capacity-bounded set of modifier keys. The zero
// value is the empty set. Keys added beyond MaxModifiers are ignored.
type ModifierSet struct {
	keys [MaxModifiers]Key
	n    uint8
}

// Mods builds a ModifierSet from keys. Non-modifier keys are ignored.
func Mods(keys ...Key) ModifierSet {
	var m ModifierSet
	for _, k := range keys {
		m.Add(k)
	}
	return m
}

// Add inserts k. It is a no-op when k is already present, is not a modifier
// key, or the set is full.
func (m *ModifierSet) Add(k Key) {
	if !k.IsModifier() || m.Has(k) || int(m.n) >= MaxModifiers {
		return
	}
	m.keys[m.n] = k
	m.n++
}

// Remove deletes k if present.
func (m *ModifierSet) Remove(k Key) {
	for i := 0; i < int(m.n); i++ {
		if m.keys[i] == k {
			m.n--
			m.keys[i] = m.keys[m.n]
			m.keys[m.n] = KeyNone
			return
		}
	}
}

// Has reports whether k is in the set.
func (m ModifierSet) Has(k Key) bool {
	for i := 0; i < int(m.n); i++ {
		if m.keys[i] == k {
			return true
		}
	}
	return false
}

// Len returns the number of keys in the set.
func (m ModifierSet) Len() int {
	return int(m.n)
}

// Keys returns the members in no particular order.
func (m ModifierSet) Keys() []Key {
	out := make([]Key, m.n)
	copy(out, m.keys[:m.n])
	return out
}

// Equal reports whether m and o hold the same keys, in any order.
func (m ModifierSet) Equal(o ModifierSet) bool {
	if m.n != o.n {
		return false
	}
	for i := 0; i < int(m.n); i++ {
		if !o.Has(m.keys[i]) {
			return false
		}
	}
	return true
}

// String formats the set as "ShiftLeft+ControlLeft".
func (m ModifierSet) String() string {
	if m.n == 0 {
		return "{}"
	}
	parts := make([]string, m.n)
	for i := 0; i < int(m.n); i++ {
		parts[i] = m.keys[i].String()
	}
	return strings.Join(parts, "+")
}
