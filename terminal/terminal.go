// Package terminal adapts a tcell screen to thicket's raw event stream so the
// same widgets, bindings and focus rules drive a terminal UI.
//
// Terminals report key presses without releases, so every key event is
// expanded into a full chord: modifier downs, key down, key up, modifier ups.
// Pointer coordinates are in cells; configure the window's drag threshold
// accordingly.
//
// Usage:
//
//	screen, _ := tcell.NewScreen()
//	_ = screen.Init()
//	screen.EnableMouse()
//	win.SetSource(terminal.NewSource(screen))
package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/thicket"
)

var tcellKeys = map[tcell.Key]thicket.Key{
	tcell.KeyEnter:      thicket.KeyEnter,
	tcell.KeyTab:        thicket.KeyTab,
	tcell.KeyBackspace:  thicket.KeyBackspace,
	tcell.KeyBackspace2: thicket.KeyBackspace,
	tcell.KeyEscape:     thicket.KeyEscape,
	tcell.KeyDelete:     thicket.KeyDelete,
	tcell.KeyInsert:     thicket.KeyInsert,
	tcell.KeyHome:       thicket.KeyHome,
	tcell.KeyEnd:        thicket.KeyEnd,
	tcell.KeyPgUp:       thicket.KeyPageUp,
	tcell.KeyPgDn:       thicket.KeyPageDown,
	tcell.KeyUp:         thicket.KeyArrowUp,
	tcell.KeyDown:       thicket.KeyArrowDown,
	tcell.KeyLeft:       thicket.KeyArrowLeft,
	tcell.KeyRight:      thicket.KeyArrowRight,
	tcell.KeyF1:         thicket.KeyF1,
	tcell.KeyF2:         thicket.KeyF2,
	tcell.KeyF3:         thicket.KeyF3,
	tcell.KeyF4:         thicket.KeyF4,
	tcell.KeyF5:         thicket.KeyF5,
	tcell.KeyF6:         thicket.KeyF6,
	tcell.KeyF7:         thicket.KeyF7,
	tcell.KeyF8:         thicket.KeyF8,
	tcell.KeyF9:         thicket.KeyF9,
	tcell.KeyF10:        thicket.KeyF10,
	tcell.KeyF11:        thicket.KeyF11,
	tcell.KeyF12:        thicket.KeyF12,
}

var tcellMods = [...]struct {
	mask tcell.ModMask
	key  thicket.Key
}{
	{tcell.ModShift, thicket.KeyShiftLeft},
	{tcell.ModCtrl, thicket.KeyControlLeft},
	{tcell.ModAlt, thicket.KeyAltLeft},
	{tcell.ModMeta, thicket.KeyMetaLeft},
}

var tcellButtons = [...]struct {
	mask   tcell.ButtonMask
	button thicket.MouseButton
}{
	{tcell.Button1, thicket.MouseButtonLeft},
	{tcell.Button2, thicket.MouseButtonRight},
	{tcell.Button3, thicket.MouseButtonMiddle},
}

// keyOf resolves a tcell key event to a thicket key plus modifiers implied by
// the event itself (an upper-case rune implies shift, a control code implies
// ctrl). ok is false for keys thicket does not know.
func keyOf(ev *tcell.EventKey) (key thicket.Key, implied tcell.ModMask, ok bool) {
	k := ev.Key()
	if k == tcell.KeyRune {
		r := ev.Rune()
		switch {
		case r >= 'a' && r <= 'z':
			return thicket.KeyA + thicket.Key(r-'a'), 0, true
		case r >= 'A' && r <= 'Z':
			return thicket.KeyA + thicket.Key(r-'A'), tcell.ModShift, true
		case r >= '0' && r <= '9':
			return thicket.Key0 + thicket.Key(r-'0'), 0, true
		case r == ' ':
			return thicket.KeySpace, 0, true
		}
		return thicket.KeyNone, 0, false
	}
	if k == tcell.KeyBacktab {
		return thicket.KeyTab, tcell.ModShift, true
	}
	if key, ok := tcellKeys[k]; ok {
		return key, 0, true
	}
	// Checked after the table: Tab, Enter and Backspace share control codes.
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return thicket.KeyA + thicket.Key(k-tcell.KeyCtrlA), tcell.ModCtrl, true
	}
	return thicket.KeyNone, 0, false
}

// Converter turns tcell events into thicket raw events. It remembers the
// pointer position and held buttons between mouse events. A Converter is not
// safe for concurrent use.
type Converter struct {
	buttons tcell.ButtonMask
	x, y    int
	seen    bool
}

// Convert appends the raw events equivalent to ev to buf. Events thicket has
// no use for (resize, paste, unknown keys) append nothing.
func (c *Converter) Convert(ev tcell.Event, buf []thicket.Event) []thicket.Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return c.convertKey(ev, buf)
	case *tcell.EventMouse:
		return c.convertMouse(ev, buf)
	}
	return buf
}

func (c *Converter) convertKey(ev *tcell.EventKey, buf []thicket.Event) []thicket.Event {
	key, implied, ok := keyOf(ev)
	if !ok {
		return buf
	}
	mods := ev.Modifiers() | implied
	for _, m := range tcellMods {
		if mods&m.mask != 0 {
			buf = append(buf, thicket.Event{Kind: thicket.EventKeyDown, Key: m.key})
		}
	}
	buf = append(buf,
		thicket.Event{Kind: thicket.EventKeyDown, Key: key},
		thicket.Event{Kind: thicket.EventKeyUp, Key: key})
	for i := len(tcellMods) - 1; i >= 0; i-- {
		if mods&tcellMods[i].mask != 0 {
			buf = append(buf, thicket.Event{Kind: thicket.EventKeyUp, Key: tcellMods[i].key})
		}
	}
	return buf
}

func (c *Converter) convertMouse(ev *tcell.EventMouse, buf []thicket.Event) []thicket.Event {
	x, y := ev.Position()
	fx, fy := float64(x), float64(y)
	if !c.seen || x != c.x || y != c.y {
		c.x, c.y, c.seen = x, y, true
		buf = append(buf, thicket.Event{Kind: thicket.EventMouseMove, X: fx, Y: fy})
	}

	btns := ev.Buttons()
	for _, b := range tcellButtons {
		was := c.buttons&b.mask != 0
		is := btns&b.mask != 0
		switch {
		case is && !was:
			buf = append(buf, thicket.Event{Kind: thicket.EventMouseDown, Button: b.button, X: fx, Y: fy})
		case was && !is:
			buf = append(buf, thicket.Event{Kind: thicket.EventMouseUp, Button: b.button, X: fx, Y: fy})
		}
	}
	c.buttons = btns & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	if btns&tcell.WheelUp != 0 {
		buf = append(buf, thicket.Event{Kind: thicket.EventWheelForward, X: fx, Y: fy})
	}
	if btns&tcell.WheelDown != 0 {
		buf = append(buf, thicket.Event{Kind: thicket.EventWheelBack, X: fx, Y: fy})
	}
	return buf
}

// Reset forgets held buttons, for use after the terminal lost mouse reporting.
func (c *Converter) Reset() {
	c.buttons = 0
	c.seen = false
}
