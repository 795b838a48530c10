package thicket

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ebitenKeys maps ebiten keys to thicket keys. Keys not listed are ignored.
var ebitenKeys = map[ebiten.Key]Key{
	ebiten.KeyA: KeyA, ebiten.KeyB: KeyB, ebiten.KeyC: KeyC, ebiten.KeyD: KeyD,
	ebiten.KeyE: KeyE, ebiten.KeyF: KeyF, ebiten.KeyG: KeyG, ebiten.KeyH: KeyH,
	ebiten.KeyI: KeyI, ebiten.KeyJ: KeyJ, ebiten.KeyK: KeyK, ebiten.KeyL: KeyL,
	ebiten.KeyM: KeyM, ebiten.KeyN: KeyN, ebiten.KeyO: KeyO, ebiten.KeyP: KeyP,
	ebiten.KeyQ: KeyQ, ebiten.KeyR: KeyR, ebiten.KeyS: KeyS, ebiten.KeyT: KeyT,
	ebiten.KeyU: KeyU, ebiten.KeyV: KeyV, ebiten.KeyW: KeyW, ebiten.KeyX: KeyX,
	ebiten.KeyY: KeyY, ebiten.KeyZ: KeyZ,

	ebiten.KeyDigit0: Key0, ebiten.KeyDigit1: Key1, ebiten.KeyDigit2: Key2,
	ebiten.KeyDigit3: Key3, ebiten.KeyDigit4: Key4, ebiten.KeyDigit5: Key5,
	ebiten.KeyDigit6: Key6, ebiten.KeyDigit7: Key7, ebiten.KeyDigit8: Key8,
	ebiten.KeyDigit9: Key9,

	ebiten.KeyF1: KeyF1, ebiten.KeyF2: KeyF2, ebiten.KeyF3: KeyF3, ebiten.KeyF4: KeyF4,
	ebiten.KeyF5: KeyF5, ebiten.KeyF6: KeyF6, ebiten.KeyF7: KeyF7, ebiten.KeyF8: KeyF8,
	ebiten.KeyF9: KeyF9, ebiten.KeyF10: KeyF10, ebiten.KeyF11: KeyF11, ebiten.KeyF12: KeyF12,

	ebiten.KeyEscape:     KeyEscape,
	ebiten.KeyEnter:      KeyEnter,
	ebiten.KeyTab:        KeyTab,
	ebiten.KeySpace:      KeySpace,
	ebiten.KeyBackspace:  KeyBackspace,
	ebiten.KeyDelete:     KeyDelete,
	ebiten.KeyInsert:     KeyInsert,
	ebiten.KeyHome:       KeyHome,
	ebiten.KeyEnd:        KeyEnd,
	ebiten.KeyPageUp:     KeyPageUp,
	ebiten.KeyPageDown:   KeyPageDown,
	ebiten.KeyArrowUp:    KeyArrowUp,
	ebiten.KeyArrowDown:  KeyArrowDown,
	ebiten.KeyArrowLeft:  KeyArrowLeft,
	ebiten.KeyArrowRight: KeyArrowRight,

	ebiten.KeyShiftLeft:    KeyShiftLeft,
	ebiten.KeyShiftRight:   KeyShiftRight,
	ebiten.KeyControlLeft:  KeyControlLeft,
	ebiten.KeyControlRight: KeyControlRight,
	ebiten.KeyAltLeft:      KeyAltLeft,
	ebiten.KeyAltRight:     KeyAltRight,
	ebiten.KeyMetaLeft:     KeyMetaLeft,
	ebiten.KeyMetaRight:    KeyMetaRight,
}

// FromEbitenKey converts an ebiten key. ok is false for keys thicket does not
// know.
func FromEbitenKey(k ebiten.Key) (key Key, ok bool) {
	key, ok = ebitenKeys[k]
	return key, ok
}

var ebitenButtons = [...]struct {
	eb ebiten.MouseButton
	b  MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// EbitenSource polls ebiten's input state once per frame and reports the
// changes as raw events. The first touch acts as the primary button. Poll
// must be called from the game's Update.
type EbitenSource struct {
	keys     []ebiten.Key
	touches  []ebiten.TouchID
	touch    ebiten.TouchID
	touching bool
	x, y     int
	seen     bool
}

// NewEbitenSource creates a source for the running ebiten game.
func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

// Poll appends this frame's events to buf. Modifier presses come before other
// presses and modifier releases after other releases, so chords resolve with
// their modifiers held.
func (s *EbitenSource) Poll(buf []Event) []Event {
	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	buf = appendEbitenKeys(buf, s.keys, EventKeyDown, true)
	buf = appendEbitenKeys(buf, s.keys, EventKeyDown, false)

	mx, my := ebiten.CursorPosition()
	buf = s.appendTouch(buf, &mx, &my)
	if !s.seen || mx != s.x || my != s.y {
		s.x, s.y, s.seen = mx, my, true
		buf = append(buf, Event{Kind: EventMouseMove, X: float64(mx), Y: float64(my)})
	}
	x, y := float64(mx), float64(my)
	for _, b := range ebitenButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			buf = append(buf, Event{Kind: EventMouseDown, Button: b.b, X: x, Y: y})
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			buf = append(buf, Event{Kind: EventMouseUp, Button: b.b, X: x, Y: y})
		}
	}

	if _, wy := ebiten.Wheel(); wy > 0 {
		buf = append(buf, Event{Kind: EventWheelForward, X: x, Y: y})
	} else if wy < 0 {
		buf = append(buf, Event{Kind: EventWheelBack, X: x, Y: y})
	}

	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	buf = appendEbitenKeys(buf, s.keys, EventKeyUp, false)
	buf = appendEbitenKeys(buf, s.keys, EventKeyUp, true)
	return buf
}

// appendTouch tracks the primary touch. While a touch is active its position
// overrides the cursor.
func (s *EbitenSource) appendTouch(buf []Event, mx, my *int) []Event {
	if s.touching {
		if inpututil.IsTouchJustReleased(s.touch) {
			x, y := inpututil.TouchPositionInPreviousTick(s.touch)
			s.touching = false
			s.x, s.y = x, y
			*mx, *my = x, y
			return append(buf, Event{Kind: EventMouseUp, Button: MouseButtonLeft, X: float64(x), Y: float64(y)})
		}
		*mx, *my = ebiten.TouchPosition(s.touch)
		return buf
	}
	s.touches = inpututil.AppendJustPressedTouchIDs(s.touches[:0])
	if len(s.touches) == 0 {
		return buf
	}
	s.touch, s.touching = s.touches[0], true
	x, y := ebiten.TouchPosition(s.touch)
	*mx, *my = x, y
	s.x, s.y, s.seen = x, y, true
	return append(buf,
		Event{Kind: EventMouseMove, X: float64(x), Y: float64(y)},
		Event{Kind: EventMouseDown, Button: MouseButtonLeft, X: float64(x), Y: float64(y)})
}

func appendEbitenKeys(buf []Event, keys []ebiten.Key, kind EventKind, modifiers bool) []Event {
	for _, ek := range keys {
		k, ok := ebitenKeys[ek]
		if !ok || k.IsModifier() != modifiers {
			continue
		}
		buf = append(buf, Event{Kind: kind, Key: k})
	}
	return buf
}
