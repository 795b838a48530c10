package thicket

import "time"

// --- Constants ---

const (
	DefaultDragThreshold      = 4.0                   // pixels
	DefaultMinTriggerInterval = 40 * time.Millisecond // duplicate raw press guard
)

// MouseEventType identifies a discrete mouse event.
type MouseEventType uint8

const (
	MouseDown         MouseEventType = iota // button pressed
	MouseUp                                 // button released
	MouseWheelForward                       // wheel rolled away from the user
	MouseWheelBack                          // wheel rolled toward the user
)

// MouseEvent is a discrete mouse event. Button is ignored for wheel events.
type MouseEvent struct {
	Type   MouseEventType
	Button MouseButton
}

// MouseState is the pointer position and held buttons at the time of an event.
type MouseState struct {
	Position Vec2
	Buttons  uint8 // bit i set while MouseButton(i) is held
}

// Pressed reports whether b is held.
func (m MouseState) Pressed(b MouseButton) bool {
	return m.Buttons&(1<<b) != 0
}

// InputState is the transient state owned by a Translator.
type InputState struct {
	Modifiers   ModifierSet
	MainKey     Key
	LastAction  Action
	TriggerTime time.Time
	DragAnchor  Vec2
	Armed       bool // primary button down, click/drag pending
	Dragging    bool
	LastMouse   MouseState
}

// Translator turns raw key and mouse events into semantic actions. It owns the
// held-modifier set, the pending click/drag evaluation and the double-trigger
// history. A Translator is not safe for concurrent use.
type Translator struct {
	mappings    mappingTable
	state       InputState
	resolvedAt  map[Action]time.Time
	threshold   float64
	minInterval time.Duration
	now         func() time.Time
}

// NewTranslator creates a translator with the default drag threshold and
// trigger interval and an empty mapping table.
func NewTranslator() *Translator {
	return &Translator{
		resolvedAt:  make(map[Action]time.Time),
		threshold:   DefaultDragThreshold,
		minInterval: DefaultMinTriggerInterval,
		now:         time.Now,
	}
}

// SetDragThreshold sets the distance in pixels the pointer must exceed from
// the press position before a gesture becomes a drag.
func (t *Translator) SetDragThreshold(pixels float64) {
	t.threshold = pixels
}

// SetMinTriggerInterval sets the window inside which a repeated click or
// drag-end resolution is treated as a duplicate and suppressed.
func (t *Translator) SetMinTriggerInterval(d time.Duration) {
	t.minInterval = d
}

// SetClock replaces the time source. Used for replay and tests.
func (t *Translator) SetClock(now func() time.Time) {
	t.now = now
}

// RegisterMapping appends a mapping. Existing mappings are never replaced;
// when two mappings share a key and modifier set the first registered wins.
func (t *Translator) RegisterMapping(key Key, mods ModifierSet, action Action) {
	t.mappings.add(Mapping{Key: key, Mods: mods, Action: action})
}

// RegisterMappings appends mappings in slice order.
func (t *Translator) RegisterMappings(ms []Mapping) {
	for _, m := range ms {
		t.mappings.add(m)
	}
}

// ResetMappings removes every mapping. Input state is left untouched.
func (t *Translator) ResetMappings() {
	t.mappings.reset()
}

// Mappings returns a copy of the registered mappings.
func (t *Translator) Mappings() []Mapping {
	return t.mappings.all()
}

// State returns a copy of the current input state.
func (t *Translator) State() InputState {
	return t.state
}

// Dragging reports whether the armed gesture has crossed the drag threshold.
func (t *Translator) Dragging() bool {
	return t.state.Dragging
}

// OnKeyEvent feeds a key transition. Modifier keys update the held set and
// never resolve. Any other key resolves on Down through the mapping table;
// Up never resolves.
func (t *Translator) OnKeyEvent(tr KeyTransition, key Key) Action {
	if key.IsModifier() {
		if tr == KeyDown {
			t.state.Modifiers.Add(key)
		} else {
			t.state.Modifiers.Remove(key)
		}
		return ActionUnmapped
	}

	if tr == KeyUp {
		if t.state.MainKey == key {
			t.state.MainKey = KeyNone
		}
		return ActionUnmapped
	}

	action := t.mappings.lookup(key, t.state.Modifiers)
	t.state.MainKey = key
	t.state.LastAction = action
	t.state.TriggerTime = t.now()
	return action
}

// OnMouseEvent feeds a button or wheel event. Wheel events resolve to
// ActionZoomIn / ActionZoomOut without consulting the mapping table and are
// never suppressed by the minimum trigger interval; only clicks and drag ends
// are. A primary
// press arms click/drag evaluation; the matching release resolves to
// ActionDragEnd if the pointer ever travelled past the threshold, otherwise to
// ActionClick.
func (t *Translator) OnMouseEvent(ev MouseEvent, ms MouseState) Action {
	t.state.LastMouse = ms

	switch ev.Type {
	case MouseWheelForward:
		t.state.LastAction = ActionZoomIn
		return ActionZoomIn
	case MouseWheelBack:
		t.state.LastAction = ActionZoomOut
		return ActionZoomOut
	}

	if ev.Button != MouseButtonLeft {
		return ActionUnmapped
	}

	switch ev.Type {
	case MouseDown:
		// A press while already armed means the previous release never
		// arrived. Start over from this press.
		t.state.DragAnchor = ms.Position
		t.state.TriggerTime = t.now()
		t.state.Armed = true
		t.state.Dragging = false
		return ActionUnmapped

	case MouseUp:
		if !t.state.Armed {
			return ActionUnmapped
		}
		dragged := t.state.Dragging || ms.Position.Dist(t.state.DragAnchor) > t.threshold
		t.state.Armed = false
		t.state.Dragging = false

		action := ActionClick
		if dragged {
			action = ActionDragEnd
		}
		now := t.now()
		if t.suppressed(action, now) {
			t.state.LastAction = ActionUnmapped
			return ActionUnmapped
		}
		t.resolvedAt[action] = now
		t.state.LastAction = action
		t.state.TriggerTime = now
		return action
	}
	return ActionUnmapped
}

// suppressed reports whether action resolved less than the minimum interval
// before now.
func (t *Translator) suppressed(action Action, now time.Time) bool {
	prev, ok := t.resolvedAt[action]
	if !ok {
		return false
	}
	return now.Sub(prev) < t.minInterval
}

// OnMouseMove feeds pointer motion. Once an armed gesture moves strictly
// farther than the threshold from its anchor, this and every later move until
// release resolve to ActionDragUpdate.
func (t *Translator) OnMouseMove(ms MouseState) Action {
	t.state.LastMouse = ms
	if !t.state.Armed {
		return ActionUnmapped
	}
	if !t.state.Dragging && ms.Position.Dist(t.state.DragAnchor) > t.threshold {
		t.state.Dragging = true
	}
	if !t.state.Dragging {
		return ActionUnmapped
	}
	t.state.LastAction = ActionDragUpdate
	return ActionDragUpdate
}

// Clear resets held modifiers, the main key, the pending click/drag and the
// double-trigger history. Mappings are kept. Clear is the recovery path for a
// release event that never arrived (typically swallowed by a foreign modal
// surface) and is safe to call at any time.
func (t *Translator) Clear() {
	t.state = InputState{}
	clear(t.resolvedAt)
}
