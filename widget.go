package thicket

// Widget is the capability every interactive element implements. The router
// and focus controller only hold non-owning references; a widget must be
// unregistered from its Window (which also drops focus) before its owner
// destroys it.
//
// Widgets are compared with == and used as map keys, so implementations must
// be comparable. Implement Widget on a pointer type, as Base does.
type Widget interface {
	// Name identifies the widget in logs and notices.
	Name() string

	// HandleInputAction offers an action to the widget. last is the action
	// previously dispatched in the same scope. Returning true stops dispatch.
	HandleInputAction(action, last Action) bool

	// CanGiveUpFocus is asked before focus moves to another widget. pending
	// is the action that triggered the request.
	CanGiveUpFocus(pending Action) bool

	// ChangeActionState records the new interaction state. The widget must
	// treat it as authoritative for later HandleInputAction decisions.
	ChangeActionState(s ActionState)
	ActionState() ActionState

	LostFocus()
	GainedFocus()

	// HitRects returns the widget's hit rectangles in window space.
	HitRects() []Rect
	HitPriority() HitPriority

	AcceptsFocus() bool
	WantsContinuousEvents() bool
}

// Contains reports whether any of w's hit rectangles contains p.
func Contains(w Widget, p Vec2) bool {
	for _, r := range w.HitRects() {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// Base implements the bookkeeping half of Widget. Embed it in concrete widget
// types and override HandleInputAction and friends as needed. A disabled Base
// rejects every action and refuses nothing on focus negotiation.
type Base struct {
	name       string
	Rects      []Rect
	Priority   HitPriority
	Focusable  bool
	Continuous bool
	state      ActionState
	focused    bool

	// OnStateChange, when set, is called after every state change.
	OnStateChange func(from, to ActionState)
}

// NewBase returns a Base with the given name and hit rectangles in the
// TestNormal tier.
func NewBase(name string, rects ...Rect) Base {
	return Base{name: name, Rects: rects, Priority: TestNormal}
}

// Name returns the name given to NewBase.
func (b *Base) Name() string { return b.name }

// HitRects returns Rects.
func (b *Base) HitRects() []Rect { return b.Rects }

// HitPriority returns Priority.
func (b *Base) HitPriority() HitPriority { return b.Priority }

// AcceptsFocus returns Focusable.
func (b *Base) AcceptsFocus() bool { return b.Focusable }

// WantsContinuousEvents returns Continuous.
func (b *Base) WantsContinuousEvents() bool { return b.Continuous }

// ActionState returns the state last recorded by ChangeActionState.
func (b *Base) ActionState() ActionState { return b.state }

// HasFocus reports whether the widget currently holds focus.
func (b *Base) HasFocus() bool { return b.focused }

// Disabled reports whether the widget is in StateDisabled.
func (b *Base) Disabled() bool { return b.state == StateDisabled }

// ChangeActionState records s and calls OnStateChange if the state changed.
func (b *Base) ChangeActionState(s ActionState) {
	from := b.state
	b.state = s
	if b.OnStateChange != nil && from != s {
		b.OnStateChange(from, s)
	}
}

// HandleInputAction on a bare Base handles nothing.
func (b *Base) HandleInputAction(action, last Action) bool { return false }

// CanGiveUpFocus on a bare Base always agrees.
func (b *Base) CanGiveUpFocus(pending Action) bool { return true }

// LostFocus clears the flag reported by HasFocus.
func (b *Base) LostFocus() { b.focused = false }

// GainedFocus sets the flag reported by HasFocus.
func (b *Base) GainedFocus() { b.focused = true }
