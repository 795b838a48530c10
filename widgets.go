package thicket

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// --- Button ---

// buttonFadeSeconds is how long a Button's highlight takes to settle after a
// state change.
const buttonFadeSeconds = 0.12

// highlightFor returns the highlight intensity a Button settles at in s.
func highlightFor(s ActionState) float64 {
	switch s {
	case StateHovered:
		return 0.5
	case StatePressed:
		return 1
	case StateFocused:
		return 0.75
	default:
		return 0
	}
}

// Button is a clickable widget that never takes focus. Its Highlight eases
// toward a per-state intensity so a renderer can fade hover and press
// feedback; call Update once per frame to advance it.
type Button struct {
	Base
	OnClick func()

	highlight float64
	tween     *gween.Tween
}

// NewButton creates a button covering r.
func NewButton(name string, r Rect, onClick func()) *Button {
	return &Button{Base: NewBase(name, r), OnClick: onClick}
}

// ChangeActionState records s and starts easing the highlight toward it.
func (b *Button) ChangeActionState(s ActionState) {
	b.Base.ChangeActionState(s)
	b.tween = gween.New(float32(b.highlight), float32(highlightFor(s)), buttonFadeSeconds, ease.OutQuad)
}

// Update advances the highlight by dt seconds.
func (b *Button) Update(dt float32) {
	if b.tween == nil {
		return
	}
	v, done := b.tween.Update(dt)
	b.highlight = float64(v)
	if done {
		b.tween = nil
	}
}

// Highlight returns the current feedback intensity in [0, 1].
func (b *Button) Highlight() float64 {
	return b.highlight
}

// HandleInputAction handles ActionClick unless the button is disabled.
func (b *Button) HandleInputAction(action, last Action) bool {
	if b.Disabled() || action != ActionClick {
		return false
	}
	if b.OnClick != nil {
		b.OnClick()
	}
	return true
}

// --- TextField ---

// TextField is a focusable widget that wants continuous pointer events. While
// focused it receives keyboard-mapped actions through OnAction. A locked field
// refuses to give up focus, e.g. while an edit is uncommitted.
type TextField struct {
	Base
	OnAction func(action, last Action) bool

	locked bool
}

// NewTextField creates a focusable text field covering r.
func NewTextField(name string, r Rect) *TextField {
	f := &TextField{Base: NewBase(name, r)}
	f.Focusable = true
	f.Continuous = true
	return f
}

// Lock makes the field refuse focus negotiation until Unlock.
func (f *TextField) Lock()   { f.locked = true }
func (f *TextField) Unlock() { f.locked = false }

// Locked reports whether the field currently refuses to give up focus.
func (f *TextField) Locked() bool { return f.locked }

// CanGiveUpFocus refuses while the field is locked.
func (f *TextField) CanGiveUpFocus(pending Action) bool {
	return !f.locked
}

// HandleInputAction accepts clicks and hover motion, and hands everything else
// to OnAction while focused.
func (f *TextField) HandleInputAction(action, last Action) bool {
	if f.Disabled() {
		return false
	}
	switch action {
	case ActionClick, ActionHover:
		return true
	}
	if !f.HasFocus() || f.OnAction == nil {
		return false
	}
	return f.OnAction(action, last)
}

// --- Panel ---

// Panel is a background surface tested after every other tier. It swallows
// clicks so they do not reach the window background.
type Panel struct {
	Base
}

// NewPanel creates a panel covering rects in the TestLast tier.
func NewPanel(name string, rects ...Rect) *Panel {
	p := &Panel{Base: NewBase(name, rects...)}
	p.Priority = TestLast
	return p
}

// HandleInputAction swallows ActionClick while enabled.
func (p *Panel) HandleInputAction(action, last Action) bool {
	return !p.Disabled() && action == ActionClick
}

// --- Overlay ---

// Overlay is a surface tested before every other tier, such as a tooltip or a
// drag ghost. Actions go to OnAction when set.
type Overlay struct {
	Base
	OnAction func(action, last Action) bool
}

// NewOverlay creates an overlay covering rects in the TestFirst tier.
func NewOverlay(name string, rects ...Rect) *Overlay {
	o := &Overlay{Base: NewBase(name, rects...)}
	o.Priority = TestFirst
	return o
}

// HandleInputAction forwards to OnAction while enabled.
func (o *Overlay) HandleInputAction(action, last Action) bool {
	if o.Disabled() || o.OnAction == nil {
		return false
	}
	return o.OnAction(action, last)
}
