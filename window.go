package thicket

import (
	"log/slog"
	"time"
)

// WindowConfig configures a Window.
type WindowConfig struct {
	Scope              Scope
	DragThreshold      float64       // pixels; see Translator.SetDragThreshold
	MinTriggerInterval time.Duration // see Translator.SetMinTriggerInterval
}

// DefaultWindowConfig returns the configuration of the main window.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Scope:              MainScope,
		DragThreshold:      DefaultDragThreshold,
		MinTriggerInterval: DefaultMinTriggerInterval,
	}
}

// --- Per-window pointer state ---

type pointerState struct {
	pos      Vec2
	buttons  uint8
	hover    Widget // widget under the pointer, for enter/leave
	pressed  Widget // gesture target captured at primary press
	gesture  bool   // primary button held
	dragging bool   // drag begin already delivered for this gesture
}

// Window is the input pump of one window scope. It owns the scope's
// Translator, Router and FocusController, consumes raw events one at a time,
// drives widget state machines and dispatches actions. A Window is
// single-threaded: call HandleEvent and Update from one goroutine.
type Window struct {
	scope      Scope
	translator *Translator
	router     *Router
	focus      *FocusController
	listeners  *ListenerRegistry

	pointer  pointerState
	captured Widget

	source   Source
	eventBuf []Event

	injectQueue []Event
	testRunner  *TestRunner
	reloads     <-chan BindingReload

	log    *slog.Logger
	logSet bool // SetLogger received a non-nil logger
	debug  bool
}

// NewWindow creates a window for cfg.Scope that notifies listeners. A nil
// listeners gets a fresh registry.
func NewWindow(cfg WindowConfig, listeners *ListenerRegistry) *Window {
	if cfg.Scope == "" {
		cfg.Scope = MainScope
	}
	if listeners == nil {
		listeners = NewListenerRegistry()
	}
	tr := NewTranslator()
	tr.SetDragThreshold(cfg.DragThreshold)
	tr.SetMinTriggerInterval(cfg.MinTriggerInterval)
	return &Window{
		scope:      cfg.Scope,
		translator: tr,
		router:     NewRouter(),
		focus:      NewFocusController(listeners),
		listeners:  listeners,
		log:        discardLogger,
	}
}

// Scope returns the window's scope.
func (w *Window) Scope() Scope { return w.scope }

// Translator returns the window's translator, for registering mappings.
func (w *Window) Translator() *Translator { return w.translator }

// Router returns the window's hit-test router.
func (w *Window) Router() *Router { return w.router }

// Focus returns the window's focus controller.
func (w *Window) Focus() *FocusController { return w.focus }

// Listeners returns the registry the window notifies.
func (w *Window) Listeners() *ListenerRegistry { return w.listeners }

// SetSource attaches the platform layer polled by Update.
func (w *Window) SetSource(src Source) { w.source = src }

// Pointer returns the last known pointer position.
func (w *Window) Pointer() Vec2 { return w.pointer.pos }

// Hovered returns the widget under the pointer, or nil.
func (w *Window) Hovered() Widget { return w.pointer.hover }

// --- Registration ---

// Register makes wd a hit-test candidate of this window.
func (w *Window) Register(wd Widget) {
	w.router.Register(wd, w.scope)
}

// Unregister removes wd from hit-testing and focus without calling back into
// it. Owners must call it before destroying wd.
func (w *Window) Unregister(wd Widget) {
	w.router.Unregister(wd, w.scope)
	w.focus.Forget(wd)
	if w.pointer.hover == wd {
		w.pointer.hover = nil
	}
	if w.pointer.pressed == wd {
		w.pointer.pressed = nil
	}
	if w.captured == wd {
		w.captured = nil
	}
}

// SetEnabled toggles wd between StateDisabled and StateNormal. Disabling a
// focused widget drops focus first; disabling the pressed widget abandons its
// gesture target.
func (w *Window) SetEnabled(wd Widget, enabled bool) {
	if !enabled {
		if wd.ActionState() == StateDisabled {
			return
		}
		if w.focus.Focused(w.scope) == wd {
			w.focus.ClearFocus(w.scope)
		}
		if w.pointer.pressed == wd {
			w.pointer.pressed = nil
		}
		w.focus.setState(wd, StateDisabled, w.scope)
		return
	}
	if wd.ActionState() != StateDisabled {
		return
	}
	w.focus.setState(wd, StateNormal, w.scope)
	if w.pointer.hover == wd {
		w.focus.transition(wd, inputPointerEnter, w.scope)
	}
}

// CapturePointer routes all pointer events to wd regardless of hit-testing
// until ReleasePointer or the next primary release.
func (w *Window) CapturePointer(wd Widget) {
	w.captured = wd
}

// ReleasePointer stops routing pointer events to a captured widget.
func (w *Window) ReleasePointer() {
	w.captured = nil
}

// --- Event processing ---

// HandleEvent consumes one raw event synchronously. All state transitions,
// focus negotiation and notifications it causes complete before it returns.
func (w *Window) HandleEvent(ev Event) {
	if w.debug {
		w.log.Debug("event", slog.Int("kind", int(ev.Kind)), slog.String("key", ev.Key.String()),
			slog.Int("button", int(ev.Button)), slog.Float64("x", ev.X), slog.Float64("y", ev.Y))
	}
	switch ev.Kind {
	case EventKeyDown:
		w.handleKey(KeyDown, ev.Key)
	case EventKeyUp:
		w.handleKey(KeyUp, ev.Key)
	case EventMouseMove:
		w.moveTo(Vec2{ev.X, ev.Y})
	case EventMouseDown:
		w.handleButton(MouseDown, ev.Button, Vec2{ev.X, ev.Y})
	case EventMouseUp:
		w.handleButton(MouseUp, ev.Button, Vec2{ev.X, ev.Y})
	case EventWheelForward:
		w.handleWheel(MouseWheelForward)
	case EventWheelBack:
		w.handleWheel(MouseWheelBack)
	}
}

func (w *Window) mouseState() MouseState {
	return MouseState{Position: w.pointer.pos, Buttons: w.pointer.buttons}
}

func (w *Window) handleKey(tr KeyTransition, key Key) {
	if action := w.translator.OnKeyEvent(tr, key); action != ActionUnmapped {
		w.focus.DispatchAction(action, w.scope)
	}
}

func (w *Window) handleWheel(t MouseEventType) {
	action := w.translator.OnMouseEvent(MouseEvent{Type: t}, w.mouseState())
	w.focus.DispatchAction(action, w.scope)
}

// pointerTarget returns the captured widget or the topmost widget at p.
func (w *Window) pointerTarget(p Vec2) Widget {
	if w.captured != nil {
		if w.debug && !w.router.Registered(w.captured, w.scope) {
			w.log.Warn("pointer captured by unregistered widget", slog.String("widget", w.captured.Name()))
		}
		return w.captured
	}
	return w.router.Route(p, w.scope)
}

// updateHover fires leave/enter transitions when the hovered widget changes.
// A widget still under the pointer that fell back to StateNormal, for example
// after focus was taken away programmatically, is entered again.
func (w *Window) updateHover(target Widget) {
	prev := w.pointer.hover
	if target == prev {
		if target != nil && target.ActionState() == StateNormal {
			w.focus.transition(target, inputPointerEnter, w.scope)
		}
		return
	}
	w.pointer.hover = target
	if prev != nil {
		w.focus.transition(prev, inputPointerLeave, w.scope)
	}
	if target != nil {
		w.focus.transition(target, inputPointerEnter, w.scope)
	}
}

// moveTo processes pointer motion to p.
func (w *Window) moveTo(p Vec2) {
	w.pointer.pos = p
	action := w.translator.OnMouseMove(w.mouseState())
	target := w.pointerTarget(p)
	w.updateHover(target)

	if action == ActionDragUpdate {
		g := w.pointer.pressed
		if !w.pointer.dragging {
			w.pointer.dragging = true
			w.listeners.Notify(Notice{Kind: NoticeDragBegin, Widget: g, Action: ActionDragBegin, Position: p}, w.scope)
			w.focus.deliver(g, ActionDragBegin, p, w.scope)
		}
		w.focus.deliver(g, ActionDragUpdate, p, w.scope)
		return
	}

	if target != nil && target.WantsContinuousEvents() && target.ActionState() != StateDisabled {
		target.HandleInputAction(ActionHover, w.focus.LastAction(w.scope))
	}
}

func (w *Window) handleButton(t MouseEventType, b MouseButton, p Vec2) {
	if p != w.pointer.pos {
		w.moveTo(p)
	}
	if t == MouseDown {
		w.pointer.buttons |= 1 << b
	} else {
		w.pointer.buttons &^= 1 << b
	}

	armed := w.translator.State().Armed
	action := w.translator.OnMouseEvent(MouseEvent{Type: t, Button: b}, w.mouseState())
	if b != MouseButtonLeft {
		return
	}
	if t == MouseDown {
		w.pressPrimary(p)
		return
	}
	if armed && action == ActionUnmapped && w.debug {
		w.log.Debug("duplicate release suppressed", slog.Float64("x", p.X), slog.Float64("y", p.Y))
	}
	w.releasePrimary(p, action)
}

func (w *Window) pressPrimary(p Vec2) {
	target := w.pointerTarget(p)
	w.updateHover(target)
	if prev := w.pointer.pressed; prev != nil && prev != target {
		// The previous release never arrived.
		w.settlePressed(prev)
	}
	w.router.BeginGesture(w.scope)
	w.pointer.gesture = true
	w.pointer.pressed = target
	w.pointer.dragging = false
	if target != nil {
		w.focus.transition(target, inputPress, w.scope)
	}
}

func (w *Window) releasePrimary(p Vec2, action Action) {
	g := w.pointer.pressed
	w.captured = nil
	target := w.pointerTarget(p)
	w.pointer.pressed = nil
	w.pointer.gesture = false
	w.pointer.dragging = false
	w.router.EndGesture(w.scope)

	delivered := false
	if g != nil {
		inside := Contains(g, p)
		switch {
		case inside && g.AcceptsFocus() && g.ActionState() == StatePressed:
			if !w.focus.RequestFocus(g, action, w.scope) {
				// The holder refused and already received the action.
				w.focus.setState(g, StateHovered, w.scope)
				delivered = true
			} else {
				// Already focused widgets stay Pressed through RequestFocus.
				w.focus.transition(g, inputReleaseInside, w.scope)
			}
		case inside:
			w.focus.transition(g, inputReleaseInside, w.scope)
		default:
			w.focus.transition(g, inputReleaseOutside, w.scope)
		}
		if g != w.pointer.hover {
			w.focus.transition(g, inputPointerLeave, w.scope)
		}
	}
	w.updateHover(target)

	if delivered {
		return
	}
	switch action {
	case ActionClick:
		w.dispatchClick(g, p)
	case ActionDragEnd:
		w.focus.deliver(g, ActionDragEnd, p, w.scope)
	}
}

// dispatchClick offers a click to the gesture target, then to click-on-object
// listeners. Clicks on the background go straight to the unhandled broadcast.
// A disabled target absorbs the click.
func (w *Window) dispatchClick(g Widget, p Vec2) {
	if g != nil && g.ActionState() == StateDisabled {
		return
	}
	last := w.focus.advance(ActionClick, w.scope)
	if g == nil {
		w.listeners.Notify(Notice{Kind: NoticeUnhandledAction, Action: ActionClick, Position: p}, w.scope)
		return
	}
	if g.HandleInputAction(ActionClick, last) {
		return
	}
	w.listeners.Notify(Notice{Kind: NoticeClickObject, Widget: g, Action: ActionClick, Position: p}, w.scope)
}

// Clear recovers from a lost release event. It resets the translator, ends
// any gesture, releases pointer capture and returns a stuck pressed widget to
// hovered or normal. Focus is left untouched and no focus callbacks fire.
// Clear is idempotent and safe to call at any time.
func (w *Window) Clear() {
	w.translator.Clear()
	w.router.EndGesture(w.scope)
	w.captured = nil
	if g := w.pointer.pressed; g != nil {
		w.settlePressed(g)
	}
	w.pointer.pressed = nil
	w.pointer.gesture = false
	w.pointer.dragging = false
	w.pointer.buttons = 0
}

// settlePressed returns a widget left in StatePressed by an abandoned gesture
// to hovered or normal.
func (w *Window) settlePressed(g Widget) {
	if g.ActionState() != StatePressed {
		return
	}
	if g == w.pointer.hover {
		w.focus.setState(g, StateHovered, w.scope)
	} else {
		w.focus.setState(g, StateNormal, w.scope)
	}
}

// --- Frame update ---

// Update runs one frame of input: it applies pending binding reloads, steps
// the test runner, then consumes one injected event if any are queued, or
// otherwise every event the attached Source reports.
func (w *Window) Update() {
	w.applyReloads()
	if w.testRunner != nil {
		w.testRunner.step(w)
	}
	if w.processInjectedInput() {
		return
	}
	if w.source == nil {
		return
	}
	w.eventBuf = w.source.Poll(w.eventBuf[:0])
	for _, ev := range w.eventBuf {
		w.HandleEvent(ev)
	}
}
