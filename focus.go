package thicket

import "log/slog"

// focusSlot is the focus state of one scope.
type focusSlot struct {
	widget Widget
	last   Action // previously dispatched action
}

// FocusController holds at most one focused widget per scope and arbitrates
// focus changes by negotiating with the current holder.
type FocusController struct {
	slots       map[Scope]*focusSlot
	listeners   *ListenerRegistry
	negotiating bool
	log         *slog.Logger
}

// NewFocusController creates a controller that reports focus changes and
// unhandled actions to listeners. listeners may be nil.
func NewFocusController(listeners *ListenerRegistry) *FocusController {
	return &FocusController{
		slots:     make(map[Scope]*focusSlot),
		listeners: listeners,
		log:       discardLogger,
	}
}

func (f *FocusController) slot(scope Scope) *focusSlot {
	s := f.slots[scope]
	if s == nil {
		s = &focusSlot{}
		f.slots[scope] = s
	}
	return s
}

// Focused returns the focused widget of scope, or nil.
func (f *FocusController) Focused(scope Scope) Widget {
	if s := f.slots[scope]; s != nil {
		return s.widget
	}
	return nil
}

// RequestFocus moves focus in scope to w. If another widget holds focus it is
// asked CanGiveUpFocus(pending) first; on refusal focus stays put, pending (if
// mapped) is delivered to the holder instead, falling back to an
// unhandled-action notice, and RequestFocus returns false.
// On success the old holder gets LostFocus and returns to StateNormal, the
// new holder gets GainedFocus and enters StateFocused.
//
// Calling RequestFocus from inside CanGiveUpFocus, LostFocus or GainedFocus is
// not supported; such calls are rejected and return false.
func (f *FocusController) RequestFocus(w Widget, pending Action, scope Scope) bool {
	if f.negotiating {
		f.log.Warn("reentrant focus request rejected",
			slog.String("widget", w.Name()), slog.String("scope", string(scope)))
		return false
	}
	if w.ActionState() == StateDisabled {
		return false
	}
	s := f.slot(scope)
	old := s.widget
	if old == w {
		return true
	}

	// State notices are held back until the change is complete so listeners
	// never observe a half-applied focus change.
	var notices [3]Notice
	n := 0

	f.negotiating = true
	if old != nil {
		if !old.CanGiveUpFocus(pending) {
			f.negotiating = false
			if pending != ActionUnmapped {
				f.deliver(old, pending, Vec2{}, scope)
			}
			return false
		}
		old.LostFocus()
		if ntc, ok := stateNotice(old, inputFocusLost); ok {
			notices[n] = ntc
			n++
		}
	}
	s.widget = w
	w.GainedFocus()
	if ntc, ok := stateNotice(w, inputFocusGained); ok {
		notices[n] = ntc
		n++
	}
	f.negotiating = false

	notices[n] = Notice{Kind: NoticeFocusChanged, Widget: w, Previous: old, Action: pending}
	n++
	for i := 0; i < n; i++ {
		f.notify(notices[i], scope)
	}
	return true
}

// ClearFocus removes focus from scope, notifying the holder with LostFocus.
func (f *FocusController) ClearFocus(scope Scope) {
	s := f.slots[scope]
	if s == nil || s.widget == nil || f.negotiating {
		return
	}
	old := s.widget
	f.negotiating = true
	old.LostFocus()
	s.widget = nil
	f.negotiating = false
	f.transition(old, inputFocusLost, scope)
	f.notify(Notice{Kind: NoticeFocusChanged, Previous: old}, scope)
}

// Forget drops every reference to w without calling back into it. Owners call
// it (usually through Window.Unregister) before destroying a widget.
func (f *FocusController) Forget(w Widget) {
	for _, s := range f.slots {
		if s.widget == w {
			s.widget = nil
		}
	}
}

// DispatchAction offers action to the focused widget of scope. If nothing is
// focused or the widget does not handle it, an unhandled-action notice is
// broadcast to the scope's listeners. It reports whether the widget or a
// listener handled the action.
func (f *FocusController) DispatchAction(action Action, scope Scope) bool {
	w := f.Focused(scope)
	last := f.advance(action, scope)
	if w != nil && w.HandleInputAction(action, last) {
		return true
	}
	return f.notify(Notice{Kind: NoticeUnhandledAction, Widget: w, Action: action}, scope)
}

// advance records action as the latest dispatched in scope and returns the
// one before it.
func (f *FocusController) advance(action Action, scope Scope) Action {
	s := f.slot(scope)
	last := s.last
	s.last = action
	return last
}

// LastAction returns the action most recently dispatched in scope.
func (f *FocusController) LastAction(scope Scope) Action {
	if s := f.slots[scope]; s != nil {
		return s.last
	}
	return ActionUnmapped
}

// deliver offers action to an explicit target such as the widget under the
// pointer, with the same unhandled fallback as DispatchAction.
func (f *FocusController) deliver(w Widget, action Action, pos Vec2, scope Scope) bool {
	last := f.advance(action, scope)
	if w != nil && w.HandleInputAction(action, last) {
		return true
	}
	return f.notify(Notice{Kind: NoticeUnhandledAction, Widget: w, Action: action, Position: pos}, scope)
}

// stateNotice runs w's state machine for in and returns the notice describing
// the change, if any.
func stateNotice(w Widget, in stateInput) (Notice, bool) {
	from := w.ActionState()
	if !applyInput(w, in) {
		return Notice{}, false
	}
	return Notice{Kind: NoticeStateChanged, Widget: w, From: from, To: w.ActionState()}, true
}

// transition runs w's state machine for in and broadcasts the change.
func (f *FocusController) transition(w Widget, in stateInput, scope Scope) {
	if n, ok := stateNotice(w, in); ok {
		f.notify(n, scope)
	}
}

// setState forces w into s and broadcasts the change.
func (f *FocusController) setState(w Widget, s ActionState, scope Scope) {
	from := w.ActionState()
	if from == s {
		return
	}
	w.ChangeActionState(s)
	f.notify(Notice{Kind: NoticeStateChanged, Widget: w, From: from, To: s}, scope)
}

func (f *FocusController) notify(n Notice, scope Scope) bool {
	if f.listeners == nil {
		return false
	}
	return f.listeners.Notify(n, scope)
}
