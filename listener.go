package thicket

// NoticeKind identifies a notification delivered through a ListenerRegistry.
type NoticeKind uint8

const (
	NoticeClickObject      NoticeKind = iota // a click landed on a widget; consumable
	NoticeUnhandledAction                    // no widget handled an action; consumable
	NoticeFocusChanged                       // focus moved within a scope
	NoticeStateChanged                       // a widget's ActionState changed
	NoticeDragBegin                          // a gesture crossed the drag threshold
	NoticeBindingsReloaded                   // a binding file was reloaded
)

// Consumable reports whether the first listener returning true stops delivery
// of notices of this kind. State-change kinds always reach every listener.
func (k NoticeKind) Consumable() bool {
	return k == NoticeClickObject || k == NoticeUnhandledAction
}

// String returns a lower-case name for the kind.
func (k NoticeKind) String() string {
	switch k {
	case NoticeClickObject:
		return "click-object"
	case NoticeUnhandledAction:
		return "unhandled-action"
	case NoticeFocusChanged:
		return "focus-changed"
	case NoticeStateChanged:
		return "state-changed"
	case NoticeDragBegin:
		return "drag-begin"
	case NoticeBindingsReloaded:
		return "bindings-reloaded"
	default:
		return "unknown"
	}
}

// Notice carries notification data. Fields not relevant to Kind are zero.
type Notice struct {
	Kind     NoticeKind
	Scope    Scope
	Widget   Widget // target widget; nil for the window background
	Previous Widget // NoticeFocusChanged: the widget that lost focus
	Action   Action
	From, To ActionState // NoticeStateChanged
	Position Vec2
}

// Listener observes notices. The return value is only consulted for
// consumable kinds, where true marks the notice as handled.
type Listener interface {
	OnNotice(n Notice) bool
}

type funcListener struct {
	fn func(Notice) bool
}

func (f *funcListener) OnNotice(n Notice) bool { return f.fn(n) }

// ListenerRegistry fans notices out to application observers, partitioned by
// scope. Create one per application and pass it to each Window.
type ListenerRegistry struct {
	byScope map[Scope][]Listener
}

// NewListenerRegistry creates an empty registry.
func NewListenerRegistry() *ListenerRegistry {
	return &ListenerRegistry{byScope: make(map[Scope][]Listener)}
}

func scopesOrMain(scopes []Scope) []Scope {
	if len(scopes) == 0 {
		return []Scope{MainScope}
	}
	return scopes
}

// AddListener registers l for each scope, or for MainScope when none are
// given. Adding the same listener to the same scope twice has no effect.
// l must be comparable (typically a pointer).
func (r *ListenerRegistry) AddListener(l Listener, scopes ...Scope) {
	for _, sc := range scopesOrMain(scopes) {
		cur := r.byScope[sc]
		if indexOfListener(cur, l) >= 0 {
			continue
		}
		// Copy on write so a Notify in progress keeps iterating its snapshot.
		next := make([]Listener, len(cur), len(cur)+1)
		copy(next, cur)
		r.byScope[sc] = append(next, l)
	}
}

// RemoveListener unregisters l from each scope, or from MainScope when none
// are given.
func (r *ListenerRegistry) RemoveListener(l Listener, scopes ...Scope) {
	for _, sc := range scopesOrMain(scopes) {
		cur := r.byScope[sc]
		i := indexOfListener(cur, l)
		if i < 0 {
			continue
		}
		next := make([]Listener, 0, len(cur)-1)
		next = append(next, cur[:i]...)
		next = append(next, cur[i+1:]...)
		if len(next) == 0 {
			delete(r.byScope, sc)
			continue
		}
		r.byScope[sc] = next
	}
}

func indexOfListener(s []Listener, l Listener) int {
	for i := range s {
		if s[i] == l {
			return i
		}
	}
	return -1
}

// CallbackHandle allows removing a listener registered with OnNotice.
type CallbackHandle struct {
	l      *funcListener
	reg    *ListenerRegistry
	scopes []Scope
}

// Remove unregisters the callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.RemoveListener(h.l, h.scopes...)
}

// OnNotice registers fn as a listener and returns a handle for removing it.
func (r *ListenerRegistry) OnNotice(fn func(Notice) bool, scopes ...Scope) CallbackHandle {
	l := &funcListener{fn: fn}
	scopes = scopesOrMain(scopes)
	r.AddListener(l, scopes...)
	return CallbackHandle{l: l, reg: r, scopes: scopes}
}

// Len returns the number of listeners registered for scope.
func (r *ListenerRegistry) Len(scope Scope) int {
	return len(r.byScope[scope])
}

// Notify delivers n to every listener of scope in registration order. For
// consumable kinds delivery stops at the first listener that returns true and
// Notify reports true; otherwise every listener is called and Notify reports
// false.
func (r *ListenerRegistry) Notify(n Notice, scope Scope) bool {
	n.Scope = scope
	consumable := n.Kind.Consumable()
	for _, l := range r.byScope[scope] {
		if l.OnNotice(n) && consumable {
			return true
		}
	}
	return false
}
