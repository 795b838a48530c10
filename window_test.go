package thicket

import (
	"errors"
	"testing"
	"time"
)

func newTestWindow() (*Window, *recorder, *fakeClock) {
	reg := NewListenerRegistry()
	rec := &recorder{}
	reg.AddListener(rec)
	w := NewWindow(DefaultWindowConfig(), reg)
	clk := newFakeClock()
	w.Translator().SetClock(clk.now)
	return w, rec, clk
}

func pointerMove(w *Window, x, y float64) {
	w.HandleEvent(Event{Kind: EventMouseMove, X: x, Y: y})
}

func pointerDown(w *Window, x, y float64) {
	w.HandleEvent(Event{Kind: EventMouseDown, Button: MouseButtonLeft, X: x, Y: y})
}

func pointerUp(w *Window, x, y float64) {
	w.HandleEvent(Event{Kind: EventMouseUp, Button: MouseButtonLeft, X: x, Y: y})
}

func clickAt(w *Window, x, y float64) {
	pointerMove(w, x, y)
	pointerDown(w, x, y)
	pointerUp(w, x, y)
}

func keyChord(w *Window, k Key, mods ...Key) {
	for _, m := range mods {
		w.HandleEvent(Event{Kind: EventKeyDown, Key: m})
	}
	w.HandleEvent(Event{Kind: EventKeyDown, Key: k})
	w.HandleEvent(Event{Kind: EventKeyUp, Key: k})
	for _, m := range mods {
		w.HandleEvent(Event{Kind: EventKeyUp, Key: m})
	}
}

func TestWindowButtonClick(t *testing.T) {
	w, rec, _ := newTestWindow()
	clicks := 0
	btn := NewButton("ok", square(0, 0, 50), func() { clicks++ })
	w.Register(btn)

	pointerMove(w, 10, 10)
	if btn.ActionState() != StateHovered {
		t.Fatalf("after enter state = %v, want hovered", btn.ActionState())
	}
	pointerDown(w, 10, 10)
	if btn.ActionState() != StatePressed {
		t.Fatalf("after press state = %v, want pressed", btn.ActionState())
	}
	pointerUp(w, 10, 10)
	if btn.ActionState() != StateHovered {
		t.Errorf("after release state = %v, want hovered", btn.ActionState())
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if w.Focus().Focused(MainScope) != nil {
		t.Error("a button should never take focus")
	}
	if rec.count(NoticeClickObject) != 0 || rec.count(NoticeUnhandledAction) != 0 {
		t.Errorf("handled click should not broadcast, got %v", rec.kinds())
	}
	if rec.count(NoticeStateChanged) != 3 {
		t.Errorf("state notices = %d, want 3", rec.count(NoticeStateChanged))
	}
}

func TestWindowHoverLeave(t *testing.T) {
	w, _, _ := newTestWindow()
	a := newProbe("a", square(0, 0, 10))
	w.Register(a)

	pointerMove(w, 5, 5)
	if w.Hovered() != a || a.ActionState() != StateHovered {
		t.Fatalf("hovered = %v, state = %v", w.Hovered(), a.ActionState())
	}
	pointerMove(w, 50, 50)
	if w.Hovered() != nil || a.ActionState() != StateNormal {
		t.Errorf("hovered = %v, state = %v", w.Hovered(), a.ActionState())
	}
	if w.Pointer() != (Vec2{50, 50}) {
		t.Errorf("Pointer = %v", w.Pointer())
	}
}

func TestWindowHoverMovesBetweenWidgets(t *testing.T) {
	w, _, _ := newTestWindow()
	a := newProbe("a", square(0, 0, 10))
	b := newProbe("b", square(10, 0, 10))
	w.Register(a)
	w.Register(b)

	pointerMove(w, 5, 5)
	pointerMove(w, 15, 5)
	if a.ActionState() != StateNormal || b.ActionState() != StateHovered {
		t.Errorf("a = %v, b = %v", a.ActionState(), b.ActionState())
	}
}

func TestWindowPressWithoutPriorMove(t *testing.T) {
	w, _, _ := newTestWindow()
	a := newProbe("a", square(0, 0, 10))
	a.handles[ActionClick] = true
	w.Register(a)

	pointerDown(w, 5, 5)
	if a.ActionState() != StatePressed {
		t.Fatalf("state = %v, want pressed", a.ActionState())
	}
	pointerUp(w, 5, 5)
	if a.received(ActionClick) != 1 {
		t.Errorf("got %v, want one click", a.got)
	}
}

func TestWindowDragSequence(t *testing.T) {
	w, rec, _ := newTestWindow()
	a := newProbe("a", square(0, 0, 20))
	a.handles[ActionDragBegin] = true
	a.handles[ActionDragUpdate] = true
	a.handles[ActionDragEnd] = true
	w.Register(a)

	pointerDown(w, 10, 10)
	pointerMove(w, 12, 10)
	if len(a.got) != 0 {
		t.Fatalf("move within threshold delivered %v", a.got)
	}
	pointerMove(w, 20, 10)
	pointerMove(w, 30, 10)
	pointerUp(w, 30, 10)

	want := []Action{ActionDragBegin, ActionDragUpdate, ActionDragUpdate, ActionDragEnd}
	if len(a.got) != len(want) {
		t.Fatalf("got %v, want %v", a.got, want)
	}
	for i := range want {
		if a.got[i] != want[i] {
			t.Errorf("action %d = %v, want %v", i, a.got[i], want[i])
		}
	}
	if rec.count(NoticeDragBegin) != 1 {
		t.Errorf("drag-begin notices = %d, want 1", rec.count(NoticeDragBegin))
	}
	if a.received(ActionClick) != 0 {
		t.Error("a drag must not click")
	}
}

func TestWindowReleaseOutside(t *testing.T) {
	w, _, _ := newTestWindow()
	a := newProbe("a", square(0, 0, 20))
	w.Register(a)

	pointerMove(w, 10, 10)
	pointerDown(w, 10, 10)
	pointerMove(w, 100, 100)
	if a.ActionState() != StatePressed {
		t.Errorf("leaving while pressed: state = %v, want pressed", a.ActionState())
	}
	pointerUp(w, 100, 100)
	if a.ActionState() != StateNormal {
		t.Errorf("after release outside state = %v, want normal", a.ActionState())
	}
	if a.received(ActionClick) != 0 {
		t.Error("release outside must not click")
	}
	if a.received(ActionDragEnd) != 1 {
		t.Errorf("got %v, want drag-end delivered to the gesture target", a.got)
	}
}

func TestWindowClickFocusable(t *testing.T) {
	w, rec, _ := newTestWindow()
	field := NewTextField("name", square(0, 0, 50))
	w.Register(field)

	clickAt(w, 10, 10)
	if w.Focus().Focused(MainScope) != field {
		t.Fatal("clicking a text field should focus it")
	}
	if field.ActionState() != StateFocused {
		t.Errorf("state = %v, want focused", field.ActionState())
	}
	if rec.count(NoticeFocusChanged) != 1 {
		t.Errorf("focus notices = %d, want 1", rec.count(NoticeFocusChanged))
	}

	pointerMove(w, 100, 100)
	if field.ActionState() != StateFocused {
		t.Errorf("leaving a focused field changed state to %v", field.ActionState())
	}

	// Clicking the focused field again keeps it focused.
	clickAt(w, 10, 10)
	if field.ActionState() != StateFocused {
		t.Errorf("second click state = %v, want focused", field.ActionState())
	}
}

func TestWindowFocusMovesOnClick(t *testing.T) {
	w, _, clk := newTestWindow()
	a := NewTextField("a", square(0, 0, 10))
	b := NewTextField("b", square(20, 0, 10))
	w.Register(a)
	w.Register(b)

	clickAt(w, 5, 5)
	clk.advance(time.Second)
	clickAt(w, 25, 5)
	if w.Focus().Focused(MainScope) != b {
		t.Fatal("focus should move to b")
	}
	if a.ActionState() != StateNormal || a.HasFocus() {
		t.Errorf("a: state = %v, focus = %v", a.ActionState(), a.HasFocus())
	}
}

func TestWindowFocusRefusal(t *testing.T) {
	w, rec, clk := newTestWindow()
	holder := focusable("holder")
	holder.Rects = []Rect{square(0, 0, 10)}
	holder.handles[ActionClick] = true
	other := focusable("other")
	other.Rects = []Rect{square(20, 0, 10)}
	w.Register(holder)
	w.Register(other)

	clickAt(w, 5, 5)
	holder.refuse = true
	holder.got = nil
	clk.advance(time.Second)

	clickAt(w, 25, 5)
	if w.Focus().Focused(MainScope) != holder {
		t.Fatal("focus should stay with the refusing holder")
	}
	if holder.received(ActionClick) != 1 {
		t.Errorf("holder got %v, want the pending click", holder.got)
	}
	if len(other.got) != 0 {
		t.Errorf("requester got %v, want nothing", other.got)
	}
	if other.ActionState() != StateHovered {
		t.Errorf("requester state = %v, want hovered", other.ActionState())
	}
	if holder.ActionState() != StateFocused {
		t.Errorf("holder state = %v, want focused", holder.ActionState())
	}
	if rec.count(NoticeFocusChanged) != 1 {
		t.Errorf("focus notices = %d, want only the first", rec.count(NoticeFocusChanged))
	}
}

func TestWindowTextFieldLock(t *testing.T) {
	w, _, clk := newTestWindow()
	a := NewTextField("a", square(0, 0, 10))
	b := NewTextField("b", square(20, 0, 10))
	w.Register(a)
	w.Register(b)

	clickAt(w, 5, 5)
	a.Lock()
	clk.advance(time.Second)
	clickAt(w, 25, 5)
	if w.Focus().Focused(MainScope) != a {
		t.Fatal("locked field should keep focus")
	}
	a.Unlock()
	clk.advance(time.Second)
	clickAt(w, 25, 5)
	if w.Focus().Focused(MainScope) != b {
		t.Error("unlocked field should release focus")
	}
}

func TestWindowClickBackground(t *testing.T) {
	w, rec, _ := newTestWindow()
	w.Register(newProbe("a", square(0, 0, 10)))

	clickAt(w, 100, 100)
	if rec.count(NoticeUnhandledAction) != 1 {
		t.Fatalf("notices = %v, want one unhandled", rec.kinds())
	}
	n := rec.got[len(rec.got)-1]
	if n.Action != ActionClick || n.Widget != nil || n.Position != (Vec2{100, 100}) {
		t.Errorf("notice = %+v", n)
	}
	if rec.count(NoticeClickObject) != 0 {
		t.Error("background click should not report a click on an object")
	}
}

func TestWindowClickObjectNotice(t *testing.T) {
	w, rec, _ := newTestWindow()
	a := newProbe("a", square(0, 0, 10))
	w.Register(a)
	consumed := 0
	w.Listeners().OnNotice(func(n Notice) bool {
		if n.Kind == NoticeClickObject {
			consumed++
		}
		return true
	})
	rec.consume = true

	clickAt(w, 5, 5)
	if a.received(ActionClick) != 1 {
		t.Errorf("widget should be offered the click first, got %v", a.got)
	}
	if rec.count(NoticeClickObject) != 1 {
		t.Fatalf("notices = %v, want one click-object", rec.kinds())
	}
	if n := rec.got[len(rec.got)-1]; n.Widget != a {
		t.Errorf("notice widget = %v, want a", n.Widget)
	}
	if consumed != 0 {
		t.Error("a consumed notice must not reach later listeners")
	}
}

func TestWindowPanelSwallowsClick(t *testing.T) {
	w, rec, _ := newTestWindow()
	w.Register(NewPanel("bg", square(0, 0, 200)))
	clickAt(w, 100, 100)
	if rec.count(NoticeUnhandledAction) != 0 || rec.count(NoticeClickObject) != 0 {
		t.Errorf("panel click leaked: %v", rec.kinds())
	}
}

func TestWindowOverlayWins(t *testing.T) {
	w, _, _ := newTestWindow()
	var overlayGot []Action
	o := NewOverlay("tip", square(0, 0, 50))
	o.OnAction = func(action, last Action) bool {
		overlayGot = append(overlayGot, action)
		return true
	}
	w.Register(o)
	under := newProbe("under", square(0, 0, 50))
	w.Register(under)

	clickAt(w, 10, 10)
	if len(overlayGot) != 1 || overlayGot[0] != ActionClick {
		t.Errorf("overlay got %v, want [click]", overlayGot)
	}
	if len(under.got) != 0 {
		t.Errorf("under got %v, want nothing", under.got)
	}
}

func TestWindowDuplicateClickSuppressed(t *testing.T) {
	w, _, clk := newTestWindow()
	clicks := 0
	w.Register(NewButton("ok", square(0, 0, 50), func() { clicks++ }))

	clickAt(w, 10, 10)
	clk.advance(5 * time.Millisecond)
	clickAt(w, 10, 10)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	clk.advance(DefaultMinTriggerInterval)
	clickAt(w, 10, 10)
	if clicks != 2 {
		t.Errorf("clicks = %d, want 2", clicks)
	}
}

func TestWindowClear(t *testing.T) {
	w, _, _ := newTestWindow()
	clicks := 0
	field := NewTextField("f", square(100, 0, 10))
	btn := NewButton("ok", square(0, 0, 50), func() { clicks++ })
	w.Register(field)
	w.Register(btn)

	clickAt(w, 105, 5)
	w.HandleEvent(Event{Kind: EventKeyDown, Key: KeyShiftLeft})
	pointerDown(w, 10, 10)

	// The release is swallowed by a foreign modal surface.
	w.Clear()
	w.Clear()

	if btn.ActionState() != StateHovered {
		t.Errorf("button state = %v, want hovered", btn.ActionState())
	}
	if w.Translator().State().Modifiers.Len() != 0 {
		t.Error("Clear should drop held modifiers")
	}
	if w.Focus().Focused(MainScope) != field || field.ActionState() != StateFocused {
		t.Error("Clear must not touch focus")
	}
	pointerUp(w, 10, 10)
	if clicks != 0 {
		t.Error("a release after Clear must not click")
	}
}

func TestWindowKeyDispatch(t *testing.T) {
	w, rec, _ := newTestWindow()
	field := NewTextField("f", square(0, 0, 10))
	var got, lasts []Action
	field.OnAction = func(action, last Action) bool {
		got = append(got, action)
		lasts = append(lasts, last)
		return action == actionSave
	}
	w.Register(field)
	w.Translator().RegisterMapping(KeyS, Mods(KeyControlLeft), actionSave)
	w.Translator().RegisterMapping(KeyZ, Mods(KeyControlLeft), actionUndo)

	keyChord(w, KeyS, KeyControlLeft)
	if rec.count(NoticeUnhandledAction) != 1 {
		t.Errorf("unfocused key action should be unhandled, got %v", rec.kinds())
	}

	clickAt(w, 5, 5)
	keyChord(w, KeyS, KeyControlLeft)
	keyChord(w, KeyZ, KeyControlLeft)
	keyChord(w, KeyQ)

	if len(got) != 2 || got[0] != actionSave || got[1] != actionUndo {
		t.Fatalf("field got %v", got)
	}
	if lasts[0] != ActionClick || lasts[1] != actionSave {
		t.Errorf("lasts = %v, want [click save]", lasts)
	}
	if rec.count(NoticeUnhandledAction) != 2 {
		t.Errorf("unhandled notices = %d, want 2", rec.count(NoticeUnhandledAction))
	}
}

func TestWindowWheel(t *testing.T) {
	w, rec, _ := newTestWindow()
	w.HandleEvent(Event{Kind: EventWheelForward})
	w.HandleEvent(Event{Kind: EventWheelForward})
	w.HandleEvent(Event{Kind: EventWheelBack})

	var actions []Action
	for _, n := range rec.got {
		if n.Kind == NoticeUnhandledAction {
			actions = append(actions, n.Action)
		}
	}
	want := []Action{ActionZoomIn, ActionZoomIn, ActionZoomOut}
	if len(actions) != len(want) {
		t.Fatalf("actions = %v, want %v", actions, want)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Errorf("action %d = %v, want %v", i, actions[i], want[i])
		}
	}
}

func TestWindowSecondaryButtonIgnored(t *testing.T) {
	w, rec, _ := newTestWindow()
	a := newProbe("a", square(0, 0, 10))
	w.Register(a)
	w.HandleEvent(Event{Kind: EventMouseDown, Button: MouseButtonRight, X: 5, Y: 5})
	w.HandleEvent(Event{Kind: EventMouseUp, Button: MouseButtonRight, X: 5, Y: 5})
	if a.ActionState() != StateHovered {
		t.Errorf("state = %v, want hovered", a.ActionState())
	}
	if len(a.got) != 0 || rec.count(NoticeUnhandledAction) != 0 {
		t.Error("secondary buttons should not resolve actions")
	}
}

func TestWindowSetEnabled(t *testing.T) {
	w, rec, clk := newTestWindow()
	field := NewTextField("f", square(0, 0, 10))
	w.Register(field)
	clickAt(w, 5, 5)

	w.SetEnabled(field, false)
	if w.Focus().Focused(MainScope) != nil {
		t.Error("disabling the focused widget should clear focus")
	}
	if field.ActionState() != StateDisabled || field.HasFocus() {
		t.Errorf("state = %v, focus = %v", field.ActionState(), field.HasFocus())
	}

	rec.got = nil
	clk.advance(time.Second)
	clickAt(w, 6, 6)
	if w.Focus().Focused(MainScope) != nil {
		t.Error("a disabled widget must not take focus")
	}
	if field.ActionState() != StateDisabled {
		t.Errorf("state = %v, want disabled", field.ActionState())
	}
	if rec.count(NoticeClickObject) != 0 || rec.count(NoticeUnhandledAction) != 0 {
		t.Errorf("a disabled widget should absorb the click, got %v", rec.kinds())
	}

	w.SetEnabled(field, true)
	if field.ActionState() != StateHovered {
		t.Errorf("re-enabled under the pointer: state = %v, want hovered", field.ActionState())
	}
	w.SetEnabled(field, true)
}

func TestWindowCapturePointer(t *testing.T) {
	w, _, _ := newTestWindow()
	a := newProbe("a", square(0, 0, 20))
	a.handles[ActionDragUpdate] = true
	b := newProbe("b", square(100, 100, 20))
	w.Register(a)
	w.Register(b)

	pointerDown(w, 10, 10)
	w.CapturePointer(a)
	pointerMove(w, 110, 110)
	if b.ActionState() != StateNormal {
		t.Errorf("captured gesture hovered b: %v", b.ActionState())
	}
	if w.Hovered() != a {
		t.Errorf("hovered = %v, want a", w.Hovered())
	}
	pointerUp(w, 110, 110)
	if b.ActionState() != StateHovered {
		t.Errorf("after release b = %v, want hovered", b.ActionState())
	}
	if a.ActionState() != StateNormal {
		t.Errorf("after release a = %v, want normal", a.ActionState())
	}
}

func TestWindowGestureKeepsTierOrder(t *testing.T) {
	w, _, _ := newTestWindow()
	a := newProbe("a", square(0, 0, 50))
	a.handles[ActionClick] = true
	w.Register(a)

	pointerDown(w, 10, 10)
	tip := NewOverlay("tip", square(0, 0, 50))
	w.Register(tip)
	pointerMove(w, 11, 10)
	if w.Hovered() != a {
		t.Errorf("mid-gesture hovered = %v, want a", w.Hovered())
	}
	pointerUp(w, 11, 10)
	if a.received(ActionClick) != 1 {
		t.Errorf("a got %v, want the click", a.got)
	}

	pointerMove(w, 12, 10)
	if w.Hovered() != tip {
		t.Errorf("after gesture hovered = %v, want tip", w.Hovered())
	}
}

func TestWindowUnregisterMidGesture(t *testing.T) {
	w, rec, _ := newTestWindow()
	a := focusable("a")
	w.Register(a)

	pointerDown(w, 5, 5)
	w.Unregister(a)
	pointerUp(w, 5, 5)

	if len(a.got) != 0 || a.gained != 0 {
		t.Errorf("unregistered widget was called back: got %v, gained %d", a.got, a.gained)
	}
	if w.Router().Registered(a, MainScope) {
		t.Error("a should be unregistered")
	}
	if rec.count(NoticeUnhandledAction) != 1 {
		t.Errorf("notices = %v, want the click on the background", rec.kinds())
	}
}

func TestWindowUnregisterFocused(t *testing.T) {
	w, _, _ := newTestWindow()
	a := focusable("a")
	w.Register(a)
	clickAt(w, 5, 5)
	w.Unregister(a)
	if w.Focus().Focused(MainScope) != nil {
		t.Error("Unregister should drop focus")
	}
	if a.lost != 0 {
		t.Error("Unregister must not call LostFocus")
	}
}

func TestWindowContinuousHover(t *testing.T) {
	w, _, _ := newTestWindow()
	a := newProbe("a", square(0, 0, 50))
	a.Continuous = true
	b := newProbe("b", square(100, 0, 50))
	w.Register(a)
	w.Register(b)

	pointerMove(w, 10, 10)
	pointerMove(w, 11, 10)
	pointerMove(w, 110, 10)
	if a.received(ActionHover) != 2 {
		t.Errorf("a got %v, want two hovers", a.got)
	}
	if len(b.got) != 0 {
		t.Errorf("b got %v, want nothing", b.got)
	}
	if w.Focus().LastAction(MainScope) == ActionHover {
		t.Error("hover should not become the last dispatched action")
	}
}

func TestWindowScopes(t *testing.T) {
	reg := NewListenerRegistry()
	mainRec, palRec := &recorder{}, &recorder{}
	reg.AddListener(mainRec)
	reg.AddListener(palRec, "palette")

	mainWin := NewWindow(DefaultWindowConfig(), reg)
	palWin := NewWindow(WindowConfig{Scope: "palette"}, reg)
	if palWin.Scope() != "palette" {
		t.Fatalf("Scope = %q", palWin.Scope())
	}

	a := NewTextField("a", square(0, 0, 10))
	p := NewTextField("p", square(0, 0, 10))
	mainWin.Register(a)
	palWin.Register(p)

	clickAt(mainWin, 5, 5)
	clickAt(palWin, 5, 5)
	if mainWin.Focus().Focused(MainScope) != a || palWin.Focus().Focused("palette") != p {
		t.Error("each window should focus its own widget")
	}
	if !a.HasFocus() || !p.HasFocus() {
		t.Error("focus in one scope should not steal focus in another")
	}
	if mainRec.count(NoticeFocusChanged) != 1 || palRec.count(NoticeFocusChanged) != 1 {
		t.Errorf("focus notices = %d/%d, want 1/1",
			mainRec.count(NoticeFocusChanged), palRec.count(NoticeFocusChanged))
	}
}

func TestNewWindowDefaults(t *testing.T) {
	w := NewWindow(WindowConfig{}, nil)
	if w.Scope() != MainScope {
		t.Errorf("Scope = %q, want main", w.Scope())
	}
	if w.Listeners() == nil {
		t.Error("nil listeners should get a fresh registry")
	}
}

// fakeSource returns queued batches, one per Poll.
type fakeSource struct {
	batches [][]Event
	polls   int
}

func (s *fakeSource) Poll(buf []Event) []Event {
	s.polls++
	if len(s.batches) == 0 {
		return buf
	}
	b := s.batches[0]
	s.batches = s.batches[1:]
	return append(buf, b...)
}

func TestWindowUpdatePollsSource(t *testing.T) {
	w, _, _ := newTestWindow()
	clicks := 0
	w.Register(NewButton("ok", square(0, 0, 50), func() { clicks++ }))
	src := &fakeSource{batches: [][]Event{{
		{Kind: EventMouseMove, X: 10, Y: 10},
		{Kind: EventMouseDown, Button: MouseButtonLeft, X: 10, Y: 10},
		{Kind: EventMouseUp, Button: MouseButtonLeft, X: 10, Y: 10},
	}}}
	w.SetSource(src)

	w.Update()
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	w.Update()
	if src.polls != 2 {
		t.Errorf("polls = %d, want 2", src.polls)
	}
}

func TestWindowUpdateInjectedFirst(t *testing.T) {
	w, _, _ := newTestWindow()
	src := &fakeSource{}
	w.SetSource(src)
	w.InjectMove(1, 1)

	w.Update()
	if src.polls != 0 {
		t.Error("a frame consuming an injected event should skip the source")
	}
	w.Update()
	if src.polls != 1 {
		t.Errorf("polls = %d, want 1", src.polls)
	}
}

func TestWindowApplyReload(t *testing.T) {
	w, rec, _ := newTestWindow()
	w.Translator().RegisterMapping(KeyA, ModifierSet{}, actionUndo)

	w.applyReload(BindingReload{Path: "keys.yaml", Err: errors.New("broken")})
	if len(w.Translator().Mappings()) != 1 {
		t.Error("a failed reload must keep the previous mappings")
	}
	if rec.count(NoticeBindingsReloaded) != 0 {
		t.Error("a failed reload must not notify")
	}

	w.applyReload(BindingReload{Path: "keys.yaml", Mappings: []Mapping{{Key: KeyB, Action: actionSave}}})
	ms := w.Translator().Mappings()
	if len(ms) != 1 || ms[0].Key != KeyB {
		t.Errorf("mappings = %+v", ms)
	}
	if rec.count(NoticeBindingsReloaded) != 1 {
		t.Error("a successful reload should notify")
	}
}

func TestWindowApplyReloadsFromChannel(t *testing.T) {
	w, _, _ := newTestWindow()
	ch := make(chan BindingReload, 1)
	w.reloads = ch
	ch <- BindingReload{Mappings: []Mapping{{Key: KeyC, Action: actionSave}}}

	w.Update()
	if ms := w.Translator().Mappings(); len(ms) != 1 || ms[0].Key != KeyC {
		t.Errorf("mappings = %+v", ms)
	}
	w.Update()
}

func TestWindowPressWhileArmedSettlesPrevious(t *testing.T) {
	w, _, clk := newTestWindow()
	a := newProbe("a", square(0, 0, 20))
	b := newProbe("b", square(100, 0, 20))
	w.Register(a)
	w.Register(b)

	pointerMove(w, 10, 10)
	pointerDown(w, 10, 10)
	// The release for a is lost.
	pointerMove(w, 110, 10)
	clk.advance(time.Second)
	pointerDown(w, 110, 10)
	if a.ActionState() != StateNormal {
		t.Errorf("a after second press = %v, want normal", a.ActionState())
	}
	if b.ActionState() != StatePressed {
		t.Errorf("b after press = %v, want pressed", b.ActionState())
	}
	pointerUp(w, 110, 10)
	pointerMove(w, 300, 300)
	if a.ActionState() != StateNormal || b.ActionState() != StateNormal {
		t.Errorf("a = %v, b = %v, want both normal", a.ActionState(), b.ActionState())
	}
}

func TestWindowPressWhileArmedSameTarget(t *testing.T) {
	w, _, _ := newTestWindow()
	a := newProbe("a", square(0, 0, 20))
	w.Register(a)

	pointerDown(w, 10, 10)
	pointerDown(w, 10, 10)
	if a.ActionState() != StatePressed {
		t.Errorf("state = %v, want pressed", a.ActionState())
	}
}

func TestWindowRefocusAfterProgrammaticFocusLoss(t *testing.T) {
	w, _, clk := newTestWindow()
	a := NewTextField("a", square(0, 0, 10))
	b := NewTextField("b", square(50, 0, 10))
	w.Register(a)
	w.Register(b)

	clickAt(w, 5, 5)
	if w.Focus().Focused(MainScope) != a {
		t.Fatal("clicking a should focus it")
	}
	w.Focus().RequestFocus(b, ActionUnmapped, MainScope)
	if a.ActionState() != StateNormal {
		t.Fatalf("a after losing focus = %v, want normal", a.ActionState())
	}

	clk.advance(time.Second)
	pointerDown(w, 5, 5)
	if a.ActionState() != StatePressed {
		t.Errorf("a after press = %v, want pressed", a.ActionState())
	}
	pointerUp(w, 5, 5)
	if w.Focus().Focused(MainScope) != a {
		t.Errorf("focused = %v, want a", w.Focus().Focused(MainScope))
	}
	if a.ActionState() != StateFocused || b.ActionState() != StateNormal {
		t.Errorf("a = %v, b = %v", a.ActionState(), b.ActionState())
	}
}

func TestWindowHoverRestoredAfterClearFocus(t *testing.T) {
	w, _, _ := newTestWindow()
	a := NewTextField("a", square(0, 0, 10))
	w.Register(a)

	clickAt(w, 5, 5)
	w.Focus().ClearFocus(MainScope)
	pointerMove(w, 6, 6)
	if a.ActionState() != StateHovered {
		t.Errorf("state = %v, want hovered", a.ActionState())
	}
}
