package thicket

import "testing"

// probe is a configurable widget that records every callback.
type probe struct {
	Base
	handles map[Action]bool
	refuse  bool

	got     []Action
	lasts   []Action
	pending []Action // CanGiveUpFocus arguments
	gained  int
	lost    int
}

func newProbe(name string, rects ...Rect) *probe {
	return &probe{Base: NewBase(name, rects...), handles: make(map[Action]bool)}
}

func (p *probe) HandleInputAction(action, last Action) bool {
	p.got = append(p.got, action)
	p.lasts = append(p.lasts, last)
	return p.handles[action]
}

func (p *probe) CanGiveUpFocus(pending Action) bool {
	p.pending = append(p.pending, pending)
	return !p.refuse
}

func (p *probe) GainedFocus() {
	p.Base.GainedFocus()
	p.gained++
}

func (p *probe) LostFocus() {
	p.Base.LostFocus()
	p.lost++
}

func (p *probe) received(a Action) int {
	n := 0
	for _, g := range p.got {
		if g == a {
			n++
		}
	}
	return n
}

func TestContains(t *testing.T) {
	w := newProbe("w", Rect{X: 0, Y: 0, Width: 10, Height: 10}, Rect{X: 20, Y: 0, Width: 5, Height: 5})
	tests := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"first rect", Vec2{5, 5}, true},
		{"second rect", Vec2{22, 2}, true},
		{"gap", Vec2{15, 5}, false},
		{"edge", Vec2{10, 10}, true},
		{"corner of second", Vec2{25, 5}, true},
		{"outside", Vec2{-1, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(w, tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestContains_NoRects(t *testing.T) {
	w := newProbe("empty")
	if Contains(w, Vec2{}) {
		t.Error("widget without hit rectangles should contain nothing")
	}
}

func TestBaseDefaults(t *testing.T) {
	b := NewBase("b", Rect{Width: 1, Height: 1})
	if b.Name() != "b" {
		t.Errorf("Name = %q, want %q", b.Name(), "b")
	}
	if b.HitPriority() != TestNormal {
		t.Errorf("HitPriority = %v, want TestNormal", b.HitPriority())
	}
	if b.AcceptsFocus() || b.WantsContinuousEvents() {
		t.Error("Base should not accept focus or want continuous events by default")
	}
	if b.ActionState() != StateNormal {
		t.Errorf("ActionState = %v, want normal", b.ActionState())
	}
	if b.HandleInputAction(ActionClick, ActionUnmapped) {
		t.Error("Base should handle nothing")
	}
	if !b.CanGiveUpFocus(ActionClick) {
		t.Error("Base should always give up focus")
	}
}

func TestBaseOnStateChange(t *testing.T) {
	b := NewBase("b")
	var changes [][2]ActionState
	b.OnStateChange = func(from, to ActionState) {
		changes = append(changes, [2]ActionState{from, to})
	}
	b.ChangeActionState(StateHovered)
	b.ChangeActionState(StateHovered)
	b.ChangeActionState(StateNormal)
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	if changes[0] != [2]ActionState{StateNormal, StateHovered} {
		t.Errorf("change 0 = %v", changes[0])
	}
	if changes[1] != [2]ActionState{StateHovered, StateNormal} {
		t.Errorf("change 1 = %v", changes[1])
	}
}

func TestBaseFocusFlag(t *testing.T) {
	b := NewBase("b")
	b.GainedFocus()
	if !b.HasFocus() {
		t.Error("HasFocus should be true after GainedFocus")
	}
	b.LostFocus()
	if b.HasFocus() {
		t.Error("HasFocus should be false after LostFocus")
	}
}
