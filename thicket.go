package thicket

import (
	"math"
	"strconv"
)

// Vec2 is a 2D vector used for pointer positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is an axis-aligned hit rectangle in window space. The coordinate system
// has its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point p lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Scope names a window. Focus, hit-test candidates and listeners are all
// partitioned by scope.
type Scope string

// MainScope is the primary window. Listeners registered without an explicit
// scope listen here.
const MainScope Scope = "main"

// Action is a semantic, application-meaningful input result. Values below
// ActionUser are reserved; applications define their own starting at
// ActionUser.
type Action uint16

const (
	ActionUnmapped   Action = iota // no action resolved
	ActionClick                    // primary press and release without dragging
	ActionDragBegin                // movement first exceeded the drag threshold
	ActionDragUpdate               // every move while dragging
	ActionDragEnd                  // primary release after dragging
	ActionZoomIn                   // wheel forward
	ActionZoomOut                  // wheel back
	ActionHover                    // pointer motion over a widget that wants continuous events

	// ActionUser is the first application-defined action.
	ActionUser Action = 64
)

var builtinActionNames = [...]string{
	ActionUnmapped:   "unmapped",
	ActionClick:      "click",
	ActionDragBegin:  "drag-begin",
	ActionDragUpdate: "drag-update",
	ActionDragEnd:    "drag-end",
	ActionZoomIn:     "zoom-in",
	ActionZoomOut:    "zoom-out",
	ActionHover:      "hover",
}

// String returns the built-in action name, or "user+N" for application actions.
func (a Action) String() string {
	if int(a) < len(builtinActionNames) {
		return builtinActionNames[a]
	}
	if a >= ActionUser {
		return "user+" + strconv.Itoa(int(a-ActionUser))
	}
	return "reserved+" + strconv.Itoa(int(a))
}

// ActionState is the interaction mode of a widget.
type ActionState uint8

const (
	StateNormal   ActionState = iota // idle
	StateHovered                     // pointer inside a hit rectangle
	StatePressed                     // primary button held after pressing inside
	StateFocused                     // owns input focus in its scope
	StateDisabled                    // rejects every action until re-enabled
)

// String returns a lower-case name for the state.
func (s ActionState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateHovered:
		return "hovered"
	case StatePressed:
		return "pressed"
	case StateFocused:
		return "focused"
	case StateDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// HitPriority is the hit-test tier of a widget. Tiers are tested in
// declaration order.
type HitPriority uint8

const (
	TestFirst  HitPriority = iota // overlays, tooltips, drag ghosts
	TestNormal                    // ordinary widgets
	TestLast                      // backgrounds and panels

	numTiers = 3
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyTransition is the direction of a key event.
type KeyTransition uint8

const (
	KeyDown KeyTransition = iota
	KeyUp
)

// EventKind identifies a raw platform event.
type EventKind uint8

const (
	EventKeyDown      EventKind = iota // key pressed; Key is set
	EventKeyUp                         // key released; Key is set
	EventMouseMove                     // pointer moved; X, Y are set
	EventMouseDown                     // button pressed; Button, X, Y are set
	EventMouseUp                       // button released; Button, X, Y are set
	EventWheelForward                  // wheel rolled away from the user
	EventWheelBack                     // wheel rolled toward the user
)

// Event is one raw input event as delivered by a platform layer.
type Event struct {
	Kind   EventKind
	Key    Key
	Button MouseButton
	X, Y   float64
}

// Source is a platform input layer. Poll appends the events that happened
// since the previous call to buf, in order, and returns the extended slice.
type Source interface {
	Poll(buf []Event) []Event
}
