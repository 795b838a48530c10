// Package thicket is the input core of a retained-mode UI toolkit for
// [Ebitengine] and terminal front ends.
//
// Thicket turns raw key, button, wheel and pointer events into semantic
// actions, routes them to the topmost widget under the pointer or to the
// focused widget, negotiates focus between widgets, drives each widget's
// interaction state machine, and fans notifications out to application
// listeners.
//
// # Quick start
//
// Create a [Window] per window scope, register widgets with it, attach a
// [Source], and call [Window.Update] once per frame:
//
//	listeners := thicket.NewListenerRegistry()
//	win := thicket.NewWindow(thicket.DefaultWindowConfig(), listeners)
//	win.SetSource(thicket.NewEbitenSource())
//
//	ok := thicket.NewButton("ok", thicket.Rect{X: 10, Y: 10, Width: 80, Height: 24}, save)
//	win.Register(ok)
//
//	func (g *Game) Update() error { g.win.Update(); return nil }
//
// Widgets must be unregistered with [Window.Unregister] before their owner
// drops them. The window holds non-owning references only.
//
// # Actions and bindings
//
// A [Translator] resolves a key together with the exact set of held modifiers
// through its mapping table. A primary press and release resolve to
// [ActionClick], or to [ActionDragEnd] when the pointer travelled farther than
// the drag threshold; wheel notches resolve to [ActionZoomIn] and
// [ActionZoomOut]. Applications define their own actions from [ActionUser].
//
// Mappings can be registered in code or loaded from YAML with
// [LoadBindings]; [Window.WatchBindings] reloads them when the file changes.
//
//	bindings:
//	  - key: z
//	    mods: [ctrl]
//	    action: undo
//
// # Hit testing and focus
//
// Widgets declare a [HitPriority] tier. The [Router] tests [TestFirst]
// widgets, then [TestNormal], then [TestLast]; within a tier the most
// recently registered widget wins. The tier order is frozen for the duration
// of a press-drag-release gesture.
//
// The [FocusController] keeps at most one focused widget per [Scope]. Before
// focus moves, the holder is asked [Widget.CanGiveUpFocus]; a refusal keeps
// focus where it is and the triggering action goes to the holder.
//
// # Listeners
//
// A [ListenerRegistry] delivers [Notice] values to [Listener]s registered per
// scope. Click-on-object and unhandled-action notices are consumable: the
// first listener returning true stops delivery. Focus and state changes always
// reach every listener. The ecs sub-package publishes notices into a
// [Donburi] world.
//
// # Recovery
//
// If a foreign modal surface swallows a release event, call [Window.Clear]
// to drop the half-finished gesture and held modifiers without touching
// focus.
//
// # Testing
//
// [Window.InjectClick], [Window.InjectDrag], [Window.InjectKey] and
// [LoadTestScript] feed synthetic input through the same path as real input,
// one event per frame.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package thicket
