package thicket

// stateInput is a stimulus for the widget interaction state machine.
type stateInput uint8

const (
	inputPointerEnter   stateInput = iota // pointer entered a hit rectangle
	inputPointerLeave                     // pointer left all hit rectangles
	inputPress                            // primary down while inside
	inputReleaseInside                    // primary up, pointer still inside
	inputReleaseOutside                   // primary up, pointer elsewhere
	inputFocusGained                      // focus negotiated to the widget
	inputFocusLost                        // focus negotiated away
)

// nextState computes the state a widget moves to on input. Disabled absorbs
// every input; only SetEnabled leaves it. The second result is false when the
// input causes no transition.
func nextState(cur ActionState, in stateInput, acceptsFocus bool) (ActionState, bool) {
	if cur == StateDisabled {
		return cur, false
	}
	switch in {
	case inputPointerEnter:
		if cur == StateNormal {
			return StateHovered, true
		}
	case inputPointerLeave:
		if cur == StateHovered {
			return StateNormal, true
		}
	case inputPress:
		if cur == StateHovered {
			return StatePressed, true
		}
	case inputReleaseInside:
		if cur == StatePressed {
			if acceptsFocus {
				return StateFocused, true
			}
			return StateHovered, true
		}
	case inputReleaseOutside:
		if cur == StatePressed {
			return StateHovered, true
		}
	case inputFocusGained:
		if cur != StateFocused {
			return StateFocused, true
		}
	case inputFocusLost:
		if cur == StateFocused {
			return StateNormal, true
		}
	}
	return cur, false
}

// applyInput runs w's state machine for in and reports whether the state
// changed.
func applyInput(w Widget, in stateInput) bool {
	next, ok := nextState(w.ActionState(), in, w.AcceptsFocus())
	if ok {
		w.ChangeActionState(next)
	}
	return ok
}
