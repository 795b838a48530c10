package thicket

// scopeCandidates holds the hit-test candidates of one scope, one slice per
// tier in registration order (topmost last).
type scopeCandidates struct {
	tiers [numTiers][]Widget

	// Frozen ordering for an in-progress gesture, topmost first.
	snapshot []Widget
	frozen   bool
	removed  map[Widget]bool
}

// Router maps a window-space point to the topmost registered widget. Tiers are
// tested TestFirst, TestNormal, TestLast; within a tier the most recently
// registered widget wins.
type Router struct {
	scopes map[Scope]*scopeCandidates
	buf    []Widget
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{scopes: make(map[Scope]*scopeCandidates)}
}

func (r *Router) candidates(scope Scope) *scopeCandidates {
	sc := r.scopes[scope]
	if sc == nil {
		sc = &scopeCandidates{}
		r.scopes[scope] = sc
	}
	return sc
}

// Register adds w as a hit-test candidate in scope, in the tier given by its
// HitPriority. Registering an already registered widget moves it to the top
// of its tier.
func (r *Router) Register(w Widget, scope Scope) {
	sc := r.candidates(scope)
	sc.remove(w)
	tier := w.HitPriority()
	if int(tier) >= numTiers {
		tier = TestLast
	}
	sc.tiers[tier] = append(sc.tiers[tier], w)
	delete(sc.removed, w)
}

// Unregister removes w from scope. It must be called before w is destroyed.
func (r *Router) Unregister(w Widget, scope Scope) {
	sc := r.scopes[scope]
	if sc == nil {
		return
	}
	sc.remove(w)
	if sc.frozen {
		if sc.removed == nil {
			sc.removed = make(map[Widget]bool)
		}
		sc.removed[w] = true
	}
}

// Registered reports whether w is a candidate in scope.
func (r *Router) Registered(w Widget, scope Scope) bool {
	sc := r.scopes[scope]
	if sc == nil {
		return false
	}
	for _, tier := range sc.tiers {
		for _, c := range tier {
			if c == w {
				return true
			}
		}
	}
	return false
}

func (sc *scopeCandidates) remove(w Widget) {
	for t := range sc.tiers {
		tier := sc.tiers[t]
		for i := range tier {
			if tier[i] == w {
				copy(tier[i:], tier[i+1:])
				tier[len(tier)-1] = nil
				sc.tiers[t] = tier[:len(tier)-1]
				return
			}
		}
	}
}

// appendOrdered appends the scope's candidates to buf in hit-test order.
func (sc *scopeCandidates) appendOrdered(buf []Widget) []Widget {
	for t := 0; t < numTiers; t++ {
		tier := sc.tiers[t]
		for i := len(tier) - 1; i >= 0; i-- {
			buf = append(buf, tier[i])
		}
	}
	return buf
}

// BeginGesture freezes the hit-test ordering of scope until EndGesture, so a
// gesture keeps the tier order it started with even if widgets register or
// change tiers mid-gesture. Widgets unregistered meanwhile are skipped.
func (r *Router) BeginGesture(scope Scope) {
	sc := r.candidates(scope)
	sc.snapshot = sc.appendOrdered(sc.snapshot[:0])
	sc.frozen = true
	clear(sc.removed)
}

// EndGesture releases the ordering frozen by BeginGesture.
func (r *Router) EndGesture(scope Scope) {
	sc := r.scopes[scope]
	if sc == nil {
		return
	}
	sc.frozen = false
	clear(sc.snapshot)
	sc.snapshot = sc.snapshot[:0]
	clear(sc.removed)
}

// Route returns the topmost widget in scope with a hit rectangle containing
// p, or nil when the point falls on the window background.
func (r *Router) Route(p Vec2, scope Scope) Widget {
	sc := r.scopes[scope]
	if sc == nil {
		return nil
	}
	order := sc.snapshot
	if !sc.frozen {
		r.buf = sc.appendOrdered(r.buf[:0])
		order = r.buf
	}
	for _, w := range order {
		if sc.frozen && sc.removed[w] {
			continue
		}
		if Contains(w, p) {
			return w
		}
	}
	return nil
}
