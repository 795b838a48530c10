package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/thicket"
)

const eventQueueSize = 100

// Source is a thicket.Source fed by a tcell screen. A background goroutine
// blocks on the screen's PollEvent; Poll drains whatever arrived since the
// previous frame without blocking.
type Source struct {
	screen tcell.Screen
	events chan tcell.Event
	conv   Converter

	closeOnce sync.Once
	done      chan struct{}
}

// NewSource starts reading events from an initialized screen. The reader
// stops when the screen is finalized or Close is called.
func NewSource(screen tcell.Screen) *Source {
	s := &Source{
		screen: screen,
		events: make(chan tcell.Event, eventQueueSize),
		done:   make(chan struct{}),
	}
	go s.read()
	return s
}

func (s *Source) read() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Poll appends the raw events for every tcell event received so far.
func (s *Source) Poll(buf []thicket.Event) []thicket.Event {
	for {
		select {
		case ev := <-s.events:
			buf = s.conv.Convert(ev, buf)
		default:
			return buf
		}
	}
}

// Close stops the reader. The screen itself is left to its owner; the reader
// goroutine exits once the screen is finalized.
func (s *Source) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}
