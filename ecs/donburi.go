package ecs

import (
	"github.com/phanxgames/thicket"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// NoticeEventType is the Donburi event type for thicket notices.
// Subscribe to this in your ECS systems to receive focus, state and click
// notifications.
var NoticeEventType = events.NewEventType[thicket.Notice]()

type donburiListener struct {
	world donburi.World
}

// NewDonburiListener creates a Listener that publishes every notice it sees
// to NoticeEventType. Notices are queued; consume them with events.Subscribe
// and ProcessEvents. The listener never consumes a notice, so listeners
// registered after it still see consumable kinds.
func NewDonburiListener(world donburi.World) thicket.Listener {
	return &donburiListener{world: world}
}

func (l *donburiListener) OnNotice(n thicket.Notice) bool {
	NoticeEventType.Publish(l.world, n)
	return false
}
