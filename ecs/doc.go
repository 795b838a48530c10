// Package ecs provides ECS adapters for thicket's listener notifications.
//
// The primary adapter is [NewDonburiListener], which bridges thicket notices
// (clicks on widgets, unhandled actions, focus and state changes) into a
// [Donburi] world as typed events. Subscribe to [NoticeEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	l := ecs.NewDonburiListener(world)
//	listeners.AddListener(l, thicket.MainScope)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
