// Package event provides the synchronous publish/subscribe bus that connects
// the document, the table state tracker and the front-ends.
//
// Events are addressed by hierarchical topics using dot notation, for
// example "cursor.moved" or "table.state.changed". Subscribers may use
// wildcards: "*" matches exactly one segment and "**" matches any number of
// trailing segments.
//
// Delivery is synchronous: Publish calls every matching handler in priority
// order on the caller's goroutine before returning. Handler panics are
// recovered and reported as *PanicError values so one faulty subscriber
// cannot break an editing command.
//
//	bus := event.NewBus()
//	sub, _ := bus.SubscribeFunc(event.TopicCursorMoved, func(ctx context.Context, ev any) error {
//	    moved := ev.(event.Event[event.CursorMoved])
//	    _ = moved.Payload.To
//	    return nil
//	})
//	defer bus.Unsubscribe(sub)
package event
