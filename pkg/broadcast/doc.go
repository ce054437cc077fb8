// Package broadcast fans typed messages out to many subscribers.
//
//	b := broadcast.NewMemoryBroadcaster[map[string]any](64)
//	defer b.Close()
//
//	sub := b.Subscribe(r.Context())
//	defer sub.Close()
//
//	_ = b.Broadcast(ctx, broadcast.Message[map[string]any]{Data: patch})
//
//	for msg := range sub.Receive(ctx) {
//		send(msg.Data)
//	}
//
// Broadcast never blocks. A subscriber that cannot keep up is dropped and its
// channel closed, so the consumer sees the end of the stream and can start
// over from a fresh snapshot. Subscriptions also end with their context.
package broadcast
