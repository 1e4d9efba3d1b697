package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/dynbilliards/backend/internal/session"
	"github.com/redis/go-redis/v9"
)

// StartSessionEventSubscriber forwards session lifecycle events from Redis
// to connected clients.
func StartSessionEventSubscriber(ctx context.Context, rdb *redis.Client, hub *Hub) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; session event subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, session.EventsChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] %s subscriber started", session.EventsChannel)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				handleSessionEvent(hub, msg.Payload)
			}
		}
	}()
}

func handleSessionEvent(hub *Hub, payload string) {
	var ev session.Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		log.Printf("[WS] invalid session event payload: %v", err)
		return
	}

	switch ev.Type {
	case session.EventExpired:
		log.Printf("[WS] session %s expired", ev.SessionID)
		hub.Expire(ev.SessionID, ev.Message)
	default:
		log.Printf("[WS] unknown session event type: %s", ev.Type)
	}
}
