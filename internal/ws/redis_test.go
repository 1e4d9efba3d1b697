package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dynbilliards/backend/internal/session"
	"github.com/redis/go-redis/v9"
)

func TestSessionEventSubscriberExpiresClient(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "CFG_REDIS", "circle")
	read(t, conn)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), Protocol: 2})
	defer rdb.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartSessionEventSubscriber(ctx, rdb, env.srv.Hub())

	payload, _ := json.Marshal(session.Event{Type: session.EventExpired, SessionID: "CFG_REDIS", Message: "idle"})
	// the subscription is established asynchronously
	deadline := time.Now().Add(2 * time.Second)
	for {
		n, err := rdb.Publish(ctx, session.EventsChannel, payload).Result()
		if err != nil {
			t.Fatal(err)
		}
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("subscriber never joined the events channel")
		}
		time.Sleep(10 * time.Millisecond)
	}

	msg := read(t, conn)
	if msg.Type != "session_expired" || msg.Message != "idle" {
		t.Fatalf("expected session_expired, got %+v", msg)
	}
}
