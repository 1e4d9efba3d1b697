package session

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// IdleSet is the sorted set of session IDs scored by their idle deadline.
	IdleSet = "config_session_idle"
	// EventsChannel carries session lifecycle events to the WebSocket layer.
	EventsChannel = "session_events"

	EventExpired = "session_expired"
)

// Event is published on EventsChannel.
type Event struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Message   string `json:"message,omitempty"`
}

// NewID generates a configuration session ID.
func NewID() string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 10)
	for i := range b {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		b[i] = charset[n.Int64()]
	}
	return "CFG_" + string(b)
}

// Tracker records session activity in Redis. A Tracker without a client does
// nothing.
type Tracker struct {
	rdb     *redis.Client
	timeout time.Duration
}

func NewTracker(rdb *redis.Client, timeout time.Duration) *Tracker {
	return &Tracker{rdb: rdb, timeout: timeout}
}

// Touch pushes the session's idle deadline to now + timeout.
func (t *Tracker) Touch(ctx context.Context, sessionID string) {
	if t == nil || t.rdb == nil {
		return
	}
	deadline := time.Now().Add(t.timeout).Unix()
	if err := t.rdb.ZAdd(ctx, IdleSet, redis.Z{Score: float64(deadline), Member: sessionID}).Err(); err != nil {
		log.Printf("[IDLE] failed to touch session %s: %v", sessionID, err)
	}
}

// Forget drops the session from idle tracking.
func (t *Tracker) Forget(ctx context.Context, sessionID string) {
	if t == nil || t.rdb == nil {
		return
	}
	if err := t.rdb.ZRem(ctx, IdleSet, sessionID).Err(); err != nil {
		log.Printf("[IDLE] failed to forget session %s: %v", sessionID, err)
	}
}

// StartIdleReaper publishes a session_expired event for every session whose
// idle deadline has passed. It returns immediately; the worker stops with ctx.
func StartIdleReaper(ctx context.Context, rdb *redis.Client, poll time.Duration) {
	if rdb == nil {
		log.Println("[IDLE] Redis missing; idle reaper not started")
		return
	}
	if poll <= 0 {
		poll = 15 * time.Second
	}

	log.Println("[IDLE] Idle reaper started")
	go func() {
		ticker := time.NewTicker(poll)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("[IDLE] Idle reaper stopping")
				return
			case <-ticker.C:
				reapExpired(ctx, rdb, time.Now())
			}
		}
	}()
}

func reapExpired(ctx context.Context, rdb *redis.Client, now time.Time) {
	members, err := rdb.ZRangeByScore(ctx, IdleSet, &redis.ZRangeBy{Min: "-inf", Max: fmt.Sprintf("%d", now.Unix())}).Result()
	if err != nil {
		log.Printf("[IDLE] Failed to fetch idle sessions: %v", err)
		return
	}
	for _, id := range members {
		expire(ctx, rdb, id)
	}
}

// expire removes id from the idle set and publishes its expiry. Only the
// worker whose ZRem removed the member publishes; it reports whether it did.
func expire(ctx context.Context, rdb *redis.Client, id string) bool {
	removed, err := rdb.ZRem(ctx, IdleSet, id).Result()
	if err != nil {
		log.Printf("[IDLE] failed to remove session %s: %v", id, err)
		return false
	}
	if removed == 0 {
		return false
	}
	b, _ := json.Marshal(Event{Type: EventExpired, SessionID: id, Message: "Configuration session expired due to inactivity"})
	if n, err := rdb.Publish(ctx, EventsChannel, b).Result(); err != nil {
		log.Printf("[IDLE] publish expiry failed: session=%s err=%v", id, err)
	} else {
		log.Printf("[IDLE] published expiry: session=%s subscribers=%d", id, n)
	}
	return true
}
