package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/dynbilliards/backend/internal/billiards"
	"github.com/redis/go-redis/v9"
)

// ChannelPrefix is prepended to an engine selector to form the Redis channel
// its simulation workers listen on.
const ChannelPrefix = "simulation_requests:"

var ErrNoEngine = errors.New("no engine registered")

// Engine runs a simulation for one table shape. Run hands the request off and
// returns; the engine reports nothing back.
type Engine interface {
	Run(ctx context.Context, req *billiards.SimulationRequest) error
}

// Channel returns the Redis channel for an engine selector.
func Channel(selector string) string {
	return ChannelPrefix + selector
}

// RedisEngine publishes requests to the workers of one engine selector.
type RedisEngine struct {
	rdb      *redis.Client
	selector string
}

func NewRedisEngine(rdb *redis.Client, selector string) *RedisEngine {
	return &RedisEngine{rdb: rdb, selector: selector}
}

func (e *RedisEngine) Run(ctx context.Context, req *billiards.SimulationRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	n, err := e.rdb.Publish(ctx, Channel(e.selector), data).Result()
	if err != nil {
		return fmt.Errorf("publish to %s: %w", Channel(e.selector), err)
	}
	if n == 0 {
		log.Printf("[ENGINE] no %s workers subscribed; request for %s dropped", e.selector, req.TableType)
		return nil
	}
	log.Printf("[ENGINE] dispatched %s request to %d %s worker(s) (balls=%d)", req.TableType, n, e.selector, len(req.Balls))
	return nil
}

// LogEngine only logs requests. Used when no Redis transport is configured.
type LogEngine struct {
	selector string
}

func NewLogEngine(selector string) *LogEngine {
	return &LogEngine{selector: selector}
}

func (e *LogEngine) Run(ctx context.Context, req *billiards.SimulationRequest) error {
	data, _ := json.Marshal(req)
	log.Printf("[ENGINE] %s (mock mode) request: %s", e.selector, data)
	return nil
}

// Registry maps engine selectors to engines.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]Engine
}

func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]Engine)}
}

// NewRegistryForCatalog registers one engine per selector used by the
// catalog: Redis-backed when rdb is set, log-only otherwise.
func NewRegistryForCatalog(catalog *billiards.Catalog, rdb *redis.Client) *Registry {
	r := NewRegistry()
	for _, t := range catalog.Tables() {
		if _, ok := r.engines[t.Engine]; ok {
			continue
		}
		if rdb != nil {
			r.Register(t.Engine, NewRedisEngine(rdb, t.Engine))
		} else {
			r.Register(t.Engine, NewLogEngine(t.Engine))
		}
	}
	return r
}

func (r *Registry) Register(selector string, e Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engines[selector] = e
}

func (r *Registry) Lookup(selector string) (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.engines[selector]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoEngine, selector)
	}
	return e, nil
}
