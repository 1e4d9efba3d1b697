package billiards

import "fmt"

// Session is one user's configuration of one table. It owns its Store and
// applies events strictly one at a time; it is discarded when the user
// leaves.
type Session struct {
	ID          string
	table       TableSpec
	store       *Store
	playbackFPS int
	trace       bool
}

// NewSession seeds a store for table. Trace starts enabled.
func NewSession(id string, table TableSpec, playbackFPS int) *Session {
	if playbackFPS < MinPlaybackFPS || playbackFPS > MaxPlaybackFPS {
		playbackFPS = 30
	}
	return &Session{
		ID:          id,
		table:       table,
		store:       NewStore(table.Domain),
		playbackFPS: playbackFPS,
		trace:       true,
	}
}

func (s *Session) Table() TableSpec { return s.table }
func (s *Session) Store() *Store    { return s.store }

// Apply dispatches ev to its handler. A rejected event leaves the session
// unchanged.
func (s *Session) Apply(ev Event) error {
	h, ok := handlers[ev.Kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}
	return h(s, ev)
}

// Start builds the request handed to the table's engine.
func (s *Session) Start() (*SimulationRequest, error) {
	return Build(s.store, s.store.Domain(), s.store.Formation(), s.playbackFPS, s.trace, s.table.Type)
}

// State is what a client sees after every accepted event.
type State struct {
	SessionID   string    `json:"session_id"`
	TableType   TableType `json:"table_type"`
	Active      []BallID  `json:"active"`
	PlaybackFPS int       `json:"playback_speed_fps"`
	Trace       bool      `json:"trace"`
	Snapshot
}

func (s *Session) State() State {
	return State{
		SessionID:   s.ID,
		TableType:   s.table.Type,
		Active:      ActiveSet(s.store.Formation()),
		PlaybackFPS: s.playbackFPS,
		Trace:       s.trace,
		Snapshot:    s.store.Snapshot(),
	}
}
