package billiards

import "fmt"

// Store is the source of truth for per-ball parameters of one configuration
// session. It keeps all four ball slots even when the formation hides some
// of them, and an edit buffer for the selected ball that is flushed by
// Commit. A Store is not safe for concurrent use; its session serializes
// events.
type Store struct {
	domain    Domain
	states    [NumBalls]BallState
	buffer    BallState
	dirty     bool
	selected  BallID
	formation Formation
}

// NewStore seeds every slot with the default states clamped into domain and
// selects ball 1 under a single-ball formation.
func NewStore(domain Domain) *Store {
	s := &Store{
		domain:    domain,
		selected:  Ball1,
		formation: FormationOne,
	}
	s.states = SeedStates(domain)
	s.buffer = s.states[0]
	return s
}

// SeedStates returns the default states with their positions clamped into
// domain. These are the states a new session starts from.
func SeedStates(domain Domain) [NumBalls]BallState {
	states := DefaultBallStates()
	for i := range states {
		states[i] = states[i].withPosition(domain.Clamp(states[i].Position(), AxisX))
	}
	return states
}

func (s *Store) Domain() Domain       { return s.domain }
func (s *Store) Selected() BallID     { return s.selected }
func (s *Store) Formation() Formation { return s.formation }

// Editing returns the live edit buffer of the selected ball.
func (s *Store) Editing() BallState { return s.buffer }

// State returns the committed state of id, or the zero state for an id
// outside 1..4.
func (s *Store) State(id BallID) BallState {
	if !id.Valid() {
		return BallState{}
	}
	return s.states[id-1]
}

// States returns a copy of all committed slots, active or not.
func (s *Store) States() [NumBalls]BallState {
	return s.states
}

// RecordEdit writes value into the edit buffer of the selected ball.
// Position edits are clamped into the domain with the edited axis, and the
// value actually buffered is returned so callers can snap the input back.
func (s *Store) RecordEdit(field Field, value float64) (float64, error) {
	switch field {
	case FieldPositionX, FieldPositionY:
		p := s.buffer.Position()
		axis := AxisX
		if field == FieldPositionX {
			p.X = value
		} else {
			p.Y = value
			axis = AxisY
		}
		p = s.domain.Clamp(p, axis)
		s.buffer = s.buffer.withPosition(p)
		s.dirty = true
		if axis == AxisX {
			return p.X, nil
		}
		return p.Y, nil
	case FieldVelocityX:
		s.buffer.VelocityX = value
	case FieldVelocityY:
		s.buffer.VelocityY = value
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	s.dirty = true
	return value, nil
}

// Commit flushes the edit buffer into the selected ball's slot. Calling it
// again without an intervening edit changes nothing.
func (s *Store) Commit() {
	if !s.dirty {
		return
	}
	s.states[s.selected-1] = s.buffer
	s.dirty = false
}

// SetActiveBall commits the outgoing ball and loads id into the edit buffer.
// id need not be active under the current formation.
func (s *Store) SetActiveBall(id BallID) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidBall, int(id))
	}
	s.Commit()
	s.buffer = s.states[id-1]
	s.selected = id
	return nil
}

// SetFormation switches the active ball count. When the selected ball drops
// out of the active set the selection is demoted to the last surviving slot.
// Stored states are never touched. It reports whether the selection moved.
func (s *Store) SetFormation(f Formation) (bool, error) {
	if !f.Valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidFormation, int(f))
	}
	s.Commit()
	s.formation = f
	next := RemapSelection(f, s.selected)
	if next == s.selected {
		return false, nil
	}
	return true, s.SetActiveBall(next)
}

// Resize replaces the domain and clamps every slot, including inactive ones,
// into it.
func (s *Store) Resize(domain Domain) error {
	if err := domain.Validate(); err != nil {
		return err
	}
	s.Commit()
	s.domain = domain
	for i := range s.states {
		s.states[i] = s.states[i].withPosition(domain.Clamp(s.states[i].Position(), AxisX))
	}
	s.buffer = s.states[s.selected-1]
	return nil
}

// Snapshot is a read-only view of the store for clients.
type Snapshot struct {
	Formation Formation           `json:"formation"`
	Selected  BallID              `json:"selected"`
	Editing   BallState           `json:"editing"`
	Balls     [NumBalls]BallState `json:"balls"`
	Domain    Domain              `json:"domain"`
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Formation: s.formation,
		Selected:  s.selected,
		Editing:   s.buffer,
		Balls:     s.states,
		Domain:    s.domain,
	}
}
