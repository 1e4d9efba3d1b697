package billiards

import (
	"errors"
	"fmt"
)

// EventKind tags an edit event delivered by the input surface.
type EventKind string

const (
	EventFieldEdit       EventKind = "field_edit"
	EventFormationChange EventKind = "formation_change"
	EventBallSelect      EventKind = "ball_select"
	EventPlaybackSpeed   EventKind = "playback_speed"
	EventTrace           EventKind = "trace"
	EventResize          EventKind = "resize"
)

var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrOutOfRange   = errors.New("value out of range")
)

// Event is one discrete user edit. Only the fields relevant to Kind are read.
type Event struct {
	Kind      EventKind
	Field     Field
	Value     float64
	Formation int
	Ball      int
	FPS       int
	Trace     bool
	Width     float64
	Height    float64
}

func FieldEdit(field Field, value float64) Event {
	return Event{Kind: EventFieldEdit, Field: field, Value: value}
}

func FormationChange(n int) Event {
	return Event{Kind: EventFormationChange, Formation: n}
}

func BallSelect(n int) Event {
	return Event{Kind: EventBallSelect, Ball: n}
}

func PlaybackSpeed(fps int) Event {
	return Event{Kind: EventPlaybackSpeed, FPS: fps}
}

func TraceToggle(enabled bool) Event {
	return Event{Kind: EventTrace, Trace: enabled}
}

func Resize(width, height float64) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}

type eventHandler func(s *Session, ev Event) error

// handlers is the fixed dispatch table from event kind to handler.
var handlers = map[EventKind]eventHandler{
	EventFieldEdit:       handleFieldEdit,
	EventFormationChange: handleFormationChange,
	EventBallSelect:      handleBallSelect,
	EventPlaybackSpeed:   handlePlaybackSpeed,
	EventTrace:           handleTrace,
	EventResize:          handleResize,
}

func handleFieldEdit(s *Session, ev Event) error {
	if !ev.Field.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidField, ev.Field)
	}
	if !ev.Field.isPosition() && (ev.Value < MinVelocity || ev.Value > MaxVelocity) {
		return fmt.Errorf("%w: %s %g outside %g..%g", ErrOutOfRange, ev.Field, ev.Value, MinVelocity, MaxVelocity)
	}
	_, err := s.store.RecordEdit(ev.Field, ev.Value)
	return err
}

func handleFormationChange(s *Session, ev Event) error {
	f, err := ParseFormation(ev.Formation)
	if err != nil {
		return err
	}
	_, err = s.store.SetFormation(f)
	return err
}

// A selection outside the active set is demoted the same way a narrowing
// formation demotes it.
func handleBallSelect(s *Session, ev Event) error {
	id, err := ParseBallID(ev.Ball)
	if err != nil {
		return err
	}
	return s.store.SetActiveBall(RemapSelection(s.store.Formation(), id))
}

func handlePlaybackSpeed(s *Session, ev Event) error {
	if ev.FPS < MinPlaybackFPS || ev.FPS > MaxPlaybackFPS {
		return fmt.Errorf("%w: playback speed %d outside %d..%d", ErrOutOfRange, ev.FPS, MinPlaybackFPS, MaxPlaybackFPS)
	}
	s.playbackFPS = ev.FPS
	return nil
}

func handleTrace(s *Session, ev Event) error {
	s.trace = ev.Trace
	return nil
}

func handleResize(s *Session, ev Event) error {
	domain, err := s.table.ResizedDomain(ev.Width, ev.Height)
	if err != nil {
		return err
	}
	return s.store.Resize(domain)
}
