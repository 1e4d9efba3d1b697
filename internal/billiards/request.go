package billiards

import "fmt"

// Playback speed limits in frames per second.
const (
	MinPlaybackFPS = 0
	MaxPlaybackFPS = 60
)

// SimulationRequest is the payload handed to a simulation engine. Balls
// holds the active balls in ascending BallID order.
type SimulationRequest struct {
	Formation        Formation   `json:"formation"`
	Balls            []BallState `json:"balls"`
	Domain           Domain      `json:"domain"`
	PlaybackSpeedFPS int         `json:"playback_speed_fps"`
	Trace            bool        `json:"trace"`
	TableType        TableType   `json:"table_type"`
}

// ValidationError means a request failed its final consistency check. A
// stored position escaping the domain is an internal defect, not bad input.
type ValidationError struct {
	Ball   BallID
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Ball == 0 {
		return "simulation request invalid: " + e.Reason
	}
	return fmt.Sprintf("simulation request invalid: %s: %s", e.Ball, e.Reason)
}

// Build commits any pending edit and snapshots the active balls of formation
// into a SimulationRequest. Every emitted position is re-checked against
// domain before the request is returned.
func Build(store *Store, domain Domain, formation Formation, playbackSpeed int, trace bool, tableType TableType) (*SimulationRequest, error) {
	store.Commit()

	if !formation.Valid() {
		return nil, &ValidationError{Reason: fmt.Sprintf("formation %d out of range", int(formation))}
	}
	if playbackSpeed < MinPlaybackFPS || playbackSpeed > MaxPlaybackFPS {
		return nil, &ValidationError{Reason: fmt.Sprintf("playback speed %d outside %d..%d fps", playbackSpeed, MinPlaybackFPS, MaxPlaybackFPS)}
	}

	active := ActiveSet(formation)
	balls := make([]BallState, 0, len(active))
	for _, id := range active {
		state := store.State(id)
		if !domain.Valid(state.Position()) {
			return nil, &ValidationError{
				Ball:   id,
				Reason: fmt.Sprintf("position (%g, %g) outside %s domain", state.PositionX, state.PositionY, domain.Shape),
			}
		}
		balls = append(balls, state)
	}

	return &SimulationRequest{
		Formation:        formation,
		Balls:            balls,
		Domain:           domain,
		PlaybackSpeedFPS: playbackSpeed,
		Trace:            trace,
		TableType:        tableType,
	}, nil
}
