package billiards

import (
	"errors"
	"fmt"
)

// BallID identifies one of the four ball slots.
type BallID int

const (
	Ball1 BallID = iota + 1
	Ball2
	Ball3
	Ball4
)

// NumBalls is the number of ball slots a session always keeps.
const NumBalls = 4

// Velocity limits match the range offered by the velocity sliders.
const (
	MinVelocity = -3.0
	MaxVelocity = 3.0
)

var (
	ErrInvalidBall  = errors.New("invalid ball")
	ErrInvalidField = errors.New("invalid field")
)

func (id BallID) Valid() bool {
	return id >= Ball1 && id <= Ball4
}

func (id BallID) String() string {
	return fmt.Sprintf("Ball %d", int(id))
}

// ParseBallID checks that n names a ball slot.
func ParseBallID(n int) (BallID, error) {
	id := BallID(n)
	if !id.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBall, n)
	}
	return id, nil
}

// BallState is one ball's initial position and velocity.
type BallState struct {
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
	VelocityX float64 `json:"velocity_x"`
	VelocityY float64 `json:"velocity_y"`
}

func (b BallState) Position() Vec2 {
	return Vec2{X: b.PositionX, Y: b.PositionY}
}

func (b BallState) withPosition(p Vec2) BallState {
	b.PositionX = p.X
	b.PositionY = p.Y
	return b
}

// DefaultBallStates returns the seeded initial state of every slot.
func DefaultBallStates() [NumBalls]BallState {
	return [NumBalls]BallState{
		{PositionX: 0.5, PositionY: 0.5, VelocityX: 1, VelocityY: 0.5},
		{PositionX: 1.5, PositionY: 1.5, VelocityX: 1, VelocityY: -0.5},
		{PositionX: 0.5, PositionY: 1.5, VelocityX: -1, VelocityY: 0.5},
		{PositionX: 1.5, PositionY: 0.5, VelocityX: -0.5, VelocityY: 1},
	}
}

// Field is one editable parameter of a ball.
type Field string

const (
	FieldPositionX Field = "position_x"
	FieldPositionY Field = "position_y"
	FieldVelocityX Field = "velocity_x"
	FieldVelocityY Field = "velocity_y"
)

func (f Field) Valid() bool {
	switch f {
	case FieldPositionX, FieldPositionY, FieldVelocityX, FieldVelocityY:
		return true
	}
	return false
}

func (f Field) isPosition() bool {
	return f == FieldPositionX || f == FieldPositionY
}
