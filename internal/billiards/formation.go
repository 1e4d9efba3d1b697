package billiards

import (
	"errors"
	"fmt"
)

// Formation is the number of simultaneously active balls. The active balls
// are always the lowest-numbered slots.
type Formation int

const (
	FormationOne Formation = iota + 1
	FormationTwo
	FormationThree
	FormationFour
)

var ErrInvalidFormation = errors.New("invalid formation")

func (f Formation) Valid() bool {
	return f >= FormationOne && f <= FormationFour
}

func (f Formation) String() string {
	if f == FormationOne {
		return "1 Ball"
	}
	return fmt.Sprintf("%d Balls", int(f))
}

// ParseFormation checks that n is a supported ball count.
func ParseFormation(n int) (Formation, error) {
	f := Formation(n)
	if !f.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidFormation, n)
	}
	return f, nil
}

// ActiveSet returns the active balls of f in ascending order.
func ActiveSet(f Formation) []BallID {
	ids := make([]BallID, 0, int(f))
	for id := Ball1; id <= BallID(f); id++ {
		ids = append(ids, id)
	}
	return ids
}

// IsActive reports whether id is in the active set of f.
func IsActive(f Formation, id BallID) bool {
	return id >= Ball1 && id <= BallID(f)
}

// RemapSelection keeps selected when it is active under f, otherwise demotes
// it to the highest-numbered ball that remains active.
func RemapSelection(f Formation, selected BallID) BallID {
	if IsActive(f, selected) {
		return selected
	}
	return BallID(f)
}
