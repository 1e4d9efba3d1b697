package billiards

import (
	"errors"
	"math"
	"testing"
)

func TestNewStoreSeeds(t *testing.T) {
	s := NewStore(Rectangular(2, 2))
	if s.Selected() != Ball1 || s.Formation() != FormationOne {
		t.Fatalf("unexpected initial selection %v / %v", s.Selected(), s.Formation())
	}
	if s.States() != DefaultBallStates() {
		t.Errorf("seeds changed: %+v", s.States())
	}
	if s.Editing() != s.State(Ball1) {
		t.Error("edit buffer should start with ball 1")
	}
}

func TestNewStoreClampsSeedsIntoSmallDomain(t *testing.T) {
	s := NewStore(Rectangular(1, 1))
	for i, st := range s.States() {
		if !s.Domain().Valid(st.Position()) {
			t.Errorf("seed %d not valid: %+v", i+1, st)
		}
	}
}

func TestSeedStatesCircle(t *testing.T) {
	seeds := SeedStates(Circular(2))
	// ball 2 starts at (1.5, 1.5), outside the radius-2 circle
	if got := seeds[1]; !near(got.PositionX, math.Sqrt(4-2.25)) || got.PositionY != 1.5 {
		t.Errorf("ball 2 seed = %+v, want (1.3229, 1.5)", got)
	}
	if seeds[0] != DefaultBallStates()[0] {
		t.Errorf("ball 1 seed should be unchanged, got %+v", seeds[0])
	}
	if NewStore(Circular(2)).States() != seeds {
		t.Error("NewStore should start from SeedStates")
	}
}

func TestStateInvalidID(t *testing.T) {
	s := NewStore(Rectangular(2, 2))
	for _, id := range []BallID{0, 5, -1} {
		if got := s.State(id); got != (BallState{}) {
			t.Errorf("State(%d) = %+v, want zero state", id, got)
		}
	}
}

func TestRecordEditSnapsPastRadius(t *testing.T) {
	s := NewStore(Circular(2))
	if _, err := s.RecordEdit(FieldPositionY, 0); err != nil {
		t.Fatal(err)
	}
	got, err := s.RecordEdit(FieldPositionX, 2.0000000009)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 || s.Editing().PositionX != 2 {
		t.Errorf("x edit past the radius stored %v (buffer %+v), want 2", got, s.Editing())
	}
}

func TestRecordEditClampsPosition(t *testing.T) {
	s := NewStore(Circular(2))
	got, err := s.RecordEdit(FieldPositionY, 3)
	if err != nil {
		t.Fatal(err)
	}
	// ball 1 starts at x=0.5
	want := math.Sqrt(4 - 0.25)
	if !near(got, want) || !near(s.Editing().PositionY, want) {
		t.Errorf("snapped y = %v, buffer = %+v, want %v", got, s.Editing(), want)
	}
	// buffer only, not committed yet
	if s.State(Ball1).PositionY != 0.5 {
		t.Errorf("edit leaked into stored state before commit: %+v", s.State(Ball1))
	}
}

func TestRecordEditVelocityNotClamped(t *testing.T) {
	s := NewStore(Rectangular(2, 2))
	got, err := s.RecordEdit(FieldVelocityX, -2.5)
	if err != nil || got != -2.5 {
		t.Fatalf("RecordEdit velocity = %v, %v", got, err)
	}
	if _, err := s.RecordEdit("spin", 1); !errors.Is(err, ErrInvalidField) {
		t.Errorf("expected ErrInvalidField, got %v", err)
	}
}

func TestCommitIdempotent(t *testing.T) {
	s := NewStore(Rectangular(2, 2))
	s.RecordEdit(FieldPositionX, 1.25)
	s.Commit()
	after := s.States()
	s.Commit()
	if s.States() != after {
		t.Errorf("second commit changed the store: %+v vs %+v", s.States(), after)
	}
	if s.State(Ball1).PositionX != 1.25 {
		t.Errorf("commit did not flush: %+v", s.State(Ball1))
	}
}

func TestSetActiveBallCommitsOutgoing(t *testing.T) {
	s := NewStore(Rectangular(2, 2))
	s.SetFormation(FormationFour)
	s.RecordEdit(FieldVelocityY, 2)

	if err := s.SetActiveBall(Ball3); err != nil {
		t.Fatal(err)
	}
	if s.State(Ball1).VelocityY != 2 {
		t.Errorf("outgoing ball not committed: %+v", s.State(Ball1))
	}
	if s.Editing() != s.State(Ball3) || s.Selected() != Ball3 {
		t.Errorf("buffer not loaded for ball 3: %+v", s.Editing())
	}
	if err := s.SetActiveBall(7); !errors.Is(err, ErrInvalidBall) {
		t.Errorf("expected ErrInvalidBall, got %v", err)
	}
}

func TestSetFormationRemapsSelection(t *testing.T) {
	s := NewStore(Rectangular(2, 2))
	s.SetFormation(FormationFour)
	s.SetActiveBall(Ball4)
	s.RecordEdit(FieldPositionX, 0.25)

	moved, err := s.SetFormation(FormationTwo)
	if err != nil {
		t.Fatal(err)
	}
	if !moved || s.Selected() != Ball2 {
		t.Fatalf("expected remap to ball 2, got %v (moved=%v)", s.Selected(), moved)
	}
	if s.Editing() != s.State(Ball2) {
		t.Error("buffer should reflect the remapped ball")
	}
	if s.State(Ball4).PositionX != 0.25 {
		t.Errorf("pending edit on ball 4 lost: %+v", s.State(Ball4))
	}

	moved, _ = s.SetFormation(FormationFour)
	if moved || s.Selected() != Ball2 {
		t.Errorf("widening should not move selection, got %v", s.Selected())
	}
}

func TestFormationRoundTripKeepsInactiveState(t *testing.T) {
	for _, d := range []Domain{Rectangular(2, 2), Circular(2)} {
		s := NewStore(d)
		s.SetFormation(FormationThree)
		s.SetActiveBall(Ball3)
		s.RecordEdit(FieldPositionX, 1)
		s.RecordEdit(FieldPositionY, 1)
		s.Commit()
		before := s.State(Ball3)

		s.SetFormation(FormationOne)
		s.SetFormation(FormationThree)

		if s.State(Ball3) != before {
			t.Errorf("%s: ball 3 changed across round trip: %+v -> %+v", d.Shape, before, s.State(Ball3))
		}
		if before.PositionX != 1 || before.PositionY != 1 {
			t.Errorf("%s: unexpected ball 3 position %+v", d.Shape, before)
		}
	}
}

func TestResizeClampsAllSlots(t *testing.T) {
	s := NewStore(Rectangular(5, 5))
	s.SetFormation(FormationFour)
	s.SetActiveBall(Ball4)
	s.RecordEdit(FieldPositionX, 4.5)
	s.SetFormation(FormationOne)

	if err := s.Resize(Rectangular(1, 1)); err != nil {
		t.Fatal(err)
	}
	for i, st := range s.States() {
		if !s.Domain().Valid(st.Position()) {
			t.Errorf("slot %d escaped resize: %+v", i+1, st)
		}
	}
	if s.State(Ball4).PositionX != 1 {
		t.Errorf("inactive ball 4 not clamped: %+v", s.State(Ball4))
	}
	if err := s.Resize(Rectangular(0, 1)); err == nil {
		t.Error("expected error for empty domain")
	}
}
