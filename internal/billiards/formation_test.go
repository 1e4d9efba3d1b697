package billiards

import "testing"

func TestActiveSet(t *testing.T) {
	for f := FormationOne; f <= FormationFour; f++ {
		set := ActiveSet(f)
		if len(set) != int(f) {
			t.Fatalf("ActiveSet(%v) has %d balls", f, len(set))
		}
		for i, id := range set {
			if id != BallID(i+1) {
				t.Errorf("ActiveSet(%v)[%d] = %v", f, i, id)
			}
		}
	}
}

func TestRemapSelectionTable(t *testing.T) {
	tests := []struct {
		formation Formation
		selected  BallID
		want      BallID
	}{
		{FormationOne, Ball1, Ball1},
		{FormationOne, Ball2, Ball1},
		{FormationOne, Ball3, Ball1},
		{FormationOne, Ball4, Ball1},
		{FormationTwo, Ball2, Ball2},
		{FormationTwo, Ball3, Ball2},
		{FormationTwo, Ball4, Ball2},
		{FormationThree, Ball3, Ball3},
		{FormationThree, Ball4, Ball3},
		{FormationFour, Ball4, Ball4},
		{FormationFour, Ball1, Ball1},
	}
	for _, tt := range tests {
		if got := RemapSelection(tt.formation, tt.selected); got != tt.want {
			t.Errorf("RemapSelection(%v, %v) = %v, want %v", tt.formation, tt.selected, got, tt.want)
		}
	}
}

func TestRemapSelectionAlwaysActive(t *testing.T) {
	for f := FormationOne; f <= FormationFour; f++ {
		for id := Ball1; id <= Ball4; id++ {
			if got := RemapSelection(f, id); !IsActive(f, got) {
				t.Errorf("RemapSelection(%v, %v) = %v is not active", f, id, got)
			}
		}
	}
}

func TestParseFormation(t *testing.T) {
	if _, err := ParseFormation(0); err == nil {
		t.Error("expected error for formation 0")
	}
	if _, err := ParseFormation(5); err == nil {
		t.Error("expected error for formation 5")
	}
	f, err := ParseFormation(3)
	if err != nil || f != FormationThree {
		t.Errorf("ParseFormation(3) = %v, %v", f, err)
	}
	if FormationOne.String() != "1 Ball" || FormationFour.String() != "4 Balls" {
		t.Errorf("unexpected labels %q %q", FormationOne, FormationFour)
	}
}
