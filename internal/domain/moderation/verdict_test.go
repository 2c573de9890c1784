package moderation

import "testing"

func TestFlaggedNames_SingleCategory(t *testing.T) {
	v := Verdict{
		Flagged: true,
		Flags: []Flag{
			{Category: CategoryViolence, Flagged: true},
			{Category: CategoryHarassment, Flagged: false},
		},
	}

	names := v.FlaggedNames()
	if len(names) != 1 || names[0] != "violence" {
		t.Errorf("expected exactly [violence], got %v", names)
	}
}

func TestFlaggedNames_PreservesOrder(t *testing.T) {
	v := Verdict{
		Flagged: true,
		Flags: []Flag{
			{Category: CategoryHate, Flagged: true},
			{Category: CategorySexual, Flagged: false},
			{Category: CategoryViolence, Flagged: true},
			{Category: CategoryViolenceGraphic, Flagged: true},
		},
	}

	names := v.FlaggedNames()
	want := []string{"hate", "violence", "violence/graphic"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}

func TestFlaggedNames_CleanVerdict(t *testing.T) {
	v := Verdict{
		Flags: []Flag{
			{Category: CategoryHate, Flagged: false},
			{Category: CategoryViolence, Flagged: false},
		},
	}
	if names := v.FlaggedNames(); len(names) != 0 {
		t.Errorf("expected no names, got %v", names)
	}
}
