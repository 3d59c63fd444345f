package domain

import "testing"

func TestDifficulty_IsValid(t *testing.T) {
	valid := []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert}
	for _, d := range valid {
		if !d.IsValid() {
			t.Errorf("%s should be valid", d)
		}
	}

	invalid := []Difficulty{"", "wizard", "BEGINNER", "Beginner", "expert "}
	for _, d := range invalid {
		if d.IsValid() {
			t.Errorf("%q should be invalid", d)
		}
	}
}

func TestDifficulties_Order(t *testing.T) {
	got := Difficulties()
	if len(got) != 4 {
		t.Fatalf("expected 4 difficulties, got %d", len(got))
	}
	if got[0] != DifficultyBeginner || got[3] != DifficultyExpert {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestQuestionKind_IsValid(t *testing.T) {
	if !QuestionKindSingleChoice.IsValid() || !QuestionKindFreeForm.IsValid() {
		t.Error("canonical kinds should be valid")
	}
	for _, k := range []QuestionKind{"", "multiple_choice", "SINGLE_CHOICE"} {
		if k.IsValid() {
			t.Errorf("%q should be invalid", k)
		}
	}
}

func TestProgressStatus_IsValid(t *testing.T) {
	if !ProgressStatusStarted.IsValid() || !ProgressStatusCompleted.IsValid() {
		t.Error("canonical statuses should be valid")
	}
	if ProgressStatus("done").IsValid() {
		t.Error("\"done\" should be invalid")
	}
}
