package game

import (
	"encoding/json"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestApply_ClampsCardsPerRound(t *testing.T) {
	s := DefaultSettings()

	s.Apply(SettingsPatch{CardsPerRound: intPtr(6)})
	if s.CardsPerRound != 6 {
		t.Errorf("CardsPerRound = %d, want 6", s.CardsPerRound)
	}

	s.Apply(SettingsPatch{CardsPerRound: intPtr(1)})
	if s.CardsPerRound != 6 {
		t.Errorf("out-of-range value should be ignored, got %d", s.CardsPerRound)
	}
	s.Apply(SettingsPatch{CardsPerRound: intPtr(7)})
	if s.CardsPerRound != 6 {
		t.Errorf("out-of-range value should be ignored, got %d", s.CardsPerRound)
	}
}

func TestApply_ClueWordLimits(t *testing.T) {
	s := DefaultSettings()

	s.Apply(SettingsPatch{ClueWordLimits: []int{3, 1, 2}})
	if len(s.ClueWordLimits) != 3 || s.ClueWordLimits[0] != 3 {
		t.Errorf("ClueWordLimits = %v, want [3 1 2]", s.ClueWordLimits)
	}

	// Entries out of [1,5] are filtered; an empty or oversized result is dropped.
	s.Apply(SettingsPatch{ClueWordLimits: []int{0, 9}})
	if len(s.ClueWordLimits) != 3 {
		t.Errorf("all-invalid limits should leave previous value, got %v", s.ClueWordLimits)
	}
	s.Apply(SettingsPatch{ClueWordLimits: []int{1, 1, 1, 1, 1}})
	if len(s.ClueWordLimits) != 3 {
		t.Errorf("5-entry limits should be rejected, got %v", s.ClueWordLimits)
	}
	s.Apply(SettingsPatch{ClueWordLimits: []int{2, 0, 4}})
	if len(s.ClueWordLimits) != 2 || s.ClueWordLimits[0] != 2 || s.ClueWordLimits[1] != 4 {
		t.Errorf("invalid entries should be filtered, got %v", s.ClueWordLimits)
	}
}

func TestApply_PhaseTimerSeconds(t *testing.T) {
	s := DefaultSettings()

	s.Apply(SettingsPatch{PhaseTimerSeconds: intPtr(0)})
	if s.PhaseTimerSeconds != 0 {
		t.Errorf("0 should disable the timer, got %d", s.PhaseTimerSeconds)
	}
	s.Apply(SettingsPatch{PhaseTimerSeconds: intPtr(5)})
	if s.PhaseTimerSeconds != 0 {
		t.Errorf("1-9 is invalid, got %d", s.PhaseTimerSeconds)
	}
	s.Apply(SettingsPatch{PhaseTimerSeconds: intPtr(30)})
	if s.PhaseTimerSeconds != 30 {
		t.Errorf("PhaseTimerSeconds = %d, want 30", s.PhaseTimerSeconds)
	}
}

func TestApply_TotalRounds(t *testing.T) {
	s := DefaultSettings()

	s.Apply(SettingsPatch{TotalRounds: OptionalInt{Set: true, Value: intPtr(5)}})
	if s.TotalRounds == nil || *s.TotalRounds != 5 {
		t.Fatalf("TotalRounds = %v, want 5", s.TotalRounds)
	}

	// Floor at 1.
	s.Apply(SettingsPatch{TotalRounds: OptionalInt{Set: true, Value: intPtr(-2)}})
	if s.TotalRounds == nil || *s.TotalRounds != 1 {
		t.Fatalf("TotalRounds = %v, want clamp to 1", s.TotalRounds)
	}

	// Explicit null clears; absent leaves untouched.
	s.Apply(SettingsPatch{TotalRounds: OptionalInt{Set: true, Value: nil}})
	if s.TotalRounds != nil {
		t.Fatalf("TotalRounds = %v, want nil after explicit null", *s.TotalRounds)
	}
	s.Apply(SettingsPatch{CardsPerRound: intPtr(3)})
	if s.TotalRounds != nil {
		t.Error("absent totalRounds should not change the value")
	}
}

func TestSettingsPatch_UnmarshalDistinguishesNull(t *testing.T) {
	var absent SettingsPatch
	if err := json.Unmarshal([]byte(`{"cardsPerRound":3}`), &absent); err != nil {
		t.Fatal(err)
	}
	if absent.TotalRounds.Set {
		t.Error("absent totalRounds should not be marked set")
	}

	var null SettingsPatch
	if err := json.Unmarshal([]byte(`{"totalRounds":null}`), &null); err != nil {
		t.Fatal(err)
	}
	if !null.TotalRounds.Set || null.TotalRounds.Value != nil {
		t.Errorf("explicit null: Set=%v Value=%v, want set with nil value", null.TotalRounds.Set, null.TotalRounds.Value)
	}

	var value SettingsPatch
	if err := json.Unmarshal([]byte(`{"totalRounds":4}`), &value); err != nil {
		t.Fatal(err)
	}
	if !value.TotalRounds.Set || value.TotalRounds.Value == nil || *value.TotalRounds.Value != 4 {
		t.Error("explicit value should be set")
	}
}
