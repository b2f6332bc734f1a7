package game

import (
	"encoding/json"

	"huesandcues/internal/board"
	"huesandcues/internal/scoring"
)

// Settings are the host-tunable parameters of one room.
type Settings struct {
	Cols              int              `json:"cols"`
	Rows              int              `json:"rows"`
	CardsPerRound     int              `json:"cardsPerRound"`
	ClueWordLimits    []int            `json:"clueWordLimits"`
	ScoringRadii      []scoring.Radius `json:"scoringRadii"`
	PhaseTimerSeconds int              `json:"phaseTimerSeconds"`
	TotalRounds       *int             `json:"totalRounds"`
}

func DefaultSettings() Settings {
	return Settings{
		Cols:              board.DefaultCols,
		Rows:              board.DefaultRows,
		CardsPerRound:     4,
		ClueWordLimits:    []int{1, 2},
		ScoringRadii:      scoring.DefaultRadii(),
		PhaseTimerSeconds: 60,
		TotalRounds:       nil,
	}
}

// TotalCells is the number of cells on the board.
func (s Settings) TotalCells() int {
	return s.Cols * s.Rows
}

// OptionalInt distinguishes a field that was absent from one explicitly set
// to null: Set is true whenever the field appeared in the payload.
type OptionalInt struct {
	Set   bool
	Value *int
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// SettingsPatch is a partial settings update from the host. Absent fields
// leave the current value untouched.
type SettingsPatch struct {
	CardsPerRound     *int             `json:"cardsPerRound"`
	ClueWordLimits    []int            `json:"clueWordLimits"`
	ScoringRadii      []scoring.Radius `json:"scoringRadii"`
	PhaseTimerSeconds *int             `json:"phaseTimerSeconds"`
	TotalRounds       OptionalInt      `json:"totalRounds"`
}

// Apply merges a patch field by field. Each field is validated and clamped
// independently; values out of range are dropped without failing the rest
// of the update.
func (s *Settings) Apply(p SettingsPatch) {
	if p.CardsPerRound != nil && *p.CardsPerRound >= 2 && *p.CardsPerRound <= 6 {
		s.CardsPerRound = *p.CardsPerRound
	}
	if p.ClueWordLimits != nil {
		limits := make([]int, 0, len(p.ClueWordLimits))
		for _, n := range p.ClueWordLimits {
			if n >= 1 && n <= 5 {
				limits = append(limits, n)
			}
		}
		if len(limits) >= 1 && len(limits) <= 4 {
			s.ClueWordLimits = limits
		}
	}
	if p.ScoringRadii != nil {
		s.ScoringRadii = p.ScoringRadii
	}
	if p.PhaseTimerSeconds != nil {
		if v := *p.PhaseTimerSeconds; v == 0 || v >= 10 {
			s.PhaseTimerSeconds = v
		}
	}
	if p.TotalRounds.Set {
		if p.TotalRounds.Value == nil {
			s.TotalRounds = nil
		} else {
			v := *p.TotalRounds.Value
			if v < 1 {
				v = 1
			}
			s.TotalRounds = &v
		}
	}
}
