package scoring

import (
	"fmt"

	"github.com/okian/medalpool/internal/domain/model"
)

// SkipReason explains why an event was not scored.
type SkipReason string

// Skip reasons reported in an Outcome.
const (
	NotSkipped        SkipReason = ""
	SkipPending       SkipReason = "pending"        // no gold awarded yet
	SkipAlreadyScored SkipReason = "already_scored" // guess already carries a score
)

// Outcome is the per-event report of a scoring pass.
type Outcome struct {
	Result
	Skipped SkipReason
}

// SetScorer scores every event of a result table against a guess table.
type SetScorer struct {
	events *EventScorer
}

// NewSetScorer creates a SetScorer that delegates each event to events.
// A nil events uses an EventScorer with default options.
func NewSetScorer(events *EventScorer) *SetScorer {
	if events == nil {
		events = NewEventScorer()
	}
	return &SetScorer{events: events}
}

// ScoreAll returns a copy of guesses with scores filled in for every event
// that has a result and no score yet, plus one Outcome per result event in
// table order. guesses itself is never modified; on error no table is
// returned.
func (s *SetScorer) ScoreAll(results, guesses *model.Table) (*model.Table, []Outcome, error) {
	scored := guesses.Clone()
	outcomes := make([]Outcome, 0, results.Len())

	for _, key := range results.Keys() {
		result, _ := results.Get(key)
		guess, ok := scored.Get(key)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingGuess, key)
		}

		out := Outcome{Result: Result{Key: key}}
		switch {
		case result.Slots.Empty(model.Gold):
			out.Skipped = SkipPending
		case guess.Scored():
			out.Skipped = SkipAlreadyScored
			out.Points = *guess.Score
		default:
			res, err := s.events.Score(*result, *guess)
			if err != nil {
				return nil, nil, err
			}
			guess.SetScore(res.Points)
			out.Result = res
		}
		outcomes = append(outcomes, out)
	}

	return scored, outcomes, nil
}
