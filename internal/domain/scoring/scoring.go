// Package scoring computes medal-pool points for guessed podiums.
package scoring

import (
	"fmt"
	"slices"

	"github.com/okian/medalpool/internal/domain/model"
)

// Point values awarded per scoring decision.
const (
	CorrectGuessPoints = 4 // country guessed in the slot it won
	NearGuessPoints    = 2 // country medalled, but in another slot
	PerfectPodiumBonus = 8 // nothing left unmatched after the exact pass
)

// Option applies a configuration option to the EventScorer.
type Option func(*EventScorer)

// WithStrictBalance rejects events whose unmatched guesses and unmatched
// results differ in count, instead of scoring them.
func WithStrictBalance(strict bool) Option {
	return func(s *EventScorer) {
		s.strictBalance = strict
	}
}

// Result contains the points computed for one event and the decisions that
// produced them.
type Result struct {
	Key     model.EventKey
	Points  int
	Log     []string
	Exact   int  // exact guesses awarded
	Near    int  // near guesses awarded
	Perfect bool // perfect podium bonus awarded
}

// EventScorer scores one event's guess against its result.
type EventScorer struct {
	strictBalance bool
}

// NewEventScorer creates an EventScorer with configuration options.
func NewEventScorer(opts ...Option) *EventScorer {
	s := &EventScorer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleTies returns a copy of guess adjusted for slots the result left
// empty: an empty bronze folds the guessed bronze into silver, then an empty
// silver folds the guessed silver into gold. Neither argument is modified.
func HandleTies(result, guess model.MedalSlots) model.MedalSlots {
	adjusted := guess.Clone()
	if result.Empty(model.Bronze) {
		adjusted[model.Silver] = append(adjusted[model.Silver], adjusted[model.Bronze]...)
		adjusted[model.Bronze] = nil
	}
	if result.Empty(model.Silver) {
		adjusted[model.Gold] = append(adjusted[model.Gold], adjusted[model.Silver]...)
		adjusted[model.Silver] = nil
	}
	return adjusted
}

// Score awards points for guess against result.
//
// Slots are matched exactly in model.ScoringOrder. Countries left over on
// both sides are then compared in that same flattened order for near
// guesses; each leftover result country can satisfy one near guess.
func (s *EventScorer) Score(result, guess model.EventRecord) (Result, error) {
	if result.Key != guess.Key {
		return Result{}, fmt.Errorf("%w: result %s, guess %s", ErrMismatchedEvent, result.Key, guess.Key)
	}

	adjusted := HandleTies(result.Slots, guess.Slots)
	res := Result{Key: result.Key}

	var unmatchedResult, unmatchedGuess []string
	for _, m := range model.ScoringOrder {
		remainingResult := slices.Clone(result.Slots[m])
		remainingGuess := slices.Clone(adjusted[m])

		if len(remainingResult) == 0 {
			if len(remainingGuess) != 0 {
				return Result{}, fmt.Errorf("%w: %s has no %s result but guesses %v",
					ErrMalformedEvent, result.Key, m, remainingGuess)
			}
			continue
		}

		for _, country := range adjusted[m] {
			i := slices.Index(remainingResult, country)
			if i < 0 {
				continue
			}
			remainingResult = slices.Delete(remainingResult, i, i+1)
			if j := slices.Index(remainingGuess, country); j >= 0 {
				remainingGuess = slices.Delete(remainingGuess, j, j+1)
			}
			res.award(CorrectGuessPoints, fmt.Sprintf("perfect guess %s for %s", m, country))
			res.Exact++
		}

		unmatchedResult = append(unmatchedResult, remainingResult...)
		unmatchedGuess = append(unmatchedGuess, remainingGuess...)
	}

	if s.strictBalance && len(unmatchedGuess) != len(unmatchedResult) {
		return Result{}, fmt.Errorf("%w: %s leaves %d unmatched guesses against %d unmatched results",
			ErrMalformedEvent, result.Key, len(unmatchedGuess), len(unmatchedResult))
	}

	if len(unmatchedGuess) == 0 && len(unmatchedResult) == 0 {
		res.award(PerfectPodiumBonus, "a perfect podium")
		res.Perfect = true
		return res, nil
	}

	for _, country := range unmatchedGuess {
		i := slices.Index(unmatchedResult, country)
		if i < 0 {
			continue
		}
		guessed, ok := adjusted.Find(country)
		if !ok {
			return Result{}, fmt.Errorf("%w: %s in guess for %s", ErrCountryNotFound, country, result.Key)
		}
		actual, ok := result.Slots.Find(country)
		if !ok {
			return Result{}, fmt.Errorf("%w: %s in result for %s", ErrCountryNotFound, country, result.Key)
		}
		unmatchedResult = slices.Delete(unmatchedResult, i, i+1)
		res.award(NearGuessPoints, fmt.Sprintf("near guess %s was guessed as %s but was actually %s", country, guessed, actual))
		res.Near++
	}

	return res, nil
}

// award adds points and the matching log line.
func (r *Result) award(points int, reason string) {
	r.Points += points
	r.Log = append(r.Log, fmt.Sprintf("Scored %d points for %s", points, reason))
}
