package scoring_test

import (
	"errors"
	"testing"

	"github.com/okian/medalpool/internal/domain/model"
	scoring "github.com/okian/medalpool/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func key(name string) model.EventKey {
	return model.EventKey{Event: name, Gender: "Women", Class: "Open"}
}

func fixtureTables() (results, guesses *model.Table) {
	results = model.NewTable()
	results.Put(model.EventRecord{Key: key("Downhill"), Slots: podium(list("SUI"), list("AUT"), list("ITA"))})
	results.Put(model.EventRecord{Key: key("Slalom"), Slots: podium(list("USA"), list("SWE"), list("AUT"))})
	results.Put(model.EventRecord{Key: key("Giant Slalom"), Slots: podium(nil, nil, nil)})

	guesses = model.NewTable()
	guesses.Put(model.EventRecord{Key: key("Downhill"), Slots: podium(list("SUI"), list("AUT"), list("ITA"))})
	guesses.Put(model.EventRecord{Key: key("Slalom"), Slots: podium(list("SWE"), list("USA"), list("AUT"))})
	guesses.Put(model.EventRecord{Key: key("Giant Slalom"), Slots: podium(list("NOR"), list("SUI"), list("FRA"))})
	return results, guesses
}

func TestSetScorer_ScoreAll(t *testing.T) {
	Convey("Given results for two of three events", t, func() {
		results, guesses := fixtureTables()
		scorer := scoring.NewSetScorer(nil)

		Convey("When scoring all events", func() {
			scored, outcomes, err := scorer.ScoreAll(results, guesses)
			So(err, ShouldBeNil)

			Convey("Then finished events should carry scores", func() {
				downhill, _ := scored.Get(key("Downhill"))
				slalom, _ := scored.Get(key("Slalom"))
				So(*downhill.Score, ShouldEqual, 20)
				So(*slalom.Score, ShouldEqual, 8)
			})

			Convey("And the pending event should stay unscored", func() {
				gs, _ := scored.Get(key("Giant Slalom"))
				So(gs.Scored(), ShouldBeFalse)
				So(outcomes[2].Skipped, ShouldEqual, scoring.SkipPending)
				So(outcomes[2].Log, ShouldBeEmpty)
			})

			Convey("And outcomes should follow result order", func() {
				So(len(outcomes), ShouldEqual, 3)
				So(outcomes[0].Key, ShouldResemble, key("Downhill"))
				So(outcomes[1].Key, ShouldResemble, key("Slalom"))
				So(outcomes[0].Skipped, ShouldEqual, scoring.NotSkipped)
				So(outcomes[0].Perfect, ShouldBeTrue)
			})

			Convey("And the input guesses should be untouched", func() {
				downhill, _ := guesses.Get(key("Downhill"))
				So(downhill.Scored(), ShouldBeFalse)
				So(scored.Equal(guesses), ShouldBeFalse)
			})

			Convey("And scoring the output again should change nothing", func() {
				again, outcomes2, err := scorer.ScoreAll(results, scored)
				So(err, ShouldBeNil)
				So(again.Equal(scored), ShouldBeTrue)
				So(outcomes2[0].Skipped, ShouldEqual, scoring.SkipAlreadyScored)
				So(outcomes2[1].Skipped, ShouldEqual, scoring.SkipAlreadyScored)
				So(outcomes2[1].Points, ShouldEqual, 8)
			})
		})

		Convey("When a guess is already scored", func() {
			slalom, _ := guesses.Get(key("Slalom"))
			slalom.SetScore(3)

			scored, _, err := scorer.ScoreAll(results, guesses)

			Convey("Then its score should not be recomputed", func() {
				So(err, ShouldBeNil)
				rec, _ := scored.Get(key("Slalom"))
				So(*rec.Score, ShouldEqual, 3)
			})
		})

		Convey("When a result has no matching guess", func() {
			results.Put(model.EventRecord{Key: key("Super-G"), Slots: podium(list("NOR"), list("SUI"), list("FRA"))})

			scored, outcomes, err := scorer.ScoreAll(results, guesses)

			Convey("Then the whole pass should fail without a table", func() {
				So(errors.Is(err, scoring.ErrMissingGuess), ShouldBeTrue)
				So(scored, ShouldBeNil)
				So(outcomes, ShouldBeNil)
			})
		})

		Convey("When strict balancing rejects an event mid-pass", func() {
			strict := scoring.NewSetScorer(scoring.NewEventScorer(scoring.WithStrictBalance(true)))
			results.Put(model.EventRecord{Key: key("Giant Slalom"), Slots: podium(list("NOR"), list("SUI"), nil)})

			scored, outcomes, err := strict.ScoreAll(results, guesses)

			Convey("Then the error should propagate and nothing be returned", func() {
				So(errors.Is(err, scoring.ErrMalformedEvent), ShouldBeTrue)
				So(scored, ShouldBeNil)
				So(outcomes, ShouldBeNil)
			})
		})
	})
}
