package model_test

import (
	"testing"

	model "github.com/okian/medalpool/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestMedal(t *testing.T) {
	convey.Convey("Given the medal enumeration", t, func() {
		convey.Convey("Then each slot should have a display name", func() {
			convey.So(model.Gold.String(), convey.ShouldEqual, "Gold")
			convey.So(model.Silver.String(), convey.ShouldEqual, "Silver")
			convey.So(model.Bronze.String(), convey.ShouldEqual, "Bronze")
			convey.So(model.Medal(7).String(), convey.ShouldEqual, "Medal(7)")
		})

		convey.Convey("Then scoring order should run from bronze to gold", func() {
			convey.So(model.ScoringOrder[0], convey.ShouldEqual, model.Bronze)
			convey.So(model.ScoringOrder[1], convey.ShouldEqual, model.Silver)
			convey.So(model.ScoringOrder[2], convey.ShouldEqual, model.Gold)
		})
	})
}

func TestEventRecord(t *testing.T) {
	convey.Convey("Given an event record", t, func() {
		key := model.EventKey{Event: "Slalom", Gender: "Women", Class: "Standing"}
		rec := model.EventRecord{
			Key: key,
			Slots: model.MedalSlots{
				model.Gold:   {"USA"},
				model.Silver: {"GER", "AUT"},
				model.Bronze: nil,
			},
		}

		convey.Convey("Then the key should render with brackets", func() {
			convey.So(key.String(), convey.ShouldEqual, "[Slalom, Women, Standing]")
		})

		convey.Convey("When the record has no score", func() {
			convey.Convey("Then it should not be scored", func() {
				convey.So(rec.Scored(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When a score is set", func() {
			rec.SetScore(12)

			convey.Convey("Then it should be scored", func() {
				convey.So(rec.Scored(), convey.ShouldBeTrue)
				convey.So(*rec.Score, convey.ShouldEqual, 12)
			})
		})

		convey.Convey("When the record is cloned", func() {
			rec.SetScore(4)
			c := rec.Clone()
			c.Slots[model.Silver][0] = "FRA"
			*c.Score = 6

			convey.Convey("Then the original should be untouched", func() {
				convey.So(rec.Slots[model.Silver][0], convey.ShouldEqual, "GER")
				convey.So(*rec.Score, convey.ShouldEqual, 4)
				convey.So(rec.Equal(c), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When looking up a country", func() {
			m, ok := rec.Slots.Find("AUT")
			_, missing := rec.Slots.Find("NOR")

			convey.Convey("Then it should report the slot holding it", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(m, convey.ShouldEqual, model.Silver)
				convey.So(missing, convey.ShouldBeFalse)
				convey.So(rec.Slots.Empty(model.Bronze), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When comparing scores", func() {
			other := rec.Clone()

			convey.Convey("Then an unset and a set score should differ", func() {
				convey.So(rec.Equal(other), convey.ShouldBeTrue)
				other.SetScore(0)
				convey.So(rec.Equal(other), convey.ShouldBeFalse)
				rec.SetScore(0)
				convey.So(rec.Equal(other), convey.ShouldBeTrue)
			})
		})
	})
}
