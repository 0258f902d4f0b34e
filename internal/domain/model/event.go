// Package model contains domain models passed between layers.
package model

import (
	"slices"
	"strconv"
)

// Medal identifies one podium slot.
type Medal int

// Podium slots, highest value first.
const (
	Gold Medal = iota
	Silver
	Bronze
)

// medalCount is the number of podium slots.
const medalCount = 3

// ScoringOrder is the order slots are visited when scoring: low to high value.
// Duplicate countries produced by ties are consumed in this order.
var ScoringOrder = [medalCount]Medal{Bronze, Silver, Gold} //nolint:gochecknoglobals // fixed slot order

// String returns the display name of the medal, e.g. "Gold".
func (m Medal) String() string {
	switch m {
	case Gold:
		return "Gold"
	case Silver:
		return "Silver"
	case Bronze:
		return "Bronze"
	default:
		return "Medal(" + strconv.Itoa(int(m)) + ")"
	}
}

// EventKey identifies an event and joins result and guess tables.
type EventKey struct {
	Event  string // event name, e.g. "Downhill"
	Gender string // gender category
	Class  string // class or division
}

// String renders the key as "[Event, Gender, Class]".
func (k EventKey) String() string {
	return "[" + k.Event + ", " + k.Gender + ", " + k.Class + "]"
}

// MedalSlots holds the countries placed in each podium slot. A slot may be
// empty (no award) or hold several countries (tie).
type MedalSlots [medalCount][]string

// Clone returns a deep copy of the slots.
func (s MedalSlots) Clone() MedalSlots {
	var out MedalSlots
	for i := range s {
		if s[i] != nil {
			out[i] = slices.Clone(s[i])
		}
	}
	return out
}

// Find returns the first slot, in ScoringOrder, that holds country.
func (s MedalSlots) Find(country string) (Medal, bool) {
	for _, m := range ScoringOrder {
		if slices.Contains(s[m], country) {
			return m, true
		}
	}
	return 0, false
}

// Empty reports whether the slot for m holds no country.
func (s MedalSlots) Empty(m Medal) bool {
	return len(s[m]) == 0
}

// EventRecord is one row of a result or guess table.
type EventRecord struct {
	Key   EventKey
	Slots MedalSlots
	// Score is nil until the event has been scored.
	Score *int
}

// Scored reports whether a score has been recorded.
func (r EventRecord) Scored() bool {
	return r.Score != nil
}

// SetScore records points as the event score.
func (r *EventRecord) SetScore(points int) {
	r.Score = &points
}

// Clone returns a deep copy of the record.
func (r EventRecord) Clone() EventRecord {
	out := EventRecord{Key: r.Key, Slots: r.Slots.Clone()}
	if r.Score != nil {
		out.SetScore(*r.Score)
	}
	return out
}

// Equal reports whether two records hold the same key, slots and score.
func (r EventRecord) Equal(o EventRecord) bool {
	if r.Key != o.Key {
		return false
	}
	for i := range r.Slots {
		if !slices.Equal(r.Slots[i], o.Slots[i]) {
			return false
		}
	}
	switch {
	case r.Score == nil && o.Score == nil:
		return true
	case r.Score == nil || o.Score == nil:
		return false
	default:
		return *r.Score == *o.Score
	}
}
