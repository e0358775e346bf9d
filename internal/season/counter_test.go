package season_test

import (
	"testing"

	"reelsort/internal/season"
)

func TestCounterStartsAtOne(t *testing.T) {
	c := season.NewCounter()
	key := season.Key{Series: "Die Sendung", Season: 1, HasSeason: true}
	if got := c.Next(key); got != 1 {
		t.Fatalf("Next on fresh key: got %d want 1", got)
	}
	// Next must not itself advance anything.
	if got := c.Next(key); got != 1 {
		t.Fatalf("repeated Next changed state: got %d", got)
	}
}

func TestCounterAdvanceAccumulatesAcrossDiscs(t *testing.T) {
	c := season.NewCounter()
	key := season.Key{Series: "Die Sendung", Season: 1, HasSeason: true}

	c.Advance(key, 4) // disc 1: four episodes
	if got := c.Next(key); got != 5 {
		t.Fatalf("after first disc: got %d want 5", got)
	}
	c.Advance(key, 5) // disc 2: three singles and a double
	if got := c.Next(key); got != 10 {
		t.Fatalf("after second disc: got %d want 10", got)
	}
}

func TestCounterKeysAreIndependent(t *testing.T) {
	c := season.NewCounter()
	s1 := season.Key{Series: "Die Sendung", Season: 1, HasSeason: true}
	s2 := season.Key{Series: "Die Sendung", Season: 2, HasSeason: true}
	other := season.Key{Series: "Anderes"}

	c.Advance(s1, 6)
	if got := c.Next(s2); got != 1 {
		t.Fatalf("sibling season polluted: got %d", got)
	}
	if got := c.Next(other); got != 1 {
		t.Fatalf("unrelated series polluted: got %d", got)
	}
}

func TestCounterNegativeDeltaIsIgnored(t *testing.T) {
	c := season.NewCounter()
	key := season.Key{Series: "Die Sendung", Season: 1, HasSeason: true}
	c.Advance(key, 3)
	c.Advance(key, -2)
	if got := c.Next(key); got != 4 {
		t.Fatalf("counter moved backwards: got %d want 4", got)
	}
}

func TestCounterSnapshotIsACopy(t *testing.T) {
	c := season.NewCounter()
	key := season.Key{Series: "Die Sendung", Season: 1, HasSeason: true}
	c.Advance(key, 2)

	snap := c.Snapshot()
	if snap[key] != 3 {
		t.Fatalf("snapshot value: got %d want 3", snap[key])
	}
	snap[key] = 99
	if got := c.Next(key); got != 3 {
		t.Fatalf("snapshot mutation leaked into counter: got %d", got)
	}
}
