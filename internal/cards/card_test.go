package cards

import "testing"

func TestCanPlayOnDescendingAlternating(t *testing.T) {
	for _, movingSuit := range Suits {
		for _, targetSuit := range Suits {
			for mi, movingRank := range Ranks {
				for ti, targetRank := range Ranks {
					moving := NewCard(movingSuit, movingRank)
					target := NewCard(targetSuit, targetRank)
					want := mi+1 == ti && moving.Color() != target.Color()
					got := moving.CanPlayOn(&target, PileFoundation)
					if got != want {
						t.Fatalf("%s on %s: got %v, want %v", moving, target, got, want)
					}
				}
			}
		}
	}
}

func TestNothingPlaysOnAce(t *testing.T) {
	ace := NewCard(SuitHearts, RankAce)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			if NewCard(suit, rank).CanPlayOn(&ace, PileFoundation) {
				t.Fatalf("%s should not play on %s", NewCard(suit, rank), ace)
			}
		}
	}
}

func TestEmptyPileRules(t *testing.T) {
	king := NewCard(SuitHearts, RankKing)
	eight := NewCard(SuitSpades, "8")

	if !eight.CanPlayOn(nil, PileFoundation) {
		t.Fatalf("any card should start an empty foundation")
	}
	if eight.CanPlayOn(nil, PileCorner) {
		t.Fatalf("non-king should not start an empty corner")
	}
	if !king.CanPlayOn(nil, PileCorner) {
		t.Fatalf("king should start an empty corner")
	}
	if !king.CanPlayOn(nil, PileFoundation) {
		t.Fatalf("king should start an empty foundation too")
	}
}

func TestColorDerivation(t *testing.T) {
	if NewCard(SuitHearts, "2").Color() != ColorRed || NewCard(SuitDiamonds, "2").Color() != ColorRed {
		t.Fatalf("hearts and diamonds should be red")
	}
	if NewCard(SuitClubs, "2").Color() != ColorBlack || NewCard(SuitSpades, "2").Color() != ColorBlack {
		t.Fatalf("clubs and spades should be black")
	}
}

func TestDisplayName(t *testing.T) {
	if got := NewCard(SuitSpades, RankKing).String(); got != "K♠" {
		t.Fatalf("display name: got %q", got)
	}
	if got := NewCard(SuitHearts, "10").String(); got != "10♥" {
		t.Fatalf("display name: got %q", got)
	}
}
