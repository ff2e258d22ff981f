package cards

// Suit is the wire glyph for a card suit.
type Suit string

const (
	SuitHearts   Suit = "♥"
	SuitDiamonds Suit = "♦"
	SuitClubs    Suit = "♣"
	SuitSpades   Suit = "♠"
)

// Suits lists all four suits in a stable order.
var Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Valid reports whether s is one of the four suit glyphs.
func (s Suit) Valid() bool {
	switch s {
	case SuitHearts, SuitDiamonds, SuitClubs, SuitSpades:
		return true
	}
	return false
}

type Color string

const (
	ColorRed   Color = "red"
	ColorBlack Color = "black"
)

// Ranks in ascending value order; values run 1 (ace) through 13 (king).
var Ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

const (
	RankAce  = "A"
	RankKing = "K"
)

// RankValue returns the numeric value of a rank, or 0 if the rank is unknown.
func RankValue(rank string) int {
	for i, r := range Ranks {
		if r == rank {
			return i + 1
		}
	}
	return 0
}

// Card is an immutable playing card. Equality is by (suit, rank).
type Card struct {
	Suit  Suit   `json:"suit"`
	Rank  string `json:"rank"`
	Value int    `json:"value"`
}

// NewCard builds a card with its value derived from the rank.
func NewCard(suit Suit, rank string) Card {
	return Card{Suit: suit, Rank: rank, Value: RankValue(rank)}
}

// Color derives red for hearts/diamonds, black otherwise.
func (c Card) Color() Color {
	if c.Suit == SuitHearts || c.Suit == SuitDiamonds {
		return ColorRed
	}
	return ColorBlack
}

// String returns the display name, e.g. "K♠".
func (c Card) String() string {
	return c.Rank + string(c.Suit)
}

// CanPlayOn reports whether c may be placed on target. A nil target means the
// pile is empty: foundations accept any card, corners only a King. Otherwise
// the move must descend by exactly one and alternate color; nothing plays on
// an ace.
func (c Card) CanPlayOn(target *Card, kind PileKind) bool {
	if target == nil {
		if kind == PileCorner {
			return c.Rank == RankKing
		}
		return true
	}
	return c.Value == target.Value-1 && c.Color() != target.Color()
}
