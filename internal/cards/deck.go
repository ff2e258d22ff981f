package cards

import (
	"errors"
	"math/rand"
)

// ErrInsufficientCards is returned when a deal asks for more cards than remain.
var ErrInsufficientCards = errors.New("not enough cards in deck")

// Deck is the shuffled 52-card draw source. It is shuffled once at
// construction; there is no reshuffle during play.
type Deck struct {
	cards []Card
}

// NewDeck builds all 52 distinct cards and shuffles them.
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// Deal removes and returns n cards from the top of the deck. Ownership of the
// returned cards transfers to the caller.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrInsufficientCards
	}
	dealt := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		top := d.cards[len(d.cards)-1]
		d.cards = d.cards[:len(d.cards)-1]
		dealt = append(dealt, top)
	}
	return dealt, nil
}

func (d *Deck) IsEmpty() bool { return len(d.cards) == 0 }

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int { return len(d.cards) }
