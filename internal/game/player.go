package game

import "github.com/cardtable/kings-corner/internal/cards"

// Player holds a hand of cards. The Game that contains the player is the sole
// mutator of the hand.
type Player struct {
	ID   string
	Name string
	Hand []cards.Card
}

func (p *Player) AddCard(card cards.Card) {
	p.Hand = append(p.Hand, card)
}

// FindCard returns the card matching (rank, suit) if the player holds it.
func (p *Player) FindCard(rank string, suit cards.Suit) (cards.Card, bool) {
	for _, c := range p.Hand {
		if c.Rank == rank && c.Suit == suit {
			return c, true
		}
	}
	return cards.Card{}, false
}

// RemoveCard removes the first card matching (rank, suit) from the hand.
func (p *Player) RemoveCard(rank string, suit cards.Suit) bool {
	for i, c := range p.Hand {
		if c.Rank == rank && c.Suit == suit {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// HasWon reports whether the hand is empty.
func (p *Player) HasWon() bool { return len(p.Hand) == 0 }
