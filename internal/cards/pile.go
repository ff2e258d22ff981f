package cards

// PileKind distinguishes the two pile variants.
type PileKind string

const (
	PileFoundation PileKind = "foundation"
	PileCorner     PileKind = "corner"
)

// Pile is an ordered stack of cards; the last element is the top. A non-empty
// pile always alternates color bottom-to-top with value decreasing by one, and
// a corner pile's bottom card is a King.
type Pile struct {
	Name  string
	Kind  PileKind
	Cards []Card
}

func NewPile(name string, kind PileKind) *Pile {
	return &Pile{Name: name, Kind: kind}
}

// Top returns the top card, or nil when the pile is empty.
func (p *Pile) Top() *Card {
	if len(p.Cards) == 0 {
		return nil
	}
	return &p.Cards[len(p.Cards)-1]
}

func (p *Pile) IsEmpty() bool { return len(p.Cards) == 0 }

func (p *Pile) Size() int { return len(p.Cards) }

// AddCard appends card if the move is legal. force bypasses the legality check
// and is used only when seeding foundations at game start. Returns false
// without mutating the pile on an illegal move.
func (p *Pile) AddCard(card Card, force bool) bool {
	if !force && !card.CanPlayOn(p.Top(), p.Kind) {
		return false
	}
	p.Cards = append(p.Cards, card)
	return true
}

// MoveTo relocates the entire pile onto target, preserving order, iff the
// bottom card fits on target's top. The move is atomic: on failure neither
// pile changes.
func (p *Pile) MoveTo(target *Pile) bool {
	if len(p.Cards) == 0 {
		return false
	}
	bottom := p.Cards[0]
	if !bottom.CanPlayOn(target.Top(), target.Kind) {
		return false
	}
	target.Cards = append(target.Cards, p.Cards...)
	p.Cards = nil
	return true
}
