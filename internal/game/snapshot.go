package game

import (
	"github.com/cardtable/kings-corner/internal/cards"
	"github.com/cardtable/kings-corner/pkg/gamedto"
)

func cardView(c cards.Card) gamedto.CardView {
	return gamedto.CardView{Rank: c.Rank, Suit: string(c.Suit), Color: string(c.Color())}
}

func pileView(p *cards.Pile) gamedto.PileView {
	v := gamedto.PileView{Cards: make([]gamedto.CardView, 0, len(p.Cards)), Size: p.Size()}
	for _, c := range p.Cards {
		v.Cards = append(v.Cards, cardView(c))
	}
	if top := p.Top(); top != nil {
		tv := cardView(*top)
		v.TopCard = &tv
	}
	return v
}

// Snapshot builds the full read-only state of the game, hands included.
func (g *Game) Snapshot() *gamedto.StateSnapshot {
	snap := &gamedto.StateSnapshot{
		GameID:           g.ID,
		Players:          make([]gamedto.PlayerView, 0, len(g.Players)),
		CurrentPlayer:    g.Current,
		FoundationPiles:  make(map[string]gamedto.PileView, len(g.Foundation)),
		CornerPiles:      make(map[string]gamedto.PileView, len(g.Corner)),
		DeckSize:         g.Deck.Remaining(),
		Started:          g.Started,
		Over:             g.Over,
		TurnActionsTaken: g.TurnActions,
	}
	for _, p := range g.Players {
		pv := gamedto.PlayerView{
			ID:       p.ID,
			Name:     p.Name,
			HandSize: len(p.Hand),
			Hand:     make([]gamedto.CardView, 0, len(p.Hand)),
		}
		for _, c := range p.Hand {
			pv.Hand = append(pv.Hand, cardView(c))
		}
		snap.Players = append(snap.Players, pv)
	}
	if cur := g.CurrentPlayer(); cur != nil {
		snap.CurrentPlayerName = cur.Name
	}
	for name, p := range g.Foundation {
		snap.FoundationPiles[name] = pileView(p)
	}
	for name, p := range g.Corner {
		snap.CornerPiles[name] = pileView(p)
	}
	if g.Winner != nil {
		snap.Winner = g.Winner.Name
	}
	return snap
}

// Summary is the lobby-browser view.
func (g *Game) Summary() gamedto.GameSummary {
	return gamedto.GameSummary{
		GameID:     g.ID,
		Players:    len(g.Players),
		MaxPlayers: MaxPlayers,
		Started:    g.Started,
		Over:       g.Over,
	}
}

// Record builds the persistence row for a finished game.
func (g *Game) Record() *gamedto.GameRecord {
	rec := &gamedto.GameRecord{
		GameID:        g.ID,
		DeckRemaining: g.Deck.Remaining(),
		StartedAt:     g.StartedAt,
		EndedAt:       g.EndedAt,
	}
	if !g.StartedAt.IsZero() && !g.EndedAt.IsZero() {
		rec.Duration = g.EndedAt.Sub(g.StartedAt)
	}
	if g.Winner != nil {
		rec.WinnerID = g.Winner.ID
		rec.WinnerName = g.Winner.Name
	}
	for _, p := range g.Players {
		rec.Players = append(rec.Players, gamedto.RecordPlayer{ID: p.ID, Name: p.Name, HandSize: len(p.Hand)})
	}
	return rec
}
