package game

import (
	"errors"
	"testing"

	"github.com/cardtable/kings-corner/internal/cards"
)

func newStartedGame(t *testing.T) (*Game, string, string) {
	t.Helper()
	g := New()
	alice, err := g.AddPlayer("Alice")
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	bob, err := g.AddPlayer("Bob")
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if err := g.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return g, alice, bob
}

// giveCard puts a known card into the player's hand so move tests are
// deterministic despite the shuffled deal.
func giveCard(g *Game, playerID string, c cards.Card) {
	g.Player(playerID).AddCard(c)
}

func TestLobbyRules(t *testing.T) {
	g := New()
	if err := g.Start(); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("expected ErrNotEnoughPlayers, got %v", err)
	}
	if _, err := g.AddPlayer("Alice"); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if err := g.Start(); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("one player should not be enough, got %v", err)
	}
	for _, name := range []string{"Bob", "Carol", "Dave"} {
		if _, err := g.AddPlayer(name); err != nil {
			t.Fatalf("AddPlayer(%s): %v", name, err)
		}
	}
	if _, err := g.AddPlayer("Eve"); !errors.Is(err, ErrGameFull) {
		t.Fatalf("expected ErrGameFull, got %v", err)
	}
	if err := g.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := g.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
	if _, err := g.AddPlayer("Late"); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("join after start should fail, got %v", err)
	}
}

func TestStartDealsAndSeeds(t *testing.T) {
	g, _, _ := newStartedGame(t)
	for _, p := range g.Players {
		if len(p.Hand) != HandSize {
			t.Fatalf("%s has %d cards, want %d", p.Name, len(p.Hand), HandSize)
		}
	}
	for _, name := range FoundationNames {
		if g.Foundation[name].Size() != 1 {
			t.Fatalf("foundation %s has %d cards, want 1", name, g.Foundation[name].Size())
		}
	}
	for _, name := range CornerNames {
		if !g.Corner[name].IsEmpty() {
			t.Fatalf("corner %s should start empty", name)
		}
	}
	// 52 - 2*7 - 4 seeds
	if g.Deck.Remaining() != 34 {
		t.Fatalf("deck has %d cards, want 34", g.Deck.Remaining())
	}
	if cur := g.CurrentPlayer(); cur == nil || cur.Name != "Alice" {
		t.Fatalf("first joiner should start")
	}
}

func TestActionsBeforeStart(t *testing.T) {
	g := New()
	id, _ := g.AddPlayer("Alice")
	if _, err := g.PlayCard(id, "K", cards.SuitHearts, "north"); !errors.Is(err, ErrGameNotInProgress) {
		t.Fatalf("expected ErrGameNotInProgress, got %v", err)
	}
	if _, err := g.DrawCard(id); !errors.Is(err, ErrGameNotInProgress) {
		t.Fatalf("expected ErrGameNotInProgress, got %v", err)
	}
	if err := g.MovePile(id, "north", "west"); !errors.Is(err, ErrGameNotInProgress) {
		t.Fatalf("expected ErrGameNotInProgress, got %v", err)
	}
}

func TestTurnIntegrity(t *testing.T) {
	g, _, bob := newStartedGame(t)
	before := g.Snapshot()

	if _, err := g.PlayCard(bob, "K", cards.SuitHearts, "north"); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if _, err := g.DrawCard(bob); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if err := g.MovePile(bob, "north", "west"); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}

	after := g.Snapshot()
	if after.DeckSize != before.DeckSize || after.CurrentPlayer != before.CurrentPlayer {
		t.Fatalf("rejected actions mutated state")
	}
	for i := range before.Players {
		if after.Players[i].HandSize != before.Players[i].HandSize {
			t.Fatalf("rejected actions changed a hand")
		}
	}
}

func TestDrawEndsTurn(t *testing.T) {
	g, alice, bob := newStartedGame(t)
	aliceHand := len(g.Player(alice).Hand)

	if _, err := g.DrawCard(alice); err != nil {
		t.Fatalf("DrawCard: %v", err)
	}
	if len(g.Player(alice).Hand) != aliceHand+1 {
		t.Fatalf("draw did not add a card")
	}
	if cur := g.CurrentPlayer(); cur.ID != bob {
		t.Fatalf("draw should advance the turn")
	}
	if g.TurnActions != 0 {
		t.Fatalf("turn counter should reset on turn end")
	}
	// wraps back around
	if _, err := g.DrawCard(bob); err != nil {
		t.Fatalf("DrawCard: %v", err)
	}
	if cur := g.CurrentPlayer(); cur.ID != alice {
		t.Fatalf("turn should wrap modulo player count")
	}
}

func TestPlayCardDoesNotEndTurn(t *testing.T) {
	g, alice, _ := newStartedGame(t)
	// put a king in hand and play it to an empty corner, twice over two corners
	giveCard(g, alice, cards.NewCard(cards.SuitHearts, "K"))
	giveCard(g, alice, cards.NewCard(cards.SuitSpades, "K"))

	if _, err := g.PlayCard(alice, "K", cards.SuitHearts, "ne"); err != nil {
		t.Fatalf("PlayCard: %v", err)
	}
	if cur := g.CurrentPlayer(); cur.ID != alice {
		t.Fatalf("play must not advance the turn")
	}
	if _, err := g.PlayCard(alice, "K", cards.SuitSpades, "nw"); err != nil {
		t.Fatalf("second play in same turn: %v", err)
	}
	if g.TurnActions != 2 {
		t.Fatalf("turn counter is %d, want 2", g.TurnActions)
	}
}

func TestPlayCardErrors(t *testing.T) {
	g, alice, _ := newStartedGame(t)
	if _, err := g.PlayCard(alice, "K", cards.SuitHearts, "nowhere"); !errors.Is(err, ErrInvalidPile) {
		t.Fatalf("expected ErrInvalidPile, got %v", err)
	}

	// a card the player does not hold
	g.Player(alice).RemoveCard("K", cards.SuitHearts)
	if _, err := g.PlayCard(alice, "K", cards.SuitHearts, "ne"); !errors.Is(err, ErrCardNotInHand) {
		t.Fatalf("expected ErrCardNotInHand, got %v", err)
	}

	// a non-king never starts a corner
	giveCard(g, alice, cards.NewCard(cards.SuitSpades, "8"))
	if _, err := g.PlayCard(alice, "8", cards.SuitSpades, "ne"); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
	// ...but a king does
	giveCard(g, alice, cards.NewCard(cards.SuitHearts, "K"))
	if _, err := g.PlayCard(alice, "K", cards.SuitHearts, "ne"); err != nil {
		t.Fatalf("king onto empty corner: %v", err)
	}
}

func TestPlayOntoEmptyFoundation(t *testing.T) {
	g, alice, _ := newStartedGame(t)
	g.Foundation["north"].Cards = nil
	giveCard(g, alice, cards.NewCard(cards.SuitSpades, "8"))
	if _, err := g.PlayCard(alice, "8", cards.SuitSpades, "north"); err != nil {
		t.Fatalf("any card should start an empty foundation: %v", err)
	}
}

func TestMovePileScenario(t *testing.T) {
	g, alice, _ := newStartedGame(t)
	g.Foundation["north"].Cards = []cards.Card{
		cards.NewCard(cards.SuitSpades, "8"),
		cards.NewCard(cards.SuitHearts, "7"),
	}
	g.Foundation["west"].Cards = []cards.Card{cards.NewCard(cards.SuitClubs, "6")}
	g.Foundation["east"].Cards = nil

	// bottom card (black 8) does not fit on black 6
	if err := g.MovePile(alice, "north", "west"); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
	// moving onto an empty foundation succeeds unconditionally
	if err := g.MovePile(alice, "north", "east"); err != nil {
		t.Fatalf("MovePile onto empty foundation: %v", err)
	}
	if !g.Foundation["north"].IsEmpty() || g.Foundation["east"].Size() != 2 {
		t.Fatalf("pile contents not relocated")
	}
	if cur := g.CurrentPlayer(); cur.ID != alice {
		t.Fatalf("move pile must not advance the turn")
	}
}

func TestMovePileEmptySource(t *testing.T) {
	g, alice, _ := newStartedGame(t)
	if err := g.MovePile(alice, "ne", "north"); !errors.Is(err, ErrEmptySourcePile) {
		t.Fatalf("expected ErrEmptySourcePile, got %v", err)
	}
}

func TestWinDetection(t *testing.T) {
	g, alice, _ := newStartedGame(t)
	// shrink the hand to a single playable king
	g.Player(alice).Hand = []cards.Card{cards.NewCard(cards.SuitHearts, "K")}

	card, err := g.PlayCard(alice, "K", cards.SuitHearts, "ne")
	if err != nil {
		t.Fatalf("PlayCard: %v", err)
	}
	if card.String() != "K♥" {
		t.Fatalf("played card is %s", card)
	}
	if !g.Over || g.Winner == nil || g.Winner.ID != alice {
		t.Fatalf("game should finish with Alice as winner")
	}
	// no further mutation accepted
	if _, err := g.DrawCard(alice); !errors.Is(err, ErrGameAlreadyOver) {
		t.Fatalf("expected ErrGameAlreadyOver, got %v", err)
	}
}

func TestDrawNeverWins(t *testing.T) {
	g, alice, _ := newStartedGame(t)
	g.Player(alice).Hand = nil // empty hand outside a play never finishes the game
	if _, err := g.DrawCard(alice); err != nil {
		t.Fatalf("DrawCard: %v", err)
	}
	if g.Over {
		t.Fatalf("drawing must not finish the game")
	}
}

func TestDeckExhaustion(t *testing.T) {
	g, alice, bob := newStartedGame(t)
	ids := []string{alice, bob}
	for i := 0; !g.Deck.IsEmpty(); i++ {
		if _, err := g.DrawCard(ids[i%2]); err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
	}
	cur := g.CurrentPlayer()
	if _, err := g.DrawCard(cur.ID); !errors.Is(err, ErrDeckEmpty) {
		t.Fatalf("expected ErrDeckEmpty, got %v", err)
	}
	if g.Over {
		t.Fatalf("an empty deck does not end the game")
	}
	// the failed draw must not advance the turn
	if g.CurrentPlayer().ID != cur.ID {
		t.Fatalf("failed draw advanced the turn")
	}
}

// allCards collects the multiset of every card in the game.
func allCards(g *Game) map[cards.Card]int {
	seen := make(map[cards.Card]int)
	add := func(cs []cards.Card) {
		for _, c := range cs {
			seen[c]++
		}
	}
	for _, p := range g.Players {
		add(p.Hand)
	}
	for _, p := range g.Foundation {
		add(p.Cards)
	}
	for _, p := range g.Corner {
		add(p.Cards)
	}
	if rest, err := g.Deck.Deal(g.Deck.Remaining()); err == nil {
		add(rest)
	}
	return seen
}

func TestConservation(t *testing.T) {
	g, alice, bob := newStartedGame(t)
	// churn some state first
	if _, err := g.DrawCard(alice); err != nil {
		t.Fatalf("DrawCard: %v", err)
	}
	if _, err := g.DrawCard(bob); err != nil {
		t.Fatalf("DrawCard: %v", err)
	}
	seen := allCards(g)
	if len(seen) != 52 {
		t.Fatalf("expected 52 distinct cards, got %d", len(seen))
	}
	for c, n := range seen {
		if n != 1 {
			t.Fatalf("card %s present %d times", c, n)
		}
	}
}

func TestPileAlternationInvariant(t *testing.T) {
	g, alice, _ := newStartedGame(t)
	giveCard(g, alice, cards.NewCard(cards.SuitHearts, "K"))
	giveCard(g, alice, cards.NewCard(cards.SuitSpades, "Q"))
	giveCard(g, alice, cards.NewCard(cards.SuitDiamonds, "J"))
	for _, play := range []struct {
		rank string
		suit cards.Suit
	}{{"K", cards.SuitHearts}, {"Q", cards.SuitSpades}, {"J", cards.SuitDiamonds}} {
		if _, err := g.PlayCard(alice, play.rank, play.suit, "se"); err != nil {
			t.Fatalf("PlayCard %s%s: %v", play.rank, play.suit, err)
		}
	}
	for _, piles := range []map[string]*cards.Pile{g.Foundation, g.Corner} {
		for name, p := range piles {
			for i := 1; i < len(p.Cards); i++ {
				prev, cur := p.Cards[i-1], p.Cards[i]
				if cur.Value != prev.Value-1 || cur.Color() == prev.Color() {
					t.Fatalf("pile %s violates alternation at %d: %s on %s", name, i, cur, prev)
				}
			}
		}
	}
}

func TestSnapshotShape(t *testing.T) {
	g, _, _ := newStartedGame(t)
	snap := g.Snapshot()
	if snap.GameID != g.ID || len(snap.Players) != 2 {
		t.Fatalf("snapshot header wrong")
	}
	if snap.DeckSize != 34 || !snap.Started || snap.Over {
		t.Fatalf("snapshot state wrong: deck=%d", snap.DeckSize)
	}
	if len(snap.FoundationPiles) != 4 || len(snap.CornerPiles) != 4 {
		t.Fatalf("snapshot piles wrong")
	}
	if snap.FoundationPiles["north"].TopCard == nil {
		t.Fatalf("seeded foundation should expose a top card")
	}
	// full hands are exposed; hiding is the caller's job
	if len(snap.Players[0].Hand) != snap.Players[0].HandSize {
		t.Fatalf("snapshot should carry full hands")
	}
}
