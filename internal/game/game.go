package game

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cardtable/kings-corner/internal/cards"
)

var (
	ErrGameFull          = errors.New("game is full")
	ErrAlreadyStarted    = errors.New("game already started")
	ErrNotEnoughPlayers  = errors.New("need at least 2 players to start")
	ErrGameNotInProgress = errors.New("game not in progress")
	ErrGameAlreadyOver   = errors.New("game already over")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrInvalidPile       = errors.New("invalid pile")
	ErrCardNotInHand     = errors.New("card not in hand")
	ErrIllegalMove       = errors.New("illegal move")
	ErrEmptySourcePile   = errors.New("source pile is empty")
	ErrDeckEmpty         = errors.New("deck is empty")
)

const (
	MinPlayers = 2
	MaxPlayers = 4
	HandSize   = 7
)

// Fixed pile vocabulary.
var (
	FoundationNames = []string{"north", "south", "east", "west"}
	CornerNames     = []string{"ne", "nw", "se", "sw"}
)

// Game is one Kings in the Corner match: the players in join order, the eight
// piles, the deck, and the turn pointer. It owns all contained state and is
// not safe for concurrent use; callers serialize access per game.
type Game struct {
	ID         string
	Players    []*Player
	Current    int
	Foundation map[string]*cards.Pile
	Corner     map[string]*cards.Pile
	Deck       *cards.Deck

	Started     bool
	Over        bool
	Winner      *Player
	TurnActions int

	CreatedAt time.Time
	StartedAt time.Time
	EndedAt   time.Time
}

func New() *Game {
	g := &Game{
		ID:         uuid.NewString(),
		Foundation: make(map[string]*cards.Pile, len(FoundationNames)),
		Corner:     make(map[string]*cards.Pile, len(CornerNames)),
		Deck:       cards.NewDeck(),
		CreatedAt:  time.Now(),
	}
	for _, name := range FoundationNames {
		g.Foundation[name] = cards.NewPile(name, cards.PileFoundation)
	}
	for _, name := range CornerNames {
		g.Corner[name] = cards.NewPile(name, cards.PileCorner)
	}
	return g
}

// AddPlayer joins a player during the lobby phase. Join order fixes turn
// order. Returns the new player's id.
func (g *Game) AddPlayer(name string) (string, error) {
	if g.Started {
		return "", ErrAlreadyStarted
	}
	if len(g.Players) >= MaxPlayers {
		return "", ErrGameFull
	}
	p := &Player{ID: uuid.NewString(), Name: name}
	g.Players = append(g.Players, p)
	return p.ID, nil
}

// Start deals seven cards to each player, seeds each foundation pile with one
// forced card, and hands the turn to the first joiner.
func (g *Game) Start() error {
	if g.Started {
		return ErrAlreadyStarted
	}
	if len(g.Players) < MinPlayers {
		return ErrNotEnoughPlayers
	}
	for _, p := range g.Players {
		hand, err := g.Deck.Deal(HandSize)
		if err != nil {
			return err
		}
		p.Hand = hand
	}
	for _, name := range FoundationNames {
		seed, err := g.Deck.Deal(1)
		if err != nil {
			return err
		}
		g.Foundation[name].AddCard(seed[0], true)
	}
	g.Started = true
	g.Current = 0
	g.StartedAt = time.Now()
	return nil
}

// CurrentPlayer returns the player whose turn it is, or nil before any join.
func (g *Game) CurrentPlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.Current]
}

// Player resolves a player id within this game.
func (g *Game) Player(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Pile resolves a pile name against both foundation and corner piles.
func (g *Game) Pile(name string) *cards.Pile {
	if p, ok := g.Foundation[name]; ok {
		return p
	}
	if p, ok := g.Corner[name]; ok {
		return p
	}
	return nil
}

func (g *Game) inProgress() error {
	if !g.Started {
		return ErrGameNotInProgress
	}
	if g.Over {
		return ErrGameAlreadyOver
	}
	return nil
}

func (g *Game) requireTurn(playerID string) (*Player, error) {
	cur := g.CurrentPlayer()
	if cur == nil || cur.ID != playerID {
		return nil, ErrNotYourTurn
	}
	return cur, nil
}

// PlayCard moves the identified card from the current player's hand onto the
// named pile. The turn does not advance; a player may play any number of
// legal cards. When the play empties the hand the game finishes with that
// player as winner. Returns the played card.
func (g *Game) PlayCard(playerID, rank string, suit cards.Suit, pileName string) (cards.Card, error) {
	if err := g.inProgress(); err != nil {
		return cards.Card{}, err
	}
	cur, err := g.requireTurn(playerID)
	if err != nil {
		return cards.Card{}, err
	}
	pile := g.Pile(pileName)
	if pile == nil {
		return cards.Card{}, ErrInvalidPile
	}
	card, ok := cur.FindCard(rank, suit)
	if !ok {
		return cards.Card{}, ErrCardNotInHand
	}
	if !card.CanPlayOn(pile.Top(), pile.Kind) {
		return cards.Card{}, ErrIllegalMove
	}
	cur.RemoveCard(rank, suit)
	pile.AddCard(card, true)
	g.TurnActions++

	if cur.HasWon() {
		g.Over = true
		g.Winner = cur
		g.EndedAt = time.Now()
	}
	return card, nil
}

// MovePile relocates the whole source pile onto the target pile. Does not end
// the turn.
func (g *Game) MovePile(playerID, fromName, toName string) error {
	if err := g.inProgress(); err != nil {
		return err
	}
	if _, err := g.requireTurn(playerID); err != nil {
		return err
	}
	src := g.Pile(fromName)
	dst := g.Pile(toName)
	if src == nil || dst == nil || src == dst {
		return ErrInvalidPile
	}
	if src.IsEmpty() {
		return ErrEmptySourcePile
	}
	if !src.MoveTo(dst) {
		return ErrIllegalMove
	}
	g.TurnActions++
	return nil
}

// DrawCard moves one card from the deck to the current player's hand and
// unconditionally ends the turn. Drawing is the designated pass action and
// the only action that advances the turn pointer.
func (g *Game) DrawCard(playerID string) (cards.Card, error) {
	if err := g.inProgress(); err != nil {
		return cards.Card{}, err
	}
	cur, err := g.requireTurn(playerID)
	if err != nil {
		return cards.Card{}, err
	}
	if g.Deck.IsEmpty() {
		return cards.Card{}, ErrDeckEmpty
	}
	dealt, err := g.Deck.Deal(1)
	if err != nil {
		return cards.Card{}, err
	}
	cur.AddCard(dealt[0])
	g.EndTurn()
	return dealt[0], nil
}

// EndTurn advances the turn pointer and resets the per-turn action counter.
// Turn ownership is the caller's concern; DrawCard checks it before calling.
func (g *Game) EndTurn() {
	g.TurnActions = 0
	if len(g.Players) > 0 {
		g.Current = (g.Current + 1) % len(g.Players)
	}
}
