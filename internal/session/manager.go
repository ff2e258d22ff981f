package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cardtable/kings-corner/internal/cards"
	"github.com/cardtable/kings-corner/internal/game"
	"github.com/cardtable/kings-corner/internal/msgcat"
	"github.com/cardtable/kings-corner/pkg/gamedto"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrTooManyGames   = errors.New("too many concurrent games")
)

// DefaultSessionTimeout is how long a game may sit idle before the sweep
// reclaims it.
const DefaultSessionTimeout = time.Hour

// Repository persists finished-game results. Optional; a nil repository
// disables persistence.
type Repository interface {
	SaveResult(ctx context.Context, rec *gamedto.GameRecord) error
}

// entry pairs a game with its own lock so actions on different games never
// serialize against each other. lastActivity is guarded by Manager.mu.
type entry struct {
	mu           sync.RWMutex
	game         *game.Game
	lastActivity time.Time
}

// Config tunes a Manager.
type Config struct {
	SessionTimeout time.Duration
	MaxGames       int
}

// Manager is the process-wide registry of live games: game id → game,
// player id → game id, and per-game last-activity stamps. All mutating calls
// on a given game are mutually exclusive; different games proceed
// independently. Expired games are reclaimed opportunistically on lookups.
type Manager struct {
	mu      sync.RWMutex
	games   map[string]*entry
	players map[string]string // playerID -> gameID

	timeout  time.Duration
	maxGames int
	now      func() time.Time

	repo   Repository
	cat    *msgcat.Catalog
	logger *zap.Logger
}

func NewManager(cfg Config, cat *msgcat.Catalog, logger *zap.Logger) *Manager {
	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = DefaultSessionTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		games:    make(map[string]*entry),
		players:  make(map[string]string),
		timeout:  cfg.SessionTimeout,
		maxGames: cfg.MaxGames,
		now:      time.Now,
		cat:      cat,
		logger:   logger,
	}
}

// AttachRepository wires an optional store for finished-game results.
func (m *Manager) AttachRepository(r Repository) {
	if m != nil {
		m.repo = r
	}
}

// CreateGame constructs a new lobby game with the creator as first player.
func (m *Manager) CreateGame(ctx context.Context, creatorName string) (gameID, playerID string, err error) {
	m.sweep()

	g := game.New()
	playerID, err = g.AddPlayer(creatorName)
	if err != nil {
		return "", "", err
	}

	m.mu.Lock()
	if m.maxGames > 0 && len(m.games) >= m.maxGames {
		m.mu.Unlock()
		return "", "", ErrTooManyGames
	}
	m.games[g.ID] = &entry{game: g, lastActivity: m.now()}
	m.players[playerID] = g.ID
	m.mu.Unlock()

	m.logger.Info("game_create",
		zap.String("game_id", g.ID),
		zap.String("player_id", playerID),
		zap.String("player_name", creatorName),
	)
	return g.ID, playerID, nil
}

// JoinGame adds a player to an existing lobby game. Failure is neutral:
// callers distinguish it only by the missing player id, never by kind.
func (m *Manager) JoinGame(ctx context.Context, gameID, name string) (string, bool) {
	e := m.lookupGame(gameID)
	if e == nil {
		return "", false
	}

	e.mu.Lock()
	playerID, err := e.game.AddPlayer(name)
	e.mu.Unlock()
	if err != nil {
		return "", false
	}

	m.mu.Lock()
	m.players[playerID] = gameID
	m.mu.Unlock()
	m.touch(gameID)

	m.logger.Info("game_join",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
		zap.String("player_name", name),
	)
	return playerID, true
}

// StartGame starts the game the player belongs to. Any current member may
// start it, not only the creator.
func (m *Manager) StartGame(ctx context.Context, gameID, playerID string) bool {
	e := m.lookupGame(gameID)
	if e == nil {
		return false
	}

	e.mu.Lock()
	member := e.game.Player(playerID) != nil
	var err error
	if member {
		err = e.game.Start()
	}
	e.mu.Unlock()
	if !member || err != nil {
		return false
	}

	m.touch(gameID)
	m.logger.Info("game_start", zap.String("game_id", gameID))
	return true
}

// PlayCard plays the identified card onto the named pile for the player's
// game. Returns success plus a human-readable message.
func (m *Manager) PlayCard(ctx context.Context, playerID, rank, suit, pileName string) (bool, string) {
	s := cards.Suit(suit)
	if !s.Valid() {
		return false, m.message("play.invalid_suit", "Invalid suit", nil)
	}
	e, gameID := m.lookupPlayer(playerID)
	if e == nil {
		return false, m.message("session.game_not_found", "Game not found", nil)
	}

	e.mu.Lock()
	card, err := e.game.PlayCard(playerID, rank, s, pileName)
	var rec *gamedto.GameRecord
	var winner string
	if err == nil && e.game.Over {
		rec = e.game.Record()
		winner = e.game.Winner.Name
	}
	e.mu.Unlock()

	if err != nil {
		return false, m.actionMessage(err)
	}
	m.touch(gameID)
	m.logger.Info("play_card",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
		zap.String("card", card.String()),
		zap.String("pile", pileName),
	)

	if rec != nil {
		m.finishGame(ctx, gameID, rec)
		return true, m.message("play.win", winner+" wins!", map[string]any{"Winner": winner})
	}
	return true, m.message("play.success", "Card played successfully", nil)
}

// MovePile relocates an entire pile within the player's game.
func (m *Manager) MovePile(ctx context.Context, playerID, fromName, toName string) (bool, string) {
	e, gameID := m.lookupPlayer(playerID)
	if e == nil {
		return false, m.message("session.game_not_found", "Game not found", nil)
	}

	e.mu.Lock()
	err := e.game.MovePile(playerID, fromName, toName)
	e.mu.Unlock()

	if err != nil {
		return false, m.moveMessage(err)
	}
	m.touch(gameID)
	m.logger.Info("move_pile",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
		zap.String("from", fromName),
		zap.String("to", toName),
	)
	return true, m.message("move.success", "Pile moved successfully", nil)
}

// DrawCard draws one card for the player and ends their turn.
func (m *Manager) DrawCard(ctx context.Context, playerID string) (bool, string) {
	e, gameID := m.lookupPlayer(playerID)
	if e == nil {
		return false, m.message("session.game_not_found", "Game not found", nil)
	}

	e.mu.Lock()
	card, err := e.game.DrawCard(playerID)
	e.mu.Unlock()

	if err != nil {
		return false, m.actionMessage(err)
	}
	m.touch(gameID)
	m.logger.Info("draw_card",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
	)
	return true, m.message("draw.success", "Drew "+card.String(), map[string]any{"Card": card.String()})
}

// EndTurn voluntarily ends the player's turn without drawing. A call from a
// player who is not the current player is rejected, not silently ignored.
func (m *Manager) EndTurn(ctx context.Context, playerID string) bool {
	e, gameID := m.lookupPlayer(playerID)
	if e == nil {
		return false
	}

	e.mu.Lock()
	cur := e.game.CurrentPlayer()
	owns := e.game.Started && !e.game.Over && cur != nil && cur.ID == playerID
	if owns {
		e.game.EndTurn()
	}
	e.mu.Unlock()
	if !owns {
		return false
	}

	m.touch(gameID)
	m.logger.Info("end_turn",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
	)
	return true
}

// GameState returns a read-only snapshot, or absent for unknown or expired
// games. The snapshot is taken under the game's read lock so it is never torn.
func (m *Manager) GameState(gameID string) (*gamedto.StateSnapshot, bool) {
	e := m.lookupGame(gameID)
	if e == nil {
		return nil, false
	}
	e.mu.RLock()
	snap := e.game.Snapshot()
	e.mu.RUnlock()
	m.touch(gameID)
	return snap, true
}

// ListGames returns lobby summaries of all live games, ordered by game id.
func (m *Manager) ListGames() []gamedto.GameSummary {
	m.sweep()
	m.mu.RLock()
	out := make([]gamedto.GameSummary, 0, len(m.games))
	for _, e := range m.games {
		e.mu.RLock()
		out = append(out, e.game.Summary())
		e.mu.RUnlock()
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].GameID < out[j].GameID })
	return out
}

func (m *Manager) lookupGame(gameID string) *entry {
	m.sweep()
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.games[gameID]
}

func (m *Manager) lookupPlayer(playerID string) (*entry, string) {
	m.sweep()
	m.mu.RLock()
	defer m.mu.RUnlock()
	gameID, ok := m.players[playerID]
	if !ok {
		return nil, ""
	}
	return m.games[gameID], gameID
}

func (m *Manager) touch(gameID string) {
	m.mu.Lock()
	if e, ok := m.games[gameID]; ok {
		e.lastActivity = m.now()
	}
	m.mu.Unlock()
}

// sweep reclaims games idle past the session timeout. Removal of a game and
// its player mappings is atomic with respect to lookups.
func (m *Manager) sweep() {
	now := m.now()
	m.mu.Lock()
	for gameID, e := range m.games {
		if now.Sub(e.lastActivity) <= m.timeout {
			continue
		}
		e.mu.Lock()
		for _, p := range e.game.Players {
			delete(m.players, p.ID)
		}
		e.mu.Unlock()
		delete(m.games, gameID)
		m.logger.Info("game_expire", zap.String("game_id", gameID))
	}
	m.mu.Unlock()
}

// finishGame persists the result of a finished game, if a repository is
// attached. The game stays registered until it expires so late state polls
// still see the final board.
func (m *Manager) finishGame(ctx context.Context, gameID string, rec *gamedto.GameRecord) {
	m.logger.Info("game_finish",
		zap.String("game_id", gameID),
		zap.String("winner", rec.WinnerName),
	)
	if m.repo == nil {
		return
	}
	if err := m.repo.SaveResult(ctx, rec); err != nil {
		m.logger.Error("game_result_persist_error", zap.String("game_id", gameID), zap.Error(err))
	}
}
