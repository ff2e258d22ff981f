package session

import (
	"errors"

	"github.com/cardtable/kings-corner/internal/game"
)

// message renders a catalog key, falling back to the plain text when the
// catalog is absent or the key missing.
func (m *Manager) message(key, fallback string, data map[string]any) string {
	if m.cat == nil {
		return fallback
	}
	rendered, err := m.cat.Render(key, data)
	if err != nil {
		return fallback
	}
	return rendered
}

// actionMessage maps play/draw errors onto user-facing text.
func (m *Manager) actionMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrGameNotInProgress):
		return m.message("play.not_in_progress", "Game not in progress", nil)
	case errors.Is(err, game.ErrGameAlreadyOver):
		return m.message("play.over", "Game is already over", nil)
	case errors.Is(err, game.ErrNotYourTurn):
		return m.message("play.not_your_turn", "Not your turn", nil)
	case errors.Is(err, game.ErrInvalidPile):
		return m.message("play.invalid_pile", "Invalid pile", nil)
	case errors.Is(err, game.ErrCardNotInHand):
		return m.message("play.card_not_in_hand", "Card not in hand", nil)
	case errors.Is(err, game.ErrIllegalMove):
		return m.message("play.illegal", "Invalid move", nil)
	case errors.Is(err, game.ErrDeckEmpty):
		return m.message("draw.deck_empty", "Deck is empty", nil)
	default:
		return err.Error()
	}
}

// moveMessage maps pile-move errors; the move vocabulary differs slightly
// from single-card plays.
func (m *Manager) moveMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidPile):
		return m.message("move.invalid_pile", "Invalid pile names", nil)
	case errors.Is(err, game.ErrEmptySourcePile):
		return m.message("move.empty_source", "Source pile is empty", nil)
	case errors.Is(err, game.ErrIllegalMove):
		return m.message("move.illegal", "Invalid pile move", nil)
	default:
		return m.actionMessage(err)
	}
}
