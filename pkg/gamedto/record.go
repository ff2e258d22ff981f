package gamedto

import "time"

// RecordPlayer is one participant in a finished-game record.
type RecordPlayer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	HandSize int    `json:"hand_size"`
}

// GameRecord is the persisted result of a finished game.
type GameRecord struct {
	GameID        string
	WinnerID      string
	WinnerName    string
	Players       []RecordPlayer
	DeckRemaining int
	StartedAt     time.Time
	EndedAt       time.Time
	Duration      time.Duration
}
