package gamedto

// CardView is the wire form of a single card. Suit is one of the glyphs
// ♥ ♦ ♣ ♠; rank is A,2..10,J,Q,K.
type CardView struct {
	Rank  string `json:"rank"`
	Suit  string `json:"suit"`
	Color string `json:"color"`
}

type PlayerView struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	HandSize int        `json:"hand_size"`
	Hand     []CardView `json:"hand"`
}

// PileView lists a pile's cards bottom-to-top.
type PileView struct {
	Cards   []CardView `json:"cards"`
	TopCard *CardView  `json:"top_card,omitempty"`
	Size    int        `json:"size"`
}

// StateSnapshot is the full read-only state of one game. Hands are not hidden
// here; any per-viewer redaction is the presentation layer's job.
type StateSnapshot struct {
	GameID            string              `json:"game_id"`
	Players           []PlayerView        `json:"players"`
	CurrentPlayer     int                 `json:"current_player"`
	CurrentPlayerName string              `json:"current_player_name,omitempty"`
	FoundationPiles   map[string]PileView `json:"foundation_piles"`
	CornerPiles       map[string]PileView `json:"corner_piles"`
	DeckSize          int                 `json:"deck_size"`
	Started           bool                `json:"game_started"`
	Over              bool                `json:"game_over"`
	Winner            string              `json:"winner,omitempty"`
	TurnActionsTaken  int                 `json:"turn_actions_taken"`
}

// GameSummary is the lobby-browser view of a game.
type GameSummary struct {
	GameID     string `json:"game_id"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"max_players"`
	Started    bool   `json:"started"`
	Over       bool   `json:"game_over"`
}
