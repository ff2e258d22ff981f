package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/cardtable/kings-corner/pkg/gamedto"
)

// PostgresRepository stores finished-game results. One row per game,
// upserted on game_id so a replayed persist is harmless.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(databaseURL string) (*PostgresRepository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *PostgresRepository) SaveResult(ctx context.Context, rec *gamedto.GameRecord) error {
	if r == nil || r.db == nil || rec == nil {
		return nil
	}
	playersRaw, err := json.Marshal(rec.Players)
	if err != nil {
		return fmt.Errorf("marshal players: %w", err)
	}
	durationMS := rec.Duration.Milliseconds()
	if durationMS < 0 {
		durationMS = 0
	}

	q := `INSERT INTO kings_games (
	    game_id, winner_id, winner_name, players, deck_remaining,
	    started_at, ended_at, duration_ms
	  ) VALUES (
	    $1,$2,$3,$4,$5,$6,$7,$8
	  ) ON CONFLICT (game_id) DO UPDATE SET
	    winner_id=EXCLUDED.winner_id,
	    winner_name=EXCLUDED.winner_name,
	    players=EXCLUDED.players,
	    deck_remaining=EXCLUDED.deck_remaining,
	    started_at=EXCLUDED.started_at,
	    ended_at=EXCLUDED.ended_at,
	    duration_ms=EXCLUDED.duration_ms`

	_, err = r.db.ExecContext(ctx, q,
		rec.GameID,
		rec.WinnerID, rec.WinnerName,
		string(playersRaw), rec.DeckRemaining,
		rec.StartedAt, rec.EndedAt, durationMS,
	)
	return err
}
