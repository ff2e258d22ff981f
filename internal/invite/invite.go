// Package invite maps short shareable codes to game ids so a creator can hand
// out a 6-character code instead of a full game uuid. Codes live in Redis with
// a TTL matched to the session timeout; the feature is optional and the server
// runs without it when no Redis is configured.
package invite

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCodeExhausted = errors.New("failed to allocate invite code")

const defaultTTL = time.Hour

type Directory struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDirectory(rdb *redis.Client, ttl time.Duration) *Directory {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Directory{rdb: rdb, ttl: ttl}
}

func key(code string) string { return "invite:" + strings.ToUpper(strings.TrimSpace(code)) }

// Make allocates a fresh code for the game. Allocation is optimistic: SetNX
// with a few retries against collisions.
func (d *Directory) Make(ctx context.Context, gameID string) (string, error) {
	for i := 0; i < 5; i++ {
		code, err := codeGen()
		if err != nil {
			return "", err
		}
		ok, err := d.rdb.SetNX(ctx, key(code), gameID, d.ttl).Result()
		if err != nil {
			return "", err
		}
		if ok {
			return code, nil
		}
	}
	return "", ErrCodeExhausted
}

// Resolve returns the game id behind a code, or ok=false for unknown or
// expired codes. Codes are case-insensitive.
func (d *Directory) Resolve(ctx context.Context, code string) (string, bool, error) {
	gameID, err := d.rdb.Get(ctx, key(code)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return gameID, true, nil
}

// Drop removes a code, e.g. once its game has been reclaimed.
func (d *Directory) Drop(ctx context.Context, code string) error {
	return d.rdb.Del(ctx, key(code)).Err()
}

// codeGen returns 6 upper alnum characters.
func codeGen() (string, error) {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = letters[int(b[i])%len(letters)]
	}
	return string(b), nil
}
