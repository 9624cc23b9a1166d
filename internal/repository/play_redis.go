package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bizchess/internal/domain/play"
	errs "bizchess/internal/errors"
)

const playKeyPrefix = "bizchess:play:"

type PlayRepository struct {
	client *redis.Client
}

func NewPlayRepository(client *redis.Client) *PlayRepository {
	return &PlayRepository{client: client}
}

func (r *PlayRepository) SaveSession(ctx context.Context, session play.Session, ttl time.Duration) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, playKeyPrefix+session.ID, raw, ttl).Err()
}

func (r *PlayRepository) GetSession(ctx context.Context, id string) (play.Session, error) {
	raw, err := r.client.Get(ctx, playKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return play.Session{}, fmt.Errorf("%w: %s", errs.ErrSessionNotFound, id)
	} else if err != nil {
		return play.Session{}, err
	}

	var session play.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return play.Session{}, err
	}
	return session, nil
}
