package repository

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/okian/stagebook/internal/domain/model"
	"github.com/okian/stagebook/pkg/metrics"
)

// AccountRepository stores the session user and artist profile as JSON
// documents under UserKey and ProfileKey.
type AccountRepository struct {
	kv KV
}

// NewAccountRepository wraps kv.
func NewAccountRepository(kv KV) *AccountRepository {
	return &AccountRepository{kv: kv}
}

func (a *AccountRepository) LoadUser(ctx context.Context) (model.User, bool, error) {
	var u model.User
	ok, err := a.load(ctx, UserKey, &u)
	return u, ok, err
}

func (a *AccountRepository) SaveUser(ctx context.Context, u model.User) error {
	return a.save(ctx, UserKey, u)
}

func (a *AccountRepository) ClearUser(ctx context.Context) error {
	if err := a.kv.Remove(ctx, UserKey); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}

func (a *AccountRepository) LoadProfile(ctx context.Context) (model.ArtistProfile, bool, error) {
	var p model.ArtistProfile
	ok, err := a.load(ctx, ProfileKey, &p)
	return p, ok, err
}

func (a *AccountRepository) SaveProfile(ctx context.Context, p model.ArtistProfile) error {
	return a.save(ctx, ProfileKey, p)
}

func (a *AccountRepository) load(ctx context.Context, key string, into any) (bool, error) {
	raw, ok, err := a.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), into); err != nil {
		metrics.RecordStoreLoadCorrupt(key)
		return false, fmt.Errorf("%w: %s: %w", ErrCorrupt, key, err)
	}
	return true, nil
}

func (a *AccountRepository) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
