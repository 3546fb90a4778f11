package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"sparkle/config"
	"sparkle/internal/domains/wizard/state"
	"sparkle/shared"
	"sparkle/shared/cache"
)

const (
	draftPrefix      = "wizard:draft"
	preferencePrefix = "wizard:pref"
)

// Draft persists per-user wizard drafts. Drafts expire on their own so
// an abandoned wizard does not linger forever.
type Draft interface {
	Load(ctx context.Context, userID string) (state.State, bool, error)
	Save(ctx context.Context, userID string, s state.State) error
	Clear(ctx context.Context, userID string) error
}

// Preference stores each user's chosen entry mode (wizard or quick),
// keyed per user so a shared device cannot leak one user's choice to
// another.
type Preference interface {
	Load(ctx context.Context, userID string) (string, error)
	Save(ctx context.Context, userID, mode string) error
}

type draftImpl struct {
	cache cache.RedisCache
	cfg   *config.Config
}

func NewDraft(cache cache.RedisCache, cfg *config.Config) Draft {
	return &draftImpl{
		cache: cache,
		cfg:   cfg,
	}
}

func (r *draftImpl) Load(ctx context.Context, userID string) (s state.State, found bool, err error) {
	err = r.cache.Get(ctx, shared.BuildCacheKey(draftPrefix, userID), &s)
	if err != nil {
		if errors.Is(err, cache.Nil) {
			return state.New(), false, nil
		}

		return s, false, fmt.Errorf("failed to load wizard draft: %w", err)
	}

	return s, true, nil
}

func (r *draftImpl) Save(ctx context.Context, userID string, s state.State) error {
	if err := r.cache.Save(ctx, shared.BuildCacheKey(draftPrefix, userID), s, r.cfg.Wizard.DraftTTLSeconds); err != nil {
		return fmt.Errorf("failed to save wizard draft: %w", err)
	}

	return nil
}

func (r *draftImpl) Clear(ctx context.Context, userID string) error {
	if err := r.cache.Delete(ctx, shared.BuildCacheKey(draftPrefix, userID)); err != nil {
		return fmt.Errorf("failed to clear wizard draft: %w", err)
	}

	return nil
}

type preferenceImpl struct {
	cache cache.RedisCache
}

func NewPreference(cache cache.RedisCache) Preference {
	return &preferenceImpl{cache: cache}
}

func (r *preferenceImpl) Load(ctx context.Context, userID string) (string, error) {
	var mode string

	err := r.cache.Get(ctx, shared.BuildCacheKey(preferencePrefix, userID), &mode)
	if err != nil {
		if errors.Is(err, cache.Nil) {
			return state.ModeWizard, nil
		}

		return "", fmt.Errorf("failed to load wizard preference: %w", err)
	}

	return mode, nil
}

func (r *preferenceImpl) Save(ctx context.Context, userID, mode string) error {
	// Preferences do not expire.
	if err := r.cache.Save(ctx, shared.BuildCacheKey(preferencePrefix, userID), mode, 0); err != nil {
		return fmt.Errorf("failed to save wizard preference: %w", err)
	}

	return nil
}
