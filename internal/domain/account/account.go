// Package account keeps the locally remembered user and the artist profile.
// There is no authentication: whoever logs in is trusted.
package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/stagebook/internal/domain/model"
	"github.com/okian/stagebook/internal/validation"
)

// Store persists the session user and the artist profile. Reads report
// absence with ok=false.
type Store interface {
	LoadUser(ctx context.Context) (model.User, bool, error)
	SaveUser(ctx context.Context, u model.User) error
	ClearUser(ctx context.Context) error
	LoadProfile(ctx context.Context) (model.ArtistProfile, bool, error)
	SaveProfile(ctx context.Context, p model.ArtistProfile) error
}

// Service implements login, logout and profile editing.
type Service struct {
	store Store
}

// New creates a Service over store.
func New(store Store) *Service {
	return &Service{store: store}
}

// Login remembers u as the current user.
func (s *Service) Login(ctx context.Context, u model.User) (model.User, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	if err := validation.Struct(u); err != nil {
		return model.User{}, fmt.Errorf("%w: %w", ErrInvalidUser, err)
	}
	if err := s.store.SaveUser(ctx, u); err != nil {
		return model.User{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return u, nil
}

// Logout forgets the current user.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.ClearUser(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Current returns the remembered user. Unreadable data counts as logged out.
func (s *Service) Current(ctx context.Context) (model.User, bool) {
	u, ok, err := s.store.LoadUser(ctx)
	if err != nil || !ok {
		return model.User{}, false
	}
	return u, true
}

// Profile returns the saved artist profile, or an empty one.
func (s *Service) Profile(ctx context.Context) model.ArtistProfile {
	p, ok, err := s.store.LoadProfile(ctx)
	if err != nil || !ok {
		return model.ArtistProfile{}
	}
	return p
}

// SaveProfile stores p when the current user is an artist.
func (s *Service) SaveProfile(ctx context.Context, p model.ArtistProfile) (model.ArtistProfile, error) {
	u, ok := s.Current(ctx)
	if !ok || u.Role != model.RoleArtist {
		return model.ArtistProfile{}, ErrNotArtist
	}
	if err := validation.Struct(p); err != nil {
		return model.ArtistProfile{}, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return model.ArtistProfile{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return p, nil
}
