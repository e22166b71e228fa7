package service

import (
	"context"
	"time"

	"github.com/yndnr/yggauth-go/internal/core/domain"
)

// TextureService manages skin and cape metadata for bearer-authenticated
// accounts. Only URLs are stored; images are served elsewhere.
type TextureService struct {
	sessions SessionRepository
	textures TextureRepository
	now      Clock
}

// NewTextureService creates a new TextureService.
func NewTextureService(repos Repositories) *TextureService {
	return &TextureService{
		sessions: repos.Sessions,
		textures: repos.Textures,
		now:      time.Now,
	}
}

// WithClock overrides the time source. It returns s for chaining.
func (s *TextureService) WithClock(c Clock) *TextureService {
	if c != nil {
		s.now = c
	}
	return s
}

// AddTextureRequest contains parameters for Add.
type AddTextureRequest struct {
	AccessToken string
	Kind        domain.TextureKind
	Name        string
	URL         string
	Model       string // skins only; defaults to classic
}

// AddTextureResponse contains the stored texture.
type AddTextureResponse struct {
	Texture *domain.Texture

	// Active is true when the texture became the active one of its kind.
	Active bool
}

// Add stores a texture for the bearer. The first texture of a kind becomes active.
func (s *TextureService) Add(ctx context.Context, req *AddTextureRequest) (*AddTextureResponse, error) {
	session, err := bearerSession(ctx, s.sessions, req.AccessToken, s.now())
	if err != nil {
		return nil, err
	}

	tex, err := domain.NewTexture(session.OwnerID, req.Kind, req.Name, req.URL, req.Model)
	if err != nil {
		return nil, err
	}
	active, err := s.textures.AddTexture(ctx, tex)
	if err != nil {
		return nil, domain.AsDomainError(err)
	}
	return &AddTextureResponse{Texture: tex, Active: active}, nil
}

// TextureList is the bearer's textures of one kind.
type TextureList struct {
	Textures []*domain.Texture
	ActiveID string
}

// List returns the bearer's textures of kind in insertion order.
func (s *TextureService) List(ctx context.Context, accessToken string, kind domain.TextureKind) (*TextureList, error) {
	session, err := bearerSession(ctx, s.sessions, accessToken, s.now())
	if err != nil {
		return nil, err
	}

	items, err := s.textures.ListTextures(ctx, session.OwnerID, kind)
	if err != nil {
		return nil, domain.AsDomainError(err)
	}
	active, err := activeOrNil(ctx, s.textures, session.OwnerID, kind)
	if err != nil {
		return nil, err
	}

	out := &TextureList{Textures: items}
	if active != nil {
		out.ActiveID = active.ID
	}
	return out, nil
}

// Activate makes id the bearer's active texture of kind.
func (s *TextureService) Activate(ctx context.Context, accessToken string, kind domain.TextureKind, id string) error {
	session, err := bearerSession(ctx, s.sessions, accessToken, s.now())
	if err != nil {
		return err
	}
	if err := s.textures.SetActiveTexture(ctx, session.OwnerID, kind, id); err != nil {
		return domain.AsDomainError(err)
	}
	return nil
}

// Delete removes one of the bearer's textures.
func (s *TextureService) Delete(ctx context.Context, accessToken string, kind domain.TextureKind, id string) error {
	session, err := bearerSession(ctx, s.sessions, accessToken, s.now())
	if err != nil {
		return err
	}
	if err := s.textures.DeleteTexture(ctx, session.OwnerID, kind, id); err != nil {
		return domain.AsDomainError(err)
	}
	return nil
}

// Active returns the active texture of kind for ownerID, nil when none is set.
func (s *TextureService) Active(ctx context.Context, ownerID string, kind domain.TextureKind) (*domain.Texture, error) {
	return activeOrNil(ctx, s.textures, ownerID, kind)
}
