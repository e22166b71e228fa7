package domain

import (
	"crypto/rand"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// TextureKind distinguishes skins from capes.
type TextureKind string

const (
	TextureSkin TextureKind = "SKIN"
	TextureCape TextureKind = "CAPE"
)

// Skin models.
const (
	ModelClassic = "classic"
	ModelSlim    = "slim"
)

// ParseTextureKind accepts "skin", "skins", "cape" or "capes" in any case.
func ParseTextureKind(s string) (TextureKind, bool) {
	switch strings.TrimSuffix(strings.ToLower(s), "s") {
	case "skin":
		return TextureSkin, true
	case "cape":
		return TextureCape, true
	}
	return "", false
}

// Texture is skin or cape metadata. The image itself lives at URL.
type Texture struct {
	ID        string      `json:"id"`
	OwnerID   string      `json:"owner_id"`
	Kind      TextureKind `json:"kind"`
	Name      string      `json:"name"`
	URL       string      `json:"url"`
	Model     string      `json:"model,omitempty"`
	CreatedAt int64       `json:"created_at"`
}

// NewTexture builds a texture with a fresh lowercase ULID.
func NewTexture(ownerID string, kind TextureKind, name, rawURL, model string) (*Texture, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, ErrInternal.WithCause(err)
	}
	if kind == TextureSkin && model == "" {
		model = ModelClassic
	}
	if kind == TextureCape {
		model = ""
	}

	t := &Texture{
		ID:        strings.ToLower(id.String()),
		OwnerID:   ownerID,
		Kind:      kind,
		Name:      name,
		URL:       rawURL,
		Model:     model,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the texture fields.
func (t *Texture) Validate() error {
	var violations []string

	if t.OwnerID == "" {
		violations = append(violations, "owner id is required")
	}
	if t.Kind != TextureSkin && t.Kind != TextureCape {
		violations = append(violations, "kind must be SKIN or CAPE")
	}
	if t.Name == "" {
		violations = append(violations, "name is required")
	}
	if u, err := url.Parse(t.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		violations = append(violations, "url must be an absolute http(s) URL")
	}
	if t.Kind == TextureSkin && t.Model != ModelClassic && t.Model != ModelSlim {
		violations = append(violations, "model must be classic or slim")
	}

	if len(violations) > 0 {
		return ErrInvalidArgument.WithDetails(strings.Join(violations, "; "))
	}
	return nil
}

// Clone creates a copy of the texture.
func (t *Texture) Clone() *Texture {
	clone := *t
	return &clone
}
