package memory

import (
	"context"
	"sync"

	"github.com/yndnr/yggauth-go/internal/core/domain"
)

type textureSet struct {
	items  map[domain.TextureKind][]*domain.Texture
	active map[domain.TextureKind]string
}

func newTextureSet() *textureSet {
	return &textureSet{
		items:  make(map[domain.TextureKind][]*domain.Texture),
		active: make(map[domain.TextureKind]string),
	}
}

func (s *textureSet) find(kind domain.TextureKind, id string) (int, *domain.Texture) {
	for i, t := range s.items[kind] {
		if t.ID == id {
			return i, t
		}
	}
	return -1, nil
}

// TextureTable holds skin and cape metadata per owner.
type TextureTable struct {
	mu      sync.RWMutex
	byOwner map[string]*textureSet
	persist Persister
}

func newTextureTable(p Persister) *TextureTable {
	return &TextureTable{
		byOwner: make(map[string]*textureSet),
		persist: p,
	}
}

func activeKey(ownerID string, kind domain.TextureKind) string {
	return ownerID + ":" + string(kind)
}

func (t *TextureTable) setFor(ownerID string) *textureSet {
	set, ok := t.byOwner[ownerID]
	if !ok {
		set = newTextureSet()
		t.byOwner[ownerID] = set
	}
	return set
}

// AddTexture stores a texture. The first texture of a kind becomes active.
func (t *TextureTable) AddTexture(ctx context.Context, texture *domain.Texture) (bool, error) {
	if err := texture.Validate(); err != nil {
		return false, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	set := t.setFor(texture.OwnerID)
	if _, existing := set.find(texture.Kind, texture.ID); existing != nil {
		return false, domain.ErrDuplicateIdentifier.WithDetails("texture id")
	}

	clone := texture.Clone()
	if err := t.persist.Put(ctx, KindTexture, clone.ID, clone); err != nil {
		return false, domain.ErrStorage.WithCause(err)
	}
	set.items[clone.Kind] = append(set.items[clone.Kind], clone)

	if set.active[clone.Kind] != "" {
		return false, nil
	}
	if err := t.putActiveLocked(ctx, clone.OwnerID, clone.Kind, clone.ID); err != nil {
		return false, err
	}
	return true, nil
}

func (t *TextureTable) putActiveLocked(ctx context.Context, ownerID string, kind domain.TextureKind, id string) error {
	key := activeKey(ownerID, kind)
	var err error
	if id == "" {
		err = t.persist.Delete(ctx, KindActiveTexture, key)
	} else {
		err = t.persist.Put(ctx, KindActiveTexture, key, activeRecord{OwnerID: ownerID, Kind: kind, TextureID: id})
	}
	if err != nil {
		return domain.ErrStorage.WithCause(err)
	}

	set := t.setFor(ownerID)
	if id == "" {
		delete(set.active, kind)
	} else {
		set.active[kind] = id
	}
	return nil
}

func (t *TextureTable) restore(texture *domain.Texture) {
	t.mu.Lock()
	defer t.mu.Unlock()
	set := t.setFor(texture.OwnerID)
	set.items[texture.Kind] = append(set.items[texture.Kind], texture)
}

func (t *TextureTable) restoreActive(r activeRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setFor(r.OwnerID).active[r.Kind] = r.TextureID
}

// ListTextures returns the owner's textures of kind in insertion order.
func (t *TextureTable) ListTextures(_ context.Context, ownerID string, kind domain.TextureKind) ([]*domain.Texture, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	set, ok := t.byOwner[ownerID]
	if !ok {
		return []*domain.Texture{}, nil
	}
	out := make([]*domain.Texture, 0, len(set.items[kind]))
	for _, tex := range set.items[kind] {
		out = append(out, tex.Clone())
	}
	return out, nil
}

// ActiveTexture returns the owner's active texture of kind.
func (t *TextureTable) ActiveTexture(_ context.Context, ownerID string, kind domain.TextureKind) (*domain.Texture, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	set, ok := t.byOwner[ownerID]
	if !ok {
		return nil, domain.ErrTextureNotFound
	}
	_, tex := set.find(kind, set.active[kind])
	if tex == nil {
		return nil, domain.ErrTextureNotFound
	}
	return tex.Clone(), nil
}

// SetActiveTexture selects id as the owner's active texture of kind.
func (t *TextureTable) SetActiveTexture(ctx context.Context, ownerID string, kind domain.TextureKind, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	set, ok := t.byOwner[ownerID]
	if !ok {
		return domain.ErrTextureNotFound
	}
	if _, tex := set.find(kind, id); tex == nil {
		return domain.ErrTextureNotFound
	}
	return t.putActiveLocked(ctx, ownerID, kind, id)
}

// DeleteTexture removes a texture. Deleting the active one leaves the
// owner with no active texture of that kind.
func (t *TextureTable) DeleteTexture(ctx context.Context, ownerID string, kind domain.TextureKind, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	set, ok := t.byOwner[ownerID]
	if !ok {
		return domain.ErrTextureNotFound
	}
	idx, tex := set.find(kind, id)
	if tex == nil {
		return domain.ErrTextureNotFound
	}

	if err := t.persist.Delete(ctx, KindTexture, id); err != nil {
		return domain.ErrStorage.WithCause(err)
	}
	list := set.items[kind]
	set.items[kind] = append(list[:idx:idx], list[idx+1:]...)

	if set.active[kind] == id {
		return t.putActiveLocked(ctx, ownerID, kind, "")
	}
	return nil
}
