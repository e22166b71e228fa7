package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/yggauth-go/internal/core/domain"
)

func TestTextureService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := f.register(t, "alice", "alice@example.com", "wonderland", "Alice")
	s := f.login(t, "alice", "wonderland")

	first, err := f.textures.Add(ctx, &AddTextureRequest{
		AccessToken: s.AccessToken,
		Kind:        domain.TextureSkin,
		Name:        "default",
		URL:         "https://cdn.example.com/a.png",
	})
	require.NoError(t, err)
	assert.True(t, first.Active)
	assert.Equal(t, domain.ModelClassic, first.Texture.Model)

	second, err := f.textures.Add(ctx, &AddTextureRequest{
		AccessToken: s.AccessToken,
		Kind:        domain.TextureSkin,
		Name:        "slim",
		URL:         "https://cdn.example.com/b.png",
		Model:       domain.ModelSlim,
	})
	require.NoError(t, err)
	assert.False(t, second.Active)

	list, err := f.textures.List(ctx, s.AccessToken, domain.TextureSkin)
	require.NoError(t, err)
	require.Len(t, list.Textures, 2)
	assert.Equal(t, first.Texture.ID, list.ActiveID)

	require.NoError(t, f.textures.Activate(ctx, s.AccessToken, domain.TextureSkin, second.Texture.ID))
	active, err := f.textures.Active(ctx, reg.Account.ID, domain.TextureSkin)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.Texture.ID, active.ID)

	require.NoError(t, f.textures.Delete(ctx, s.AccessToken, domain.TextureSkin, second.Texture.ID))
	active, err = f.textures.Active(ctx, reg.Account.ID, domain.TextureSkin)
	require.NoError(t, err)
	assert.Nil(t, active)

	capes, err := f.textures.List(ctx, s.AccessToken, domain.TextureCape)
	require.NoError(t, err)
	assert.Empty(t, capes.Textures)
	assert.Empty(t, capes.ActiveID)
}

func TestTextureService_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice", "alice@example.com", "wonderland", "Alice")
	s := f.login(t, "alice", "wonderland")

	_, err := f.textures.Add(ctx, &AddTextureRequest{
		AccessToken: "nope", Kind: domain.TextureCape, Name: "c", URL: "https://cdn.example.com/c.png",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.textures.Add(ctx, &AddTextureRequest{
		AccessToken: s.AccessToken, Kind: domain.TextureCape, Name: "c", URL: "ftp://cdn.example.com/c.png",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	assert.ErrorIs(t, f.textures.Activate(ctx, s.AccessToken, domain.TextureCape, "missing"), domain.ErrTextureNotFound)
	assert.ErrorIs(t, f.textures.Delete(ctx, s.AccessToken, domain.TextureCape, "missing"), domain.ErrTextureNotFound)
}
