package handler

import (
	"net/http"

	"github.com/yndnr/yggauth-go/internal/core/domain"
	"github.com/yndnr/yggauth-go/internal/core/service"
)

// textureKind resolves the {kind} path segment (skins or capes).
func textureKind(r *http.Request) (domain.TextureKind, error) {
	kind, ok := domain.ParseTextureKind(r.PathValue("kind"))
	if !ok {
		return "", domain.ErrInvalidArgument.WithDetails("kind must be skins or capes")
	}
	return kind, nil
}

// handleListTextures handles GET /api/user/{kind}.
func (h *Handler) handleListTextures(w http.ResponseWriter, r *http.Request) {
	kind, err := textureKind(r)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	list, err := h.textures.List(r.Context(), bearerToken(r), kind)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	resp := &TextureListResponse{
		Success:  true,
		Textures: make([]TextureInfo, 0, len(list.Textures)),
		ActiveID: list.ActiveID,
	}
	for _, t := range list.Textures {
		resp.Textures = append(resp.Textures, textureInfo(t))
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

// handleAddTexture handles POST /api/user/{kind}.
func (h *Handler) handleAddTexture(w http.ResponseWriter, r *http.Request) {
	kind, err := textureKind(r)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}
	var req AddTextureRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	resp, err := h.textures.Add(r.Context(), &service.AddTextureRequest{
		AccessToken: bearerToken(r),
		Kind:        kind,
		Name:        req.Name,
		URL:         req.URL,
		Model:       req.Model,
	})
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, &AddTextureResponse{
		Success: true,
		Texture: textureInfo(resp.Texture),
		Active:  resp.Active,
	})
}

// handleActivateTexture handles POST /api/user/{kind}/{id}/activate.
func (h *Handler) handleActivateTexture(w http.ResponseWriter, r *http.Request) {
	kind, err := textureKind(r)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}
	if err := h.textures.Activate(r.Context(), bearerToken(r), kind, r.PathValue("id")); err != nil {
		h.writeAPIError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, &MessageResponse{Success: true})
}

// handleDeleteTexture handles DELETE /api/user/{kind}/{id}.
func (h *Handler) handleDeleteTexture(w http.ResponseWriter, r *http.Request) {
	kind, err := textureKind(r)
	if err != nil {
		h.writeAPIError(w, r, err)
		return
	}
	if err := h.textures.Delete(r.Context(), bearerToken(r), kind, r.PathValue("id")); err != nil {
		h.writeAPIError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, &MessageResponse{Success: true})
}
