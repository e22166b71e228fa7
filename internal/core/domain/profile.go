package domain

import "time"

// MaxProfileNameLength bounds player names.
const MaxProfileNameLength = 16

// Profile is a named player identity owned by an account. An account's
// profiles keep their creation order; the first one is the default
// selection for authentication.
type Profile struct {
	// ID is the compact 32-hex identifier, distinct from account IDs.
	ID string `json:"id"`

	// OwnerID references the owning Account.
	OwnerID string `json:"owner_id"`

	// Name is the in-game display name.
	Name string `json:"name"`

	// CreatedAt is the creation timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`

	// Seq is assigned by the store on insert and orders an owner's
	// profiles. Zero on records written before it existed.
	Seq uint64 `json:"seq,omitempty"`
}

// NewProfile builds a profile for ownerID.
func NewProfile(id, ownerID, name string) *Profile {
	return &Profile{
		ID:        id,
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now().UnixMilli(),
	}
}

// Validate checks the profile fields.
func (p *Profile) Validate() error {
	switch {
	case p.OwnerID == "":
		return ErrInvalidArgument.WithDetails("owner id is required")
	case p.Name == "":
		return ErrInvalidArgument.WithDetails("profile name is required")
	case len(p.Name) > MaxProfileNameLength:
		return ErrInvalidArgument.WithDetails("profile name exceeds 16 characters")
	}
	return nil
}

// Clone creates a copy of the profile.
func (p *Profile) Clone() *Profile {
	clone := *p
	return &clone
}
