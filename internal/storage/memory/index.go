package memory

// tokenSet is a set of access tokens.
type tokenSet map[string]struct{}

// ownerIndex maps an owner ID to the access tokens of its sessions.
// It is not safe for concurrent use; SessionTable guards it with its mutex.
type ownerIndex struct {
	index map[string]tokenSet
}

func newOwnerIndex() *ownerIndex {
	return &ownerIndex{index: make(map[string]tokenSet)}
}

// Add records token under ownerID.
func (i *ownerIndex) Add(ownerID, token string) {
	set, ok := i.index[ownerID]
	if !ok {
		set = make(tokenSet)
		i.index[ownerID] = set
	}
	set[token] = struct{}{}
}

// Remove drops token from ownerID, deleting empty sets.
func (i *ownerIndex) Remove(ownerID, token string) {
	set, ok := i.index[ownerID]
	if !ok {
		return
	}
	delete(set, token)
	if len(set) == 0 {
		delete(i.index, ownerID)
	}
}

// Tokens returns a copy of ownerID's tokens.
func (i *ownerIndex) Tokens(ownerID string) []string {
	set := i.index[ownerID]
	out := make([]string, 0, len(set))
	for tok := range set {
		out = append(out, tok)
	}
	return out
}

// Count returns the number of tokens held by ownerID.
func (i *ownerIndex) Count(ownerID string) int {
	return len(i.index[ownerID])
}
