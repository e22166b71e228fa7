// Package cmap provides a sharded, string-keyed concurrent map.
//
// Each shard has its own RWMutex, so lookups on different keys do not
// contend. Operations that must be atomic across several keys need an
// outer lock held by the caller.
//
// Usage:
//
//	m := cmap.New[*domain.Session]()
//	m.Set(accessToken, session)
//	s, ok := m.Get(accessToken)
package cmap
