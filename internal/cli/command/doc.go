// Package command defines the yggauth-cli commands.
//
// Commands are grouped by route family:
//
//   - auth: the authserver protocol (authenticate, refresh, validate,
//     invalidate, signout)
//   - account: registration and Bearer routes under /api/user
//   - profile: sessionserver and launcher lookups, join and hasJoined
//   - texture: skin and cape management
//   - system: health, version and the admin routes
//
// A successful authenticate or refresh is saved to the CLI state file and
// reused by later commands against the same server.
package command
