// Package manager wires backends, catalog, health cache, router and chat invoker into
// one object the HTTP layer and CLI share. It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: ManagerConfig, FromConfig and package defaults.
//   - errors.go: error helpers (IsModelNotFound, IsInvalidRequest, IsUpstream).
//   - route.go: Route and Chat, the request path.
//   - backends.go: Discover and BackendHealth, direct uncached backend calls.
//   - status_report.go: Status and Ready.
//
// External packages should use public methods only (NewWithConfig, Route, Chat, Status, ...).
package manager
