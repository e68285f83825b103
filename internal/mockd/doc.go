// Package mockd owns the in-memory stand-in for the jadxd service.
//
// Ownership boundary:
// - fixture program graphs (yaml) and their referential integrity
// - session registry and per-session rename tables
// - the HTTP surface of the jadxd protocol
//
// mockd serves canned decompilation facts; it never parses real artifacts.
// It exists for the demo CLI and for end-to-end tests of the client.
package mockd
