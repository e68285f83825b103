// Package jadxd owns the client protocol boundary for the jadxd service.
//
// Ownership boundary:
// - entity model for decompiled program facts
// - request dispatch over the session-scoped HTTP/JSON protocol
// - response decoding and required-field validation
// - wire error classification
//
// The decompiler itself is remote state; nothing here caches entities across
// calls. Each query is authoritative at call time.
package jadxd
