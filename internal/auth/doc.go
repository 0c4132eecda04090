// Package auth manages the OAuth session lifecycle: code exchange, validity
// checks, refresh, and logout.
//
// State lives in an injected key-value [Store] rather than ambient storage,
// so the sqlite-backed store and the in-memory test fake are interchangeable.
// The [Manager] is the only writer of token state; other subsystems read
// snapshots via [Manager.State].
//
// Lifecycle failures surface as [models.AppError] values so the presentation
// layer can offer the attached remedial action (reconnect, refresh, review
// permissions) without inspecting raw causes.
package auth
