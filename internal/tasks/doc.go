// Package tasks implements the ad submission and music validation
// operations.
//
// The core abstractions are SubmissionEngine, which drives one ad draft
// through validation, the token gate, and the remote create call, and
// MusicCoordinator, which resolves music identifiers against the remote
// catalog without blocking input or issuing redundant calls. Verdicts are
// emitted via channels for non-blocking status reporting to CLI/UI layers.
//
// # Submission state machine
//
//	idle → validating → submitting → success|failed
//
// A failed attempt re-enters at validating on retry; attempts are independent
// and never resumed. Remote failures pass through Classify, so callers only
// ever see the typed error taxonomy, never a raw platform response.
//
// # Music verdict ordering
//
// Each validation request carries a sequence number. A result is applied only
// while its sequence is still current, so verdicts land in request-issue
// order: a superseded request's late result is discarded, never applied over
// the verdict of a newer request.
package tasks
