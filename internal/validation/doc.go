// Package validation implements the synchronous business rules for ad
// drafts. Rules are pure functions over a draft: no network access, no state.
// Every rule is evaluated and every violation collected, so a caller gets the
// complete picture in one pass. The same pass runs incrementally on field
// edits and once more, authoritatively, right before submission.
package validation
