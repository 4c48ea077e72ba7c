// Package lint reconciles lint results with what the user has been told.
//
// A Reconciler tracks two error sets per editor: the current one, recomputed
// on every re-lint, and the last one handed to the notice callback. Changes to
// the current set are reported immediately through OnChangeLintingErrors. The
// notice itself is held back while the user is typing into a document that
// already had errors, and delivered on blur, after a completion session has
// closed for good, or on a pointer press elsewhere.
package lint
