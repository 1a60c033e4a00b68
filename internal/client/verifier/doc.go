// Package verifier implements the credential verification flow behind the
// login screen.
//
// A Verifier is one flow instance: it holds the identifier and secret as the
// user edits them, performs a single record lookup per submission, compares
// the stored secret with the submitted one, and resolves the attempt into an
// Outcome. On success the record's identifier is published to the session
// slot.
//
// States and transitions:
//
//	Idle ──Submit──▶ Submitting ──▶ Authenticated   (terminal for the screen)
//	  ▲                   │
//	  └──── Rejected ◀────┘                         (accepts edits and resubmits)
//
// Only one lookup is in flight per instance; Submit while Submitting is a
// no-op. Every submission captures an attempt number and its response is
// applied only if that number is still current, so Reset discards a
// response that is still on the way.
//
// Not-found, mismatch and transport failures all present as Rejected with
// the same RejectionMessage. The cause is kept as a Reason for logging and
// diagnostics and mapped to the outcome through an explicit table.
package verifier
