// Package treasury implements the portfolio policy, analytics and intelligence rules of the
// treasury dashboard as pure functions over model.Snapshot.
//
// Every command takes the current snapshot and returns a new one; the caller owns the state
// and decides when to persist it. Time, identifiers and market signals are injected through
// Engine so the rules stay deterministic under test.
package treasury
