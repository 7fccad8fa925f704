// Package orderflow runs the order workflow: it owns each Draft while a session works
// on it, enforces the legal transitions and persists a snapshot after every change.
//
// An Engine holds the collaborators (store, pricing, route selection, payment) and
// hands out one StateMachine per draft. Every StateMachine operation is atomic: the
// transition is applied to a copy, the copy is persisted, and only then does it
// replace the in-memory draft. A failed validation, payment or save leaves both the
// machine and the stored snapshot exactly as they were.
package orderflow
