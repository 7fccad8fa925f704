// Package guard detects value objects that were created as zero values instead of
// through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when no
// specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in value objects whose invariants are established
// by a constructor. The zero value reports "not constructed".
//
// Example:
//
//	var ErrRelayPointNotConstructed = errors.New("RelayPoint must be created via NewRelayPoint")
//
//	type RelayPoint struct {
//	    id    string
//	    guard guard.ConstructorGuard
//	}
//
//	func (p RelayPoint) Validate() error {
//	    return p.guard.Validate(ErrRelayPointNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}

	if !g.isConstructed {
		return validationError
	}

	return nil
}
