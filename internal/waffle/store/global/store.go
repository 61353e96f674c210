// Package global holds the shared, persisted switch/flag stores that back
// the toggle engine. Switches and flags live in separate key spaces.
package global

import "context"

// Store is the externally owned boolean configuration store consulted by the
// toggle engine after its request cache and any per-call override.
//
// Unknown keys read as false; reads never fail for absence. The evaluation
// path is read-only — writes happen through the admin surface and the scoped
// override construct.
type Store interface {
	SwitchActive(ctx context.Context, key string) (bool, error)
	FlagActive(ctx context.Context, key string) (bool, error)
	SetSwitch(ctx context.Context, key string, active bool) error
	SetFlag(ctx context.Context, key string, active bool) error
}
