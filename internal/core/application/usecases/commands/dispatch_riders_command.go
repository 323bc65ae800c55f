package commands

import (
	"errors"
	"time"

	"resto/internal/pkg/errs"
	"resto/internal/pkg/guard"
)

var ErrDispatchRidersCommandIsNotConstructed = errors.New(
	"DispatchRidersCommand must be created via NewDispatchRidersCommand constructor",
)

// DispatchRidersCommand runs one pass of the automated rider search: every
// order carrying the auto-assignment marker either gets a rider committed or,
// once the marker is older than the stale cutoff, falls back to the manual
// queue. Issued by the dispatch job, not by callers, so it carries no scope.
type DispatchRidersCommand struct {
	staleAfter time.Duration

	guard guard.ConstructorGuard
}

// NewDispatchRidersCommand creates a dispatch pass with the given marker
// staleness cutoff.
func NewDispatchRidersCommand(staleAfter time.Duration) (DispatchRidersCommand, error) {
	if staleAfter <= 0 {
		return DispatchRidersCommand{}, errs.NewValueIsRequiredError("stale-marker cutoff")
	}

	return DispatchRidersCommand{
		staleAfter: staleAfter,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchRidersCommand) Validate() error {
	return c.guard.Validate(ErrDispatchRidersCommandIsNotConstructed)
}

// StaleAfter returns how old a marker may get before the order falls back to
// manual assignment.
func (c DispatchRidersCommand) StaleAfter() time.Duration {
	return c.staleAfter
}
