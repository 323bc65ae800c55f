package commands_test

import (
	"errors"
	"math/rand/v2"
	"runtime"
	"sync"
	"testing"

	"resto/internal/core/application/usecases/commands"
	"resto/internal/core/domain/model/order"
	"resto/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jitter perturbs goroutine scheduling so repeated runs explore different
// interleavings of the competing transactions.
func jitter(rng *rand.Rand) {
	for i := rng.IntN(4); i > 0; i-- {
		runtime.Gosched()
	}
}

// Three admins race to assign three different riders to the same order.
// Whatever the interleaving, exactly one assignment lands: the order
// references one rider, that rider references the order back, and the losing
// riders stay free.
func TestAssignRiderCommandHandler_Handle_ConcurrentAssignments_ExactlyOneWins(t *testing.T) {
	const iterations = 1000

	riderIDs := []string{"r-1", "r-2", "r-3"}

	for i := 0; i < iterations; i++ {
		store := newFakeStore()
		ord := awaitingDeliveryOrder(t)
		store.SeedOrder(t, ord)
		for _, id := range riderIDs {
			store.SeedDriver(t, onlineTestDriver(t, id))
		}

		h := commands.NewAssignRiderCommandHandler(fakeUoWFactory{store: store})
		seed := uint64(i) //nolint:gosec //deterministic seeds, not crypto

		var wg sync.WaitGroup
		results := make([]error, len(riderIDs))
		for n, riderID := range riderIDs {
			cmd, err := commands.NewAssignRiderCommand(ord.ID(), riderID, superScope())
			require.NoError(t, err)

			wg.Add(1)
			go func(n int, cmd commands.AssignRiderCommand) {
				defer wg.Done()
				jitter(rand.New(rand.NewPCG(seed, uint64(n))))
				results[n] = h.Handle(t.Context(), cmd)
			}(n, cmd)
		}
		wg.Wait()

		final := store.LoadOrder(t, ord.ID())
		require.NotEmpty(t, final.RiderID(), "iteration %d: no assignment landed", i)
		require.Equal(t, order.RiderAssigned, final.Status())
		require.Nil(t, final.AutoAssignStartedAt(),
			"iteration %d: marker survived an assignment", i)
		require.True(t, final.HasTimestamp("riderAssigned"))

		winners := 0
		for n, riderID := range riderIDs {
			drv := store.LoadDriver(t, riderID)
			if riderID == final.RiderID() {
				winners++
				require.NoError(t, results[n], "iteration %d: winner's handler failed", i)
				require.NotNil(t, drv.AssignedOrderID())
				assert.True(t, drv.AssignedOrderID().IsEqual(ord.ID()))
				assert.False(t, drv.IsAvailable())
				continue
			}

			require.Error(t, results[n], "iteration %d: two assignments reported success", i)
			require.True(t,
				errors.Is(results[n], order.ErrAlreadyAssigned) ||
					errors.Is(results[n], commands.ErrAssignmentConflict),
				"iteration %d: unexpected loser error: %v", i, results[n])
			assert.Nil(t, drv.AssignedOrderID(), "iteration %d: loser kept a back-reference", i)
			assert.True(t, drv.IsAvailable())
		}
		require.Equal(t, 1, winners, "iteration %d", i)
	}
}

// An assignment races a cancellation of the automated search. Whatever wins,
// the stored order never holds both the marker and a rider, and a rider
// reference always comes with a consistent driver back-reference.
func TestAssignRiderCommandHandler_Handle_RacingCancelAutoAssign_MarkerAndRiderStayExclusive(t *testing.T) {
	const iterations = 1000

	for i := 0; i < iterations; i++ {
		store := newFakeStore()
		ord := awaitingDeliveryOrder(t)
		store.SeedOrder(t, ord)
		store.SeedDriver(t, onlineTestDriver(t, "r-1"))

		assignHandler := commands.NewAssignRiderCommandHandler(fakeUoWFactory{store: store})
		cancelHandler := commands.NewCancelAutoAssignCommandHandler(fakeOrderUoWFactory{store: store})

		assignCmd, err := commands.NewAssignRiderCommand(ord.ID(), "r-1", superScope())
		require.NoError(t, err)
		cancelCmd, err := commands.NewCancelAutoAssignCommand(ord.ID(), superScope())
		require.NoError(t, err)

		seed := uint64(i) //nolint:gosec //deterministic seeds, not crypto

		var wg sync.WaitGroup
		var assignErr, cancelErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			jitter(rand.New(rand.NewPCG(seed, 1)))
			assignErr = assignHandler.Handle(t.Context(), assignCmd)
		}()
		go func() {
			defer wg.Done()
			jitter(rand.New(rand.NewPCG(seed, 2)))
			cancelErr = cancelHandler.Handle(t.Context(), cancelCmd)
		}()
		wg.Wait()

		// LoadOrder re-runs RestoreOrder, which rejects a record carrying
		// both the marker and a rider; surviving it is the core assertion.
		final := store.LoadOrder(t, ord.ID())
		require.False(t, final.RiderID() != "" && final.AutoAssignStartedAt() != nil,
			"iteration %d: marker and rider both set", i)

		drv := store.LoadDriver(t, "r-1")
		switch {
		case final.RiderID() != "":
			require.Equal(t, "r-1", final.RiderID())
			require.Equal(t, order.RiderAssigned, final.Status())
			require.NotNil(t, drv.AssignedOrderID(), "iteration %d: rider set without back-reference", i)
			assert.True(t, drv.AssignedOrderID().IsEqual(ord.ID()))
		default:
			// Cancellation won and the assignment lost every retry against
			// it, or found the order already out of an assignable status.
			require.Error(t, assignErr, "iteration %d: assignment reported success but nothing landed", i)
			require.Equal(t, order.NeedsRiderAssignment, final.Status())
			require.Nil(t, final.AutoAssignStartedAt())
			assert.Nil(t, drv.AssignedOrderID(), "iteration %d: dangling back-reference", i)
		}

		if cancelErr != nil {
			require.ErrorIs(t, cancelErr, errs.ErrConcurrentModification,
				"iteration %d: unexpected cancel error", i)
		}
	}
}
