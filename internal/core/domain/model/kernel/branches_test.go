package kernel_test

import (
	"testing"

	"resto/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBranchSet(t *testing.T) {
	t.Run("normalizes_trims_dedupes_sorts", func(t *testing.T) {
		// When
		set := kernel.NewBranchSet("  riyadh-2 ", "riyadh-1", "riyadh-2", "")

		// Then
		require.NoError(t, set.Validate())
		assert.Equal(t, []string{"riyadh-1", "riyadh-2"}, set.IDs())
	})

	t.Run("legacy_single_branch_shape", func(t *testing.T) {
		// A legacy record carries one scalar branch id; the read path feeds it
		// through the same constructor.
		set := kernel.NewBranchSet("jeddah-1")

		require.NoError(t, set.Validate())
		assert.Equal(t, []string{"jeddah-1"}, set.IDs())
	})

	t.Run("empty_set_fails_validation", func(t *testing.T) {
		set := kernel.NewBranchSet()

		require.Error(t, set.Validate())
		assert.True(t, set.IsEmpty())
	})
}

func TestBranchSetContains(t *testing.T) {
	set := kernel.NewBranchSet("a", "b")

	assert.True(t, set.Contains("a"))
	assert.False(t, set.Contains("c"))
}

func TestBranchSetIntersects(t *testing.T) {
	t.Run("overlapping_sets", func(t *testing.T) {
		order := kernel.NewBranchSet("a", "b")
		driver := kernel.NewBranchSet("b", "c")

		assert.True(t, order.Intersects(driver))
		assert.True(t, driver.Intersects(order))
	})

	t.Run("disjoint_sets", func(t *testing.T) {
		order := kernel.NewBranchSet("a")
		driver := kernel.NewBranchSet("c")

		assert.False(t, order.Intersects(driver))
	})

	t.Run("empty_set_intersects_nothing", func(t *testing.T) {
		empty := kernel.NewBranchSet()
		other := kernel.NewBranchSet("a")

		assert.False(t, empty.Intersects(other))
		assert.False(t, other.Intersects(empty))
	})
}

func TestBranchSetIsEqual(t *testing.T) {
	assert.True(t, kernel.NewBranchSet("b", "a").IsEqual(kernel.NewBranchSet("a", "b")))
	assert.False(t, kernel.NewBranchSet("a").IsEqual(kernel.NewBranchSet("a", "b")))
}

func TestBranchSetIDsIsACopy(t *testing.T) {
	set := kernel.NewBranchSet("a", "b")

	ids := set.IDs()
	ids[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, set.IDs())
}
