package kernel_test

import (
	"testing"

	"resto/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("generates_valid_unique_ids", func(t *testing.T) {
		// When
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		// Then
		require.NoError(t, first.Validate())
		require.NoError(t, second.Validate())
		assert.False(t, first.IsEqual(second))
	})
}

func TestUUIDFromString(t *testing.T) {
	t.Run("parses_canonical_form", func(t *testing.T) {
		// Given
		raw := "550e8400-e29b-41d4-a716-446655440000"

		// When
		id, err := kernel.UUIDFromString(raw)

		// Then
		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")
		require.Error(t, err)
	})
}

func TestUUIDValidate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var id kernel.UUID

		err := id.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUIDRoundTrip(t *testing.T) {
	t.Run("bytes_round_trip", func(t *testing.T) {
		// Given
		id := kernel.NewUUID()
		raw := id.Bytes()

		// When
		restored, err := kernel.UUIDFromBytes(raw[:])

		// Then
		require.NoError(t, err)
		assert.True(t, id.IsEqual(restored))
	})
}
