package kernel_test

import (
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("positive value", func(t *testing.T) {
		id, err := kernel.NewID(42)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id.Int64())
		assert.True(t, id.IsAssigned())
		assert.Equal(t, "42", id.String())
	})

	for _, v := range []int64{0, -1} {
		t.Run("rejects non positive value", func(t *testing.T) {
			_, err := kernel.NewID(v)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}
}

func TestID_Validate(t *testing.T) {
	var unassigned kernel.ID
	assert.False(t, unassigned.IsAssigned())
	require.ErrorIs(t, unassigned.Validate(), errs.ErrValueIsRequired)

	require.NoError(t, kernel.ID(7).Validate())
}
