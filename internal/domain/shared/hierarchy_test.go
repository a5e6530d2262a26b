package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapResolver(parents map[uint]uint) ParentResolver {
	return func(_ context.Context, id uint) (*uint, error) {
		if p, ok := parents[id]; ok {
			return &p, nil
		}
		return nil, nil
	}
}

func TestValidateReparent(t *testing.T) {
	ctx := context.Background()

	t.Run("valid move to unrelated node", func(t *testing.T) {
		// 1 -> 2 -> 3, moving 5 under 3
		resolve := mapResolver(map[uint]uint{2: 1, 3: 2})
		assert.NoError(t, ValidateReparent(ctx, resolve, 5, 3))
	})

	t.Run("self parent rejected", func(t *testing.T) {
		err := ValidateReparent(ctx, mapResolver(nil), 7, 7)
		require.Error(t, err)
		var derr *DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "VALIDATION_ERROR", derr.Code)
	})

	t.Run("descendant rejected", func(t *testing.T) {
		// 2 is child of 1, 3 is child of 2; moving 1 under 3 would cycle
		resolve := mapResolver(map[uint]uint{2: 1, 3: 2})
		err := ValidateReparent(ctx, resolve, 1, 3)
		require.Error(t, err)
		var derr *DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "VALIDATION_ERROR", derr.Code)
	})

	t.Run("runaway chain hits depth cap", func(t *testing.T) {
		// corrupt data: 10 <-> 11 reference each other
		resolve := mapResolver(map[uint]uint{10: 11, 11: 10})
		err := ValidateReparent(ctx, resolve, 1, 10)
		require.Error(t, err)
		var derr *DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "VALIDATION_ERROR", derr.Code)
	})
}
