package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview(t *testing.T) {
	t.Run("Shortfall is flagged", func(t *testing.T) {
		//** Arrange
		input := batchInput([]Course{course("C40", 40), course("C60", 60), course("C20", 20)}, []Room{room("R50", 50), room("R70", 70)}, []Faculty{member("f1", 8)}, 1, 1)

		//** Act
		preview, err := Preview(input)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, 1, preview.SlotsPerDay)
		assert.Equal(t, 2, preview.TotalSlots)
		assert.Equal(t, 3, preview.Courses)
		assert.False(t, preview.Sufficient)
		assert.Equal(t, 2, preview.MaxParallel)
	})

	t.Run("Missing window is invalid input", func(t *testing.T) {
		input := departmentInput()
		input.Window = Window{}

		_, err := Preview(input)

		assert.IsType(t, InvalidInputError{}, err)
	})

	t.Run("Department window is sufficient", func(t *testing.T) {
		input := departmentInput()

		preview, err := Preview(input)

		require.NoError(t, err)
		assert.Len(t, preview.WorkingDays, 11)
		assert.Len(t, preview.Holidays, 3)
		assert.Equal(t, 88, preview.TotalSlots)
		assert.True(t, preview.Sufficient)
		assert.Equal(t, 4, preview.MaxParallel)
	})
}
