package domain_test

import (
	"testing"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewHabitItem(t *testing.T) {
	t.Run("Success: trims and assigns an id", func(t *testing.T) {
		h, err := domain.NewHabitItem("  Walking ", " 🚶 ")

		assert.NoError(t, err)
		assert.NotEmpty(t, h.ID)
		assert.Equal(t, "Walking", h.Name)
		assert.Equal(t, "🚶", h.Emoji)
	})

	t.Run("Error: missing emoji", func(t *testing.T) {
		_, err := domain.NewHabitItem("Walking", "  ")
		assert.ErrorIs(t, err, domain.ErrHabitItemInvalid)
	})

	t.Run("Error: missing name", func(t *testing.T) {
		_, err := domain.NewHabitItem("", "🚶")
		assert.ErrorIs(t, err, domain.ErrHabitItemInvalid)
	})
}

func TestHabitItem_Update(t *testing.T) {
	h, _ := domain.NewHabitItem("Walking", "🚶")
	id := h.ID

	assert.NoError(t, h.Update("Running", "🏃"))
	assert.Equal(t, id, h.ID)
	assert.Equal(t, "Running", h.Name)

	assert.ErrorIs(t, h.Update(" ", "🏃"), domain.ErrHabitItemInvalid)
	assert.Equal(t, "Running", h.Name, "failed update leaves item untouched")
}

func TestDefaultLibrary(t *testing.T) {
	lib := domain.DefaultLibrary()

	assert.Len(t, lib, 9)
	seen := map[string]bool{}
	for _, h := range lib {
		assert.NotEmpty(t, h.ID)
		assert.NotEmpty(t, h.Emoji)
		assert.False(t, seen[h.ID])
		seen[h.ID] = true
	}

	found, ok := domain.FindHabitItem(lib, lib[3].ID)
	assert.True(t, ok)
	assert.Equal(t, "Gym", found.Name)
}
