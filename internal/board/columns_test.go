package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

func TestColumnStore(t *testing.T) {
	s, err := NewColumnStore(testStages)
	require.NoError(t, err)

	t.Run("get unknown stage", func(t *testing.T) {
		_, err := s.Get("Z")
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("insert clamps the index", func(t *testing.T) {
		at, err := s.InsertAt("A", "x", 5)
		require.NoError(t, err)
		assert.Equal(t, 0, at)

		at, err = s.InsertAt("A", "y", -1)
		require.NoError(t, err)
		assert.Equal(t, 0, at)

		ids, err := s.Get("A")
		require.NoError(t, err)
		assert.Equal(t, []types.DealID{"y", "x"}, ids)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		ids, err := s.Get("A")
		require.NoError(t, err)
		ids[0] = "mutated"

		again, err := s.Get("A")
		require.NoError(t, err)
		assert.Equal(t, types.DealID("y"), again[0])
	})

	t.Run("remove reports whether it found the deal", func(t *testing.T) {
		assert.True(t, s.RemoveFrom("A", "y"))
		assert.False(t, s.RemoveFrom("A", "y"))
		assert.False(t, s.RemoveFrom("Z", "x"))

		stage, idx, ok := s.Locate("x")
		require.True(t, ok)
		assert.Equal(t, types.StageID("A"), stage)
		assert.Equal(t, 0, idx)

		_, _, ok = s.Locate("y")
		assert.False(t, ok)
	})
}

func TestItemStore(t *testing.T) {
	s := NewItemStore()

	d := s.Create(models.DealFields{Title: "Marketing Campaign", Company: "Globex Inc"})
	assert.NotEmpty(t, d.ID)
	assert.True(t, s.Has(d.ID))

	other := s.Create(models.DealFields{Title: "Consulting Project"})
	assert.NotEqual(t, d.ID, other.ID)

	company := "Globex Corporation"
	updated, err := s.Update(d.ID, models.DealPatch{Company: &company})
	require.NoError(t, err)
	assert.Equal(t, "Marketing Campaign", updated.Title)
	assert.Equal(t, company, updated.Company)

	require.NoError(t, s.Delete(d.ID))
	require.ErrorIs(t, s.Delete(d.ID), models.ErrNotFound)
	_, err = s.Get(d.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
	_, err = s.Update(d.ID, models.DealPatch{})
	require.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, 1, s.Len())
}
