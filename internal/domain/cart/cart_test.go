package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataAdd(t *testing.T) {
	t.Run("creates nested entries", func(t *testing.T) {
		d := make(Data)
		require.NoError(t, d.Add(1, "Black", 2))
		assert.Equal(t, 2, d[1]["Black"])
	})

	t.Run("sums existing quantities", func(t *testing.T) {
		d := make(Data)
		require.NoError(t, d.Add(1, "Black", 2))
		require.NoError(t, d.Add(1, "Black", 3))
		assert.Equal(t, 5, d[1]["Black"])
	})

	t.Run("rejects empty color", func(t *testing.T) {
		d := make(Data)
		err := d.Add(1, "", 1)
		assert.ErrorIs(t, err, ErrColorRequired)
	})

	t.Run("never goes below zero", func(t *testing.T) {
		d := make(Data)
		require.NoError(t, d.Add(1, "Black", 2))
		require.NoError(t, d.Add(1, "Black", -5))
		_, exists := d[1]
		assert.False(t, exists, "zero-quantity entries must be removed")
	})

	t.Run("removes empty product maps", func(t *testing.T) {
		d := make(Data)
		require.NoError(t, d.Add(1, "Black", 1))
		require.NoError(t, d.Add(1, "White", 1))
		require.NoError(t, d.Add(1, "Black", -1))
		assert.Equal(t, 1, d[1]["White"])
		require.NoError(t, d.Add(1, "White", -1))
		assert.Empty(t, d)
	})
}

func TestDataSet(t *testing.T) {
	t.Run("overwrites quantity", func(t *testing.T) {
		d := make(Data)
		require.NoError(t, d.Set(1, "Black", 2))
		require.NoError(t, d.Set(1, "Black", 7))
		assert.Equal(t, 7, d[1]["Black"])
	})

	t.Run("zero removes the entry", func(t *testing.T) {
		d := make(Data)
		require.NoError(t, d.Set(1, "Black", 2))
		require.NoError(t, d.Set(1, "Black", 0))
		_, exists := d[1]
		assert.False(t, exists)
	})

	t.Run("negative clamps to removal", func(t *testing.T) {
		d := make(Data)
		require.NoError(t, d.Set(1, "Black", 2))
		require.NoError(t, d.Set(1, "Black", -3))
		assert.True(t, d.IsEmpty())
	})

	t.Run("rejects empty color", func(t *testing.T) {
		d := make(Data)
		assert.ErrorIs(t, d.Set(1, "", 2), ErrColorRequired)
	})
}

func TestDataCount(t *testing.T) {
	d := make(Data)
	require.NoError(t, d.Add(1, "Black", 2))
	require.NoError(t, d.Add(1, "White", 1))
	require.NoError(t, d.Add(2, "Red", 4))

	assert.Equal(t, 7, d.Count())
	assert.False(t, d.IsEmpty())
	assert.True(t, make(Data).IsEmpty())
}

func TestDataTotal(t *testing.T) {
	d := make(Data)
	require.NoError(t, d.Add(1, "Black", 2))
	require.NoError(t, d.Add(2, "Red", 3))

	prices := map[uint]int64{1: 25, 2: 10}
	assert.Equal(t, int64(2*25+3*10), d.Total(prices))

	t.Run("missing catalog entries contribute nothing", func(t *testing.T) {
		assert.Equal(t, int64(50), d.Total(map[uint]int64{1: 25}))
		assert.Equal(t, int64(0), d.Total(map[uint]int64{}))
	})
}

func TestDataMerge(t *testing.T) {
	t.Run("is additive for matching lines", func(t *testing.T) {
		server := make(Data)
		require.NoError(t, server.Add(1, "Black", 2))

		guest := make(Data)
		require.NoError(t, guest.Add(1, "Black", 3))
		require.NoError(t, guest.Add(2, "Red", 1))

		server.Merge(guest)

		assert.Equal(t, 5, server[1]["Black"])
		assert.Equal(t, 1, server[2]["Red"])
	})

	t.Run("merged cart contains the whole guest cart", func(t *testing.T) {
		server := make(Data)
		require.NoError(t, server.Add(3, "Green", 1))

		guest := make(Data)
		require.NoError(t, guest.Add(1, "Black", 2))
		require.NoError(t, guest.Add(2, "White", 4))

		server.Merge(guest)

		for productID, variants := range guest {
			for color, quantity := range variants {
				assert.GreaterOrEqual(t, server[productID][color], quantity)
			}
		}
	})

	t.Run("skips non-positive and empty-color entries", func(t *testing.T) {
		server := make(Data)
		guest := Data{
			1: {"Black": 0, "": 3},
			2: {"Red": -1},
		}
		server.Merge(guest)
		assert.True(t, server.IsEmpty())
	})
}
