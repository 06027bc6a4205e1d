package sheetops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inventory() [][]interface{} {
	return [][]interface{}{
		{"inventory export"},
		{"device", "port"},
		{"switch1", 1},
		{"router", 2},
		{"switch2", 3},
		{"switch1", 4},
		{"firewall"},
	}
}

func TestFilterDefaults(t *testing.T) {
	src := newBook(t, []string{"Sheet1"}, map[string][][]interface{}{"Sheet1": inventory()})

	out, err := Filter(src, DefaultFilterOptions())
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, []string{"Sheet1"}, out.GetSheetList())
	assert.Equal(t, []string{"device", "switch1", "switch2", "switch1", ""}, column(t, out, "Sheet1", 1, 5))
	assert.Equal(t, []string{"port", "1", "3", "4", ""}, column(t, out, "Sheet1", 2, 5))

	// the source is not modified
	assert.Equal(t, "inventory export", column(t, src, "Sheet1", 1, 1)[0])
}

func TestFilterSheets(t *testing.T) {
	src := newBook(t, []string{"Core", "Edge"}, map[string][][]interface{}{
		"Core": inventory(),
		"Edge": inventory(),
	})

	t.Run("all sheets", func(t *testing.T) {
		out, err := Filter(src, DefaultFilterOptions())
		require.NoError(t, err)
		defer out.Close()
		assert.Equal(t, []string{"Core", "Edge"}, out.GetSheetList())
	})

	t.Run("selected sheet", func(t *testing.T) {
		opts := DefaultFilterOptions()
		opts.Sheets = []string{"Edge"}
		opts.Values = []string{"router"}
		out, err := Filter(src, opts)
		require.NoError(t, err)
		defer out.Close()

		assert.Equal(t, []string{"Edge"}, out.GetSheetList())
		assert.Equal(t, []string{"device", "router", ""}, column(t, out, "Edge", 1, 3))
	})

	t.Run("keeps source order", func(t *testing.T) {
		src := newBook(t, []string{"Core", "Sheet1", "Edge"}, map[string][][]interface{}{
			"Sheet1": inventory(),
		})
		out, err := Filter(src, DefaultFilterOptions())
		require.NoError(t, err)
		defer out.Close()
		assert.Equal(t, []string{"Core", "Sheet1", "Edge"}, out.GetSheetList())
	})

	t.Run("unknown sheet", func(t *testing.T) {
		opts := DefaultFilterOptions()
		opts.Sheets = []string{"Lab"}
		_, err := Filter(src, opts)
		assert.ErrorIs(t, err, ErrSheetNotFound)
	})
}

func TestFilterByOtherColumn(t *testing.T) {
	src := newBook(t, []string{"Sheet1"}, map[string][][]interface{}{"Sheet1": inventory()})

	out, err := Filter(src, FilterOptions{SkipRows: 1, Column: 1, Values: []string{"2", "4"}})
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, []string{"device", "router", "switch1", ""}, column(t, out, "Sheet1", 1, 4))
}

func TestFilterInvalidOptions(t *testing.T) {
	src := newBook(t, []string{"Sheet1"}, map[string][][]interface{}{"Sheet1": inventory()})

	_, err := Filter(src, FilterOptions{Column: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Filter(src, FilterOptions{SkipRows: -2})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
