package sheetops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.xlsx"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	junk := filepath.Join(dir, "junk.xlsx")
	require.NoError(t, os.WriteFile(junk, []byte("not a workbook"), 0644))
	_, err = Open(junk)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestSaveCreatesDirectories(t *testing.T) {
	f := newBook(t, []string{"Sheet1"}, map[string][][]interface{}{"Sheet1": {{"v"}}})
	path := filepath.Join(t.TempDir(), "nested", "out", "book.xlsx")

	require.NoError(t, Save(f, path))

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	v, err := reopened.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestSelectSheets(t *testing.T) {
	f := newBook(t, []string{"A", "B", "C"}, nil)

	all, err := selectSheets(f, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, all)

	some, err := selectSheets(f, []string{"C", "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, some)

	_, err = selectSheets(f, []string{"D"})
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestResolveSheet(t *testing.T) {
	f := newBook(t, []string{"First", "Second"}, nil)

	name, err := ResolveSheet(f, "")
	require.NoError(t, err)
	assert.Equal(t, "First", name)

	name, err = ResolveSheet(f, "Second")
	require.NoError(t, err)
	assert.Equal(t, "Second", name)

	_, err = ResolveSheet(f, "Third")
	assert.ErrorIs(t, err, ErrSheetNotFound)

	f.SetActiveSheet(1)
	name, err = ResolveSheet(f, "")
	require.NoError(t, err)
	assert.Equal(t, "Second", name)
}
