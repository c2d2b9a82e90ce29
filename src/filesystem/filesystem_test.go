/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileManagerGetAttributes(t *testing.T) {
	dir := t.TempDir()
	fm := NewLocalFileManager()

	missing := filepath.Join(dir, "nope.txt")
	attrs, err := fm.GetAttributes(missing)
	require.NoError(t, err)
	assert.Equal(t, 0, attrs)

	file := filepath.Join(dir, "exists.txt")
	require.NoError(t, os.WriteFile(file, []byte("hi"), 0644))
	attrs, err = fm.GetAttributes(file)
	require.NoError(t, err)
	assert.Equal(t, AttrExists|AttrRegular, attrs)

	attrs, err = fm.GetAttributes(dir)
	require.NoError(t, err)
	assert.Equal(t, AttrExists|AttrDirectory, attrs)
}

func TestLocalFileManagerCreateFileExclusively(t *testing.T) {
	dir := t.TempDir()
	fm := NewLocalFileManager()
	file := filepath.Join(dir, "new.txt")

	created, err := fm.CreateFileExclusively(file)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = fm.CreateFileExclusively(file)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestLocalFileManagerDeleteAndRename(t *testing.T) {
	dir := t.TempDir()
	fm := NewLocalFileManager()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	renamed := filepath.Join(dir, "b.txt")
	require.NoError(t, fm.Rename(file, renamed))
	_, err := os.Stat(renamed)
	require.NoError(t, err)

	require.NoError(t, fm.Delete(renamed))
	_, err = os.Stat(renamed)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalFileManagerCheckAccess(t *testing.T) {
	dir := t.TempDir()
	fm := NewLocalFileManager()
	file := filepath.Join(dir, "r.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	ok, err := fm.CheckAccess(file, AccessRead)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fm.CheckAccess(filepath.Join(dir, "missing"), AccessRead)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalFileManagerSetReadOnly(t *testing.T) {
	dir := t.TempDir()
	fm := NewLocalFileManager()
	file := filepath.Join(dir, "ro.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	require.NoError(t, fm.SetReadOnly(file))
	ok, err := fm.CheckAccess(file, AccessWrite)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalFileManagerCanonicalize(t *testing.T) {
	dir := t.TempDir()
	fm := NewLocalFileManager()
	canon, err := fm.Canonicalize(filepath.Join(dir, "..", filepath.Base(dir)))
	require.NoError(t, err)
	assert.Equal(t, dir, canon)
}
