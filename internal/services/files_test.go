package services

import (
	"bytes"
	"errors"
	"io/fs"
	"strings"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	svc := NewFileService(nil)
	path := filepath.Join(t.TempDir(), "hello.py")

	for _, text := range []string{
		"",
		"print('hello')\n",
		"línea uno\nline two\r\n\ttabbed",
	} {
		require.NoError(t, svc.Save(path, text))
		got, err := svc.Load(path)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	}
}

func TestSaveTruncates(t *testing.T) {
	svc := NewFileService(nil)
	path := filepath.Join(t.TempDir(), "a.txt")

	require.NoError(t, svc.Save(path, "a much longer first version"))
	require.NoError(t, svc.Save(path, "short"))

	got, err := svc.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "short", got)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.py")
	text, err := NewFileService(nil).Load(path)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "load", ioErr.Op)
	assert.Equal(t, path, ioErr.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Empty(t, text)
}

func TestSaveIntoMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "x.py")
	err := NewFileService(nil).Save(path, "x")

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "save", ioErr.Op)
}

func TestWithDefaultExtension(t *testing.T) {
	assert.Equal(t, "script.py", WithDefaultExtension("script", ".py"))
	assert.Equal(t, "script.py", WithDefaultExtension("script", "py"))
	assert.Equal(t, "notes.txt", WithDefaultExtension("notes.txt", ".py"))
	assert.Equal(t, "script", WithDefaultExtension("script", ""))
}

func TestDialogFileTypes(t *testing.T) {
	types := DialogFileTypes([]string{".py", ".lua", ".txt"})
	assert.Equal(t, []FileType{
		{Label: "PY files", Extension: ".py"},
		{Label: "LUA files", Extension: ".lua"},
		{Label: "Text files", Extension: ".txt"},
		{Label: "All files", Extension: "*"},
	}, types)

	assert.Nil(t, DialogFilter(types))
	assert.Nil(t, DialogFilter(nil))
	assert.NotNil(t, DialogFilter(types[:2]))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestReadFromWriteTo(t *testing.T) {
	svc := NewFileService(nil)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteTo(&buf, "mem.py", "print(1)\n"))
	assert.Equal(t, "print(1)\n", buf.String())

	text, err := svc.ReadFrom(strings.NewReader("print(2)\n"), "mem.py")
	require.NoError(t, err)
	assert.Equal(t, "print(2)\n", text)
}

func TestReadFromWriteToErrors(t *testing.T) {
	svc := NewFileService(nil)

	var ioErr *IOError
	err := svc.WriteTo(failingWriter{}, "out.py", "x")
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "save", ioErr.Op)
	assert.Equal(t, "out.py", ioErr.Path)

	text, err := svc.ReadFrom(failingReader{}, "in.py")
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "load", ioErr.Op)
	assert.Empty(t, text)
}
