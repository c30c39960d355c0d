package storage

import (
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStore(t *testing.T) (*DiskStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s, err := NewDiskStore(fs, "/uploads")
	require.NoError(t, err)
	return s, fs
}

func TestSave_WritesContentUnderGeneratedName(t *testing.T) {
	s, fs := newMemStore(t)

	name, err := s.Save(context.Background(), "My Photo.JPG", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(name, "-My-Photo.JPG"), "got %q", name)
	data, err := afero.ReadFile(fs, "/uploads/"+name)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestSave_UniqueNames(t *testing.T) {
	s, _ := newMemStore(t)

	a, err := s.Save(context.Background(), "a.png", strings.NewReader("1"))
	require.NoError(t, err)
	b, err := s.Save(context.Background(), "a.png", strings.NewReader("2"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestSave_ReadFailureLeavesNoFile(t *testing.T) {
	s, fs := newMemStore(t)

	_, err := s.Save(context.Background(), "a.png", failingReader{})
	require.Error(t, err)

	entries, err := afero.ReadDir(fs, "/uploads")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSave_CancelledContext(t *testing.T) {
	s, _ := newMemStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Save(ctx, "a.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExistsAndRemove(t *testing.T) {
	s, _ := newMemStore(t)
	ctx := context.Background()

	name, err := s.Save(ctx, "a.png", strings.NewReader("x"))
	require.NoError(t, err)

	ok, err := s.Exists(ctx, name)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Remove(ctx, name))
	ok, err = s.Exists(ctx, name)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Remove(ctx, name), "removing a missing file is not an error")
	_, err = s.Exists(ctx, "../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestPing(t *testing.T) {
	s, fs := newMemStore(t)
	require.NoError(t, s.Ping(context.Background()))

	require.NoError(t, fs.RemoveAll("/uploads"))
	assert.Error(t, s.Ping(context.Background()))
}

func TestFileSystem_ServesStoredPhoto(t *testing.T) {
	s, _ := newMemStore(t)
	name, err := s.Save(context.Background(), "eco.jpg", strings.NewReader("photo"))
	require.NoError(t, err)

	srv := http.StripPrefix("/uploads/", http.FileServer(s.FileSystem()))
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/"+name, http.NoBody))

	require.Equal(t, http.StatusOK, rr.Code)
	body, _ := io.ReadAll(rr.Body)
	assert.Equal(t, "photo", string(body))
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"My Photo.JPG", "My-Photo.JPG"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\pic.png`, "pic.png"},
		{"fóto çafé.png", "fto-af.png"},
		{".hidden", "hidden"},
		{"", "photo"},
		{"???", "photo"},
		{strings.Repeat("a", 100) + ".jpeg", strings.Repeat("a", 59) + ".jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}

func TestProvision_CopiesMissingFilesOnly(t *testing.T) {
	s, fs := newMemStore(t)
	require.NoError(t, afero.WriteFile(fs, "/uploads/oleo.svg", []byte("operator icon"), 0o644))

	src := fstest.MapFS{
		"lampadas.svg": {Data: []byte("<svg>lamp</svg>")},
		"oleo.svg":     {Data: []byte("<svg>oil</svg>")},
		"nested":       {Mode: 0o755 | iofs.ModeDir},
	}

	n, err := s.Provision(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := afero.ReadFile(fs, "/uploads/lampadas.svg")
	require.NoError(t, err)
	assert.Equal(t, "<svg>lamp</svg>", string(data))

	data, err = afero.ReadFile(fs, "/uploads/oleo.svg")
	require.NoError(t, err)
	assert.Equal(t, "operator icon", string(data))

	n, err = s.Provision(context.Background(), src)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProvision_ServedThroughFileSystem(t *testing.T) {
	s, _ := newMemStore(t)
	_, err := s.Provision(context.Background(), fstest.MapFS{"baterias.svg": {Data: []byte("<svg/>")}})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	http.FileServer(s.FileSystem()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/baterias.svg", http.NoBody))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<svg/>", rr.Body.String())
}
