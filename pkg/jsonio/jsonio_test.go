package jsonio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lab47.dev/dpm/pkg/data"
	"lab47.dev/dpm/pkg/errdefs"
)

const descriptorJSON = `{
  "package_name": "test_package",
  "file_name": "test_file.zip",
  "version": "1.0.0",
  "description": "A test package",
  "hash": "hash123",
  "dependencies": null
}`

func TestJsonio(t *testing.T) {
	t.Run("loads a record from a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pkg.json")
		require.NoError(t, os.WriteFile(path, []byte(descriptorJSON), 0644))

		info, err := LoadFromPath[data.PackageInfo](path)
		require.NoError(t, err)

		assert.Equal(t, "test_package", info.PackageName)
		assert.Equal(t, "1.0.0", info.Version)
		assert.Nil(t, info.Dependencies)
	})

	t.Run("saves a record pretty-printed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")

		info := data.NewPackageInfo("test_package", "test_file.zip", "1.0.0", "A test package", "hash123", nil)

		require.NoError(t, SaveToPath(info, path))

		written, err := os.ReadFile(path)
		require.NoError(t, err)

		assert.Contains(t, string(written), "\"package_name\": \"test_package\"")

		back, err := LoadFromPath[data.PackageInfo](path)
		require.NoError(t, err)
		assert.Equal(t, info, back)
	})

	t.Run("parses in-memory text without io", func(t *testing.T) {
		info, err := ParseText[data.PackageInfo](descriptorJSON)
		require.NoError(t, err)

		assert.Equal(t, "test_package", info.PackageName)
	})

	t.Run("malformed text is a format error", func(t *testing.T) {
		_, err := ParseText[data.PackageInfo]("{oops")
		require.Error(t, err)
		assert.True(t, errdefs.IsFormat(err))
	})

	t.Run("fetches and decodes a record from a url", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(descriptorJSON))
		}))
		defer ts.Close()

		info, err := FetchFromURL[data.PackageInfo](context.Background(), ts.URL)
		require.NoError(t, err)

		assert.Equal(t, "test_package", info.PackageName)
	})

	t.Run("transport failures are network errors", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		ts.Close()

		_, err := FetchFromURL[data.PackageInfo](context.Background(), ts.URL)
		require.Error(t, err)
		assert.True(t, errdefs.IsNetwork(err))
	})

	t.Run("status is not inspected, only the body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(descriptorJSON))
		}))
		defer ts.Close()

		info, err := FetchFromURL[data.PackageInfo](context.Background(), ts.URL)
		require.NoError(t, err)
		assert.Equal(t, "test_package", info.PackageName)
	})

	t.Run("unparsable body is a format error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer ts.Close()

		_, err := FetchFromURL[data.PackageInfo](context.Background(), ts.URL)
		require.Error(t, err)
		assert.True(t, errdefs.IsFormat(err))
	})
}
