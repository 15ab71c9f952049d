package ops

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lab47.dev/dpm/pkg/errdefs"
	"lab47.dev/dpm/pkg/registry"
)

func TestRegistryRefresh(t *testing.T) {
	remoteDoc := `{
	  "packages": {
	    "toolB": {
	      "url": "http://h/b2.zip",
	      "file_name": "b2.zip",
	      "version": "2.0.0",
	      "hash": "hb2",
	      "dependencies": null
	    },
	    "toolC": {
	      "url": "http://h/c.zip",
	      "file_name": "c.zip",
	      "version": "0.1.0",
	      "hash": "hc",
	      "dependencies": null
	    }
	  }
	}`

	t.Run("replaces the whole local entry set", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(remoteDoc))
		}))
		defer ts.Close()

		reg := registry.New()
		reg.Add("toolA", "http://h/a.zip", "a.zip", "1.0.0", "ha", nil, "", "")
		reg.Add("toolB", "http://h/b.zip", "b.zip", "1.0.0", "hb", nil, "", "")

		var rr RegistryRefresh

		err := rr.Refresh(context.Background(), reg, ts.URL)
		require.NoError(t, err)

		assert.False(t, reg.Has("toolA"))
		assert.True(t, reg.Has("toolC"))

		pkg, err := reg.Get("toolB")
		require.NoError(t, err)
		assert.Equal(t, "2.0.0", pkg.Version)
	})

	t.Run("a bad document leaves local state intact", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>down for maintenance</html>"))
		}))
		defer ts.Close()

		reg := registry.New()
		reg.Add("toolA", "http://h/a.zip", "a.zip", "1.0.0", "ha", nil, "", "")

		var rr RegistryRefresh

		err := rr.Refresh(context.Background(), reg, ts.URL)
		require.Error(t, err)
		assert.True(t, errdefs.IsFormat(err))

		require.True(t, reg.Has("toolA"))
		require.Equal(t, 1, reg.Len())
	})

	t.Run("an unreachable host leaves local state intact", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		ts.Close()

		reg := registry.New()
		reg.Add("toolA", "http://h/a.zip", "a.zip", "1.0.0", "ha", nil, "", "")

		var rr RegistryRefresh

		err := rr.Refresh(context.Background(), reg, ts.URL)
		require.Error(t, err)
		assert.True(t, errdefs.IsNetwork(err))

		require.True(t, reg.Has("toolA"))
	})
}
