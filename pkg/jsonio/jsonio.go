// Package jsonio moves typed records in and out of their JSON form, from
// local files, in-memory text, or a remote URL.
package jsonio

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"lab47.dev/dpm/pkg/cleanhttp"
	"lab47.dev/dpm/pkg/errdefs"
)

// LoadFromPath reads the file at path and decodes it as T.
func LoadFromPath[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	var v T

	err = json.Unmarshal(data, &v)
	if err != nil {
		return nil, errdefs.Format(err)
	}

	return &v, nil
}

// SaveToPath writes v to path as indented JSON, creating or truncating
// the file.
func SaveToPath[T any](v *T, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}

	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	err = enc.Encode(v)
	if err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	return nil
}

// ParseText decodes an in-memory JSON string as T. No I/O.
func ParseText[T any](text string) (*T, error) {
	var v T

	err := json.Unmarshal([]byte(text), &v)
	if err != nil {
		return nil, errdefs.Format(err)
	}

	return &v, nil
}

// FetchFromURL GETs url, reads the whole body, and decodes it as T.
// Transport failures come back as a network error, an unparsable body as
// a format error. The HTTP status is not inspected here; callers that
// care about it issue their own request.
func FetchFromURL[T any](ctx context.Context, url string) (*T, error) {
	return fetch[T](ctx, cleanhttp.DefaultClient, url)
}

// FetchWithClient is FetchFromURL with a caller-supplied client, mostly
// for tests.
func FetchWithClient[T any](ctx context.Context, client *http.Client, url string) (*T, error) {
	return fetch[T](ctx, client, url)
}

func fetch[T any](ctx context.Context, client *http.Client, url string) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, errdefs.Network(err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errdefs.Network(err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errdefs.Network(err)
	}

	var v T

	err = json.Unmarshal(body, &v)
	if err != nil {
		return nil, errdefs.Format(err)
	}

	return &v, nil
}
