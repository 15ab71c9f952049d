package ops

import (
	"context"
	"fmt"
	"hash"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"lab47.dev/dpm/pkg/data"
	"lab47.dev/dpm/pkg/errdefs"
	"lab47.dev/dpm/pkg/progress"
	"lab47.dev/dpm/pkg/registry"
)

// PackageDownload fetches a package's descriptor and streams its artifact
// to local storage, verifying the content hash declared in the catalog.
type PackageDownload struct {
	common

	// Dir is where artifacts land. Empty means the platform temp dir.
	Dir string
}

// Download writes the artifact for name under <dir>/<name>-<version>/ and
// returns its descriptor and the local path. A failure mid-stream aborts
// the download; whatever was written stays on disk, there is no cleanup
// or resume.
func (d *PackageDownload) Download(ctx context.Context, reg *registry.Registry, name string) (*data.PackageInfo, string, error) {
	pkg, err := reg.Get(name)
	if err != nil {
		return nil, "", err
	}

	var pfi PackageFetchInfo
	pfi.common = d.common

	info, err := pfi.Fetch(ctx, reg, name)
	if err != nil {
		return nil, "", err
	}

	sumType, sumValue, err := DecodeSum(pkg.Hash)
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", pkg.URL, nil)
	if err != nil {
		return nil, "", errdefs.Network(err)
	}

	resp, err := d.HTTP().Do(req)
	if err != nil {
		return nil, "", errdefs.Network(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", errdefs.Networkf("failed to fetch package '%s': %s", name, resp.Status)
	}

	dir := filepath.Join(d.dir(), fmt.Sprintf("%s-%s", name, pkg.Version))

	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, "", track(err)
	}

	dest := filepath.Join(dir, pkg.FileName)

	f, err := os.Create(dest)
	if err != nil {
		return nil, "", track(err)
	}

	defer f.Close()

	var (
		w io.Writer = f
		h hash.Hash
	)

	if sumType != "" {
		h, err = newSumHash(sumType)
		if err != nil {
			return nil, "", err
		}

		w = io.MultiWriter(f, h)
	}

	bar := progress.Count(ctx, resp.ContentLength, "downloading "+name)
	defer bar.Close()

	d.L().Debug("downloading artifact", "package", name, "url", pkg.URL, "dest", dest)

	_, err = io.Copy(w, bar.Reader(resp.Body))
	if err != nil {
		return nil, "", track(err)
	}

	if h != nil {
		actual := encodeSum(sumType, h)

		if !sumEqual(sumType, sumValue, actual) {
			return nil, "", track(&errdefs.HashMismatchError{
				Expected: sumValue,
				Actual:   actual,
			})
		}
	}

	return info, dest, nil
}

func (d *PackageDownload) dir() string {
	if d.Dir != "" {
		return d.Dir
	}

	return os.TempDir()
}
