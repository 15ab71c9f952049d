package ops

import (
	"context"
	"path"
	"strings"

	"lab47.dev/dpm/pkg/data"
	"lab47.dev/dpm/pkg/jsonio"
	"lab47.dev/dpm/pkg/registry"
)

// PackageFetchInfo retrieves the full descriptor for a cataloged package.
//
// The descriptor lives beside the artifact: the entry's URL with its file
// name swapped for src/<package>/packageInfo.json. This is a fixed hosting
// convention, not configurable.
type PackageFetchInfo struct {
	common
}

func (p *PackageFetchInfo) Fetch(ctx context.Context, reg *registry.Registry, name string) (*data.PackageInfo, error) {
	pkg, err := reg.Get(name)
	if err != nil {
		return nil, err
	}

	url := DescriptorURL(name, pkg)

	p.L().Debug("fetching package descriptor", "package", name, "url", url)

	return jsonio.FetchWithClient[data.PackageInfo](ctx, p.HTTP(), url)
}

// DescriptorURL derives the descriptor location from a catalog entry.
func DescriptorURL(name string, pkg *data.PackageEntry) string {
	return strings.ReplaceAll(pkg.URL, pkg.FileName, path.Join("src", name, "packageInfo.json"))
}
