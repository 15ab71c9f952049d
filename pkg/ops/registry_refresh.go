package ops

import (
	"context"

	"lab47.dev/dpm/pkg/jsonio"
	"lab47.dev/dpm/pkg/registry"
)

// RegistryRefresh synchronizes a local registry against a remote manifest.
type RegistryRefresh struct {
	common
}

// Refresh fetches the registry document at url and swaps the whole entry
// set into reg. A fetch or parse failure leaves reg untouched.
func (r *RegistryRefresh) Refresh(ctx context.Context, reg *registry.Registry, url string) error {
	fetched, err := jsonio.FetchWithClient[registry.Registry](ctx, r.HTTP(), url)
	if err != nil {
		return err
	}

	reg.ReplaceAll(fetched.Entries())

	r.L().Debug("refreshed registry", "url", url, "packages", reg.Len())

	return nil
}
