package cleanhttp

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/host"
)

var DefaultTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
		DualStack: true,
	}).DialContext,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          100,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	DisableCompression:    true,
}

var DefaultClient = &http.Client{
	Transport: &uaTransport{rt: DefaultTransport},
}

type uaTransport struct {
	rt http.RoundTripper
}

func (u *uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", UserAgent())
	}

	return u.rt.RoundTrip(req)
}

var (
	uaOnce sync.Once
	ua     string
)

// UserAgent identifies this client and its platform to package hosts.
func UserAgent() string {
	uaOnce.Do(func() {
		ua = "dpm/1"

		if info, err := host.Info(); err == nil {
			ua = fmt.Sprintf("dpm/1 (%s %s; %s)", info.Platform, info.PlatformVersion, info.KernelArch)
		}
	})

	return ua
}

func Get(url string) (resp *http.Response, err error) {
	return DefaultClient.Get(url)
}

func Do(req *http.Request) (resp *http.Response, err error) {
	return DefaultClient.Do(req)
}
