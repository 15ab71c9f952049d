package ops

import (
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"lab47.dev/dpm/pkg/cleanhttp"
)

type common struct {
	logger hclog.Logger
	client *http.Client
}

func (c *common) L() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	c.logger = hclog.L()

	return c.logger
}

func (c *common) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

func (c *common) HTTP() *http.Client {
	if c.client != nil {
		return c.client
	}

	return cleanhttp.DefaultClient
}

func (c *common) SetClient(client *http.Client) {
	c.client = client
}

func track(err error) error {
	return errors.WithStack(err)
}
