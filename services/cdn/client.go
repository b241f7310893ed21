// Package cdn is the Zenlayer Cloud CDN API facade.
package cdn

import (
	"context"

	"github.com/andyle182810/zenlayercloud-sdk-go/zcsdk"
)

const (
	Service    = "cdn"
	APIVersion = "2024-02-29"
)

type Client struct {
	core *zcsdk.Client
}

// New wraps a shared core client. Facades of other services can use the same
// core.
func New(core *zcsdk.Client) *Client {
	return &Client{core: core}
}

func invoke[T any](ctx context.Context, c *Client, action string, payload any) (*zcsdk.Envelope[T], error) {
	return zcsdk.Invoke[T](ctx, c.core, Service, APIVersion, action, payload)
}
