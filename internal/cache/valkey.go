package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/synsight/synsight/internal/clients"
)

// ValkeyCache stores JSON values in Valkey with server-side expiry, letting
// multiple instances share one cache.
type ValkeyCache struct {
	vc *clients.ValkeyClient
}

func NewValkeyCache(vc *clients.ValkeyClient) *ValkeyCache {
	return &ValkeyCache{vc: vc}
}

func (c *ValkeyCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	res := c.vc.DoWithRetry(ctx, c.vc.Client.B().Get().Key(key).Build(), clients.MAX_RETRIES)
	if err := res.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}

	data, err := res.AsBytes()
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *ValkeyCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cmd := c.vc.Client.B().Set().Key(key).Value(string(data)).
		Ex(ttl).Build()
	if err := c.vc.DoWithRetry(ctx, cmd, clients.MAX_RETRIES).Error(); err != nil {
		return err
	}
	return nil
}
